// Package handler contains the Echo HTTP handlers. Handlers translate
// between the JSON wire format and the booking engine: they parse and
// validate request shapes, pull the verified identity the JWT middleware
// stored on the context, call the engine and map its errors to status
// codes. No business rule lives here.
package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campushub/facility-booking/internal/booking"
	"github.com/campushub/facility-booking/internal/logger"
)

// flexID is a uint64 that unmarshals from either a JSON number or a
// numeric string. The web client builds the facility id from a route
// parameter, so create payloads arrive as {"facilityId":"1","slotId":10}
// and both encodings must bind.
type flexID uint64

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	n, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return err
	}
	*f = flexID(n)
	return nil
}

// errJSON writes an error payload carrying both "error" and "message":
// the client renders message, older tooling reads error.
func errJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"error": msg, "message": msg})
}

// currentUserID reads the verified caller id the JWT middleware stored
// under "user_id". JWT numeric claims decode as float64, so all the
// plausible encodings are accepted.
func currentUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case uint64:
		return v, v != 0
	case int64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		return id, err == nil && id != 0
	}
	return 0, false
}

// pathID parses a numeric :id path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, booking.ErrValidation
	}
	return id, nil
}

// writeEngineError maps engine errors onto the HTTP status codes the
// client contract promises. Anything unrecognized is a 500 and gets
// logged with its route for later diagnosis.
func writeEngineError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrValidation):
		return errJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrForbidden):
		return errJSON(c, http.StatusForbidden, err.Error())
	case errors.Is(err, booking.ErrFacilityNotFound),
		errors.Is(err, booking.ErrSlotNotFound),
		errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, booking.ErrTokenNotFound):
		return errJSON(c, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrSlotUnavailable),
		errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, booking.ErrAlreadyCheckedIn):
		return errJSON(c, http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrTooLate),
		errors.Is(err, booking.ErrExpired):
		return errJSON(c, http.StatusGone, err.Error())
	}
	logger.ErrorLogger.WithField("route", c.Path()).WithError(err).Error("unhandled engine error")
	return errJSON(c, http.StatusInternalServerError, "internal error")
}
