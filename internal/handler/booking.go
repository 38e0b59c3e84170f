package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushub/facility-booking/internal/booking"
	"github.com/campushub/facility-booking/internal/logger"
)

// BookingHandler serves the member-facing booking endpoints.
type BookingHandler struct {
	Svc *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

type createBookingReq struct {
	FacilityID flexID `json:"facilityId"`
	SlotID     flexID `json:"slotId"`
	Purpose    string `json:"purpose"`
}

// Create reserves the slot and creates a PENDING booking for the caller.
// Losing the slot race is a 409, and no booking row remains.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errJSON(c, http.StatusUnauthorized, "unauthorized")
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}

	b, err := h.Svc.CreateBooking(c.Request().Context(), uid, uint64(req.FacilityID), uint64(req.SlotID), req.Purpose)
	if err != nil {
		return writeEngineError(c, err)
	}
	logger.InfoLogger.WithFields(map[string]interface{}{
		"booking_id": b.ID,
		"user_id":    uid,
		"slot_id":    b.SlotID,
	}).Info("booking created")
	return c.JSON(http.StatusCreated, b)
}

// ListMine returns the caller's bookings, newest first.
func (h *BookingHandler) ListMine(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errJSON(c, http.StatusUnauthorized, "unauthorized")
	}
	items, err := h.Svc.ListMyBookings(c.Request().Context(), uid)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Cancel cancels the caller's own booking before its slot starts and
// frees the slot, returning the booking in its CANCELED state.
// Cancelling someone else's booking is a 403 even when the id exists.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return errJSON(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := pathID(c, "id")
	if err != nil {
		return writeEngineError(c, err)
	}
	detail, err := h.Svc.CancelBooking(c.Request().Context(), id, uid)
	if err != nil {
		return writeEngineError(c, err)
	}
	logger.InfoLogger.WithFields(map[string]interface{}{
		"booking_id": id,
		"user_id":    uid,
	}).Info("booking canceled")
	return c.JSON(http.StatusOK, detail)
}
