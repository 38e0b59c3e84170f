package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushub/facility-booking/internal/booking"
)

// FacilityHandler serves the public facility and slot catalog.
type FacilityHandler struct {
	Svc *booking.Service
}

func NewFacilityHandler(svc *booking.Service) *FacilityHandler {
	return &FacilityHandler{Svc: svc}
}

// List returns every facility.
func (h *FacilityHandler) List(c echo.Context) error {
	facilities, err := h.Svc.ListFacilities(c.Request().Context())
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, facilities)
}

// Get returns one facility by id.
func (h *FacilityHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeEngineError(c, err)
	}
	f, err := h.Svc.GetFacility(c.Request().Context(), id)
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

// ListSlots returns the facility's AVAILABLE slots, optionally filtered
// by the ?date=YYYY-MM-DD query parameter.
func (h *FacilityHandler) ListSlots(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeEngineError(c, err)
	}
	slots, err := h.Svc.ListAvailableSlots(c.Request().Context(), id, c.QueryParam("date"))
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, slots)
}
