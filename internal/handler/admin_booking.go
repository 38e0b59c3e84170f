package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushub/facility-booking/internal/booking"
	"github.com/campushub/facility-booking/internal/logger"
	queue_publisher "github.com/campushub/facility-booking/internal/service"
)

// AdminBookingHandler serves the staff review queue. Routes using it are
// mounted behind RequireRole(STAFF).
type AdminBookingHandler struct {
	Svc *booking.Service
}

func NewAdminBookingHandler(svc *booking.Service) *AdminBookingHandler {
	return &AdminBookingHandler{Svc: svc}
}

// ListPending returns every PENDING booking, oldest first, with the
// requester embedded so staff can review without extra lookups.
func (h *AdminBookingHandler) ListPending(c echo.Context) error {
	items, err := h.Svc.ListPending(c.Request().Context())
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Approve transitions a PENDING booking to APPROVED and returns the
// detail including the freshly minted check-in token. The notification
// event goes out only after the transaction committed; a broker outage
// never undoes an approval.
func (h *AdminBookingHandler) Approve(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeEngineError(c, err)
	}
	detail, err := h.Svc.Approve(c.Request().Context(), id)
	if err != nil {
		return writeEngineError(c, err)
	}
	logger.InfoLogger.WithField("booking_id", id).Info("booking approved")
	_ = queue_publisher.PublishBookingApproved(c.Request().Context(), detail)
	return c.JSON(http.StatusOK, detail)
}

// Reject transitions a PENDING booking to REJECTED and frees its slot.
func (h *AdminBookingHandler) Reject(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeEngineError(c, err)
	}
	detail, err := h.Svc.Reject(c.Request().Context(), id)
	if err != nil {
		return writeEngineError(c, err)
	}
	logger.InfoLogger.WithField("booking_id", id).Info("booking rejected")
	return c.JSON(http.StatusOK, detail)
}
