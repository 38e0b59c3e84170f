package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campushub/facility-booking/internal/booking"
	"github.com/campushub/facility-booking/internal/logger"
	queue_publisher "github.com/campushub/facility-booking/internal/service"
)

// CheckinHandler redeems QR check-in tokens at the facility entrance.
// Routes using it are mounted behind RequireRole(STAFF).
type CheckinHandler struct {
	Svc *booking.Service
}

func NewCheckinHandler(svc *booking.Service) *CheckinHandler {
	return &CheckinHandler{Svc: svc}
}

type checkinReq struct {
	QRToken string `json:"qrToken"`
}

// Checkin redeems the scanned token exactly once. A repeated scan is a
// 409 naming the already-checked-in condition, so the entrance UI can
// show it distinctly from a plain conflict.
func (h *CheckinHandler) Checkin(c echo.Context) error {
	var req checkinReq
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body")
	}
	token := strings.TrimSpace(req.QRToken)
	if token == "" {
		return writeEngineError(c, booking.ErrValidation)
	}

	detail, err := h.Svc.Checkin(c.Request().Context(), token)
	if err != nil {
		return writeEngineError(c, err)
	}
	logger.InfoLogger.WithField("booking_id", detail.ID).Info("booking checked in")
	_ = queue_publisher.PublishBookingCheckedIn(c.Request().Context(), detail)

	return c.JSON(http.StatusOK, echo.Map{
		"booking":     detail,
		"checkedInAt": detail.CheckedInAt,
	})
}
