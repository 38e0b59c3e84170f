package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushub/facility-booking/internal/booking"
)

// ReportHandler serves staff usage reports.
type ReportHandler struct {
	Svc *booking.Service
}

func NewReportHandler(svc *booking.Service) *ReportHandler {
	return &ReportHandler{Svc: svc}
}

// Summary returns the point-in-time booking counts grouped by status and
// facility. The snapshot takes no locks, so it may trail concurrent
// writes by a moment.
func (h *ReportHandler) Summary(c echo.Context) error {
	sum, err := h.Svc.Summarize(c.Request().Context())
	if err != nil {
		return writeEngineError(c, err)
	}
	return c.JSON(http.StatusOK, sum)
}
