package booking

import (
	"context"

	"github.com/campushub/facility-booking/internal/model"
)

// Summarize returns a point-in-time snapshot of booking counts grouped by
// status and by facility. It runs outside any engine transaction and
// takes no locks, so it never blocks writers; under concurrent writes the
// snapshot may be slightly stale but TotalCheckedIn is monotonic because
// CHECKED_IN is terminal and bookings are never deleted.
func (s *Service) Summarize(ctx context.Context) (*model.Summary, error) {
	return s.bookings.Summary(ctx)
}
