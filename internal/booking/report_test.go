package booking

import (
	"context"
	"testing"
	"time"

	"github.com/campushub/facility-booking/internal/clock"
	"github.com/campushub/facility-booking/internal/model"
)

func TestSummarize(t *testing.T) {
	f := newFakeStore()
	seedCatalog(f)
	f.addFacility(model.Facility{ID: 2, Name: "Gym", Category: model.CategorySports, Building: "Rec"})
	f.addSlot(model.Slot{ID: 20, FacilityID: 2, StartsAt: testNow.Add(2 * time.Hour), EndsAt: testNow.Add(3 * time.Hour), Status: model.SlotAvailable})
	f.addSlot(model.Slot{ID: 21, FacilityID: 2, StartsAt: testNow.Add(4 * time.Hour), EndsAt: testNow.Add(5 * time.Hour), Status: model.SlotAvailable})

	svc := newTestService(f, clock.NewFixed(testNow), CheckinPolicy{})
	ctx := context.Background()

	// Lab: one approved-then-checked-in booking.
	b1, err := svc.CreateBooking(ctx, 7, 1, 10, "")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	d1, err := svc.Approve(ctx, b1.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	checkin := newTestService(f, clock.NewFixed(testNow.Add(2*time.Hour)), CheckinPolicy{})
	if _, err := checkin.Checkin(ctx, *d1.QRToken); err != nil {
		t.Fatalf("Checkin: %v", err)
	}

	// Gym: one approved, one rejected.
	b2, err := svc.CreateBooking(ctx, 7, 2, 20, "")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if _, err := svc.Approve(ctx, b2.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	b3, err := svc.CreateBooking(ctx, 7, 2, 21, "")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if _, err := svc.Reject(ctx, b3.ID); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	sum, err := svc.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.TotalBookings != 3 {
		t.Fatalf("TotalBookings = %d, want 3", sum.TotalBookings)
	}
	// Checked-in bookings were approved once, so they stay counted.
	if sum.TotalApproved != 2 {
		t.Fatalf("TotalApproved = %d, want 2", sum.TotalApproved)
	}
	if sum.TotalCheckedIn != 1 {
		t.Fatalf("TotalCheckedIn = %d, want 1", sum.TotalCheckedIn)
	}
	if len(sum.ByFacility) != 2 {
		t.Fatalf("ByFacility has %d rows, want 2", len(sum.ByFacility))
	}
	counts := map[string]uint64{}
	for _, fc := range sum.ByFacility {
		counts[fc.FacilityName] = fc.Count
	}
	// Rejected bookings still count toward facility demand.
	if counts["Chem Lab A"] != 1 || counts["Gym"] != 2 {
		t.Fatalf("facility counts = %v", counts)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	f := newFakeStore()
	svc := newTestService(f, clock.NewFixed(testNow), CheckinPolicy{})

	sum, err := svc.Summarize(context.Background())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.TotalBookings != 0 || sum.TotalApproved != 0 || sum.TotalCheckedIn != 0 {
		t.Fatalf("empty summary has nonzero totals: %+v", sum)
	}
	if len(sum.ByFacility) != 0 {
		t.Fatalf("empty summary has facility rows: %+v", sum.ByFacility)
	}
}
