package booking

import (
	"context"
	"time"

	"github.com/campushub/facility-booking/internal/clock"
	"github.com/campushub/facility-booking/internal/model"
)

// TxRunner executes fn inside a single storage transaction. The
// transaction rides the context; nested calls join the outer one. Either
// every store mutation inside fn commits or none does.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// FacilityStore reads catalog reference data. The engine never writes
// facilities.
type FacilityStore interface {
	List(ctx context.Context) ([]model.Facility, error)
	GetByID(ctx context.Context, id uint64) (*model.Facility, error)
}

// SlotStore owns slot existence and availability. Reserve and Release
// must be atomic per slot: under concurrent Reserve calls on the same
// AVAILABLE slot exactly one succeeds and the rest return
// ErrSlotUnavailable.
type SlotStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Slot, error)
	// ListAvailable returns AVAILABLE slots of a facility ordered by start
	// time. day, when non-empty, is a YYYY-MM-DD calendar-day filter.
	ListAvailable(ctx context.Context, facilityID uint64, day string) ([]model.Slot, error)
	// Reserve flips AVAILABLE→BOOKED.
	Reserve(ctx context.Context, id uint64) error
	// Release flips BOOKED→AVAILABLE; a no-op if already AVAILABLE.
	Release(ctx context.Context, id uint64) error
}

// BookingStore persists bookings. The Mark* methods are status-guarded
// compare-and-swap updates: they return false without mutating anything
// when the booking is not in the required source state, which is what
// serializes concurrent transitions on the same booking.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	GetByToken(ctx context.Context, token string) (*model.Booking, error)
	GetDetailByID(ctx context.Context, id uint64) (*model.BookingDetail, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error)
	ListPending(ctx context.Context) ([]model.BookingDetail, error)
	MarkApproved(ctx context.Context, id uint64, token string) (bool, error)
	MarkRejected(ctx context.Context, id uint64) (bool, error)
	MarkCanceled(ctx context.Context, id uint64) (bool, error)
	MarkCheckedIn(ctx context.Context, id uint64, at time.Time) (bool, error)
	Summary(ctx context.Context) (*model.Summary, error)
}

// CheckinPolicy is the deployment-configurable redemption window for
// check-in tokens. When Enforced, a token may be redeemed from EarlyGrace
// before the slot starts until the slot ends.
type CheckinPolicy struct {
	Enforced   bool
	EarlyGrace time.Duration
}

// Service is the booking lifecycle engine. It receives already-verified
// caller identities from the HTTP boundary; role checks happen there,
// ownership checks happen here.
type Service struct {
	tx         TxRunner
	facilities FacilityStore
	slots      SlotStore
	bookings   BookingStore
	clock      clock.Clock
	policy     CheckinPolicy
}

// NewService wires the engine. All dependencies must be non-nil.
func NewService(tx TxRunner, facilities FacilityStore, slots SlotStore, bookings BookingStore, clk clock.Clock, policy CheckinPolicy) *Service {
	if tx == nil || facilities == nil || slots == nil || bookings == nil || clk == nil {
		panic("nil dependency passed to booking.NewService")
	}
	return &Service{
		tx:         tx,
		facilities: facilities,
		slots:      slots,
		bookings:   bookings,
		clock:      clk,
		policy:     policy,
	}
}

// ListFacilities returns the full catalog.
func (s *Service) ListFacilities(ctx context.Context) ([]model.Facility, error) {
	return s.facilities.List(ctx)
}

// GetFacility returns one facility or ErrFacilityNotFound.
func (s *Service) GetFacility(ctx context.Context, id uint64) (*model.Facility, error) {
	if id == 0 {
		return nil, ErrValidation
	}
	return s.facilities.GetByID(ctx, id)
}

// ListAvailableSlots returns the AVAILABLE slots of a facility ordered by
// start time. day, when non-empty, must be a YYYY-MM-DD date and
// restricts the listing to slots starting on that calendar day.
func (s *Service) ListAvailableSlots(ctx context.Context, facilityID uint64, day string) ([]model.Slot, error) {
	if facilityID == 0 {
		return nil, ErrValidation
	}
	if day != "" {
		if _, err := time.Parse("2006-01-02", day); err != nil {
			return nil, ErrValidation
		}
	}
	// Listing against a missing facility is a 404, not an empty list.
	if _, err := s.facilities.GetByID(ctx, facilityID); err != nil {
		return nil, err
	}
	return s.slots.ListAvailable(ctx, facilityID, day)
}

// CreateBooking reserves the slot and creates a PENDING booking as one
// atomic unit. When the slot race is lost the transaction rolls back and
// no booking row exists; callers see ErrSlotUnavailable.
func (s *Service) CreateBooking(ctx context.Context, userID, facilityID, slotID uint64, purpose string) (*model.Booking, error) {
	if userID == 0 || facilityID == 0 || slotID == 0 {
		return nil, ErrValidation
	}
	var created *model.Booking
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		slot, err := s.slots.GetByID(ctx, slotID)
		if err != nil {
			return err
		}
		// The slot must belong to the facility the caller named.
		if slot.FacilityID != facilityID {
			return ErrSlotNotFound
		}
		if err := s.slots.Reserve(ctx, slotID); err != nil {
			return err
		}
		b := &model.Booking{
			UserID:     userID,
			FacilityID: facilityID,
			SlotID:     slotID,
			Purpose:    purpose,
			Status:     model.StatusPending,
			CreatedAt:  s.clock.Now(),
		}
		if err := s.bookings.Create(ctx, b); err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListMyBookings returns the caller's bookings, newest first.
func (s *Service) ListMyBookings(ctx context.Context, userID uint64) ([]model.BookingDetail, error) {
	if userID == 0 {
		return nil, ErrValidation
	}
	return s.bookings.ListByUser(ctx, userID)
}

// CancelBooking cancels the caller's own PENDING or APPROVED booking
// before its slot starts, releasing the slot in the same transaction,
// and returns the booking in its CANCELED state. Re-cancelling is
// ErrInvalidTransition, not a silent success.
func (s *Service) CancelBooking(ctx context.Context, bookingID, userID uint64) (*model.BookingDetail, error) {
	if bookingID == 0 || userID == 0 {
		return nil, ErrValidation
	}
	var detail *model.BookingDetail
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		b, err := s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.UserID != userID {
			return ErrForbidden
		}
		if b.Status != model.StatusPending && b.Status != model.StatusApproved {
			return ErrInvalidTransition
		}
		slot, err := s.slots.GetByID(ctx, b.SlotID)
		if err != nil {
			return err
		}
		if !s.clock.Now().Before(slot.StartsAt) {
			return ErrTooLate
		}
		ok, err := s.bookings.MarkCanceled(ctx, bookingID)
		if err != nil {
			return err
		}
		if !ok {
			// Lost a concurrent transition race after the read above.
			return ErrInvalidTransition
		}
		if err := s.slots.Release(ctx, b.SlotID); err != nil {
			return err
		}
		detail, err = s.bookings.GetDetailByID(ctx, bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}
