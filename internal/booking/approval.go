package booking

import (
	"context"

	"github.com/campushub/facility-booking/internal/model"
)

// ListPending returns every PENDING booking ordered by creation time
// ascending, so staff review requests first-come-first-served.
func (s *Service) ListPending(ctx context.Context) ([]model.BookingDetail, error) {
	return s.bookings.ListPending(ctx)
}

// Approve transitions a PENDING booking to APPROVED and mints its
// single-use check-in token. When two staff race on the same booking the
// status-guarded update lets exactly one through; the loser sees
// ErrInvalidTransition.
func (s *Service) Approve(ctx context.Context, bookingID uint64) (*model.BookingDetail, error) {
	if bookingID == 0 {
		return nil, ErrValidation
	}
	token, err := newCheckinToken()
	if err != nil {
		return nil, err
	}
	var detail *model.BookingDetail
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
			return err
		}
		ok, err := s.bookings.MarkApproved(ctx, bookingID, token)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidTransition
		}
		detail, err = s.bookings.GetDetailByID(ctx, bookingID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// Reject transitions a PENDING booking to REJECTED and releases its slot
// in the same transaction. No token is minted.
func (s *Service) Reject(ctx context.Context, bookingID uint64) (*model.BookingDetail, error) {
	if bookingID == 0 {
		return nil, ErrValidation
	}
	var detail *model.BookingDetail
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		b, err := s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		ok, err := s.bookings.MarkRejected(ctx, bookingID)
		if err != nil {
			return err
		}
		if !ok {
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
