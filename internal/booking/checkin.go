package booking

import (
	"context"

	"github.com/campushub/facility-booking/internal/model"
)

// Checkin redeems a check-in token exactly once, advancing the booking to
// its terminal CHECKED_IN state and recording the timestamp. A second
// redemption of the same token fails ErrAlreadyCheckedIn, never a second
// success. When the window policy is enforced, redemption is rejected
// with ErrExpired outside [slot start − early grace, slot end].
func (s *Service) Checkin(ctx context.Context, token string) (*model.BookingDetail, error) {
	if token == "" {
		return nil, ErrValidation
	}
	var detail *model.BookingDetail
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		b, err := s.bookings.GetByToken(ctx, token)
		if err != nil {
			return err
		}
		switch b.Status {
		case model.StatusCheckedIn:
			return ErrAlreadyCheckedIn
		case model.StatusApproved:
			// fall through to the window check
		default:
			return ErrInvalidTransition
		}
		slot, err := s.slots.GetByID(ctx, b.SlotID)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		if s.policy.Enforced {
			if now.After(slot.EndsAt) {
				return ErrExpired
			}
			if now.Before(slot.StartsAt.Add(-s.policy.EarlyGrace)) {
				return ErrExpired
			}
		}
		ok, err := s.bookings.MarkCheckedIn(ctx, b.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			// A concurrent redemption won between the read and the update.
			cur, err := s.bookings.GetByID(ctx, b.ID)
			if err != nil {
				return err
			}
			if cur.Status == model.StatusCheckedIn {
				return ErrAlreadyCheckedIn
			}
			return ErrInvalidTransition
		}
		detail, err = s.bookings.GetDetailByID(ctx, b.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}
