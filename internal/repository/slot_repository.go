package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campushub/facility-booking/internal/booking"
	"github.com/campushub/facility-booking/internal/model"
)

// SlotRepo owns the availability state of the `slots` table. Reserve and
// Release are single-row status-guarded UPDATEs: the WHERE clause on the
// current status is the serialization point, so no read-then-write race
// can double-book a slot.
type SlotRepo struct {
	db *sql.DB
}

// NewSlotRepo returns a SlotRepo bound to the given database.
func NewSlotRepo(db *sql.DB) *SlotRepo { return &SlotRepo{db: db} }

// GetByID returns one slot, or booking.ErrSlotNotFound when no row
// exists. Timestamps are UTC (the DSN forces loc=UTC).
func (r *SlotRepo) GetByID(ctx context.Context, id uint64) (*model.Slot, error) {
	var s model.Slot
	err := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT id, facility_id, starts_at, ends_at, status FROM slots WHERE id = ?`, id).
		Scan(&s.ID, &s.FacilityID, &s.StartsAt, &s.EndsAt, &s.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, booking.ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListAvailable returns the AVAILABLE slots of a facility ordered by
// start time. day, when non-empty, is a YYYY-MM-DD string restricting
// the listing to slots starting on that calendar day.
func (r *SlotRepo) ListAvailable(ctx context.Context, facilityID uint64, day string) ([]model.Slot, error) {
	query := `SELECT id, facility_id, starts_at, ends_at, status
              FROM slots
              WHERE facility_id = ? AND status = ?`
	args := []any{facilityID, model.SlotAvailable}
	if day != "" {
		query += ` AND DATE(starts_at) = ?`
		args = append(args, day)
	}
	query += ` ORDER BY starts_at`
	rows, err := q(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Slot, 0)
	for rows.Next() {
		var s model.Slot
		if err := rows.Scan(&s.ID, &s.FacilityID, &s.StartsAt, &s.EndsAt, &s.Status); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Reserve atomically transitions a slot AVAILABLE→BOOKED. It returns
// booking.ErrSlotUnavailable when the slot exists but is not AVAILABLE
// (the caller lost the race) and booking.ErrSlotNotFound when it does
// not exist. Under concurrent calls on the same slot the row update lets
// exactly one through.
func (r *SlotRepo) Reserve(ctx context.Context, id uint64) error {
	res, err := q(ctx, r.db).ExecContext(ctx,
		`UPDATE slots SET status = ? WHERE id = ? AND status = ?`,
		model.SlotBooked, id, model.SlotAvailable)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish a lost race from a missing slot.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return booking.ErrSlotUnavailable
	}
	return nil
}

// Release transitions a slot BOOKED→AVAILABLE. Releasing an already
// AVAILABLE slot is a no-op; a missing slot is booking.ErrSlotNotFound.
func (r *SlotRepo) Release(ctx context.Context, id uint64) error {
	res, err := q(ctx, r.db).ExecContext(ctx,
		`UPDATE slots SET status = ? WHERE id = ? AND status = ?`,
		model.SlotAvailable, id, model.SlotBooked)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Idempotent when the slot exists; only absence is an error.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
