package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/campushub/facility-booking/internal/booking"
	"github.com/campushub/facility-booking/internal/model"
)

// BookingRepo persists bookings. All state transitions are expressed as
// single-row UPDATEs guarded by the required source status, so two
// concurrent transitions on the same booking can never both apply: the
// row CAS admits one and reports zero affected rows to the other.
// Bookings are never deleted; terminal states stay queryable for
// reporting.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create inserts a new booking row and populates the generated ID on the
// provided record. It is expected to run inside the transaction that
// reserved the slot.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	res, err := q(ctx, r.db).ExecContext(ctx,
		`INSERT INTO bookings (user_id, facility_id, slot_id, purpose, status, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		b.UserID, b.FacilityID, b.SlotID, nullString(b.Purpose), b.Status, b.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

const bookingColumns = `id, user_id, facility_id, slot_id, purpose, status, qr_token, created_at, checked_in_at`

// GetByID returns one booking, or booking.ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	b, err := r.scanOne(q(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, booking.ErrBookingNotFound
	}
	return b, err
}

// GetByToken looks a booking up by its check-in token. Unknown tokens
// are booking.ErrTokenNotFound.
func (r *BookingRepo) GetByToken(ctx context.Context, token string) (*model.Booking, error) {
	b, err := r.scanOne(q(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE qr_token = ?`, token))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, booking.ErrTokenNotFound
	}
	return b, err
}

func (r *BookingRepo) scanOne(row *sql.Row) (*model.Booking, error) {
	var b model.Booking
	var purpose, qrToken sql.NullString
	var checkedInAt sql.NullTime
	err := row.Scan(&b.ID, &b.UserID, &b.FacilityID, &b.SlotID, &purpose,
		&b.Status, &qrToken, &b.CreatedAt, &checkedInAt)
	if err != nil {
		return nil, err
	}
	b.Purpose = purpose.String
	if qrToken.Valid {
		t := qrToken.String
		b.QRToken = &t
	}
	if checkedInAt.Valid {
		at := checkedInAt.Time
		b.CheckedInAt = &at
	}
	return &b, nil
}

const bookingDetailQuery = `SELECT b.id, b.purpose, b.status, b.qr_token, b.created_at, b.checked_in_at,
              u.id, u.name, u.email,
              f.id, f.name, f.category, f.building,
              s.id, s.starts_at, s.ends_at
       FROM bookings b
       JOIN users u ON u.id = b.user_id
       JOIN facilities f ON f.id = b.facility_id
       JOIN slots s ON s.id = b.slot_id`

func scanDetail(rows interface{ Scan(...any) error }) (*model.BookingDetail, error) {
	var d model.BookingDetail
	var u model.BookingUser
	var purpose, qrToken sql.NullString
	var checkedInAt sql.NullTime
	err := rows.Scan(&d.ID, &purpose, &d.Status, &qrToken, &d.CreatedAt, &checkedInAt,
		&u.ID, &u.Name, &u.Email,
		&d.Facility.ID, &d.Facility.Name, &d.Facility.Category, &d.Facility.Building,
		&d.Slot.ID, &d.Slot.StartTime, &d.Slot.EndTime)
	if err != nil {
		return nil, err
	}
	d.Purpose = purpose.String
	if qrToken.Valid {
		t := qrToken.String
		d.QRToken = &t
	}
	if checkedInAt.Valid {
		at := checkedInAt.Time
		d.CheckedInAt = &at
	}
	d.User = &u
	return &d, nil
}

// GetDetailByID returns a booking joined with its requester, facility
// and slot, or booking.ErrBookingNotFound.
func (r *BookingRepo) GetDetailByID(ctx context.Context, id uint64) (*model.BookingDetail, error) {
	d, err := scanDetail(q(ctx, r.db).QueryRowContext(ctx, bookingDetailQuery+` WHERE b.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, booking.ErrBookingNotFound
	}
	return d, err
}

// ListByUser returns the user's bookings newest first. The requester
// embed is dropped since the caller is the requester.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error) {
	return r.listDetails(ctx, bookingDetailQuery+` WHERE b.user_id = ? ORDER BY b.created_at DESC`, false, userID)
}

// ListPending returns all PENDING bookings ordered by creation time
// ascending so the review queue is first-come-first-served.
func (r *BookingRepo) ListPending(ctx context.Context) ([]model.BookingDetail, error) {
	return r.listDetails(ctx, bookingDetailQuery+` WHERE b.status = ? ORDER BY b.created_at ASC`, true, model.StatusPending)
}

func (r *BookingRepo) listDetails(ctx context.Context, query string, withUser bool, args ...any) ([]model.BookingDetail, error) {
	rows, err := q(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.BookingDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		if !withUser {
			d.User = nil
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkApproved sets PENDING→APPROVED and attaches the freshly minted
// check-in token. Returns false when the booking was not PENDING.
func (r *BookingRepo) MarkApproved(ctx context.Context, id uint64, token string) (bool, error) {
	return r.guardedUpdate(ctx,
		`UPDATE bookings SET status = ?, qr_token = ? WHERE id = ? AND status = ?`,
		model.StatusApproved, token, id, model.StatusPending)
}

// MarkRejected sets PENDING→REJECTED. Returns false when the booking was
// not PENDING.
func (r *BookingRepo) MarkRejected(ctx context.Context, id uint64) (bool, error) {
	return r.guardedUpdate(ctx,
		`UPDATE bookings SET status = ? WHERE id = ? AND status = ?`,
		model.StatusRejected, id, model.StatusPending)
}

// MarkCanceled sets PENDING/APPROVED→CANCELED. Returns false when the
// booking was already in a terminal state.
func (r *BookingRepo) MarkCanceled(ctx context.Context, id uint64) (bool, error) {
	return r.guardedUpdate(ctx,
		`UPDATE bookings SET status = ? WHERE id = ? AND status IN (?, ?)`,
		model.StatusCanceled, id, model.StatusPending, model.StatusApproved)
}

// MarkCheckedIn sets APPROVED→CHECKED_IN and records the redemption
// timestamp. Returns false when the booking was not APPROVED, which is
// how a second concurrent redemption loses.
func (r *BookingRepo) MarkCheckedIn(ctx context.Context, id uint64, at time.Time) (bool, error) {
	return r.guardedUpdate(ctx,
		`UPDATE bookings SET status = ?, checked_in_at = ? WHERE id = ? AND status = ?`,
		model.StatusCheckedIn, at, id, model.StatusApproved)
}

func (r *BookingRepo) guardedUpdate(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := q(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Summary counts bookings by status and by facility in two plain
// SELECTs. No transaction and no locks: writers are never blocked, and
// the checked-in count is monotonic because CHECKED_IN is terminal.
func (r *BookingRepo) Summary(ctx context.Context) (*model.Summary, error) {
	var sum model.Summary
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
                COALESCE(SUM(status IN (?, ?)), 0),
                COALESCE(SUM(status = ?), 0)
         FROM bookings`,
		model.StatusApproved, model.StatusCheckedIn, model.StatusCheckedIn).
		Scan(&sum.TotalBookings, &sum.TotalApproved, &sum.TotalCheckedIn)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT f.name, COUNT(*)
         FROM bookings b
         JOIN facilities f ON f.id = b.facility_id
         GROUP BY f.id, f.name
         ORDER BY COUNT(*) DESC, f.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sum.ByFacility = make([]model.FacilityCount, 0)
	for rows.Next() {
		var fc model.FacilityCount
		if err := rows.Scan(&fc.FacilityName, &fc.Count); err != nil {
			return nil, err
		}
		sum.ByFacility = append(sum.ByFacility, fc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &sum, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
