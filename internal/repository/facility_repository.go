package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campushub/facility-booking/internal/booking"
	"github.com/campushub/facility-booking/internal/model"
)

// FacilityRepo provides read access to the `facilities` table. The
// booking core treats facilities as pre-existing reference data owned by
// the catalog, so this repository exposes no write operations.
type FacilityRepo struct {
	db *sql.DB
}

// NewFacilityRepo returns a FacilityRepo bound to the given database.
func NewFacilityRepo(db *sql.DB) *FacilityRepo { return &FacilityRepo{db: db} }

const facilityColumns = `id, name, category, building, floor, capacity, description, is_active`

// List returns every facility ordered by building then name for stable
// catalog output.
func (r *FacilityRepo) List(ctx context.Context) ([]model.Facility, error) {
	rows, err := q(ctx, r.db).QueryContext(ctx,
		`SELECT `+facilityColumns+` FROM facilities ORDER BY building, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Facility, 0)
	for rows.Next() {
		var f model.Facility
		if err := rows.Scan(&f.ID, &f.Name, &f.Category, &f.Building, &f.Floor,
			&f.Capacity, &f.Description, &f.IsActive); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns one facility, or booking.ErrFacilityNotFound when no
// row exists.
func (r *FacilityRepo) GetByID(ctx context.Context, id uint64) (*model.Facility, error) {
	var f model.Facility
	err := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+facilityColumns+` FROM facilities WHERE id = ?`, id).
		Scan(&f.ID, &f.Name, &f.Category, &f.Building, &f.Floor,
			&f.Capacity, &f.Description, &f.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, booking.ErrFacilityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}
