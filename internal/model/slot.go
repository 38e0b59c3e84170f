package model

import "time"

// Slot availability states. A slot is BOOKED exactly while a booking in a
// non-terminal-cancelled state references it; it returns to AVAILABLE when
// that booking is cancelled or rejected.
const (
	SlotAvailable = "AVAILABLE"
	SlotBooked    = "BOOKED"
)

// Slot represents a row in the `slots` table: a fixed, non-overlapping time
// interval attached to one facility, the unit of reservation. Slots are
// created as reference data; the core only flips their status.
//
// Fields:
//  ID         – primary key identifier.
//  FacilityID – owning facility.
//  StartsAt   – slot start (UTC), strictly before EndsAt.
//  EndsAt     – slot end (UTC).
//  Status     – SlotAvailable or SlotBooked.
type Slot struct {
	ID         uint64    `json:"id"`        // slots.id
	FacilityID uint64    `json:"-"`         // slots.facility_id
	StartsAt   time.Time `json:"startTime"` // slots.starts_at
	EndsAt     time.Time `json:"endTime"`   // slots.ends_at
	Status     string    `json:"status"`    // slots.status
}
