package model

import "time"

// Booking lifecycle states. PENDING is the only initial state. REJECTED,
// CANCELED and CHECKED_IN are terminal; the legal transitions are
// PENDING→APPROVED/REJECTED/CANCELED and APPROVED→CHECKED_IN/CANCELED.
const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCanceled  = "CANCELED"
	StatusCheckedIn = "CHECKED_IN"
)

// Booking records a member's request to occupy a single slot. Bookings are
// never deleted; cancellation, rejection and check-in are status changes so
// that historical reporting keeps seeing them.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – requester who created the booking.
//  FacilityID  – facility the slot belongs to.
//  SlotID      – reserved slot; exactly one per booking.
//  Purpose     – optional free-text purpose supplied at creation.
//  Status      – one of the Status* constants.
//  QRToken     – single-use check-in token, set at approval (nullable).
//  CreatedAt   – creation timestamp.
//  CheckedInAt – when the booking was checked in (nullable).
type Booking struct {
	ID          uint64     `json:"id"`                    // bookings.id
	UserID      uint64     `json:"userId"`                // bookings.user_id
	FacilityID  uint64     `json:"facilityId"`            // bookings.facility_id
	SlotID      uint64     `json:"slotId"`                // bookings.slot_id
	Purpose     string     `json:"purpose,omitempty"`     // bookings.purpose
	Status      string     `json:"status"`                // bookings.status
	QRToken     *string    `json:"qrToken,omitempty"`     // bookings.qr_token (nullable)
	CreatedAt   time.Time  `json:"createdAt"`             // bookings.created_at
	CheckedInAt *time.Time `json:"checkedInAt,omitempty"` // bookings.checked_in_at (nullable)
}

// BookingUser is the requester as embedded in booking detail payloads
// returned to staff views.
type BookingUser struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BookingFacility is the facility summary embedded in booking detail
// payloads.
type BookingFacility struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Category string `json:"type"`
	Building string `json:"building"`
}

// BookingSlot is the slot summary embedded in booking detail payloads.
type BookingSlot struct {
	ID        uint64    `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// BookingDetail is a booking joined with its facility, slot and (for staff
// views) requester. It is the shape the client renders in booking lists,
// the pending review queue and the check-in confirmation.
type BookingDetail struct {
	ID          uint64          `json:"id"`
	Purpose     string          `json:"purpose,omitempty"`
	Status      string          `json:"status"`
	QRToken     *string         `json:"qrToken,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	CheckedInAt *time.Time      `json:"checkedInAt,omitempty"`
	User        *BookingUser    `json:"user,omitempty"`
	Facility    BookingFacility `json:"facility"`
	Slot        BookingSlot     `json:"slot"`
}

// FacilityCount is one row of the usage summary: how many bookings ever
// targeted the named facility.
type FacilityCount struct {
	FacilityName string `json:"facilityName"`
	Count        uint64 `json:"count"`
}

// Summary is the point-in-time aggregate served at /reports/summary.
// TotalCheckedIn only ever grows because CHECKED_IN is terminal and
// bookings are never deleted.
type Summary struct {
	TotalBookings  uint64          `json:"totalBookings"`
	TotalApproved  uint64          `json:"totalApproved"`
	TotalCheckedIn uint64          `json:"totalCheckedIn"`
	ByFacility     []FacilityCount `json:"byFacility"`
}
