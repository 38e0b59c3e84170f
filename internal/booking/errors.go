// Package booking implements the booking lifecycle engine: slot
// reservation, the booking state machine, staff approval, single-use
// check-in tokens and usage aggregation. Storage is abstracted behind
// small store interfaces so the engine can be exercised without a
// database.
package booking

import "errors"

// Caller-visible failure modes. Every rejected operation returns one of
// these so the HTTP layer can map it to a precise status code; none of
// them is process-fatal.
var (
	// ErrValidation signals malformed input such as a zero id or an
	// unparsable date filter. Maps to 400.
	ErrValidation = errors.New("invalid input")

	// ErrFacilityNotFound, ErrSlotNotFound, ErrBookingNotFound and
	// ErrTokenNotFound report an absent referenced entity. Map to 404.
	ErrFacilityNotFound = errors.New("facility not found")
	ErrSlotNotFound     = errors.New("slot not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrTokenNotFound    = errors.New("unknown check-in token")

	// ErrSlotUnavailable is returned when the caller lost the race for a
	// slot: it exists but is not AVAILABLE. Maps to 409.
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrInvalidTransition reports a state-machine violation, e.g.
	// approving a booking that is not PENDING. Maps to 409.
	ErrInvalidTransition = errors.New("invalid booking state transition")

	// ErrAlreadyCheckedIn is the informative special case of a repeated
	// check-in; callers must be able to distinguish it from success.
	ErrAlreadyCheckedIn = errors.New("booking already checked in")

	// ErrForbidden reports an ownership mismatch, such as cancelling
	// someone else's booking. Maps to 403.
	ErrForbidden = errors.New("forbidden")

	// ErrTooLate rejects a cancellation whose slot has already started.
	// Maps to 410.
	ErrTooLate = errors.New("slot already started")

	// ErrExpired rejects a check-in outside the configured redemption
	// window. Maps to 410.
	ErrExpired = errors.New("check-in window closed")
)
