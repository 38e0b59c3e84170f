// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names. The routing key equals the queue name; everything goes
// through the default exchange.
const (
	ApprovedQueueName  = "booking.approved"
	CheckedInQueueName = "booking.checked_in"
)

// BookingApprovedEvent is published when staff approve a booking. It
// carries enough for downstream consumers to notify the member without
// querying the primary database. The check-in token itself is never
// published.
type BookingApprovedEvent struct {
	EventID      string `json:"event_id"`
	BookingID    uint64 `json:"booking_id"`
	UserID       uint64 `json:"user_id"`
	UserName     string `json:"user_name"`
	UserEmail    string `json:"user_email"`
	FacilityName string `json:"facility_name"`
	Building     string `json:"building"`
	StartsAt     string `json:"starts_at"`
	EndsAt       string `json:"ends_at"`
	ApprovedAt   string `json:"approved_at"`
}

// BookingCheckedInEvent is published when a check-in token is redeemed.
type BookingCheckedInEvent struct {
	EventID      string `json:"event_id"`
	BookingID    uint64 `json:"booking_id"`
	UserID       uint64 `json:"user_id"`
	UserName     string `json:"user_name"`
	FacilityName string `json:"facility_name"`
	Building     string `json:"building"`
	StartsAt     string `json:"starts_at"`
	EndsAt       string `json:"ends_at"`
	CheckedInAt  string `json:"checked_in_at"`
}
