// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types carried on the booking.events queue.
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// BookingEvent is published whenever a booking is admitted or changes
// status.  It carries enough information for downstream consumers to
// log or notify without querying the primary database.  Fields not
// relevant to the event type are left empty.
type BookingEvent struct {
	Type          string `json:"type"`
	BookingID     string `json:"booking_id"`
	UserID        uint64 `json:"user_id"`
	CourtID       uint64 `json:"court_id"`
	CourtName     string `json:"court_name,omitempty"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time,omitempty"`
	EndTime       string `json:"end_time,omitempty"`
	TotalPrice    int64  `json:"total_price,omitempty"`
	ServiceFee    int64  `json:"service_fee,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
	FromStatus    string `json:"from_status,omitempty"`
	ToStatus      string `json:"to_status,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}
