package model

import "time"

// Booking statuses.  A booking is created as "pending" and moves
// through the lifecycle via explicit status-change requests only.
// "completed" and "cancelled" are terminal; a booking is never
// deleted, only moved into one of those states.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Payment methods accepted at booking time.  The method is recorded
// as an attribute only; settlement happens outside this service.
const (
	PaymentCard         = "card"
	PaymentBankTransfer = "bank-transfer"
	PaymentMobileWallet = "mobile-wallet"
)

// Booking records a user's reservation of a court for a time slot on
// a given date.  The slot is a half-open interval [StartMin, EndMin)
// expressed in minutes since midnight, so back-to-back bookings that
// share a boundary do not collide.  Price fields are computed once at
// creation and never recomputed, even if the court's rate changes
// later.
//
// Fields:
//  ID            – opaque UUID assigned at creation.
//  CourtID       – court being reserved; immutable.
//  UserID        – user who made the booking; immutable.
//  Date          – calendar date (YYYY-MM-DD, no time-of-day); immutable.
//  StartMin      – slot start, minutes since midnight (inclusive).
//  EndMin        – slot end, minutes since midnight (exclusive).
//  DurationHours – booked duration in hours, as supplied by the caller.
//  TotalPrice    – total price in integer currency units.
//  ServiceFee    – service fee in integer currency units.
//  PaymentMethod – one of the Payment* constants.
//  Status        – one of the Status* constants; mutated only through
//                  the lifecycle state machine.
//  Notes         – optional free text.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Booking struct {
	ID            string    // bookings.id
	CourtID       uint64    // bookings.court_id
	UserID        uint64    // bookings.user_id
	Date          string    // bookings.date
	StartMin      int       // bookings.start_min
	EndMin        int       // bookings.end_min
	DurationHours float64   // bookings.duration_hours
	TotalPrice    int64     // bookings.total_price
	ServiceFee    int64     // bookings.service_fee
	PaymentMethod string    // bookings.payment_method
	Status        string    // bookings.status
	Notes         string    // bookings.notes
	CreatedAt     time.Time // bookings.created_at
	UpdatedAt     time.Time // bookings.updated_at
}

// ValidPaymentMethod reports whether s is one of the accepted payment
// method constants.
func ValidPaymentMethod(s string) bool {
	switch s {
	case PaymentCard, PaymentBankTransfer, PaymentMobileWallet:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the booking status constants.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// TerminalStatus reports whether s is a terminal lifecycle state.
func TerminalStatus(s string) bool {
	return s == StatusCompleted || s == StatusCancelled
}
