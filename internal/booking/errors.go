// Package booking implements the admission engine for court
// reservations: interval validation, pricing, conflict detection and
// the reservation lifecycle.  The package owns the error taxonomy
// below; storage and transport layers translate to and from these
// sentinels so that every business-rule rejection stays a distinct,
// named condition.  For example, a slot conflict must surface as
// ErrSlotUnavailable and never be collapsed into a generic failure,
// because the client needs to distinguish "pick another time" from
// "try again later".
package booking

import "errors"

// ErrInvalidInterval is returned when a requested time interval is
// malformed: end not after start, an endpoint outside the bookable
// day, or a duration that does not match the interval length.
var ErrInvalidInterval = errors.New("invalid interval")

// ErrInvalidPricingInput is returned when a price is requested for a
// non-positive hourly rate or duration.
var ErrInvalidPricingInput = errors.New("invalid pricing input")

// ErrCourtNotFound is returned when the referenced court does not
// exist in the catalog.
var ErrCourtNotFound = errors.New("court not found")

// ErrCourtUnavailable is returned when the court exists but is
// flagged as not bookable.
var ErrCourtUnavailable = errors.New("court unavailable")

// ErrSlotUnavailable is returned when the requested interval overlaps
// an active (pending or confirmed) booking for the same court and date.
var ErrSlotUnavailable = errors.New("slot unavailable")

// ErrNotAuthorized is returned when the caller is neither the owner
// of the booking nor an admin, or when an owner attempts an
// admin-only transition.
var ErrNotAuthorized = errors.New("not authorized")

// ErrInvalidTransition is returned when a status change is not
// permitted by the lifecycle state machine, including any attempt to
// leave a terminal state.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrStaleState is returned when a status change loses a race: the
// booking's status no longer matches the value the transition was
// computed against.  The caller may re-read and decide whether to
// retry; the engine never retries on its own.
var ErrStaleState = errors.New("stale booking state")

// ErrBookingNotFound is returned when no booking exists with the
// requested ID.
var ErrBookingNotFound = errors.New("booking not found")

// ErrConflict is the store-level signal that an insert collided with
// a concurrent active booking.  The admission path maps it to
// ErrSlotUnavailable before it reaches a caller.
var ErrConflict = errors.New("conflicting booking")
