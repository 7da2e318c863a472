package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/courtbook/court-reservation/internal/model"
)

// CourtCatalog is the read side of the court catalog consumed by the
// engine.  Implementations must return ErrCourtNotFound when no court
// exists with the given ID.
type CourtCatalog interface {
	GetCourt(ctx context.Context, id uint64) (*model.Court, error)
}

// Store is the booking persistence interface the engine runs
// against.  Implementations must return the package sentinels for
// the conditions they detect:
//
//	Insert        – ErrConflict when a concurrent active booking
//	                occupying the slot already exists.
//	UpdateStatus  – ErrBookingNotFound when the ID is unknown,
//	                ErrStaleState when the current status no longer
//	                matches expected.
//	GetByID       – ErrBookingNotFound when the ID is unknown.
type Store interface {
	FindActiveByCourtAndDate(ctx context.Context, courtID uint64, date string) ([]model.Booking, error)
	Insert(ctx context.Context, b *model.Booking) error
	UpdateStatus(ctx context.Context, id, expected, next string) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListByUser(ctx context.Context, userID uint64, status string) ([]model.Booking, error)
	ListAll(ctx context.Context, status string) ([]model.Booking, error)
}

// AdmitRequest carries everything needed to decide a new booking.
// The interval endpoints are minutes since midnight; the transport
// layer is responsible for parsing clock strings and payment-method
// shape before calling the engine.
type AdmitRequest struct {
	CourtID       uint64
	UserID        uint64
	Date          string
	StartMin      int
	EndMin        int
	DurationHours float64
	PaymentMethod string
	Notes         string
}

// Engine is the booking admission coordinator.  It validates a
// candidate interval, checks it against active bookings, prices it
// and persists the result, serializing the check-and-insert per
// (court, date) so two racing requests can never both win a slot.
type Engine struct {
	catalog CourtCatalog
	store   Store
	feeRate float64

	mu    sync.Mutex
	slots map[string]*sync.Mutex
}

// New constructs an Engine.  A feeRate of zero falls back to
// DefaultFeeRate.
func New(catalog CourtCatalog, store Store, feeRate float64) *Engine {
	if catalog == nil || store == nil {
		panic("nil dependency passed to booking.New")
	}
	if feeRate == 0 {
		feeRate = DefaultFeeRate
	}
	return &Engine{
		catalog: catalog,
		store:   store,
		feeRate: feeRate,
		slots:   make(map[string]*sync.Mutex),
	}
}

// slotLock returns the mutex guarding admissions for one court on one
// day.  Locks are created on first use and kept for the engine's
// lifetime; the map is bounded by the number of distinct (court, date)
// pairs ever booked through this process.
func (e *Engine) slotLock(courtID uint64, date string) *sync.Mutex {
	key := fmt.Sprintf("%d|%s", courtID, date)
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.slots[key]
	if !ok {
		l = &sync.Mutex{}
		e.slots[key] = l
	}
	return l
}

// Admit decides a new booking request.  On success exactly one
// pending booking has been persisted; on any failure no state is
// visible.  Failure modes, in evaluation order: ErrInvalidInterval,
// ErrCourtNotFound, ErrCourtUnavailable, ErrSlotUnavailable,
// ErrInvalidPricingInput.
func (e *Engine) Admit(ctx context.Context, req AdmitRequest) (*model.Booking, error) {
	iv, err := NewInterval(req.StartMin, req.EndMin)
	if err != nil {
		return nil, err
	}
	// The caller-supplied duration is the pricing source of truth, but
	// it must agree exactly with the interval length.
	if req.DurationHours <= 0 || req.DurationHours*60 != float64(iv.Minutes()) {
		return nil, fmt.Errorf("%w: duration %.2fh does not match interval %s-%s",
			ErrInvalidInterval, req.DurationHours, FormatClock(iv.Start), FormatClock(iv.End))
	}

	court, err := e.catalog.GetCourt(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}
	if !court.IsAvailable {
		return nil, ErrCourtUnavailable
	}

	total, fee, err := Quote(court.HourlyRate, req.DurationHours, e.feeRate)
	if err != nil {
		return nil, err
	}

	// Serialize conflict-check-and-insert per (court, date).  Requests
	// for other courts or other dates proceed in parallel.
	lock := e.slotLock(req.CourtID, req.Date)
	lock.Lock()
	defer lock.Unlock()

	existing, err := e.store.FindActiveByCourtAndDate(ctx, req.CourtID, req.Date)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if iv.Overlaps(Interval{Start: existing[i].StartMin, End: existing[i].EndMin}) {
			return nil, ErrSlotUnavailable
		}
	}

	now := time.Now().UTC()
	b := &model.Booking{
		ID:            uuid.NewString(),
		CourtID:       req.CourtID,
		UserID:        req.UserID,
		Date:          req.Date,
		StartMin:      iv.Start,
		EndMin:        iv.End,
		DurationHours: req.DurationHours,
		TotalPrice:    total,
		ServiceFee:    fee,
		PaymentMethod: req.PaymentMethod,
		Status:        model.StatusPending,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := e.store.Insert(ctx, b); err != nil {
		// A store-level uniqueness violation means another writer
		// claimed the slot between our scan and the insert.
		if errors.Is(err, ErrConflict) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}
	return b, nil
}

// Transition applies a lifecycle status change on behalf of an actor.
// The read-modify-write is guarded by the store's compare-and-set
// update: if the booking's status changed underneath us the store
// reports ErrStaleState, which is surfaced verbatim for the caller to
// re-read and decide.
func (e *Engine) Transition(ctx context.Context, id string, actor Actor, next string) (*model.Booking, error) {
	b, err := e.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	noop, err := checkTransition(actor, b, next)
	if err != nil {
		return nil, err
	}
	if noop {
		return b, nil
	}
	return e.store.UpdateStatus(ctx, id, b.Status, next)
}

// GetByID returns a single booking, enforcing that only its owner or
// an admin may read it.
func (e *Engine) GetByID(ctx context.Context, id string, actor Actor) (*model.Booking, error) {
	b, err := e.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canAccess(actor, b) {
		return nil, ErrNotAuthorized
	}
	return b, nil
}

// ListByUser returns the actor's own bookings, optionally filtered by
// status ("" means all).
func (e *Engine) ListByUser(ctx context.Context, actor Actor, status string) ([]model.Booking, error) {
	return e.store.ListByUser(ctx, actor.UserID, status)
}

// ListAll returns every booking, optionally filtered by status.
// Admin only.
func (e *Engine) ListAll(ctx context.Context, actor Actor, status string) ([]model.Booking, error) {
	if !actor.admin() {
		return nil, ErrNotAuthorized
	}
	return e.store.ListAll(ctx, status)
}
