package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/courtbook/court-reservation/internal/booking"
	"github.com/courtbook/court-reservation/internal/model"
)

// dateLayout is how calendar dates travel between the model (plain
// YYYY-MM-DD strings) and the DATE column, which the driver scans as
// time.Time because the DSN sets parseTime=true.
const dateLayout = "2006-01-02"

// bookingColumns is the shared SELECT list for scanBooking.
const bookingColumns = `id, court_id, user_id, date, start_min, end_min,
       duration_hours, total_price, service_fee, payment_method, status,
       notes, created_at, updated_at`

// BookingRepo persists bookings in the `bookings` table.  It
// implements booking.Store: insertions are conditional on the slot
// still being free, and status updates are compare-and-set on the
// expected current status.  All timestamps are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// scanBooking reads one row in bookingColumns order.
func scanBooking(sc interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	var date time.Time
	var notes sql.NullString
	if err := sc.Scan(
		&b.ID, &b.CourtID, &b.UserID, &date, &b.StartMin, &b.EndMin,
		&b.DurationHours, &b.TotalPrice, &b.ServiceFee, &b.PaymentMethod,
		&b.Status, &notes, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.Date = date.UTC().Format(dateLayout)
	if notes.Valid {
		b.Notes = notes.String
	}
	return &b, nil
}

// FindActiveByCourtAndDate returns every pending or confirmed booking
// for the court on the given date, ordered by start time.  Completed
// and cancelled bookings do not count for conflict purposes, so they
// are filtered out here.
func (r *BookingRepo) FindActiveByCourtAndDate(ctx context.Context, courtID uint64, date string) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + `
               FROM bookings
               WHERE court_id = ? AND date = ? AND status IN (?, ?)
               ORDER BY start_min`
	rows, err := r.db.QueryContext(ctx, q, courtID, date, model.StatusPending, model.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// Insert persists a new booking, but only if no active booking still
// occupies an overlapping slot.  The existence check and the insert
// run in one transaction with the candidate range locked (FOR
// UPDATE), so two processes racing for the same slot cannot both
// commit; the loser gets booking.ErrConflict.
func (r *BookingRepo) Insert(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	const check = `SELECT COUNT(*)
                   FROM bookings
                   WHERE court_id = ? AND date = ? AND status IN (?, ?)
                     AND start_min < ? AND ? < end_min
                   FOR UPDATE`
	var n int
	if err := tx.QueryRowContext(ctx, check,
		b.CourtID, b.Date, model.StatusPending, model.StatusConfirmed,
		b.EndMin, b.StartMin,
	).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return booking.ErrConflict
	}
	const ins = `INSERT INTO bookings
        (id, court_id, user_id, date, start_min, end_min, duration_hours,
         total_price, service_fee, payment_method, status, notes,
         created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, ins,
		b.ID, b.CourtID, b.UserID, b.Date, b.StartMin, b.EndMin,
		b.DurationHours, b.TotalPrice, b.ServiceFee, b.PaymentMethod,
		b.Status, b.Notes, b.CreatedAt, b.UpdatedAt,
	); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// UpdateStatus moves a booking to a new status if and only if its
// current status still matches expected.  A zero-row update is
// disambiguated with a follow-up read: booking.ErrBookingNotFound
// when the ID is unknown, booking.ErrStaleState when a concurrent
// transition got there first.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id, expected, next string) (*model.Booking, error) {
	const q = `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, next, time.Now().UTC(), id, expected)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, booking.ErrStaleState
	}
	return r.GetByID(ctx, id)
}

// GetByID returns a single booking or booking.ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListByUser returns a user's bookings, newest date first.  An empty
// status lists all of them.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64, status string) ([]model.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ?`
	args := []any{userID}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY date DESC, start_min DESC`
	return r.list(ctx, q, args...)
}

// ListAll returns every booking, newest date first, optionally
// filtered by status.  Authorization is the engine's concern.
func (r *BookingRepo) ListAll(ctx context.Context, status string) ([]model.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings`
	args := []any{}
	if status != "" {
		q += ` WHERE status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY date DESC, start_min DESC`
	return r.list(ctx, q, args...)
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}
