package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/courtbook/court-reservation/internal/booking"
	"github.com/courtbook/court-reservation/internal/model"
)

// CourtRepo is the read-only view of the court catalog used by the
// booking engine.  Catalog writes belong to a separate service; this
// repository only resolves rates and availability flags.
type CourtRepo struct {
	db *sql.DB
}

// NewCourtRepo returns a CourtRepo bound to the given database.
func NewCourtRepo(db *sql.DB) *CourtRepo { return &CourtRepo{db: db} }

// GetCourt loads one court by ID.  It returns booking.ErrCourtNotFound
// when no such court exists, satisfying the booking.CourtCatalog
// contract.
func (r *CourtRepo) GetCourt(ctx context.Context, id uint64) (*model.Court, error) {
	const q = `SELECT id, name, sport, location, hourly_rate, is_available,
                      description, capacity, created_at, updated_at
               FROM courts WHERE id = ?`
	var c model.Court
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&c.ID, &c.Name, &c.Sport, &c.Location, &c.HourlyRate, &c.IsAvailable,
		&desc, &c.Capacity, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrCourtNotFound
		}
		return nil, err
	}
	if desc.Valid {
		c.Description = desc.String
	}
	return &c, nil
}
