package model

import "time"

// Court represents a bookable sports court as stored in the `courts`
// table.  The booking engine only ever reads courts: it needs the
// hourly rate for pricing and the availability flag for admission.
// Catalog management happens in a separate service.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the court.
//  Sport       – sport played on the court (e.g. tennis, padel).
//  Location    – human-readable address or venue name.
//  HourlyRate  – rate per hour in integer currency units.
//  IsAvailable – whether the court can currently be booked.
//  Description – optional free-text description.
//  Capacity    – number of players the court accommodates.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Court struct {
	ID          uint64    // courts.id
	Name        string    // courts.name
	Sport       string    // courts.sport
	Location    string    // courts.location
	HourlyRate  int64     // courts.hourly_rate
	IsAvailable bool      // courts.is_available
	Description string    // courts.description
	Capacity    uint32    // courts.capacity
	CreatedAt   time.Time // courts.created_at
	UpdatedAt   time.Time // courts.updated_at
}
