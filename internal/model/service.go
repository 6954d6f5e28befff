package model

import "time"

// Service is a bookable treatment offered by the salon, stored in the
// `services` table.  Appointments reference a service only through a
// denormalized snapshot of its id and title taken at booking time.
type Service struct {
	ID              uint64    // services.id
	Title           string    // services.title
	Description     string    // services.description
	Price           float64   // services.price (DECIMAL(10,2))
	DurationMinutes uint32    // services.duration_minutes
	CreatedAt       time.Time // services.created_at
}
