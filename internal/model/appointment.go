package model

import "time"

// Appointment is a booking request captured from the public site, stored
// in the `appointments` table.  ServiceID and ServiceTitle are a
// denormalized snapshot of the chosen service at booking time; they are
// nullable and never validated against the services table.
type Appointment struct {
	ID           uint64    // appointments.id
	ServiceID    *uint64   // appointments.service_id (nullable snapshot)
	ServiceTitle *string   // appointments.service_title (nullable snapshot)
	FullName     string    // appointments.full_name
	Mobile       string    // appointments.mobile
	Email        string    // appointments.email
	Message      string    // appointments.message
	CreatedAt    time.Time // appointments.created_at
}
