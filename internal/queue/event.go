// Package queue defines message payloads exchanged over the message broker.
package queue

// AppointmentBookedEvent is published when a booking request is stored.
// It contains enough information for downstream consumers to log or
// notify staff without querying the primary database.  ServiceID and
// ServiceTitle carry the snapshot taken at booking time and may be zero
// values when the visitor did not pick a service.
type AppointmentBookedEvent struct {
	AppointmentID uint64 `json:"appointment_id"`
	ServiceID     uint64 `json:"service_id,omitempty"`
	ServiceTitle  string `json:"service_title,omitempty"`
	FullName      string `json:"full_name"`
	Mobile        string `json:"mobile"`
	Email         string `json:"email"`
	BookedAt      string `json:"booked_at"`
}
