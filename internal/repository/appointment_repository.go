package repository

import (
	"context"
	"database/sql"

	"github.com/lovepcsy/salon-site/internal/model"
)

// AppointmentRepo provides operations for the 'appointments' table.
type AppointmentRepo struct{ DB *sql.DB }

func NewAppointmentRepo(db *sql.DB) *AppointmentRepo { return &AppointmentRepo{DB: db} }

// Create inserts a booking and populates the generated ID on the record.
// The service id/title snapshot may be nil when the visitor did not pick
// a service; neither is validated against the services table.
func (r *AppointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO appointments (service_id, service_title, full_name, mobile, email, message) VALUES (?,?,?,?,?,?)",
		a.ServiceID, a.ServiceTitle, a.FullName, a.Mobile, a.Email, a.Message)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// List returns all bookings, newest first.
func (r *AppointmentRepo) List(ctx context.Context) ([]model.Appointment, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, service_id, service_title, full_name, mobile, email, message, created_at FROM appointments ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.ServiceID, &a.ServiceTitle, &a.FullName, &a.Mobile, &a.Email, &a.Message, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
