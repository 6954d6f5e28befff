package repository

import (
	"context"
	"database/sql"

	"github.com/lovepcsy/salon-site/internal/model"
)

// ServiceRepo provides CRUD operations for the 'services' table.
type ServiceRepo struct{ DB *sql.DB }

func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{DB: db} }

// Create inserts a service and returns its ID.
func (r *ServiceRepo) Create(ctx context.Context, title, description string, price float64, durationMinutes uint32) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO services (title, description, price, duration_minutes) VALUES (?,?,?,?)",
		title, description, price, durationMinutes)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// List returns all services, newest first.
func (r *ServiceRepo) List(ctx context.Context) ([]model.Service, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, title, description, price, duration_minutes, created_at FROM services ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Service
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Price, &s.DurationMinutes, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID fetches one service by id.
func (r *ServiceRepo) GetByID(ctx context.Context, id uint64) (model.Service, error) {
	var s model.Service
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, title, description, price, duration_minutes, created_at FROM services WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.Title, &s.Description, &s.Price, &s.DurationMinutes, &s.CreatedAt)
	return s, err
}

// Update overwrites the editable fields of a service.
func (r *ServiceRepo) Update(ctx context.Context, id uint64, title, description string, price float64, durationMinutes uint32) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE services SET title=?, description=?, price=?, duration_minutes=? WHERE id=?",
		title, description, price, durationMinutes, id)
	return err
}

// Delete removes a service unconditionally.  Deleting an id that does not
// exist is not an error; the statement simply affects zero rows.
func (r *ServiceRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM services WHERE id=?", id)
	return err
}
