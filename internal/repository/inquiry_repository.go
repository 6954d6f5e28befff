package repository

import (
	"context"
	"database/sql"

	"github.com/lovepcsy/salon-site/internal/model"
)

// InquiryRepo provides operations for the 'query_data' table, the
// contact form capture.
type InquiryRepo struct{ DB *sql.DB }

func NewInquiryRepo(db *sql.DB) *InquiryRepo { return &InquiryRepo{DB: db} }

// Create inserts a contact form submission and returns its ID.
func (r *InquiryRepo) Create(ctx context.Context, fullName, mobileNo, email, message string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO query_data (full_name, mobile_no, email, message) VALUES (?,?,?,?)",
		fullName, mobileNo, email, message)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// List returns all inquiries, newest first.
func (r *InquiryRepo) List(ctx context.Context) ([]model.Inquiry, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, full_name, mobile_no, email, message, created_at FROM query_data ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Inquiry
	for rows.Next() {
		var q model.Inquiry
		if err := rows.Scan(&q.ID, &q.FullName, &q.MobileNo, &q.Email, &q.Message, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Count returns the total number of inquiries, for the dashboard stats.
func (r *InquiryRepo) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM query_data").Scan(&n)
	return n, err
}
