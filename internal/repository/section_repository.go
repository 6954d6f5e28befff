package repository

import (
	"context"
	"database/sql"

	"github.com/lovepcsy/salon-site/internal/model"
)

// SectionRepo provides operations for the 'section_blocks' table.
type SectionRepo struct{ DB *sql.DB }

func NewSectionRepo(db *sql.DB) *SectionRepo { return &SectionRepo{DB: db} }

// Create inserts a section block and returns its ID.
func (r *SectionRepo) Create(ctx context.Context, title, content, image string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO section_blocks (title, content, image) VALUES (?,?,?)",
		title, content, image)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// List returns all section blocks, newest first.
func (r *SectionRepo) List(ctx context.Context) ([]model.SectionBlock, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, title, content, image, created_at FROM section_blocks ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SectionBlock
	for rows.Next() {
		var s model.SectionBlock
		if err := rows.Scan(&s.ID, &s.Title, &s.Content, &s.Image, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Latest returns the most recently created section block, or
// sql.ErrNoRows when the table is empty.  The home page displays only
// this row.
func (r *SectionRepo) Latest(ctx context.Context) (model.SectionBlock, error) {
	var s model.SectionBlock
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, title, content, image, created_at FROM section_blocks ORDER BY created_at DESC LIMIT 1").
		Scan(&s.ID, &s.Title, &s.Content, &s.Image, &s.CreatedAt)
	return s, err
}
