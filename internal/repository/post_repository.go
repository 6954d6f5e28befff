package repository

import (
	"context"
	"database/sql"

	"github.com/lovepcsy/salon-site/internal/model"
)

// PostRepo provides CRUD operations for the 'posts' table.  Slugs are
// free text; lookups take the first matching row.
type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

// Create inserts a post and returns its ID.  Image is the stored
// filename and may be nil when no file was uploaded.
func (r *PostRepo) Create(ctx context.Context, title, slug, category string, image *string, content string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO posts (title, slug, category, image, content) VALUES (?,?,?,?,?)",
		title, slug, category, image, content)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// List returns all posts, newest first.
func (r *PostRepo) List(ctx context.Context) ([]model.Post, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, title, slug, category, image, content, created_at FROM posts ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Category, &p.Image, &p.Content, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID fetches one post by id.
func (r *PostRepo) GetByID(ctx context.Context, id uint64) (model.Post, error) {
	var p model.Post
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, title, slug, category, image, content, created_at FROM posts WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.Title, &p.Slug, &p.Category, &p.Image, &p.Content, &p.CreatedAt)
	return p, err
}

// GetBySlug fetches the first post with the given slug.
func (r *PostRepo) GetBySlug(ctx context.Context, slug string) (model.Post, error) {
	var p model.Post
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, title, slug, category, image, content, created_at FROM posts WHERE slug=? LIMIT 1",
		slug).Scan(&p.ID, &p.Title, &p.Slug, &p.Category, &p.Image, &p.Content, &p.CreatedAt)
	return p, err
}

// Update overwrites the editable fields of a post.  Callers pass the
// previously stored image filename when the edit form supplied no new
// file, so the image column is preserved across image-less edits.
func (r *PostRepo) Update(ctx context.Context, id uint64, title, slug, category string, image *string, content string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE posts SET title=?, slug=?, category=?, image=?, content=? WHERE id=?",
		title, slug, category, image, content, id)
	return err
}

// Delete removes a post unconditionally.
func (r *PostRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM posts WHERE id=?", id)
	return err
}
