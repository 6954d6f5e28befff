package repository

import (
	"context"
	"database/sql"

	"github.com/lovepcsy/salon-site/internal/model"
)

// BannerRepo provides operations for the 'banners' table.  The table
// carries a single-active invariant: at most one row may have
// is_active = 1.  Every write that activates a banner clears the flag on
// all rows and sets it on the target inside one transaction, so the
// invariant holds even under concurrent activations.
type BannerRepo struct{ DB *sql.DB }

func NewBannerRepo(db *sql.DB) *BannerRepo { return &BannerRepo{DB: db} }

// List returns all banners, newest first.
func (r *BannerRepo) List(ctx context.Context) ([]model.Banner, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, title, content, image_path, is_active, created_at FROM banners ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Banner
	for rows.Next() {
		var b model.Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.Content, &b.ImagePath, &b.IsActive, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID fetches one banner by id.
func (r *BannerRepo) GetByID(ctx context.Context, id uint64) (model.Banner, error) {
	var b model.Banner
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, title, content, image_path, is_active, created_at FROM banners WHERE id=? LIMIT 1",
		id).Scan(&b.ID, &b.Title, &b.Content, &b.ImagePath, &b.IsActive, &b.CreatedAt)
	return b, err
}

// GetActive returns the currently displayed banner, or sql.ErrNoRows
// when no banner is active.
func (r *BannerRepo) GetActive(ctx context.Context) (model.Banner, error) {
	var b model.Banner
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, title, content, image_path, is_active, created_at FROM banners WHERE is_active=1 ORDER BY id DESC LIMIT 1").
		Scan(&b.ID, &b.Title, &b.Content, &b.ImagePath, &b.IsActive, &b.CreatedAt)
	return b, err
}

// Create inserts a banner and returns its ID.  When makeActive is set
// the insert runs in a transaction that first clears is_active on every
// existing row, preserving the single-active invariant.
func (r *BannerRepo) Create(ctx context.Context, title, content, imagePath string, makeActive bool) (uint64, error) {
	if !makeActive {
		res, err := r.DB.ExecContext(ctx,
			"INSERT INTO banners (title, content, image_path, is_active) VALUES (?,?,?,0)",
			title, content, imagePath)
		if err != nil {
			return 0, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}
		return uint64(id), nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "UPDATE banners SET is_active=0 WHERE is_active=1"); err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO banners (title, content, image_path, is_active) VALUES (?,?,?,1)",
		title, content, imagePath)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Toggle flips the active state of the given banner and returns the new
// state.  Activation clears the flag on all rows and sets the target in
// one transaction; deactivation is a single update.  Returns
// sql.ErrNoRows when the banner does not exist.
func (r *BannerRepo) Toggle(ctx context.Context, id uint64) (bool, error) {
	var active bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT is_active FROM banners WHERE id=? LIMIT 1", id).Scan(&active)
	if err != nil {
		return false, err
	}

	if active {
		_, err := r.DB.ExecContext(ctx, "UPDATE banners SET is_active=0 WHERE id=?", id)
		return false, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "UPDATE banners SET is_active=0 WHERE is_active=1"); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, "UPDATE banners SET is_active=1 WHERE id=?", id); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a banner unconditionally.  The uploaded image file is
// intentionally left on disk; see the known limitations in DESIGN.md.
func (r *BannerRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM banners WHERE id=?", id)
	return err
}
