package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lovepcsy/salon-site/internal/model"
	"github.com/lovepcsy/salon-site/internal/utils"
)

// UserRepo provides access to the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a bcrypt-hashed password and returns its ID.
// Avatar may be nil when no file was uploaded at registration.
func (r *UserRepo) Create(ctx context.Context, name, email, password string, avatar *string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password, avatar) VALUES (?,?,?,?)",
		name, email, hash, avatar)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password,avatar,created_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Avatar, &u.CreatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password,avatar,created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Avatar, &u.CreatedAt)
	return u, err
}

// ProfileUpdate carries the optional pieces of a profile change.  Name and
// Email are always written; PasswordHash and Avatar are written only when
// non-nil, so an empty password field or a missing upload leaves the
// stored values untouched.
type ProfileUpdate struct {
	Name         string
	Email        string
	PasswordHash *string
	Avatar       *string
}

// UpdateProfile applies a profile change to the given user.  The SET
// clause is built dynamically so untouched columns keep their values.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, p ProfileUpdate) error {
	set := []string{"name=?", "email=?"}
	args := []interface{}{p.Name, strings.ToLower(strings.TrimSpace(p.Email))}
	if p.PasswordHash != nil {
		set = append(set, "password=?")
		args = append(args, *p.PasswordHash)
	}
	if p.Avatar != nil {
		set = append(set, "avatar=?")
		args = append(args, *p.Avatar)
	}
	args = append(args, id)
	q := "UPDATE users SET " + strings.Join(set, ", ") + " WHERE id=?"
	_, err := r.DB.ExecContext(ctx, q, args...)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrEmailExists
	}
	return err
}

// Count returns the total number of user rows, for the dashboard stats.
func (r *UserRepo) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}
