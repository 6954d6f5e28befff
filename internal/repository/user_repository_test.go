package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateNormalizesEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users (name, email, password, avatar) VALUES (?,?,?,?)").
		WithArgs("Jane", "jane@example.com", sqlmock.AnyArg(), nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	id, err := repo.Create(context.Background(), "Jane", "  Jane@Example.COM ", "secret123", nil, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users (name, email, password, avatar) VALUES (?,?,?,?)").
		WithArgs("Jane", "jane@example.com", sqlmock.AnyArg(), nil).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'jane@example.com' for key 'users.email'"))

	_, err := repo.Create(context.Background(), "Jane", "jane@example.com", "secret123", nil, 4)
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id,name,email,password,avatar,created_at FROM users WHERE email=? LIMIT 1").
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "avatar", "created_at"}).
			AddRow(1, "Jane", "jane@example.com", "$2a$04$hash", nil, now))

	u, err := repo.GetByEmail(context.Background(), " Jane@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), u.ID)
	assert.Nil(t, u.Avatar)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The SET clause only carries password and avatar when the form supplied
// them, so untouched columns survive a profile edit.
func TestUserUpdateProfileDynamicSet(t *testing.T) {
	t.Run("name and email only", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepo(db)

		mock.ExpectExec("UPDATE users SET name=?, email=? WHERE id=?").
			WithArgs("Jane", "jane@example.com", uint64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateProfile(context.Background(), 1, ProfileUpdate{
			Name:  "Jane",
			Email: "Jane@Example.com",
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("with password and avatar", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepo(db)

		hash := "$2a$04$newhash"
		avatar := "new.png"
		mock.ExpectExec("UPDATE users SET name=?, email=?, password=?, avatar=? WHERE id=?").
			WithArgs("Jane", "jane@example.com", hash, avatar, uint64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateProfile(context.Background(), 1, ProfileUpdate{
			Name:         "Jane",
			Email:        "jane@example.com",
			PasswordHash: &hash,
			Avatar:       &avatar,
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT COUNT(*) FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(12))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(12), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
