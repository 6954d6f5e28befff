package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewServiceRepo(db)

	mock.ExpectExec("INSERT INTO services (title, description, price, duration_minutes) VALUES (?,?,?,?)").
		WithArgs("Haircut", "Classic cut", 25.50, uint32(30)).
		WillReturnResult(sqlmock.NewResult(5, 1))

	id, err := repo.Create(context.Background(), "Haircut", "Classic cut", 25.50, 30)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewServiceRepo(db)

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "title", "description", "price", "duration_minutes", "created_at"}).
		AddRow(2, "Coloring", "Full color", 80.00, 90, now).
		AddRow(1, "Haircut", "Classic cut", 25.50, 30, now.Add(-time.Hour))
	mock.ExpectQuery("SELECT id, title, description, price, duration_minutes, created_at FROM services ORDER BY created_at DESC").
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(2), got[0].ID)
	assert.Equal(t, "Coloring", got[0].Title)
	assert.Equal(t, 80.00, got[0].Price)
	assert.Equal(t, uint32(30), got[1].DurationMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceGetByIDMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewServiceRepo(db)

	mock.ExpectQuery("SELECT id, title, description, price, duration_minutes, created_at FROM services WHERE id=? LIMIT 1").
		WithArgs(uint64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewServiceRepo(db)

	mock.ExpectExec("UPDATE services SET title=?, description=?, price=?, duration_minutes=? WHERE id=?").
		WithArgs("Haircut", "Updated", 30.00, uint32(45), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Update(context.Background(), 1, "Haircut", "Updated", 30.00, 45))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceDeleteMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewServiceRepo(db)

	mock.ExpectExec("DELETE FROM services WHERE id=?").
		WithArgs(uint64(77)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), 77))
	assert.NoError(t, mock.ExpectationsWereMet())
}
