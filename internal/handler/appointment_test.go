package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lovepcsy/salon-site/internal/queue"
	"github.com/lovepcsy/salon-site/internal/repository"
)

func newAppointmentHandler(t *testing.T, publish func(ctx context.Context, evt queue.AppointmentBookedEvent) error) (*AppointmentHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAppointmentHandler(repository.NewAppointmentRepo(db), publish), mock
}

func TestBookStoresAppointmentAndPublishes(t *testing.T) {
	var published *queue.AppointmentBookedEvent
	h, mock := newAppointmentHandler(t, func(_ context.Context, evt queue.AppointmentBookedEvent) error {
		published = &evt
		return nil
	})

	mock.ExpectExec("INSERT INTO appointments (service_id, service_title, full_name, mobile, email, message) VALUES (?,?,?,?,?,?)").
		WithArgs(uint64(3), "Haircut", "Jane Doe", "5551234", "jane@example.com", "morning please").
		WillReturnResult(sqlmock.NewResult(11, 1))

	c, rec := postForm("/appointments", url.Values{
		"service_id":    {"3"},
		"service_title": {"Haircut"},
		"full_name":     {"Jane Doe"},
		"mobile":        {"5551234"},
		"email":         {"jane@example.com"},
		"message":       {"morning please"},
	})
	require.NoError(t, h.Book(c))
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/services?appointment=success", rec.Header().Get("Location"))

	require.NotNil(t, published)
	assert.Equal(t, uint64(11), published.AppointmentID)
	assert.Equal(t, uint64(3), published.ServiceID)
	assert.Equal(t, "Haircut", published.ServiceTitle)
	assert.Equal(t, "Jane Doe", published.FullName)
}

// A broker failure is logged and nothing more; the booking already
// succeeded from the visitor's point of view.
func TestBookSucceedsWhenPublishFails(t *testing.T) {
	h, mock := newAppointmentHandler(t, func(context.Context, queue.AppointmentBookedEvent) error {
		return errors.New("broker down")
	})

	mock.ExpectExec("INSERT INTO appointments (service_id, service_title, full_name, mobile, email, message) VALUES (?,?,?,?,?,?)").
		WithArgs(nil, nil, "Jane Doe", "5551234", "jane@example.com", "").
		WillReturnResult(sqlmock.NewResult(12, 1))

	c, rec := postForm("/appointments", url.Values{
		"full_name": {"Jane Doe"},
		"mobile":    {"5551234"},
		"email":     {"jane@example.com"},
	})
	require.NoError(t, h.Book(c))
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/services?appointment=success", rec.Header().Get("Location"))
}

func TestBookRejectsMissingContact(t *testing.T) {
	h, mock := newAppointmentHandler(t, nil)

	c, rec := postForm("/appointments", url.Values{
		"full_name": {"Jane Doe"},
		"mobile":    {""},
		"email":     {"jane@example.com"},
	})
	require.NoError(t, h.Book(c))
	require.NoError(t, mock.ExpectationsWereMet(), "no insert must happen")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/services?appointment=error", rec.Header().Get("Location"))
}
