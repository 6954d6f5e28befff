package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lovepcsy/salon-site/internal/config"
	"github.com/lovepcsy/salon-site/internal/repository"
	"github.com/lovepcsy/salon-site/internal/session"
	"github.com/lovepcsy/salon-site/internal/upload"
	"github.com/lovepcsy/salon-site/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		Env:           "test",
		SessionSecret: "test-secret",
		SessionTTLHrs: 1,
		BcryptCost:    4,
	}
}

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, *session.MemoryStore) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := session.NewMemoryStore(time.Hour)
	h := NewAuthHandler(testConfig(), repository.NewUserRepo(db), store, upload.NewSaver(t.TempDir()))
	return h, mock, store
}

func postForm(path string, values url.Values) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func cookieValue(rec *httptest.ResponseRecorder, name string) (string, bool) {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck.Value, true
		}
	}
	return "", false
}

// An unknown email and a wrong password must be indistinguishable from
// the outside: same redirect, same flash message, no session cookie.
func TestLoginDoesNotEnumerateAccounts(t *testing.T) {
	hash, err := utils.HashPassword("rightpass", 4)
	require.NoError(t, err)
	now := time.Now().UTC()

	run := func(t *testing.T, prepare func(sqlmock.Sqlmock)) *httptest.ResponseRecorder {
		h, mock, _ := newAuthHandler(t)
		prepare(mock)

		c, rec := postForm("/auth/login", url.Values{
			"email":    {"jane@example.com"},
			"password": {"wrongpass"},
		})
		require.NoError(t, h.Login(c))
		require.NoError(t, mock.ExpectationsWereMet())
		return rec
	}

	unknown := run(t, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery("SELECT id,name,email,password,avatar,created_at FROM users WHERE email=? LIMIT 1").
			WithArgs("jane@example.com").
			WillReturnError(sql.ErrNoRows)
	})
	wrongPass := run(t, func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery("SELECT id,name,email,password,avatar,created_at FROM users WHERE email=? LIMIT 1").
			WithArgs("jane@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "avatar", "created_at"}).
				AddRow(1, "Jane", "jane@example.com", hash, nil, now))
	})

	for name, rec := range map[string]*httptest.ResponseRecorder{"unknown email": unknown, "wrong password": wrongPass} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
			flash, ok := cookieValue(rec, "flash_error")
			require.True(t, ok)
			assert.Equal(t, url.QueryEscape("Invalid credentials"), flash)
			_, hasSession := cookieValue(rec, session.CookieName)
			assert.False(t, hasSession)
		})
	}
}

func TestLoginSuccessStartsSession(t *testing.T) {
	h, mock, store := newAuthHandler(t)

	hash, err := utils.HashPassword("rightpass", 4)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT id,name,email,password,avatar,created_at FROM users WHERE email=? LIMIT 1").
		WithArgs("jane@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "avatar", "created_at"}).
			AddRow(1, "Jane", "jane@example.com", hash, nil, time.Now().UTC()))

	c, rec := postForm("/auth/login", url.Values{
		"email":    {" Jane@Example.COM "},
		"password": {"rightpass"},
	})
	require.NoError(t, h.Login(c))
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))

	signed, ok := cookieValue(rec, session.CookieName)
	require.True(t, ok)
	token, ok := session.VerifyToken("test-secret", signed)
	require.True(t, ok, "session cookie must carry a valid signature")

	admin, err := store.Get(c.Request().Context(), token)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), admin.ID)
	assert.Equal(t, "Jane", admin.Name)
}

func TestLogoutDestroysSession(t *testing.T) {
	h, _, store := newAuthHandler(t)

	token, err := store.Create(context.Background(), session.Admin{ID: 1, Name: "Jane"})
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: session.SignToken("test-secret", token)})
	rec := httptest.NewRecorder()
	require.NoError(t, h.Logout(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))

	_, err = store.Get(req.Context(), token)
	assert.ErrorIs(t, err, session.ErrNoSession)

	expired, ok := cookieValue(rec, session.CookieName)
	require.True(t, ok)
	assert.Empty(t, expired)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, mock, _ := newAuthHandler(t)

	mock.ExpectExec("INSERT INTO users (name, email, password, avatar) VALUES (?,?,?,?)").
		WithArgs("Jane", "jane@example.com", sqlmock.AnyArg(), nil).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'jane@example.com' for key 'users.email'"))

	c, rec := postForm("/auth/register", url.Values{
		"name":     {"Jane"},
		"email":    {"jane@example.com"},
		"password": {"secret123"},
	})
	require.NoError(t, h.Register(c))
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/register", rec.Header().Get("Location"))
	flash, ok := cookieValue(rec, "flash_error")
	require.True(t, ok)
	assert.Equal(t, url.QueryEscape("Email already registered"), flash)
}

func TestRegisterMissingFields(t *testing.T) {
	h, mock, _ := newAuthHandler(t)

	c, rec := postForm("/auth/register", url.Values{
		"name":  {"Jane"},
		"email": {"jane@example.com"},
	})
	require.NoError(t, h.Register(c))
	require.NoError(t, mock.ExpectationsWereMet(), "no insert must happen")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/register", rec.Header().Get("Location"))
}
