package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/lovepcsy/salon-site/internal/config"
	"github.com/lovepcsy/salon-site/internal/repository"
	"github.com/lovepcsy/salon-site/internal/session"
	"github.com/lovepcsy/salon-site/internal/upload"
	"github.com/lovepcsy/salon-site/internal/utils"
)

// AuthHandler bundles dependencies for the login, registration and
// logout flows.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Sessions session.Store
	Uploads  *upload.Saver
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, s session.Store, up *upload.Saver) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Sessions: s, Uploads: up}
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return render(c, http.StatusOK, "login", echo.Map{"Title": "Login"})
}

// Login verifies credentials and starts a session.  An unknown email and
// a wrong password take the same path and produce the same generic
// flash, so the form cannot be used to enumerate accounts.
func (h *AuthHandler) Login(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")
	if email == "" || password == "" {
		session.FlashError(c, "Invalid credentials")
		return c.Redirect(http.StatusFound, "/auth/login")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error().Err(err).Msg("login: lookup failed")
		}
		session.FlashError(c, "Invalid credentials")
		return c.Redirect(http.StatusFound, "/auth/login")
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		session.FlashError(c, "Invalid credentials")
		return c.Redirect(http.StatusFound, "/auth/login")
	}

	token, err := h.Sessions.Create(ctx, session.Admin{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	})
	if err != nil {
		log.Error().Err(err).Msg("login: create session failed")
		session.FlashError(c, "Server error")
		return c.Redirect(http.StatusFound, "/auth/login")
	}

	h.setSessionCookie(c, session.SignToken(h.Cfg.SessionSecret, token))
	return c.Redirect(http.StatusFound, "/admin/dashboard")
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return render(c, http.StatusOK, "register", echo.Map{"Title": "Register"})
}

// Register creates an admin account.  The avatar is optional; when
// present it must pass the upload rules before the row is inserted.
func (h *AuthHandler) Register(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")
	if name == "" || email == "" || password == "" {
		session.FlashError(c, "Name, email and password are required")
		return c.Redirect(http.StatusFound, "/auth/register")
	}

	var avatar *string
	if fh, err := c.FormFile("avatar"); err == nil && fh != nil {
		saved, err := h.Uploads.Save(fh, upload.Avatar)
		if err != nil {
			session.FlashError(c, uploadErrorMessage(err))
			return c.Redirect(http.StatusFound, "/auth/register")
		}
		avatar = &saved.PublicPath
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Users.Create(ctx, name, email, password, avatar, h.Cfg.BcryptCost); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			session.FlashError(c, "Email already registered")
		} else {
			log.Error().Err(err).Msg("register: create user failed")
			session.FlashError(c, "Server error")
		}
		return c.Redirect(http.StatusFound, "/auth/register")
	}
	session.FlashSuccess(c, "Registration successful. Please login.")
	return c.Redirect(http.StatusFound, "/auth/login")
}

// Logout destroys the server-side session and expires the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if ck, err := c.Cookie(session.CookieName); err == nil && ck.Value != "" {
		if token, ok := session.VerifyToken(h.Cfg.SessionSecret, ck.Value); ok {
			ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
			defer cancel()
			if err := h.Sessions.Destroy(ctx, token); err != nil {
				log.Warn().Err(err).Msg("logout: destroy session failed")
			}
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusFound, "/auth/login")
}

func (h *AuthHandler) setSessionCookie(c echo.Context, value string) {
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   h.Cfg.SessionTTLHrs * 3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.Cfg.Env == "prod",
	})
}
