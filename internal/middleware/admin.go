package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lovepcsy/salon-site/internal/session"
)

// ContextKeyAdmin is the Echo context key under which the guard stores
// the authenticated admin for downstream handlers.
const ContextKeyAdmin = "admin"

// ContextKeySession holds the raw session token so handlers that mutate
// the session (profile update, logout) can address it in the store.
const ContextKeySession = "session_token"

// RequireAdmin returns a middleware that protects the admin panel.  It
// reads the signed session cookie, resolves it against the session
// store and stores the admin record in the request context.  Requests
// without a valid session are redirected to the login form.
func RequireAdmin(store session.Store, secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(session.CookieName)
			if err != nil || ck.Value == "" {
				return c.Redirect(http.StatusFound, "/auth/login")
			}
			// Reject forged cookies before touching the store.
			token, ok := session.VerifyToken(secret, ck.Value)
			if !ok {
				return c.Redirect(http.StatusFound, "/auth/login")
			}
			admin, err := store.Get(c.Request().Context(), token)
			if err != nil {
				return c.Redirect(http.StatusFound, "/auth/login")
			}
			c.Set(ContextKeyAdmin, admin)
			c.Set(ContextKeySession, token)
			return next(c)
		}
	}
}
