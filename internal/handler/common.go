package handler // handler defines the HTTP handlers for the public site and admin panel

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	mw "github.com/lovepcsy/salon-site/internal/middleware"
	"github.com/lovepcsy/salon-site/internal/session"
)

// dbTimeout bounds every database round-trip made from a handler so a
// hung database call cannot stall a request task indefinitely.
const dbTimeout = 5 * time.Second

// render executes a page template after folding in the cross-cutting
// context every page needs: one-time flash messages, the authenticated
// admin (if any) and the CSRF token for forms.
func render(c echo.Context, status int, name string, data echo.Map) error {
	if data == nil {
		data = echo.Map{}
	}
	success, errMsg := session.TakeFlash(c)
	if _, ok := data["Success"]; !ok {
		data["Success"] = success
	}
	if _, ok := data["Error"]; !ok {
		data["Error"] = errMsg
	}
	if a, ok := c.Get(mw.ContextKeyAdmin).(session.Admin); ok {
		data["Admin"] = a
	}
	tok, _ := c.Get("csrf").(string)
	data["CSRF"] = tok
	return c.Render(status, name, data)
}

// parseID converts a :id route parameter into a uint64.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// currentAdmin returns the admin stored by the RequireAdmin guard.
func currentAdmin(c echo.Context) (session.Admin, bool) {
	a, ok := c.Get(mw.ContextKeyAdmin).(session.Admin)
	return a, ok
}

// sessionToken returns the raw session token stored by the guard.
func sessionToken(c echo.Context) (string, bool) {
	t, ok := c.Get(mw.ContextKeySession).(string)
	return t, ok
}
