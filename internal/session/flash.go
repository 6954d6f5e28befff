package session

import (
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
)

// Flash messages are one-time status strings shown after a redirect.
// They ride in short-lived cookies rather than ambient server state, so
// each message is scoped to the request chain that produced it.

const (
	flashSuccessCookie = "flash_success"
	flashErrorCookie   = "flash_error"
)

// FlashSuccess queues a success message for the next rendered page.
func FlashSuccess(c echo.Context, msg string) { setFlash(c, flashSuccessCookie, msg) }

// FlashError queues an error message for the next rendered page.
func FlashError(c echo.Context, msg string) { setFlash(c, flashErrorCookie, msg) }

func setFlash(c echo.Context, name, msg string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

// TakeFlash reads and clears any queued flash messages.  It is called by
// handlers just before rendering so each message is shown exactly once.
func TakeFlash(c echo.Context) (success, errMsg string) {
	success = takeFlash(c, flashSuccessCookie)
	errMsg = takeFlash(c, flashErrorCookie)
	return success, errMsg
}

func takeFlash(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil || ck.Value == "" {
		return ""
	}
	// Expire the cookie so the message shows only once.
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
	v, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return ""
	}
	return v
}
