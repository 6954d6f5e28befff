package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/lovepcsy/salon-site/internal/config"
	"github.com/lovepcsy/salon-site/internal/session"
)

// LoginRateLimit throttles login attempts per client IP using a fixed
// window counter in Redis.  A blocked attempt is bounced back to the
// login form with an error flash rather than a bare 429, since the
// caller is a browser submitting a form.  When Redis is unavailable the
// limiter degrades to a pass-through so login keeps working.
func LoginRateLimit(cfg config.LoginRateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	// INCR + first-hit EXPIRE as one atomic script, so the window
	// cannot be left without a TTL if the process dies between calls.
	windowScript := redis.NewScript(`
		local n = redis.call('INCR', KEYS[1])
		if n == 1 then
			redis.call('PEXPIRE', KEYS[1], ARGV[1])
		end
		return n
	`)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			key := cfg.Prefix + ":ip:" + ip

			ctx := c.Request().Context()
			n, err := windowScript.Run(ctx, rdb, []string{key},
				cfg.Window.Milliseconds()).Int64()
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("login rate limit unavailable")
				return next(c)
			}

			if n > int64(cfg.MaxAttempts) {
				retry := cfg.Window.Round(time.Second)
				log.Info().Str("ip", ip).Int64("attempts", n).Msg("login attempt blocked")
				session.FlashError(c, "Too many login attempts. Please wait "+retry.String()+" and try again.")
				return c.Redirect(302, "/auth/login")
			}
			return next(c)
		}
	}
}
