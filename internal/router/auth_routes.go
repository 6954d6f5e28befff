package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/lovepcsy/salon-site/internal/config"
	"github.com/lovepcsy/salon-site/internal/handler"
	"github.com/lovepcsy/salon-site/internal/middleware"
)

// RegisterAuth registers login, registration and logout.  The login
// POST is wrapped by the Redis-backed rate limiter so credential
// guessing is throttled per client IP; rdb may be nil, in which case
// the limiter is a pass-through.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, rlCfg config.LoginRateLimitConfig, rdb *redis.Client) {
	g := e.Group("/auth")
	g.GET("/login", a.LoginForm)
	g.POST("/login", a.Login, middleware.LoginRateLimit(rlCfg, rdb))
	g.GET("/register", a.RegisterForm)
	g.POST("/register", a.Register)
	g.GET("/logout", a.Logout)
}
