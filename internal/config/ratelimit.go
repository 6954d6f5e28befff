package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// LoginRateLimitConfig controls throttling of login attempts.  Attempts are
// counted per client IP in a fixed window backed by Redis.  When Redis is
// unavailable or Enabled is false the limiter is a no-op and login falls
// back to unthrottled behaviour.
type LoginRateLimitConfig struct {
	Enabled     bool
	MaxAttempts int
	Window      time.Duration
	Prefix      string
}

// LoadLoginRateLimitConfig reads environment variables to build a
// LoginRateLimitConfig.  Defaults allow 10 attempts per IP per minute.
func LoadLoginRateLimitConfig() LoginRateLimitConfig {
	cfg := LoginRateLimitConfig{
		Enabled:     envBool("LOGIN_RATE_LIMIT_ENABLED", true),
		MaxAttempts: envInt("LOGIN_RATE_LIMIT_MAX_ATTEMPTS", 10),
		Window:      envDur("LOGIN_RATE_LIMIT_WINDOW", time.Minute),
		Prefix:      envStr("LOGIN_RATE_LIMIT_PREFIX", "loginrl"),
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	switch strings.ToLower(os.Getenv(k)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	if dur, err := time.ParseDuration(os.Getenv(k)); err == nil {
		return dur
	}
	return d
}
