package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// RateLimitConfig drives the fixed-window limiter on public writes and the
// token bucket on the admin login.
type RateLimitConfig struct {
	Enabled  bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	Limit    int           `env:"RATE_LIMIT_MAX" envDefault:"5"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
	Prefix   string        `env:"RATE_LIMIT_PREFIX" envDefault:"rl"`
	UseRedis bool          `env:"RATE_LIMIT_REDIS" envDefault:"true"`

	// FailClosed answers 503 instead of admitting requests when the counter
	// store errors.
	FailClosed bool `env:"RATE_LIMIT_FAIL_CLOSED" envDefault:"false"`

	// SweepSchedule is a cron spec for dropping stale in-memory windows.
	SweepSchedule string `env:"RATE_LIMIT_SWEEP" envDefault:"@every 5m"`

	LoginEvery time.Duration `env:"LOGIN_RATE_EVERY" envDefault:"6s"`
	LoginBurst int           `env:"LOGIN_RATE_BURST" envDefault:"5"`
	LoginIdle  time.Duration `env:"LOGIN_LIMITER_IDLE" envDefault:"30m"`
}

// LoadRateLimitConfig parses the environment and clamps out-of-range values
// to usable ones.
func LoadRateLimitConfig() (RateLimitConfig, error) {
	c, err := env.ParseAs[RateLimitConfig]()
	if err != nil {
		return RateLimitConfig{}, fmt.Errorf("parsing rate limit config: %w", err)
	}
	if c.Limit < 1 {
		c.Limit = 1
	}
	if c.Window <= 0 {
		c.Window = 15 * time.Minute
	}
	if c.LoginEvery <= 0 {
		c.LoginEvery = 6 * time.Second
	}
	if c.LoginBurst < 1 {
		c.LoginBurst = 1
	}
	if c.LoginIdle < c.LoginEvery*time.Duration(c.LoginBurst) {
		c.LoginIdle = c.LoginEvery * time.Duration(c.LoginBurst)
	}
	return c, nil
}
