package config

// Redis is used for shared rate-limit windows and HTTP response caching.
// When it is not configured or a connection cannot be established at
// start-up, callers degrade to in-memory windows and no cache.

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
)

// RedisConfig locates the Redis server. REDIS_URL takes precedence over
// REDIS_ADDR; with neither set Redis is disabled.
type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	TLS      bool   `env:"REDIS_TLS" envDefault:"false"`
}

// LoadRedisConfig reads the Redis settings.
func LoadRedisConfig() (RedisConfig, error) {
	c, err := env.ParseAs[RedisConfig]()
	if err != nil {
		return RedisConfig{}, fmt.Errorf("parsing redis config: %w", err)
	}
	return c, nil
}

// Enabled reports whether a Redis server is configured.
func (c RedisConfig) Enabled() bool {
	return c.URL != "" || c.Addr != ""
}

// Options builds client options from the configuration.
func (c RedisConfig) Options() (*redis.Options, error) {
	if c.URL != "" {
		opts, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing REDIS_URL: %w", err)
		}
		return opts, nil
	}
	opts := &redis.Options{Addr: c.Addr, Password: c.Password, DB: c.DB}
	if c.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts, nil
}

// NewRedisClient connects and pings the server with a short timeout. It
// returns a nil client and no error when Redis is not configured.
func NewRedisClient(c RedisConfig) (*redis.Client, error) {
	if !c.Enabled() {
		return nil, nil
	}
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return client, nil
}
