// Package config loads application configuration from environment variables.
// Each concern has its own loader so that optional subsystems (rate limiting,
// response cache, Redis) can be configured and disabled independently.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// MinJWTSecretLength is the shortest accepted signing secret.
const MinJWTSecretLength = 32

// Config holds the runtime configuration of the server.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Port     string `env:"APP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Database. When DB_HOST or DB_NAME is empty the server keeps its data in
	// memory.
	DBUser    string `env:"DB_USER" envDefault:"root"`
	DBPass    string `env:"DB_PASS"`
	DBHost    string `env:"DB_HOST"`
	DBPort    string `env:"DB_PORT" envDefault:"3306"`
	DBName    string `env:"DB_NAME"`
	DBMigrate bool   `env:"DB_MIGRATE" envDefault:"true"`

	// Admin session tokens.
	JWTSecret   string        `env:"JWT_SECRET,required"`
	TokenIssuer string        `env:"JWT_ISSUER" envDefault:"getyoursite"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// The single admin account. ADMIN_PASSWORD_HASH wins over ADMIN_PASSWORD,
	// which is hashed at start-up.
	AdminUsername     string `env:"ADMIN_USERNAME" envDefault:"admin_getyoursite"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	AdminPassword     string `env:"ADMIN_PASSWORD"`
	BcryptCost        int    `env:"BCRYPT_COST" envDefault:"10"`

	// Contact notifications.
	SMTPHost string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	MailFrom string `env:"MAIL_FROM"`
	MailTo   string `env:"MAIL_TO"`

	// Optional RabbitMQ path for notifications.
	RabbitMQURL  string `env:"RABBITMQ_URL"`
	ContactQueue string `env:"CONTACT_QUEUE" envDefault:"contact.received"`

	HandlerTimeout  time.Duration `env:"HANDLER_TIMEOUT" envDefault:"10s"`
	NotifyTimeout   time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// TrustProxy makes the client IP come from X-Forwarded-For / X-Real-IP.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return Config{}, fmt.Errorf("JWT_SECRET must be at least %d bytes long, got %d bytes",
			MinJWTSecretLength, len(cfg.JWTSecret))
	}
	if cfg.AdminPasswordHash == "" && cfg.AdminPassword == "" {
		return Config{}, errors.New("one of ADMIN_PASSWORD_HASH or ADMIN_PASSWORD is required")
	}
	if strings.TrimSpace(cfg.AdminUsername) == "" {
		return Config{}, errors.New("ADMIN_USERNAME must not be blank")
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.HandlerTimeout <= 0 {
		cfg.HandlerTimeout = 10 * time.Second
	}
	return cfg, nil
}

// UseDatabase reports whether MySQL is configured.
func (c Config) UseDatabase() bool {
	return c.DBHost != "" && c.DBName != ""
}

// MailConfigured reports whether SMTP credentials are present.
func (c Config) MailConfigured() bool {
	return c.SMTPUser != "" && c.SMTPPass != ""
}

// UseQueue reports whether notifications go through RabbitMQ.
func (c Config) UseQueue() bool {
	return c.RabbitMQURL != ""
}

// IsProduction reports whether APP_ENV is production.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production") || strings.EqualFold(c.Env, "prod")
}
