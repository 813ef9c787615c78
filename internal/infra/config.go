package infra

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Database
	DatabaseURL string `env:"DATABASE_URL"`
	PGHost      string `env:"PGHOST" envDefault:"localhost"`
	PGPort      int    `env:"PGPORT" envDefault:"5432"`
	PGUser      string `env:"PGUSER" envDefault:"playercv"`
	PGPassword  string `env:"PGPASSWORD" envDefault:"playercv"`
	PGDatabase  string `env:"PGDATABASE" envDefault:"playercv"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"10"`

	// Server
	APIPort  int    `env:"API_PORT" envDefault:"3100"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Media: uploads land in <MEDIA_DIR>/photos and <MEDIA_DIR>/logos.
	MediaDir string `env:"MEDIA_DIR" envDefault:"uploads"`

	// Placeholder staff gate; empty disables it.
	StaffCode string `env:"STAFF_CODE"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Uploads per client IP per minute.
	UploadRatePerMinute int `env:"UPLOAD_RATE_PER_MINUTE" envDefault:"30"`

	// Proxy
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	// Dev
	AllowInsecureDefaults bool `env:"ALLOW_INSECURE_DEFAULTS" envDefault:"false"`
}

// LoadConfig reads .env files if present, then parses environment variables
// into a Config struct. Variables already set in the environment win.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load("../.env")
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks for configuration that must not run in production.
// Set ALLOW_INSECURE_DEFAULTS=true to bypass (local dev only).
func (c *Config) Validate() error {
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("API_PORT out of range: %d", c.APIPort)
	}
	if c.UploadRatePerMinute <= 0 {
		return fmt.Errorf("UPLOAD_RATE_PER_MINUTE must be positive, got %d", c.UploadRatePerMinute)
	}
	if strings.TrimSpace(c.MediaDir) == "" {
		return fmt.Errorf("MEDIA_DIR is required")
	}
	if c.AllowInsecureDefaults {
		return nil
	}
	if c.StaffCode == "" {
		return fmt.Errorf("STAFF_CODE is empty; set one or set ALLOW_INSECURE_DEFAULTS=true for local dev")
	}
	return nil
}

// DSN returns the PostgreSQL connection string, preferring DATABASE_URL if set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
