// Package config loads application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Reporting ReportingConfig
	Redis     RedisConfig
	MailRelay MailRelayConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port    string
	BaseURL string // public URL used in password-reset links
	Env     string // development or production
}

// DatabaseConfig holds PostgreSQL connection options.
type DatabaseConfig struct {
	DSN      string
	MaxConns int32
	MinConns int32
}

// AuthConfig holds token and password settings.
type AuthConfig struct {
	JWTSecret      string
	TokenTTL       time.Duration
	ResetTokenTTL  time.Duration
	BcryptCost     int
	MinPasswordLen int
}

// ReportingConfig pins the timezone used for every date-bucketing
// operation (daily filters, month truncation) so report boundaries are
// deterministic regardless of the host's local time.
type ReportingConfig struct {
	Timezone string
}

// RedisConfig holds the optional autocomplete cache settings.
// An empty Addr disables the cache entirely.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MailRelayConfig holds the password-reset mail relay endpoint.
type MailRelayConfig struct {
	URL string
	Key string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes
		// from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:    getenvWithDefault("APP_PORT", "8080"),
			BaseURL: getenvWithDefault("BASE_URL", "http://localhost:8080"),
			Env:     getenvWithDefault("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			DSN:      os.Getenv("DATABASE_URL"),
			MaxConns: int32(getenvIntWithDefault("DB_MAX_CONNS", 10)),
			MinConns: int32(getenvIntWithDefault("DB_MIN_CONNS", 2)),
		},
		Auth: AuthConfig{
			JWTSecret:      os.Getenv("JWT_SECRET"),
			TokenTTL:       getenvDurationWithDefault("JWT_TTL", 24*time.Hour),
			ResetTokenTTL:  getenvDurationWithDefault("RESET_TOKEN_TTL", 15*time.Minute),
			BcryptCost:     getenvIntWithDefault("BCRYPT_COST", 12),
			MinPasswordLen: getenvIntWithDefault("MIN_PASSWORD_LEN", 8),
		},
		Reporting: ReportingConfig{
			Timezone: getenvWithDefault("REPORTING_TIMEZONE", "Asia/Kolkata"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getenvIntWithDefault("REDIS_DB", 0),
		},
		MailRelay: MailRelayConfig{
			URL: os.Getenv("MAIL_RELAY_URL"),
			Key: os.Getenv("MAIL_RELAY_KEY"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the server cannot run without.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("invalid REPORTING_TIMEZONE %q: %w", c.Reporting.Timezone, err)
	}
	return nil
}

// ReportingLocation resolves the configured reporting timezone.
// Validate guarantees this cannot fail after Load.
func (c *Config) ReportingLocation() *time.Location {
	loc, err := time.LoadLocation(c.Reporting.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getenvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvDurationWithDefault(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
