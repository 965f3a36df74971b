package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabaseURL    string `envconfig:"DATABASE_URL"      required:"true"`
	DBMaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	Port           string `envconfig:"PORT"              default:":5000"`
	LogLevel       string `envconfig:"LOG_LEVEL"         default:"info"`

	SessionBackend       string        `envconfig:"SESSION_BACKEND"        default:"memory"` // memory | redis
	SessionTTL           time.Duration `envconfig:"SESSION_TTL"            default:"24h"`
	SessionSweepSchedule string        `envconfig:"SESSION_SWEEP_SCHEDULE" default:"@every 24h"`
	SessionCookieName    string        `envconfig:"SESSION_COOKIE_NAME"    default:"shop.sid"`
	CookieSecure         bool          `envconfig:"COOKIE_SECURE"          default:"false"`
	RedisURL             string        `envconfig:"REDIS_URL"`

	AdminUsername string `envconfig:"ADMIN_USERNAME"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment variables: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL must be set. Did you forget to provision a database?")
	}

	switch cfg.SessionBackend {
	case "memory":
	case "redis":
		if cfg.RedisURL == "" {
			return nil, errors.New("REDIS_URL must be set when SESSION_BACKEND=redis")
		}
	default:
		return nil, fmt.Errorf("unknown SESSION_BACKEND %q", cfg.SessionBackend)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	return &cfg, nil
}

// LoadConfig is Load for process startup: any configuration error is fatal.
func LoadConfig(logger *logrus.Logger) *Config {
	cfg, err := Load()
	if err != nil {
		logger.Fatalf("Configuration error: %v", err)
	}

	logger.Infof("Configuration loaded: Port=%s, LogLevel=%s, SessionBackend=%s", cfg.Port, cfg.LogLevel, cfg.SessionBackend)
	logger.Info("Configuration loaded: DatabaseURL is set")
	return cfg
}
