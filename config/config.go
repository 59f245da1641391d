package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
	"github.com/Temutjin2k/kart-laptimes/pkg/configparser"
	"github.com/Temutjin2k/kart-laptimes/pkg/logger"
)

// Errors
var (
	ErrEmptySecret = errors.New("session secret must not be empty")
)

// Config contains all configuration variables of the application
type (
	Config struct {
		App      AppConfig
		HTTP     HTTPConfig
		Session  SessionConfig
		Database DatabaseConfig
	}

	AppConfig struct {
		Name       string               `env:"APP_NAME" default:"kart-laptimes"`
		LogLevel   string               `env:"APP_LOG_LEVEL" default:"INFO"`
		Identifier types.IdentifierKind `env:"APP_IDENTIFIER" default:"email"` // what the user identifier field holds
	}

	HTTPConfig struct {
		Host            string        `env:"HTTP_HOST" default:"0.0.0.0"`
		Port            string        `env:"HTTP_PORT" default:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" default:"10s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" default:"10s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	}

	SessionConfig struct {
		Backend      types.SessionBackend `env:"SESSION_BACKEND" default:"memory"`
		CookieName   string               `env:"SESSION_COOKIE_NAME" default:"laptimes_session"`
		TTL          time.Duration        `env:"SESSION_TTL" default:"24h"`
		Secret       string               `env:"SESSION_SECRET" default:"change-me-session-secret"`
		SecureCookie bool                 `env:"SESSION_SECURE_COOKIE" default:"false"`
	}

	DatabaseConfig struct {
		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432"`
		User     string `env:"DATABASE_USER" default:"laptimes_user"`
		Password string `env:"DATABASE_PASSWORD" default:"laptimes_pass"`
		Database string `env:"DATABASE_DATABASE" default:"laptimes_db"`

		MaxConns        int32         `env:"DATABASE_MAXCONNS" default:"10"`         // максимум открытых соединений
		MinConns        int32         `env:"DATABASE_MINCONNS" default:"1"`          // минимум соединений в пуле
		MaxConnLifetime time.Duration `env:"DATABASE_MAXCONNLIFETIME" default:"30m"` // макс. "время жизни" соединения
		MaxConnIdleTime time.Duration `env:"DATABASE_MAXCONNIDLETIME" default:"5m"`  // макс. "время простоя" соединения
	}
)

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c HTTPConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading enviromental variables and parsing to config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if !c.App.Identifier.Valid() {
		return types.ErrInvalidIdentifierKind
	}
	if !logger.ValidateLogLevel(c.App.LogLevel) {
		return types.ErrInvalidLogLevel
	}
	if !c.Session.Backend.Valid() {
		return types.ErrInvalidSessionBackend
	}
	if c.Session.Secret == "" {
		return ErrEmptySecret
	}
	return nil
}

func (c DatabaseConfig) PoolLimits() (maxConns, minConns int32, maxLifetime, maxIdle time.Duration) {
	return c.MaxConns, c.MinConns, c.MaxConnLifetime, c.MaxConnIdleTime
}
