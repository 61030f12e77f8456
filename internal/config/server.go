package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/jonathan/resume-ats/internal/autosave"
)

// ServerConfig holds the HTTP server configuration parsed from environment variables.
type ServerConfig struct {
	AppEnv           string `env:"APP_ENV" envDefault:"dev"`
	Port             int    `env:"PORT" envDefault:"8080"`
	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	MaxBodyBytes     int64  `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// Sessions
	MaxSessions            int           `env:"MAX_SESSIONS" envDefault:"1000"`
	SessionIdleTimeout     time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1m"`
	AnalysisDelay          time.Duration `env:"ANALYSIS_DELAY" envDefault:"0s"`
	AnalysisTimeout        time.Duration `env:"ANALYSIS_TIMEOUT" envDefault:"10s"`

	// Autosave
	AutosaveBackend string        `env:"AUTOSAVE_BACKEND" envDefault:"memory"`
	SQLitePath      string        `env:"SQLITE_PATH"`
	RedisURL        string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	AutosaveTTL     time.Duration `env:"AUTOSAVE_TTL" envDefault:"48h"`

	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
}

// LoadServerConfig parses environment variables into a ServerConfig.
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("op=config.LoadServerConfig: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and backend requirements.
func (c ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT %d out of range", c.Port)
	}
	if !slices.Contains(Backends, c.AutosaveBackend) {
		return fmt.Errorf("config error: unknown AUTOSAVE_BACKEND %q (want one of %v)", c.AutosaveBackend, Backends)
	}
	if c.AutosaveBackend == BackendPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required for the postgres backend")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("config error: MAX_BODY_BYTES must be positive")
	}
	if c.AnalysisDelay < 0 || c.AnalysisTimeout < 0 {
		return fmt.Errorf("config error: analysis durations must be non-negative")
	}
	if c.SessionIdleTimeout < 0 || c.SessionCleanupInterval < 0 {
		return fmt.Errorf("config error: session durations must be non-negative")
	}
	return nil
}

// IsDev reports whether the app is running in development mode.
func (c ServerConfig) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c ServerConfig) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// Addr returns the listen address.
func (c ServerConfig) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// BackendOptions returns the autosave connection settings.
func (c ServerConfig) BackendOptions() autosave.BackendOptions {
	return autosave.BackendOptions{
		SQLitePath:  c.SQLitePath,
		RedisURL:    c.RedisURL,
		RedisTTL:    c.AutosaveTTL,
		DatabaseURL: c.DatabaseURL,
	}
}
