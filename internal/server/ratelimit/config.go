package ratelimit

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool             `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	DefaultLimit    int              `env:"RATE_LIMIT_DEFAULT_LIMIT" envDefault:"1000"`
	DefaultWindow   time.Duration    `env:"RATE_LIMIT_DEFAULT_WINDOW" envDefault:"1m"`
	CleanupInterval time.Duration    `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"5m"`
	IdleTTL         time.Duration    `env:"RATE_LIMIT_IDLE_TTL" envDefault:"1h"`
	Whitelist       []string         `env:"RATE_LIMIT_WHITELIST" envSeparator:","`
	Blacklist       []string         `env:"RATE_LIMIT_BLACKLIST" envSeparator:","`
	EndpointConfigs []EndpointConfig `env:"-"`
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("op=ratelimit.LoadConfig: %w", err)
	}
	cfg.Whitelist = cleanIPList(cfg.Whitelist)
	cfg.Blacklist = cleanIPList(cfg.Blacklist)
	cfg.EndpointConfigs = DefaultEndpointConfigs()
	return &cfg, nil
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: analysis runs (strictest limits)
		{Path: "/analyze", Method: "POST", Limit: 120, Window: time.Minute, Burst: 10},
		{Path: "/sessions/", Method: "POST", Limit: 120, Window: time.Minute, Burst: 10},

		// Tier 2: writes (moderate limits)
		{Path: "/sessions", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/sessions/", Method: "PUT", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/sessions/", Method: "PATCH", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/sessions/", Method: "DELETE", Limit: 300, Window: time.Minute, Burst: 30},

		// Tier 3: reads - handled by default limit
		// Tier 4: health and metrics (unlimited) - handled by special case in matcher
	}
}

// cleanIPList trims entries and drops blanks.
func cleanIPList(list []string) []string {
	out := make([]string, 0, len(list))
	for _, ip := range list {
		if ip = strings.TrimSpace(ip); ip != "" {
			out = append(out, ip)
		}
	}
	return out
}
