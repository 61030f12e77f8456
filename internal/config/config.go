// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/jonathan/resume-ats/internal/autosave"
	"github.com/jonathan/resume-ats/internal/types"
)

// Autosave backends
const (
	BackendMemory   = autosave.BackendMemory
	BackendSQLite   = autosave.BackendSQLite
	BackendRedis    = autosave.BackendRedis
	BackendPostgres = autosave.BackendPostgres
)

// Backends lists every supported autosave backend.
var Backends = []string{BackendMemory, BackendSQLite, BackendRedis, BackendPostgres}

// DefaultConcurrency is the batch worker count used when none is configured.
const DefaultConcurrency = 4

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Resume   string `json:"resume,omitempty"`   // Path to resume JSON
	Job      string `json:"job,omitempty"`      // Path to job description text or HTML file
	JobURL   string `json:"job_url,omitempty"`  // URL to fetch the job description from
	Template string `json:"template,omitempty"` // Template id: modern, classic, creative, minimal

	// Output
	Out     string `json:"out,omitempty"`     // Path to write the JSON report to
	Verbose bool   `json:"verbose,omitempty"` // Print a human-readable report

	// Autosave
	Backend     string `json:"backend,omitempty"`      // memory, sqlite, redis or postgres
	SQLitePath  string `json:"sqlite_path,omitempty"`  // SQLite database file
	RedisURL    string `json:"redis_url,omitempty"`    // redis://host:port/db
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Batch
	Concurrency int `json:"concurrency,omitempty"` // Parallel analyses in batch mode
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.Template != "" {
		if _, err := types.ParseTemplateID(c.Template); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if c.Backend != "" && !slices.Contains(Backends, c.Backend) {
		return fmt.Errorf("config error: unknown backend %q (want one of %v)", c.Backend, Backends)
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" && result.JobURL == "" {
		result.Job = defaults.Job
		result.JobURL = defaults.JobURL
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.Out == "" {
		result.Out = defaults.Out
	}
	if result.Backend == "" {
		result.Backend = defaults.Backend
	}
	if result.SQLitePath == "" {
		result.SQLitePath = defaults.SQLitePath
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.Concurrency == 0 {
		if defaults.Concurrency > 0 {
			result.Concurrency = defaults.Concurrency
		} else {
			result.Concurrency = DefaultConcurrency
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// BackendOptions returns the autosave connection settings.
func (c *Config) BackendOptions() autosave.BackendOptions {
	return autosave.BackendOptions{
		SQLitePath:  c.SQLitePath,
		RedisURL:    c.RedisURL,
		DatabaseURL: c.DatabaseURL,
	}
}
