package types

import (
	"fmt"
	"time"
)

// Config holds runtime configuration for the sqlscan CLI, combining flags and defaults
type Config struct {
	// PostgreSQL connection (exec command only).
	// URI or key=value format; standard PG* environment variables apply when empty.
	ConnectionString string

	// Delimiter is the statement boundary used when splitting scripts
	Delimiter string

	// Timeout bounds the execution of a single statement
	Timeout time.Duration

	// StopOnError aborts script execution on the first failed statement
	StopOnError bool

	// Verbose enables debug logging
	Verbose bool
}

// ConfigError represents invalid configuration
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Message)
}

// Validate checks the configuration for unusable values
func (c *Config) Validate() error {
	if c.Delimiter == "" {
		return &ConfigError{Field: "delimiter", Message: "statement delimiter must not be empty"}
	}
	if c.Timeout < 0 {
		return &ConfigError{Field: "timeout", Message: "timeout must not be negative"}
	}
	return nil
}
