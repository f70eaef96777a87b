package cli

import (
	"time"

	"github.com/cybertec-postgresql/sqlscan/pkg/types"
)

// Config is an alias for the shared Config type
type Config = types.Config

// ConfigError is an alias for the shared ConfigError type
type ConfigError = types.ConfigError

// DefaultConfig provides default configuration values
var DefaultConfig = Config{
	ConnectionString: "",
	Delimiter:        ";",
	Timeout:          30 * time.Second,
	StopOnError:      false,
	Verbose:          false,
}

// ApplyFlagsToConfig applies command-line flag values to configuration
func ApplyFlagsToConfig(c *Config, connection, delimiter string, timeout time.Duration,
	stopOnError, verbose bool) {

	if connection != "" {
		c.ConnectionString = connection
	}
	if delimiter != "" {
		c.Delimiter = delimiter
	}
	if timeout != 0 {
		c.Timeout = timeout
	}
	c.StopOnError = stopOnError
	c.Verbose = verbose
}
