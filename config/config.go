// Package config loads joblist configuration from TOML files and
// JOBLIST_-prefixed environment variables via Viper.
package config

import (
	"fmt"

	"github.com/ShahwaizZahid/Job-Listing/errors"
)

// Config represents the core joblist configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DatabaseConfig configures the SQLite database
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Port               int      `mapstructure:"port"`                  // 0 = default port
	AllowedOrigins     []string `mapstructure:"allowed_origins"`       // CORS origin prefixes
	RateLimitPerMinute int      `mapstructure:"rate_limit_per_minute"` // 0 = unlimited
	RateBurst          int      `mapstructure:"rate_burst"`            // spike allowance while limiting
}

// LoggingConfig configures log output
type LoggingConfig struct {
	JSON bool `mapstructure:"json"` // machine-readable JSON instead of console output
}

// Server port constants
const (
	DefaultServerPort = 5000 // API port the frontend expects
)

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Database path is optional - empty falls back to the default path

	// Server port: 0 = use default, negative or out of range is invalid
	if c.Server.Port < 0 {
		return errors.Newf("server.port must be positive, got %d", c.Server.Port)
	}
	if c.Server.Port > 65535 {
		return errors.Newf("server.port must be below 65536, got %d", c.Server.Port)
	}

	// Rate limit: 0 = unlimited, negative = invalid
	if c.Server.RateLimitPerMinute < 0 {
		return errors.Newf("server.rate_limit_per_minute must be >= 0, got %d", c.Server.RateLimitPerMinute)
	}
	if c.Server.RateBurst < 0 {
		return errors.Newf("server.rate_burst must be >= 0, got %d", c.Server.RateBurst)
	}

	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Database: %s, Server: {Port: %d, RateLimit: %d/min}}",
		c.Database.Path, c.Server.Port, c.Server.RateLimitPerMinute)
}
