package config

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", "jobs.db")

	// Server configuration defaults
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost",
		"https://localhost",
		"http://127.0.0.1",
		"https://127.0.0.1",
	})
	v.SetDefault("server.rate_limit_per_minute", 0) // Unlimited unless configured
	v.SetDefault("server.rate_burst", 10)

	// Logging defaults
	v.SetDefault("logging.json", false)
}

// GetDatabasePath returns the configured database path
func (c *Config) GetDatabasePath() string {
	if c.Database.Path == "" {
		return "jobs.db" // Fallback default
	}
	return c.Database.Path
}

// GetServerPort returns the configured server port
// Returns server.port from config, or DefaultServerPort if not configured
func (c *Config) GetServerPort() int {
	if c.Server.Port == 0 {
		return DefaultServerPort
	}
	return c.Server.Port
}
