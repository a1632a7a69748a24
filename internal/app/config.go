package app

import (
	"os"
	"strconv"
)

const defaultServerURL = "http://127.0.0.1:8750"

// Config holds client-wide configuration.
type Config struct {
	// Debug enables debug logging and additional diagnostics
	Debug bool

	// ServerURL is the warren-server base URL the client talks to
	ServerURL string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:     false,
		ServerURL: defaultServerURL,
	}
}

// ConfigFromEnv creates a configuration from environment variables.
// WARREN_DEBUG enables debug mode; WARREN_SERVER_URL overrides the server.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()

	if debugStr := os.Getenv("WARREN_DEBUG"); debugStr != "" {
		if debug, err := strconv.ParseBool(debugStr); err == nil {
			cfg.Debug = debug
		}
	}

	if serverURL := os.Getenv("WARREN_SERVER_URL"); serverURL != "" {
		cfg.ServerURL = serverURL
	}

	return cfg
}
