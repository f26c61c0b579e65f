package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment. It is built
// once at startup; missing TMDB credentials are not a startup failure — the
// upstream client reports them on first use so the process can come up and
// serve a clear error instead of crashing.
type Config struct {
	// Port the HTTP server listens on.
	Port int

	// TMDBToken is a v4 read access token, sent as a Bearer header.
	// Preferred over TMDBAPIKey when both are set.
	TMDBToken string

	// TMDBAPIKey is a v3 key, sent as an api_key query parameter.
	TMDBAPIKey string

	// LogFile is an optional path for rotating log output. Empty means
	// stdout only.
	LogFile string
}

const defaultPort = 3001

// Load reads configuration from the environment, merging in a .env file when
// one exists (the .env file never overrides variables already set).
func Load() (*Config, error) {
	// Absence of .env is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{
		Port:       defaultPort,
		TMDBToken:  os.Getenv("TMDB_TOKEN"),
		TMDBAPIKey: os.Getenv("TMDB_API_KEY"),
		LogFile:    os.Getenv("LOG_FILE"),
	}

	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("config: invalid PORT %q", raw)
		}
		cfg.Port = port
	}

	return cfg, nil
}

// HasCredentials reports whether at least one TMDB credential is configured.
func (c *Config) HasCredentials() bool {
	return c.TMDBToken != "" || c.TMDBAPIKey != ""
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
