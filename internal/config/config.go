// Package config provides centralized configuration for the migration CLI,
// loaded from flags with environment-variable fallbacks, plus the static
// legacy-source registry.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Config struct — populated from flags and environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Legacy database
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string

	// Portal write API
	APIURL string
	APIKey string

	// HTTP client
	HTTPTimeout       time.Duration
	RequestsPerMinute int

	// Pipeline
	Sources       []string // enabled source prefixes
	SourcesFile   string   // optional YAML registry override
	ProgressEvery int
}

// Validate checks that every required setting is present.
func (c *Config) Validate() error {
	switch {
	case c.DBHost == "":
		return fmt.Errorf("db-host is required")
	case c.DBUser == "":
		return fmt.Errorf("db-user is required")
	case c.DBPassword == "":
		return fmt.Errorf("db-password is required")
	case c.APIURL == "":
		return fmt.Errorf("api-url is required")
	case c.APIKey == "":
		return fmt.Errorf("api-key is required")
	}
	return nil
}

// DatabaseURL builds the connection string for the legacy database.
func (c *Config) DatabaseURL() string {
	name := c.DBName
	if name == "" {
		name = DefaultDBName
	}
	return fmt.Sprintf("postgres://%s:%s@%s/%s", c.DBUser, c.DBPassword, c.DBHost, name)
}

// Defaults applied when the corresponding flag and env var are both unset.
const (
	DefaultDBName            = "jobs"
	DefaultHTTPTimeout       = 30 * time.Second
	DefaultRequestsPerMinute = 600
	DefaultProgressEvery     = 50
)

// FromEnv returns a Config populated from environment variables only.
// Flag values registered on top of this take precedence.
func FromEnv() *Config {
	return &Config{
		DBHost:            envOr("MIGRATE_DB_HOST", ""),
		DBUser:            envOr("MIGRATE_DB_USER", ""),
		DBPassword:        envOr("MIGRATE_DB_PASSWORD", ""),
		DBName:            envOr("MIGRATE_DB_NAME", DefaultDBName),
		APIURL:            envOr("JOBPORTAL_API_URL", ""),
		APIKey:            envOr("JOBPORTAL_API_KEY", ""),
		HTTPTimeout:       time.Duration(envInt("MIGRATE_HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		RequestsPerMinute: envInt("MIGRATE_REQUESTS_PER_MINUTE", DefaultRequestsPerMinute),
		Sources:           envList("MIGRATE_SOURCES", nil),
		SourcesFile:       envOr("MIGRATE_SOURCES_FILE", ""),
		ProgressEvery:     envInt("MIGRATE_PROGRESS_EVERY", DefaultProgressEvery),
	}
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
