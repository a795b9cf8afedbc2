// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	APIURL       string
	DatabasePath string
	LogPath      string
	LogLevel     string
	HTTPTimeout  time.Duration
}

// Default values
const (
	appDirName         = "operadoras-tui"
	defaultHTTPTimeout = 0
	defaultLogLevel    = "info"
)

// Option overrides a loaded value, e.g. from a command-line flag.
type Option func(*Config)

// WithAPIURL overrides the API base URL. Empty values are ignored.
func WithAPIURL(url string) Option {
	return func(c *Config) {
		if url != "" {
			c.APIURL = url
		}
	}
}

// WithLogLevel overrides the log level. Empty values are ignored.
func WithLogLevel(level string) Option {
	return func(c *Config) {
		if level != "" {
			c.LogLevel = level
		}
	}
}

// Load reads configuration from .env files and environment variables, then
// applies opts.
func Load(opts ...Option) (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		// VITE_API_URL is what the web frontend's .env files carry.
		APIURL:       getEnvString("API_URL", os.Getenv("VITE_API_URL")),
		DatabasePath: getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		LogPath:      getEnvString("LOG_PATH", getDefaultLogPath()),
		LogLevel:     getEnvString("LOG_LEVEL", defaultLogLevel),
		HTTPTimeout:  getEnvDuration("HTTP_TIMEOUT", defaultHTTPTimeout),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Ensure log directory exists
	if err := ensureDir(filepath.Dir(cfg.LogPath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the fields that have no usable default.
func (c *Config) Validate() error {
	c.APIURL = strings.TrimSpace(c.APIURL)
	if c.APIURL == "" {
		return fmt.Errorf("API_URL is required (set via env, .env or VITE_API_URL)")
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("API_URL must start with http:// or https://, got %q", c.APIURL)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTP_TIMEOUT must not be negative")
	}
	return nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory, then the web frontend's .env next to it
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths,
			filepath.Join(cwd, ".env"),
			filepath.Join(cwd, "frontend", ".env"),
		)
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", appDirName, ".env"),
		)
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
		grandparent := filepath.Dir(parent)
		paths = append(paths, filepath.Join(grandparent, ".env"))
	}

	return paths
}

// getDefaultDatabasePath returns the default path for export snapshots.
func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "operadoras.db"
	}
	return filepath.Join(home, ".config", appDirName, "operadoras.db")
}

// getDefaultLogPath returns the default path for the log file.
func getDefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "operadoras.log"
	}
	return filepath.Join(home, ".config", appDirName, "operadoras.log")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
