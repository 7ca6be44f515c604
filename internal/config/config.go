package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultGeminiModel = "gemini-2.5-flash-lite"
	DefaultBatchLimit  = 100
)

// Environment variable names.
const (
	EnvPort         = "PORT"
	EnvLogLevel     = "LOG_LEVEL"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvGeminiModel  = "GEMINI_MODEL"
	EnvBatchLimit   = "BATCH_LIMIT"
)

// Config is the service configuration.
type Config struct {
	Port         string
	LogLevel     string
	GeminiAPIKey string
	GeminiModel  string
	BatchLimit   int
}

// LoadDotEnv loads variables from the given files into the environment.
// Missing files are ignored; existing variables are not overwritten.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

// FromEnv builds a Config from environment variables, using defaults for unset ones.
func FromEnv() (*Config, error) {
	c := &Config{
		Port:         getEnv(EnvPort, DefaultPort),
		LogLevel:     getEnv(EnvLogLevel, DefaultLogLevel),
		GeminiAPIKey: os.Getenv(EnvGeminiAPIKey),
		GeminiModel:  getEnv(EnvGeminiModel, DefaultGeminiModel),
		BatchLimit:   DefaultBatchLimit,
	}

	if v := os.Getenv(EnvBatchLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvBatchLimit, v, err)
		}
		c.BatchLimit = n
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the config can start a server.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port required")
	}
	if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if c.BatchLimit < 1 {
		return fmt.Errorf("batch limit must be positive: %d", c.BatchLimit)
	}
	return nil
}

// RenderingEnabled reports whether replies can be rendered with Gemini.
func (c *Config) RenderingEnabled() bool {
	return c.GeminiAPIKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
