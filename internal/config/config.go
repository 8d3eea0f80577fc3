// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults, CLI flags
// or environment variables.
type Config struct {
	// Credentials and endpoints
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key (env GEMINI_API_KEY)
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL (env DATABASE_URL)
	RedisURL    string `json:"redis_url,omitempty"`    // Redis URL for session defaults (env REDIS_URL)

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Behavior
	SpeechEnabled bool `json:"speech_enabled,omitempty"` // Enable audio submissions
	Verbose       bool `json:"verbose,omitempty"`        // Print detailed debug information
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

// FromEnv fills empty fields from environment variables. Explicit config
// values win over the environment.
func (c *Config) FromEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.RedisURL == "" {
		c.RedisURL = os.Getenv("REDIS_URL")
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	return nil
}
