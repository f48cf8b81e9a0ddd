// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Server
	Port  int  `json:"port,omitempty"`  // Port the pipeline server listens on
	Async bool `json:"async,omitempty"` // Run submit work in the background

	// Client
	ServerURL    string  `json:"server_url,omitempty"`    // Base URL of the pipeline server
	PollInterval float64 `json:"poll_interval,omitempty"` // Seconds between progress polls
	PollTimeout  float64 `json:"poll_timeout,omitempty"`  // Seconds before a stuck job is abandoned

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Headless-browser fallback for consent-walled pages
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// DefaultPort matches the port the extension popup is built against.
const DefaultPort = 3000

// Defaults returns the configuration used when nothing else is specified.
func Defaults() Config {
	return Config{
		Port:         DefaultPort,
		ServerURL:    fmt.Sprintf("http://localhost:%d", DefaultPort),
		PollInterval: 1,
		PollTimeout:  120,
	}
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

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("config error: 'poll_interval' must be non-negative")
	}
	if c.PollTimeout < 0 {
		return fmt.Errorf("config error: 'poll_timeout' must be non-negative")
	}
	if c.PollTimeout > 0 && c.PollInterval > c.PollTimeout {
		return fmt.Errorf("config error: 'poll_interval' must not exceed 'poll_timeout'")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-value fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.ServerURL == "" {
		result.ServerURL = defaults.ServerURL
	}
	if result.PollInterval == 0 {
		result.PollInterval = defaults.PollInterval
	}
	if result.PollTimeout == 0 {
		result.PollTimeout = defaults.PollTimeout
	}

	// Booleans: true wins, matching how flags layer over the file.
	result.Async = result.Async || defaults.Async
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
