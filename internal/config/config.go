// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Data
	Dataset string `json:"dataset,omitempty"` // Path or URL of the company metrics table

	// Ranking
	TopN int `json:"top_n,omitempty"` // Number of companies to recommend

	// Behavior
	APIKey         string `json:"api_key,omitempty"`         // Gemini API key
	EnrichmentMode string `json:"enrichment_mode,omitempty"` // "live" or "mock"; default follows APIKey presence
	Verbose        bool   `json:"verbose,omitempty"`         // Print detailed debug information
	DatabaseURL    string `json:"database_url,omitempty"`    // PostgreSQL connection URL (optional cache/history)

	// Server
	Port int `json:"port,omitempty"` // HTTP server port
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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
	if c.TopN < 0 {
		return fmt.Errorf("config error: 'top_n' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}
	if c.EnrichmentMode != "" && c.EnrichmentMode != "live" && c.EnrichmentMode != "mock" {
		return fmt.Errorf("config error: 'enrichment_mode' must be \"live\" or \"mock\"")
	}
	if c.EnrichmentMode == "live" && c.APIKey == "" {
		return fmt.Errorf("config error: 'enrichment_mode' is \"live\" but no API key is configured")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Dataset == "" {
		result.Dataset = defaults.Dataset
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.EnrichmentMode == "" {
		result.EnrichmentMode = defaults.EnrichmentMode
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.TopN == 0 {
		result.TopN = defaults.TopN
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}

// FromEnv builds a Config from environment variables. .env loading is the
// caller's concern; this only reads the process environment.
func FromEnv() Config {
	dataset := os.Getenv("DATASET_PATH")
	if dataset == "" {
		dataset = os.Getenv("DATASET_URL")
	}
	port := 0
	if p := os.Getenv("PORT"); p != "" {
		port, _ = strconv.Atoi(p)
	}
	return Config{
		Dataset:     dataset,
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        port,
	}
}

// Mode resolves the enrichment mode: an explicit setting wins, otherwise
// live when an API key is configured and mock when not. The switch stays
// visible configuration rather than an implicit env probe at call sites.
func (c *Config) Mode() string {
	if c.EnrichmentMode != "" {
		return c.EnrichmentMode
	}
	if c.APIKey != "" {
		return "live"
	}
	return "mock"
}
