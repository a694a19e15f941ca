// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"combo-pricing/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Database contains catalog database settings
	Database DatabaseConfig `json:"database"`

	// Pricing contains enumeration and pricing limits
	Pricing PricingConfig `json:"pricing"`

	// Export contains CSV export settings
	Export ExportConfig `json:"export"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// DatabaseConfig contains catalog database settings
type DatabaseConfig struct {
	// Driver selects the SQL driver (sqlite, mysql)
	Driver string `json:"driver"`

	// Path is the database file path for sqlite
	Path string `json:"path"`

	// DSN is the connection string for mysql; overridden by DB_DSN in the
	// environment when set
	DSN string `json:"dsn,omitempty"`
}

// PricingConfig contains enumeration and pricing limits
type PricingConfig struct {
	// MaxLinesPerType clamps a missing per-type max line bound
	MaxLinesPerType int `json:"max_lines_per_type"`

	// MaxBundles is the fail-fast ceiling on enumerated bundles per product
	MaxBundles int `json:"max_bundles"`

	// DefaultLimit is the result limit when a request does not set one
	DefaultLimit int `json:"default_limit"`
}

// ExportConfig contains CSV export settings
type ExportConfig struct {
	// Directory is where CSV files are written
	Directory string `json:"directory"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".combo-pricing", "combined_products.db")

	return &Config{
		Version: "1.0",
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   dbPath,
		},
		Pricing: PricingConfig{
			MaxLinesPerType: 5,
			MaxBundles:      100000,
			DefaultLimit:    20,
		},
		Export: ExportConfig{
			Directory: "data",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
