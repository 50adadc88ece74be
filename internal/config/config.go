// Package config loads the grid-builder configuration from a JSON file.
// All fields are pointers so that a partial config file only overrides
// the values it names; the Get* accessors supply defaults for the rest.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config represents the root configuration for the grid builder.
type Config struct {
	// StorePath is the SQLite file holding cached cross-section grids.
	StorePath *string `json:"store_path,omitempty"`

	// GridWorkers is the number of concurrent wavelength workers used
	// while building a grid.
	GridWorkers *int `json:"grid_workers,omitempty"`

	// SizeBins is the number of radius bins per size distribution.
	SizeBins *int `json:"size_bins,omitempty"`
}

// Helper functions to create pointers
func ptrString(v string) *string { return &v }
func ptrInt(v int) *int          { return &v }

// EmptyConfig returns a Config with all fields set to nil.
func EmptyConfig() *Config {
	return &Config{}
}

// Load reads a Config from a JSON file. The file must have a .json
// extension. Fields omitted from the JSON retain their defaults, so
// partial configs are safe.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	if c.StorePath != nil && *c.StorePath == "" {
		return fmt.Errorf("store_path must not be empty when set")
	}

	if c.GridWorkers != nil && *c.GridWorkers < 1 {
		return fmt.Errorf("grid_workers must be at least 1, got %d", *c.GridWorkers)
	}

	if c.SizeBins != nil && *c.SizeBins < 2 {
		return fmt.Errorf("size_bins must be at least 2, got %d", *c.SizeBins)
	}

	return nil
}

// GetStorePath returns the store_path value or the default.
func (c *Config) GetStorePath() string {
	if c.StorePath == nil || *c.StorePath == "" {
		return "dustopac.db" // default
	}
	return *c.StorePath
}

// GetGridWorkers returns the grid_workers value or the default.
func (c *Config) GetGridWorkers() int {
	if c.GridWorkers == nil {
		return runtime.NumCPU() // default: one worker per core
	}
	return *c.GridWorkers
}

// GetSizeBins returns the size_bins value or the default.
func (c *Config) GetSizeBins() int {
	if c.SizeBins == nil {
		return 100 // default
	}
	return *c.SizeBins
}
