// Package config loads analysis parameters from a JSON file. Fields are
// pointer-typed so a partial config only overrides what it names;
// everything else keeps the caller's defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/topoforge/rugosity/internal/rugosity"
)

// maxFileSize caps config reads; a parameter file has no business being
// larger than this.
const maxFileSize = 1 * 1024 * 1024

// AnalysisConfig mirrors the analyze command's tuning flags.
type AnalysisConfig struct {
	WindowSize *int  `json:"window_size,omitempty"`
	Chunked    *bool `json:"chunked,omitempty"`
	TileRows   *int  `json:"tile_rows,omitempty"`
	TileCols   *int  `json:"tile_cols,omitempty"`
	Workers    *int  `json:"workers,omitempty"`
}

// Load reads an AnalysisConfig from a JSON file. The file must have a
// .json extension; omitted fields stay nil so partial configs are safe.
func Load(path string) (*AnalysisConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg AnalysisConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// Apply overrides the set fields of opts with the config's values.
func (c *AnalysisConfig) Apply(opts *rugosity.Options) {
	if c.WindowSize != nil {
		opts.WindowSize = *c.WindowSize
	}
	if c.Chunked != nil {
		opts.Chunked = *c.Chunked
	}
	if c.TileRows != nil {
		opts.TileRows = *c.TileRows
	}
	if c.TileCols != nil {
		opts.TileCols = *c.TileCols
	}
	if c.Workers != nil {
		opts.Workers = *c.Workers
	}
}
