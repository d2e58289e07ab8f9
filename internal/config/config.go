package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"kagane-unscrambler/internal/convert"
	"kagane-unscrambler/internal/page"
)

// Config holds the chapter identity, paths and output settings.
type Config struct {
	// Chapter
	SeriesID  string `json:"series_id"`
	ChapterID string `json:"chapter_id"`

	// Paths
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`

	// Output settings
	Format   string `json:"format"`   // raw, webp or tga
	MaxSize  int    `json:"max_size"` // longest side in pixels, 0 keeps the original
	GridSize int    `json:"grid_size"`
	Workers  int    `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.SeriesID != "" {
		c.SeriesID = flags.SeriesID
	}
	if flags.ChapterID != "" {
		c.ChapterID = flags.ChapterID
	}
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.MaxSize > 0 {
		c.MaxSize = flags.MaxSize
	}
	if flags.GridSize > 0 {
		c.GridSize = flags.GridSize
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.InputDir == "" {
		c.InputDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, "unscrambled")
	} else if !filepath.IsAbs(c.OutputDir) && flags.OutputDir == "" {
		// relative paths in the file are relative to the input dir
		c.OutputDir = filepath.Join(c.InputDir, c.OutputDir)
	}

	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = convert.FormatRaw
	}
	if c.GridSize <= 0 {
		c.GridSize = page.GridSize
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate reports settings a run cannot proceed without.
func (c *Config) Validate() error {
	var errs []error
	if c.SeriesID == "" {
		errs = append(errs, errors.New("series id is required"))
	}
	if c.ChapterID == "" {
		errs = append(errs, errors.New("chapter id is required"))
	}
	if !convert.ValidFormat(c.Format) {
		errs = append(errs, fmt.Errorf("unknown format %q", c.Format))
	}
	if c.MaxSize < 0 {
		errs = append(errs, fmt.Errorf("max size %d is negative", c.MaxSize))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	SeriesID  string
	ChapterID string
	InputDir  string
	OutputDir string
	Format    string
	MaxSize   int
	GridSize  int
	Workers   int
}
