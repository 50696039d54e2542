// Package config loads and validates YAML configuration for manual builds.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-manualpdf/internal/logging"
	"github.com/alnah/go-manualpdf/internal/paginate"
	"github.com/alnah/go-manualpdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
	MaxStyleLength       = 4096
)

// configDirName is the directory under the user config dir searched by name.
const configDirName = "go-manualpdf"

// Config holds all configuration for manual generation.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Page       PageConfig       `yaml:"page"`
	Pagination PaginationConfig `yaml:"pagination"`
	Export     ExportConfig     `yaml:"export"`
	CSS        CSSConfig        `yaml:"css"`
	Assets     AssetsConfig     `yaml:"assets"`
	Log        LogConfig        `yaml:"log"`
	AutoLink   AutoLinkConfig   `yaml:"autolink"`
}

// InputConfig defines where screenshots and the logo come from.
type InputConfig struct {
	ImagesDir string `yaml:"imagesDir"` // Empty = the manual's directory
	Logo      string `yaml:"logo"`      // Empty = logo.* beside the manual
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = same as source
}

// PageConfig defines physical page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// PaginationConfig tunes how content is split into pages.
type PaginationConfig struct {
	Mode        string             `yaml:"mode"`        // "height" (default) or "heading"
	Budget      float64            `yaml:"budget"`      // CSS pixels per page, 0 = derived from page size
	BreakBefore string             `yaml:"breakBefore"` // e.g. "h2" or "h1,h2"
	Costs       paginate.CostTable `yaml:"costs"`       // zero fields keep defaults; use e.g. 0.01 for "free"
}

// ExportConfig defines print timings.
type ExportConfig struct {
	Timeout      time.Duration `yaml:"timeout"`      // whole conversion, 0 = default
	SettleDelay  time.Duration `yaml:"settleDelay"`  // pause before printing
	ImageTimeout time.Duration `yaml:"imageTimeout"` // wait for images to settle
}

// CSSConfig defines styling options.
type CSSConfig struct {
	Style string `yaml:"style"` // style name, file path, or inline CSS
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// LogConfig defines console logging.
type LogConfig struct {
	Level string `yaml:"level"` // none, normal, debug
}

// AutoLinkConfig controls screenshot auto-linking.
type AutoLinkConfig struct {
	Enabled       *bool `yaml:"enabled"` // nil = enabled
	RequireImages bool  `yaml:"requireImages"`
}

// IsEnabled reports whether auto-linking is on.
func (a AutoLinkConfig) IsEnabled() bool {
	return a.Enabled == nil || *a.Enabled
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.imagesDir", c.Input.ImagesDir, MaxPathLength},
		{"input.logo", c.Input.Logo, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"css.style", c.CSS.Style, MaxStyleLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if c.Page.Size != "" {
		switch strings.ToLower(c.Page.Size) {
		case "letter", "a4", "legal":
		default:
			return fmt.Errorf("%w: page.size %q (must be letter, a4, or legal)", ErrInvalidValue, c.Page.Size)
		}
	}
	if c.Page.Orientation != "" {
		switch strings.ToLower(c.Page.Orientation) {
		case "portrait", "landscape":
		default:
			return fmt.Errorf("%w: page.orientation %q (must be portrait or landscape)", ErrInvalidValue, c.Page.Orientation)
		}
	}
	if c.Page.Margin < 0 {
		return fmt.Errorf("%w: page.margin %.2f", ErrInvalidValue, c.Page.Margin)
	}

	if _, err := paginate.ParseMode(c.Pagination.Mode); err != nil {
		return fmt.Errorf("pagination.mode: %w", err)
	}
	if _, err := paginate.ParseBreakLevels(c.Pagination.BreakBefore); err != nil {
		return fmt.Errorf("pagination.breakBefore: %w", err)
	}
	if c.Pagination.Budget < 0 {
		return fmt.Errorf("pagination.budget: %w: %.0f", paginate.ErrInvalidBudget, c.Pagination.Budget)
	}

	durations := []struct {
		field string
		value time.Duration
	}{
		{"export.timeout", c.Export.Timeout},
		{"export.settleDelay", c.Export.SettleDelay},
		{"export.imageTimeout", c.Export.ImageTimeout},
	}
	for _, d := range durations {
		if d.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %s", ErrInvalidValue, d.field, d.value)
		}
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration where every field means "default".
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.DecodeFile(configPath, &cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths lists the candidate files LoadConfig tries for a config name,
// in order: current directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
