package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-manualpdf/internal/config"
)

// envPrefix marks the variables this tool reads.
const envPrefix = "MANUALPDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // MANUALPDF_CONFIG: config file path
	Timeout    time.Duration // MANUALPDF_TIMEOUT: per-manual timeout
	PageSize   string        // MANUALPDF_PAGE_SIZE: a4, letter, legal

	// Tier 2 - Inputs
	ImagesDir string // MANUALPDF_IMAGES_DIR: screenshot directory
	Logo      string // MANUALPDF_LOGO: header logo path

	// Tier 3 - Extended
	Workers   int    // MANUALPDF_WORKERS: parallel workers
	LogLevel  string // MANUALPDF_LOG_LEVEL: none, normal, debug
	Style     string // MANUALPDF_STYLE: CSS style name or path
	OutputDir string // MANUALPDF_OUTPUT_DIR: default output directory
}

// knownEnvVars lists valid MANUALPDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"MANUALPDF_CONFIG":    true,
	"MANUALPDF_TIMEOUT":   true,
	"MANUALPDF_PAGE_SIZE": true,
	// Tier 2 - Inputs
	"MANUALPDF_IMAGES_DIR": true,
	"MANUALPDF_LOGO":       true,
	// Tier 3 - Extended
	"MANUALPDF_WORKERS":    true,
	"MANUALPDF_LOG_LEVEL":  true,
	"MANUALPDF_STYLE":      true,
	"MANUALPDF_OUTPUT_DIR": true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MANUALPDF_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("MANUALPDF_CONFIG"),
		PageSize:   os.Getenv("MANUALPDF_PAGE_SIZE"),
		// Tier 2
		ImagesDir: os.Getenv("MANUALPDF_IMAGES_DIR"),
		Logo:      os.Getenv("MANUALPDF_LOGO"),
		// Tier 3
		LogLevel:  os.Getenv("MANUALPDF_LOG_LEVEL"),
		Style:     os.Getenv("MANUALPDF_STYLE"),
		OutputDir: os.Getenv("MANUALPDF_OUTPUT_DIR"),
	}

	// Parse duration for timeout
	if timeout := os.Getenv("MANUALPDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	// Parse int for workers
	if workers := os.Getenv("MANUALPDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MANUALPDF_* variables.
// Helps catch typos like MANUALPDF_IMAGE_DIR instead of MANUALPDF_IMAGES_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1
	if env.Timeout > 0 && cfg.Export.Timeout == 0 {
		cfg.Export.Timeout = env.Timeout
	}
	if env.PageSize != "" && cfg.Page.Size == "" {
		cfg.Page.Size = env.PageSize
	}

	// Tier 2
	if env.ImagesDir != "" && cfg.Input.ImagesDir == "" {
		cfg.Input.ImagesDir = env.ImagesDir
	}
	if env.Logo != "" && cfg.Input.Logo == "" {
		cfg.Input.Logo = env.Logo
	}

	// Tier 3
	if env.LogLevel != "" && cfg.Log.Level == "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.Style != "" && cfg.CSS.Style == "" {
		cfg.CSS.Style = env.Style
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}
