package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	manualpdf "github.com/alnah/go-manualpdf"
	"github.com/alnah/go-manualpdf/internal/config"
	"github.com/alnah/go-manualpdf/internal/fileutil"
	"github.com/alnah/go-manualpdf/internal/logging"
	"github.com/alnah/go-manualpdf/internal/paginate"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrNoManuals          = errors.New("no markdown files found")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrReadImage          = errors.New("failed to read image file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrConversionsFailed  = errors.New("conversion(s) failed")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	title           string
	page            *manualpdf.PageSettings
	disableAutoLink bool
	requireImages   bool
	htmlOnly        bool
	htmlOutput      bool
	logger          *zap.Logger
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)
	if flags.common.config == "" {
		flags.common.config = envCfg.ConfigPath
	}

	// Load configuration
	cfg := config.DefaultConfig()
	var err error
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// CLI flags > env vars > config file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, env.Stderr, env.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	timeout, err := resolveTimeout(flags.timeout, cfg)
	if err != nil {
		return err
	}

	inputs, err := resolveInputPaths(positionalArgs)
	if err != nil {
		return err
	}
	if dir := cfg.Input.ImagesDir; dir != "" && !fileutil.DirExists(dir) {
		return fmt.Errorf("%w: images directory %s not found", ErrReadImage, dir)
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	manuals, err := discoverManuals(inputs, outputDir, cfg.Input)
	if err != nil {
		return fmt.Errorf("discovering manuals: %w", err)
	}
	if len(manuals) == 0 {
		return fmt.Errorf("%w in %s", ErrNoManuals, strings.Join(inputs, ", "))
	}

	page := buildPageSettings(cfg)
	if err := page.Validate(); err != nil {
		return err
	}
	pagination, err := buildPagination(cfg)
	if err != nil {
		return err
	}
	if err := pagination.Validate(); err != nil {
		return err
	}

	params := &conversionParams{
		title:           flags.document.title,
		page:            page,
		disableAutoLink: !cfg.AutoLink.IsEnabled(),
		requireImages:   cfg.AutoLink.RequireImages,
		htmlOnly:        flags.outputMode.htmlOnly,
		htmlOutput:      flags.outputMode.html,
		logger:          logger,
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	size := min(manualpdf.ResolvePoolSize(workers), len(manuals))

	pool := env.NewPool(size, converterOptions(cfg, pagination, timeout, logger)...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing browsers", zap.Error(err))
		}
	}()

	logger.Debug("converting",
		zap.Int("manuals", len(manuals)),
		zap.Int("workers", size))

	results := convertBatch(ctx, pool, manuals, params)

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		var errs []error
		for _, r := range results {
			if r.Err != nil {
				errs = append(errs, r.Err)
			}
		}
		return fmt.Errorf("%d %w: %w", failedCount, ErrConversionsFailed, multierr.Combine(errs...))
	}

	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Input flags
	if flags.input.images != "" {
		cfg.Input.ImagesDir = flags.input.images
	}
	if flags.input.logo != "" {
		cfg.Input.Logo = flags.input.logo
	}

	// Page flags
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin != 0 {
		cfg.Page.Margin = flags.page.margin
	}

	// Pagination flags
	if flags.pagination.mode != "" {
		cfg.Pagination.Mode = flags.pagination.mode
	}
	if flags.pagination.budget != 0 {
		cfg.Pagination.Budget = flags.pagination.budget
	}
	if flags.pagination.breakBefore != "" {
		cfg.Pagination.BreakBefore = flags.pagination.breakBefore
	}

	// Link flags
	if flags.link.disabled {
		disabled := false
		cfg.AutoLink.Enabled = &disabled
	}
	if flags.link.requireImages {
		cfg.AutoLink.RequireImages = true
	}

	// Asset flags
	if flags.assets.style != "" {
		cfg.CSS.Style = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	// Verbosity flags, quiet wins
	switch {
	case flags.common.quiet:
		cfg.Log.Level = "none"
	case flags.common.verbose:
		cfg.Log.Level = "debug"
	}
}

// buildPageSettings returns page settings from config, or nil when the
// config leaves every page field at its default.
func buildPageSettings(cfg *config.Config) *manualpdf.PageSettings {
	if cfg.Page.Size == "" && cfg.Page.Orientation == "" && cfg.Page.Margin == 0 {
		return nil
	}

	ps := manualpdf.DefaultPageSettings()
	if cfg.Page.Size != "" {
		ps.Size = strings.ToLower(cfg.Page.Size)
	}
	if cfg.Page.Orientation != "" {
		ps.Orientation = strings.ToLower(cfg.Page.Orientation)
	}
	if cfg.Page.Margin != 0 {
		ps.Margin = cfg.Page.Margin
	}
	return ps
}

// buildPagination converts the pagination config section.
func buildPagination(cfg *config.Config) (*manualpdf.Pagination, error) {
	levels, err := paginate.ParseBreakLevels(cfg.Pagination.BreakBefore)
	if err != nil {
		return nil, err
	}

	p := &manualpdf.Pagination{
		Mode:        cfg.Pagination.Mode,
		Budget:      cfg.Pagination.Budget,
		BreakBefore: levels,
	}
	if cfg.Pagination.Costs != (paginate.CostTable{}) {
		costs := cfg.Pagination.Costs
		p.Costs = &costs
	}
	return p, nil
}

// converterOptions builds the options every pooled converter shares.
func converterOptions(cfg *config.Config, pagination *manualpdf.Pagination, timeout time.Duration, logger *zap.Logger) []manualpdf.Option {
	opts := []manualpdf.Option{
		manualpdf.WithLogger(logger),
		manualpdf.WithPagination(*pagination),
	}
	if timeout > 0 {
		opts = append(opts, manualpdf.WithTimeout(timeout))
	}
	if cfg.CSS.Style != "" {
		opts = append(opts, manualpdf.WithStyle(cfg.CSS.Style))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, manualpdf.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Export.SettleDelay > 0 {
		opts = append(opts, manualpdf.WithSettleDelay(cfg.Export.SettleDelay))
	}
	if cfg.Export.ImageTimeout > 0 {
		opts = append(opts, manualpdf.WithImageTimeout(cfg.Export.ImageTimeout))
	}
	return opts
}

// resolveTimeout returns the per-manual timeout. The flag wins over config;
// zero means the converter default.
func resolveTimeout(flagValue string, cfg *config.Config) (time.Duration, error) {
	if flagValue == "" {
		return cfg.Export.Timeout, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (use a duration like 30s or 2m)", ErrInvalidTimeout, flagValue)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s (must be positive)", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// resolveInputPaths returns the positional inputs, or ErrNoInput.
func resolveInputPaths(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, ErrNoInput
	}
	return args, nil
}

// resolveOutputDir picks the output location. The flag wins over config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
