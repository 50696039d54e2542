package manualpdf

import (
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-manualpdf/internal/export"
	"github.com/alnah/go-manualpdf/internal/pipeline"
)

// WithTimeout sets the timeout applied to each Convert call.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("manualpdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStyle sets the base stylesheet: a style name ("default"), a path to a
// CSS file, or CSS content.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath sets a directory of custom styles and templates that take
// precedence over the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithPagination sets the default pagination. Input.Pagination overrides it.
func WithPagination(p Pagination) Option {
	return func(c *Converter) {
		c.cfg.pagination = &p
	}
}

// WithSettleDelay sets the pause between image settlement and printing.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Converter) {
		c.cfg.settleDelay = d
	}
}

// WithImageTimeout bounds how long export waits for images to load.
func WithImageTimeout(d time.Duration) Option {
	return func(c *Converter) {
		c.cfg.imageTimeout = d
	}
}

// withOpener replaces the browser with another rendering surface (testing).
func withOpener(o export.Opener) Option {
	return func(c *Converter) {
		c.opener = o
	}
}

// withPreprocessor replaces the Markdown preprocessor (testing).
func withPreprocessor(p pipeline.MarkdownPreprocessor) Option {
	return func(c *Converter) {
		c.preprocessor = p
	}
}
