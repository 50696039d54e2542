package main

// Notes:
// - parseConvertFlags: we test defaults, every flag group, shorthands,
//   positional arguments and parse errors.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseConvertFlags - Flag groups
// ---------------------------------------------------------------------------

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		f, args := mustParse(t)
		if len(args) != 0 {
			t.Errorf("args = %v, want none", args)
		}
		if *f != (convertFlags{}) {
			t.Errorf("flags = %+v, want zero value", *f)
		}
	})

	t.Run("every flag", func(t *testing.T) {
		t.Parallel()

		f, args := mustParse(t,
			"-c", "work", "-q", "-v",
			"-o", "out", "-w", "4", "-t", "90s",
			"-i", "shots", "--logo", "logo.png",
			"--title", "Guide",
			"-p", "a4", "--orientation", "landscape", "--margin", "1.25",
			"--mode", "heading", "--budget", "800", "--break-before", "h1,h2",
			"--no-autolink", "--require-images",
			"--style", "technical", "--asset-path", "/assets",
			"--html", "--html-only",
			"a.md", "b.md",
		)

		want := convertFlags{
			common:     commonFlags{config: "work", quiet: true, verbose: true},
			output:     "out",
			workers:    4,
			timeout:    "90s",
			input:      inputFlags{images: "shots", logo: "logo.png"},
			document:   documentFlags{title: "Guide"},
			page:       pageFlags{size: "a4", orientation: "landscape", margin: 1.25},
			pagination: paginationFlags{mode: "heading", budget: 800, breakBefore: "h1,h2"},
			link:       linkFlags{disabled: true, requireImages: true},
			assets:     assetFlags{style: "technical", assetPath: "/assets"},
			outputMode: outputFlags{html: true, htmlOnly: true},
		}
		if *f != want {
			t.Errorf("flags = %+v\nwant    %+v", *f, want)
		}
		if strings.Join(args, " ") != "a.md b.md" {
			t.Errorf("args = %v, want [a.md b.md]", args)
		}
	})

	t.Run("flags after positional", func(t *testing.T) {
		t.Parallel()

		f, args := mustParse(t, "guide.md", "--title", "Late")
		if f.document.title != "Late" {
			t.Errorf("title = %q, want Late", f.document.title)
		}
		if len(args) != 1 || args[0] != "guide.md" {
			t.Errorf("args = %v, want [guide.md]", args)
		}
	})
}

// ---------------------------------------------------------------------------
// TestParseConvertFlags_Errors - Invalid command lines
// ---------------------------------------------------------------------------

func TestParseConvertFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--cover"}},
		{"bad int", []string{"-w", "many"}},
		{"bad float", []string{"--margin", "wide"}},
		{"missing value", []string{"--title"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stderr bytes.Buffer
			if _, _, err := parseConvertFlags(tt.args, &stderr); err == nil {
				t.Errorf("parseConvertFlags(%v) succeeded, want error", tt.args)
			}
		})
	}

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		var stderr bytes.Buffer
		_, _, err := parseConvertFlags([]string{"--help"}, &stderr)
		if !errors.Is(err, flag.ErrHelp) {
			t.Errorf("error = %v, want flag.ErrHelp", err)
		}
		if !strings.Contains(stderr.String(), "Usage: manualpdf convert") {
			t.Errorf("stderr = %q, want convert usage", stderr.String())
		}
	})
}
