package main

// Notes:
// - discoverManuals: we test single files, directories (top level only),
//   configured screenshot directories and logo discovery.
// - loadImages/loadLogo: we test logo exclusion, base naming and errors.
// - resolveOutputPath, validateMarkdownExtension, validateWorkers and
//   htmlOutputPath: pure functions, table-driven.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	manualpdf "github.com/alnah/go-manualpdf"
	"github.com/alnah/go-manualpdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestDiscoverManuals - File and directory inputs
// ---------------------------------------------------------------------------

func TestDiscoverManuals(t *testing.T) {
	t.Parallel()

	dir := newManualDir(t)
	writeFile(t, filepath.Join(dir, "admin.MD"), "# Admin")
	writeFile(t, filepath.Join(dir, "readme.txt"), "x")
	writeFile(t, filepath.Join(dir, "chapter", "nested.md"), "# Nested")

	t.Run("single file", func(t *testing.T) {
		t.Parallel()

		manuals, err := discoverManuals([]string{filepath.Join(dir, "guide.md")}, "", config.InputConfig{})
		if err != nil {
			t.Fatalf("discoverManuals() error: %v", err)
		}
		if len(manuals) != 1 {
			t.Fatalf("got %d manuals, want 1", len(manuals))
		}
		m := manuals[0]
		if m.OutputPath != filepath.Join(dir, "guide.pdf") {
			t.Errorf("OutputPath = %q, want guide.pdf beside the manual", m.OutputPath)
		}
		if m.ImagesDir != dir {
			t.Errorf("ImagesDir = %q, want %q", m.ImagesDir, dir)
		}
		if m.LogoPath != filepath.Join(dir, "logo.png") {
			t.Errorf("LogoPath = %q, want logo.png", m.LogoPath)
		}
	})

	t.Run("directory takes top-level manuals only", func(t *testing.T) {
		t.Parallel()

		manuals, err := discoverManuals([]string{dir}, "", config.InputConfig{})
		if err != nil {
			t.Fatalf("discoverManuals() error: %v", err)
		}
		got := map[string]bool{}
		for _, m := range manuals {
			got[filepath.Base(m.InputPath)] = true
		}
		if len(got) != 2 || !got["guide.md"] || !got["admin.MD"] {
			t.Errorf("manuals = %v, want guide.md and admin.MD", got)
		}
	})

	t.Run("configured inputs win", func(t *testing.T) {
		t.Parallel()

		in := config.InputConfig{ImagesDir: "/shots", Logo: "/brand/logo.svg"}
		manuals, err := discoverManuals([]string{filepath.Join(dir, "guide.md")}, "", in)
		if err != nil {
			t.Fatalf("discoverManuals() error: %v", err)
		}
		if manuals[0].ImagesDir != "/shots" || manuals[0].LogoPath != "/brand/logo.svg" {
			t.Errorf("manual = %+v, want configured images dir and logo", manuals[0])
		}
	})

	t.Run("no logo", func(t *testing.T) {
		t.Parallel()

		bare := t.TempDir()
		writeFile(t, filepath.Join(bare, "m.md"), "# M")
		manuals, err := discoverManuals([]string{bare}, "", config.InputConfig{})
		if err != nil {
			t.Fatalf("discoverManuals() error: %v", err)
		}
		if manuals[0].LogoPath != "" {
			t.Errorf("LogoPath = %q, want empty", manuals[0].LogoPath)
		}
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		if _, err := discoverManuals([]string{filepath.Join(dir, "none.md")}, "", config.InputConfig{}); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("missing file error = %v, want os.ErrNotExist", err)
		}
		if _, err := discoverManuals([]string{filepath.Join(dir, "readme.txt")}, "", config.InputConfig{}); !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("text file error = %v, want ErrInvalidExtension", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadImages - Screenshot collection
// ---------------------------------------------------------------------------

func TestLoadImages(t *testing.T) {
	t.Parallel()

	dir := newManualDir(t)
	writeFile(t, filepath.Join(dir, "more", "01-10_finish.png"), "png-10")
	writeFile(t, filepath.Join(dir, ".cache", "01-03_hidden.png"), "hidden")

	files, err := loadImages(Manual{ImagesDir: dir, LogoPath: filepath.Join(dir, "logo.png")})
	if err != nil {
		t.Fatalf("loadImages() error: %v", err)
	}

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	want := []string{"01-01_download.png", "01-02_install.png", "01-10_finish.png"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	got := map[string]bool{}
	for _, n := range names {
		got[n] = true
	}
	for _, w := range want {
		if !got[w] {
			t.Errorf("missing %s in %v", w, names)
		}
	}
	if string(files[0].Data) == "" {
		t.Error("image data not loaded")
	}
}

func TestLoadLogo(t *testing.T) {
	t.Parallel()

	dir := newManualDir(t)

	logo, err := loadLogo("")
	if err != nil || logo != nil {
		t.Errorf("loadLogo(\"\") = %v, %v, want nil, nil", logo, err)
	}

	logo, err = loadLogo(filepath.Join(dir, "logo.png"))
	if err != nil {
		t.Fatalf("loadLogo() error: %v", err)
	}
	if logo.Name != "logo.png" || string(logo.Data) != "logo" {
		t.Errorf("logo = %+v, want logo.png with its bytes", logo)
	}

	if _, err := loadLogo(filepath.Join(dir, "none.png")); !errors.Is(err, ErrReadImage) {
		t.Errorf("missing logo error = %v, want ErrReadImage", err)
	}
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath - Output location rules
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		want      string
	}{
		{"beside input", "docs/guide.md", "", "", filepath.Join("docs", "guide.pdf")},
		{"explicit pdf", "docs/guide.md", "out/manual.pdf", "", "out/manual.pdf"},
		{"output dir", "docs/guide.md", "out", "", filepath.Join("out", "guide.pdf")},
		{"output dir keeps layout", "docs/guide.markdown", "out", "docs", filepath.Join("out", "guide.pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveOutputPath(tt.input, tt.outputDir, tt.baseDir); got != tt.want {
				t.Errorf("resolveOutputPath(%q, %q, %q) = %q, want %q", tt.input, tt.outputDir, tt.baseDir, got, tt.want)
			}
		})
	}
}

func TestValidateMarkdownExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"guide.md", false},
		{"guide.markdown", false},
		{"GUIDE.MD", false},
		{"guide.txt", true},
		{"guide", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			err := validateMarkdownExtension(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateMarkdownExtension(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidExtension) {
				t.Errorf("error = %v, want ErrInvalidExtension", err)
			}
		})
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{manualpdf.MaxPoolSize, false},
		{-1, true},
		{manualpdf.MaxPoolSize + 1, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", tt.n, err)
		}
	}
}

func TestHTMLOutputPath(t *testing.T) {
	t.Parallel()

	if got := htmlOutputPath("out/guide.pdf"); got != "out/guide.html" {
		t.Errorf("htmlOutputPath() = %q, want out/guide.html", got)
	}
}
