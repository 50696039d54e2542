package main

// Notes:
// - runConvert: driven end to end through a fake pool. We check what the
//   converter receives (screenshots, logo, title, page, flags) and what lands
//   on disk. Browser behavior is covered by the library's integration tests.
// - convertBatch: we test acquire failures and cancellation.
// - printResultsWithWriter: we test quiet, verbose and warning output.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	manualpdf "github.com/alnah/go-manualpdf"
	"github.com/alnah/go-manualpdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestRunConvert_SingleManual - Inputs handed to the converter
// ---------------------------------------------------------------------------

func TestRunConvert_SingleManual(t *testing.T) {
	t.Parallel()

	dir := newManualDir(t)
	conv := &fakeConverter{}
	env := newTestEnv(conv)

	flags, positional := mustParse(t, filepath.Join(dir, "guide.md"))
	if err := runConvert(context.Background(), positional, flags, env.Environment); err != nil {
		t.Fatalf("runConvert() error: %v", err)
	}

	inputs := conv.received()
	if len(inputs) != 1 {
		t.Fatalf("converter called %d times, want 1", len(inputs))
	}
	in := inputs[0]

	if in.Markdown != testManual {
		t.Errorf("Markdown = %q, want the manual content", in.Markdown)
	}
	if in.Title != "guide" {
		t.Errorf("Title = %q, want %q", in.Title, "guide")
	}

	var names []string
	for _, img := range in.Images {
		names = append(names, img.Name)
	}
	want := []string{"01-01_download.png", "01-02_install.png"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Images = %v, want %v (logo excluded, natural order)", names, want)
	}
	if in.Logo == nil || in.Logo.Name != "logo.png" {
		t.Errorf("Logo = %+v, want logo.png", in.Logo)
	}
	if in.Page != nil {
		t.Errorf("Page = %+v, want nil when no page flags are set", in.Page)
	}
	if in.DisableAutoLink || in.RequireImages || in.HTMLOnly {
		t.Errorf("unexpected flags in input: %+v", in)
	}

	pdf, err := os.ReadFile(filepath.Join(dir, "guide.pdf"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(pdf) != "%PDF-1.7 fake" {
		t.Errorf("output = %q, want the converter's PDF", pdf)
	}

	if !strings.Contains(env.stdout.String(), "Created "+filepath.Join(dir, "guide.pdf")) {
		t.Errorf("stdout = %q, want Created line", env.stdout.String())
	}
	if !env.pool.closed {
		t.Error("pool was not closed")
	}
	if env.poolSize != 1 {
		t.Errorf("pool size = %d, want 1 for a single manual", env.poolSize)
	}
}

// ---------------------------------------------------------------------------
// TestRunConvert_FlagsReachInput - CLI flags become converter input
// ---------------------------------------------------------------------------

func TestRunConvert_FlagsReachInput(t *testing.T) {
	t.Parallel()

	dir := newManualDir(t)
	shots := t.TempDir()
	writeFile(t, filepath.Join(shots, "03-01_other.png"), "png")
	logo := filepath.Join(t.TempDir(), "brand.png")
	writeFile(t, logo, "brand")

	conv := &fakeConverter{}
	env := newTestEnv(conv)

	flags, positional := mustParse(t,
		"--title", "Operator Manual",
		"-p", "A4",
		"--orientation", "landscape",
		"-i", shots,
		"--logo", logo,
		"--no-autolink",
		"--require-images",
		filepath.Join(dir, "guide.md"),
	)
	if err := runConvert(context.Background(), positional, flags, env.Environment); err != nil {
		t.Fatalf("runConvert() error: %v", err)
	}

	in := conv.received()[0]
	if in.Title != "Operator Manual" {
		t.Errorf("Title = %q, want Operator Manual", in.Title)
	}
	if in.Page == nil || in.Page.Size != "a4" || in.Page.Orientation != "landscape" || in.Page.Margin != manualpdf.DefaultMargin {
		t.Errorf("Page = %+v, want a4 landscape with default margin", in.Page)
	}
	if len(in.Images) != 1 || in.Images[0].Name != "03-01_other.png" {
		t.Errorf("Images = %+v, want only the --images directory", in.Images)
	}
	if in.Logo == nil || in.Logo.Name != "brand.png" {
		t.Errorf("Logo = %+v, want brand.png", in.Logo)
	}
	if !in.DisableAutoLink {
		t.Error("DisableAutoLink = false, want true")
	}
	if !in.RequireImages {
		t.Error("RequireImages = false, want true")
	}
}

// ---------------------------------------------------------------------------
// TestRunConvert_Directory - Batch conversion into an output directory
// ---------------------------------------------------------------------------

func TestRunConvert_Directory(t *testing.T) {
	t.Parallel()

	dir := newManualDir(t)
	writeFile(t, filepath.Join(dir, "admin.markdown"), "# Admin\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	out := filepath.Join(t.TempDir(), "out")

	conv := &fakeConverter{}
	env := newTestEnv(conv)

	flags, positional := mustParse(t, "-o", out, "-w", "2", dir)
	if err := runConvert(context.Background(), positional, flags, env.Environment); err != nil {
		t.Fatalf("runConvert() error: %v", err)
	}

	for _, name := range []string{"guide.pdf", "admin.pdf"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
	if got := len(conv.received()); got != 2 {
		t.Errorf("converter called %d times, want 2", got)
	}
	if !strings.Contains(env.stdout.String(), "2 succeeded, 0 failed") {
		t.Errorf("stdout = %q, want summary", env.stdout.String())
	}
}

// ---------------------------------------------------------------------------
// TestRunConvert_HTMLOutput - --html and --html-only
// ---------------------------------------------------------------------------

func TestRunConvert_HTMLOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    string
		wantPDF bool
	}{
		{"html alongside pdf", "--html", true},
		{"html only", "--html-only", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newManualDir(t)
			conv := &fakeConverter{}
			env := newTestEnv(conv)

			flags, positional := mustParse(t, tt.flag, filepath.Join(dir, "guide.md"))
			if err := runConvert(context.Background(), positional, flags, env.Environment); err != nil {
				t.Fatalf("runConvert() error: %v", err)
			}

			if _, err := os.Stat(filepath.Join(dir, "guide.html")); err != nil {
				t.Errorf("missing HTML output: %v", err)
			}
			_, err := os.Stat(filepath.Join(dir, "guide.pdf"))
			if gotPDF := err == nil; gotPDF != tt.wantPDF {
				t.Errorf("PDF written = %v, want %v", gotPDF, tt.wantPDF)
			}
			if got := conv.received()[0].HTMLOnly; got != !tt.wantPDF {
				t.Errorf("HTMLOnly = %v, want %v", got, !tt.wantPDF)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunConvert_Errors - Validation before any conversion
// ---------------------------------------------------------------------------

func TestRunConvert_Errors(t *testing.T) {
	t.Parallel()

	dir := newManualDir(t)
	manual := filepath.Join(dir, "guide.md")
	text := filepath.Join(dir, "notes.txt")
	writeFile(t, text, "x")
	empty := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no input", nil, ErrNoInput},
		{"missing file", []string{filepath.Join(dir, "nope.md")}, os.ErrNotExist},
		{"wrong extension", []string{text}, ErrInvalidExtension},
		{"empty directory", []string{empty}, ErrNoManuals},
		{"missing images dir", []string{"-i", filepath.Join(dir, "nope"), manual}, ErrReadImage},
		{"negative workers", []string{"-w", "-1", manual}, ErrInvalidWorkerCount},
		{"too many workers", []string{"-w", "99", manual}, ErrInvalidWorkerCount},
		{"bad timeout", []string{"-t", "soon", manual}, ErrInvalidTimeout},
		{"zero timeout", []string{"-t", "0s", manual}, ErrInvalidTimeout},
		{"bad page size", []string{"-p", "a5", manual}, config.ErrInvalidValue},
		{"margin too small", []string{"--margin", "0.1", manual}, manualpdf.ErrInvalidMargin},
		{"bad mode", []string{"--mode", "words", manual}, manualpdf.ErrInvalidMode},
		{"bad break level", []string{"--break-before", "h7", manual}, manualpdf.ErrInvalidBreakLevel},
		{"negative budget", []string{"--budget", "-5", manual}, manualpdf.ErrInvalidBudget},
		{"missing config", []string{"-c", filepath.Join(dir, "none.yaml"), manual}, config.ErrConfigNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := &fakeConverter{}
			env := newTestEnv(conv)
			flags, positional := mustParse(t, tt.args...)

			err := runConvert(context.Background(), positional, flags, env.Environment)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("runConvert() error = %v, want %v", err, tt.wantErr)
			}
			if got := len(conv.received()); got != 0 {
				t.Errorf("converter called %d times, want 0", got)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunConvert_ConversionFailure - Per-manual errors surface in the result
// ---------------------------------------------------------------------------

func TestRunConvert_ConversionFailure(t *testing.T) {
	t.Parallel()

	dir := newManualDir(t)
	conv := &fakeConverter{err: manualpdf.ErrBrowserConnect}
	env := newTestEnv(conv)

	flags, positional := mustParse(t, filepath.Join(dir, "guide.md"))
	err := runConvert(context.Background(), positional, flags, env.Environment)

	if !errors.Is(err, ErrConversionsFailed) {
		t.Errorf("error = %v, want ErrConversionsFailed", err)
	}
	if !errors.Is(err, manualpdf.ErrBrowserConnect) {
		t.Errorf("error = %v, want the converter error wrapped", err)
	}
	if got := exitCodeFor(err); got != ExitBrowser {
		t.Errorf("exitCodeFor() = %d, want %d", got, ExitBrowser)
	}
	if !strings.Contains(env.stderr.String(), "FAILED "+filepath.Join(dir, "guide.md")) {
		t.Errorf("stderr = %q, want FAILED line", env.stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "guide.pdf")); !os.IsNotExist(err) {
		t.Errorf("PDF should not be written on failure, stat error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestRunConvert_Warnings - Converter warnings and unresolved references
// ---------------------------------------------------------------------------

func TestRunConvert_Warnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		quiet      bool
		wantStderr bool
	}{
		{"printed by default", false, true},
		{"silenced by quiet", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newManualDir(t)
			conv := &fakeConverter{result: manualpdf.ConvertResult{
				Unresolved: []string{"missing.png"},
				Warnings:   []string{"no screenshot named missing.png"},
			}}
			env := newTestEnv(conv)

			args := []string{filepath.Join(dir, "guide.md")}
			if tt.quiet {
				args = append([]string{"-q"}, args...)
			}
			flags, positional := mustParse(t, args...)
			if err := runConvert(context.Background(), positional, flags, env.Environment); err != nil {
				t.Fatalf("runConvert() error: %v", err)
			}

			stderr := env.stderr.String()
			gotWarning := strings.Contains(stderr, "no screenshot named missing.png")
			gotHint := strings.Contains(stderr, "hint: missing: missing.png")
			if gotWarning != tt.wantStderr || gotHint != tt.wantStderr {
				t.Errorf("stderr = %q, want warnings printed = %v", stderr, tt.wantStderr)
			}
			if tt.quiet && env.stdout.Len() != 0 {
				t.Errorf("stdout = %q, want nothing when quiet", env.stdout.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvertBatch - Pool failures and cancellation
// ---------------------------------------------------------------------------

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	dir := newManualDir(t)
	manuals := []Manual{
		{InputPath: filepath.Join(dir, "guide.md"), OutputPath: filepath.Join(dir, "a.pdf"), ImagesDir: dir},
		{InputPath: filepath.Join(dir, "guide.md"), OutputPath: filepath.Join(dir, "b.pdf"), ImagesDir: dir},
	}
	params := &conversionParams{logger: zap.NewNop()}

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		pool := &fakePool{conv: &fakeConverter{}, size: 1}
		if got := convertBatch(context.Background(), pool, nil, params); got != nil {
			t.Errorf("convertBatch(nil) = %v, want nil", got)
		}
	})

	t.Run("acquire error fails every manual", func(t *testing.T) {
		t.Parallel()

		acquireErr := manualpdf.ErrBrowserConnect
		pool := &fakePool{conv: &fakeConverter{}, size: 1, acquireErr: acquireErr}

		results := convertBatch(context.Background(), pool, manuals, params)
		for i, r := range results {
			if !errors.Is(r.Err, acquireErr) {
				t.Errorf("results[%d].Err = %v, want %v", i, r.Err, acquireErr)
			}
		}
	})

	t.Run("canceled context skips conversion", func(t *testing.T) {
		t.Parallel()

		conv := &fakeConverter{}
		pool := &fakePool{conv: conv, size: 2}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results := convertBatch(ctx, pool, manuals, params)
		for i, r := range results {
			if !errors.Is(r.Err, context.Canceled) {
				t.Errorf("results[%d].Err = %v, want context.Canceled", i, r.Err)
			}
		}
		if got := len(conv.received()); got != 0 {
			t.Errorf("converter called %d times, want 0", got)
		}
		if pool.released != 2 {
			t.Errorf("released = %d, want 2", pool.released)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConvertFile_ReadErrors - Missing inputs map to CLI sentinels
// ---------------------------------------------------------------------------

func TestConvertFile_ReadErrors(t *testing.T) {
	t.Parallel()

	dir := newManualDir(t)
	params := &conversionParams{logger: zap.NewNop()}

	tests := []struct {
		name    string
		manual  Manual
		wantErr error
	}{
		{
			name:    "missing markdown",
			manual:  Manual{InputPath: filepath.Join(dir, "nope.md"), OutputPath: filepath.Join(dir, "x.pdf"), ImagesDir: dir},
			wantErr: ErrReadMarkdown,
		},
		{
			name:    "missing images dir",
			manual:  Manual{InputPath: filepath.Join(dir, "guide.md"), OutputPath: filepath.Join(dir, "x.pdf"), ImagesDir: filepath.Join(dir, "nope")},
			wantErr: ErrReadImage,
		},
		{
			name:    "missing logo",
			manual:  Manual{InputPath: filepath.Join(dir, "guide.md"), OutputPath: filepath.Join(dir, "x.pdf"), ImagesDir: dir, LogoPath: filepath.Join(dir, "nope.png")},
			wantErr: ErrReadImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := &fakeConverter{}
			r := convertFile(context.Background(), conv, tt.manual, params)
			if !errors.Is(r.Err, tt.wantErr) {
				t.Errorf("Err = %v, want %v", r.Err, tt.wantErr)
			}
			if r.Duration < 0 || r.Duration > time.Minute {
				t.Errorf("Duration = %v, want a measured duration", r.Duration)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPrintResultsWithWriter - Output formats
// ---------------------------------------------------------------------------

func TestPrintResultsWithWriter(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.md", OutputPath: "a.pdf", Pages: 3, Duration: 1500 * time.Millisecond},
		{InputPath: "b.md", Err: ErrReadMarkdown},
	}

	t.Run("normal", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(&fakeConverter{})
		failed := printResultsWithWriter(results, false, false, env.Environment)
		if failed != 1 {
			t.Errorf("failed = %d, want 1", failed)
		}
		if !strings.Contains(env.stdout.String(), "Created a.pdf") {
			t.Errorf("stdout = %q, want Created line", env.stdout.String())
		}
		if !strings.Contains(env.stdout.String(), "1 succeeded, 1 failed") {
			t.Errorf("stdout = %q, want summary", env.stdout.String())
		}
		if !strings.Contains(env.stderr.String(), "FAILED b.md") {
			t.Errorf("stderr = %q, want FAILED line", env.stderr.String())
		}
	})

	t.Run("verbose", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(&fakeConverter{})
		printResultsWithWriter(results, false, true, env.Environment)
		if !strings.Contains(env.stdout.String(), "a.md -> a.pdf (3 pages, 1.5s)") {
			t.Errorf("stdout = %q, want verbose line", env.stdout.String())
		}
	})

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(&fakeConverter{})
		printResultsWithWriter(results, true, false, env.Environment)
		if env.stdout.Len() != 0 {
			t.Errorf("stdout = %q, want empty", env.stdout.String())
		}
		if !strings.Contains(env.stderr.String(), "FAILED b.md") {
			t.Errorf("stderr = %q, want failures even when quiet", env.stderr.String())
		}
	})
}

func TestCountResults(t *testing.T) {
	t.Parallel()

	got := countResults([]ConversionResult{{}, {Err: ErrNoInput}, {}})
	if got.Succeeded != 2 || got.Failed != 1 {
		t.Errorf("countResults() = %+v, want 2 succeeded, 1 failed", got)
	}
}
