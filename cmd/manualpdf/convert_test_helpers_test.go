package main

// Notes:
// - This file contains fakes and fixtures shared across CLI tests.
// - The fake pool stands in for headless Chrome so runConvert can be driven
//   end to end without a browser.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	manualpdf "github.com/alnah/go-manualpdf"
)

// ---------------------------------------------------------------------------
// Fake Implementations - For unit testing
// ---------------------------------------------------------------------------

// fakeConverter records every input and returns a fixed result.
type fakeConverter struct {
	mu     sync.Mutex
	inputs []manualpdf.Input
	result manualpdf.ConvertResult
	err    error
}

func (f *fakeConverter) Convert(_ context.Context, input manualpdf.Input) (*manualpdf.ConvertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	res := f.result
	if res.HTML == nil {
		res.HTML = []byte("<html>manual</html>")
	}
	if res.PDF == nil && !input.HTMLOnly {
		res.PDF = []byte("%PDF-1.7 fake")
	}
	return &res, nil
}

func (f *fakeConverter) received() []manualpdf.Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]manualpdf.Input(nil), f.inputs...)
}

// fakePool hands out a single shared fakeConverter.
type fakePool struct {
	conv       *fakeConverter
	size       int
	acquireErr error
	closeErr   error

	mu       sync.Mutex
	closed   bool
	released int
}

func (p *fakePool) Acquire() (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}

func (p *fakePool) Release(CLIConverter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *fakePool) Size() int { return p.size }

func (p *fakePool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return p.closeErr
}

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	pool     *fakePool
	poolSize int
	options  int
}

// newTestEnv returns an environment whose pool serves conv.
func newTestEnv(conv *fakeConverter) *testEnv {
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		pool:   &fakePool{conv: conv},
	}
	te.Environment = &Environment{
		Now:    DefaultEnv().Now,
		Stdout: te.stdout,
		Stderr: te.stderr,
		NewPool: func(size int, opts ...manualpdf.Option) Pool {
			te.poolSize = size
			te.options = len(opts)
			te.pool.size = size
			return te.pool
		},
	}
	return te
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

const testManual = `# Installation Guide

### 1.1 Download
Get the installer.

### 1.2 Install
Run it.
`

// writeFile creates path (and its parents) with data.
func writeFile(t *testing.T, path string, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// newManualDir creates a manual with two screenshots and a logo.
func newManualDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "guide.md"), testManual)
	writeFile(t, filepath.Join(dir, "01-02_install.png"), "png-2")
	writeFile(t, filepath.Join(dir, "01-01_download.png"), "png-1")
	writeFile(t, filepath.Join(dir, "logo.png"), "logo")
	return dir
}

// mustParse parses convert flags or fails the test.
func mustParse(t *testing.T, args ...string) (*convertFlags, []string) {
	t.Helper()
	flags, positional, err := parseConvertFlags(args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseConvertFlags(%v) error: %v", args, err)
	}
	return flags, positional
}
