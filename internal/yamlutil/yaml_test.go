package yamlutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-manualpdf/internal/yamlutil"
)

type testConfig struct {
	Name    string  `yaml:"name"`
	Count   int     `yaml:"count"`
	Budget  float64 `yaml:"budget"`
	Enabled bool    `yaml:"enabled"`
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		anyErr  bool
	}{
		{name: "valid", data: []byte("name: a\ncount: 2\nbudget: 900.5\nenabled: true"), dest: &testConfig{}},
		{name: "unknown field", data: []byte("name: a\ncolor: red"), dest: &testConfig{}, anyErr: true},
		{name: "empty", data: nil, dest: &testConfig{}, wantErr: yamlutil.ErrNilData},
		{name: "nil destination", data: []byte("name: a"), dest: nil, wantErr: yamlutil.ErrNilDestination},
		{name: "malformed", data: []byte("name: [unclosed"), dest: &testConfig{}, anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("UnmarshalStrict() error = %v, want %v", err, tt.wantErr)
				}
			case tt.anyErr:
				if err == nil {
					t.Error("UnmarshalStrict() expected error")
				}
			default:
				if err != nil {
					t.Fatalf("UnmarshalStrict() error = %v", err)
				}
				cfg := tt.dest.(*testConfig)
				if cfg.Name != "a" || cfg.Count != 2 || cfg.Budget != 900.5 || !cfg.Enabled {
					t.Errorf("decoded = %+v", cfg)
				}
			}
		})
	}
}

func TestUnmarshalStrict_SizeLimit(t *testing.T) {
	t.Parallel()

	data := []byte("name: " + strings.Repeat("x", yamlutil.MaxInputSize))
	err := yamlutil.UnmarshalStrict(data, &testConfig{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("UnmarshalStrict() error = %v, want ErrInputTooLarge", err)
	}
}

func TestDecodeFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "c.yaml")
	if err := os.WriteFile(path, []byte("name: file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var cfg testConfig
	if err := yamlutil.DecodeFile(path, &cfg); err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}
	if cfg.Name != "file" {
		t.Errorf("Name = %q, want file", cfg.Name)
	}

	err := yamlutil.DecodeFile(filepath.Join(dir, "missing.yaml"), &cfg)
	if !os.IsNotExist(err) {
		t.Errorf("DecodeFile(missing) error = %v, want not-exist", err)
	}
}
