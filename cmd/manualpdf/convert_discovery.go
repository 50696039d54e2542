package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	manualpdf "github.com/alnah/go-manualpdf"
	"github.com/alnah/go-manualpdf/internal/config"
	"github.com/alnah/go-manualpdf/internal/fileutil"
)

// Manual is one Markdown file to convert with the places its screenshots
// and logo come from.
type Manual struct {
	InputPath  string
	OutputPath string
	ImagesDir  string
	LogoPath   string // empty = no logo
}

// discoverManuals expands inputs into manuals. A directory contributes its
// top-level Markdown files; its subdirectories are screenshot folders.
func discoverManuals(inputs []string, outputDir string, in config.InputConfig) ([]Manual, error) {
	var manuals []Manual
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := validateMarkdownExtension(input); err != nil {
				return nil, err
			}
			outPath := resolveOutputPath(input, outputDir, "")
			manuals = append(manuals, newManual(input, outPath, filepath.Dir(input), in))
			continue
		}

		entries, err := os.ReadDir(input)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", input, err)
		}
		for _, e := range entries {
			if e.IsDir() || !fileutil.IsMarkdownName(e.Name()) {
				continue
			}
			path := filepath.Join(input, e.Name())
			outPath := resolveOutputPath(path, outputDir, input)
			manuals = append(manuals, newManual(path, outPath, input, in))
		}
	}
	return manuals, nil
}

// newManual applies the configured screenshot directory and logo, falling
// back to the manual's own directory.
func newManual(path, outPath, dir string, in config.InputConfig) Manual {
	m := Manual{
		InputPath:  path,
		OutputPath: outPath,
		ImagesDir:  dir,
		LogoPath:   in.Logo,
	}
	if in.ImagesDir != "" {
		m.ImagesDir = in.ImagesDir
	}
	if m.LogoPath == "" {
		m.LogoPath = fileutil.FindLogo(dir)
	}
	return m
}

// loadImages reads every screenshot under m.ImagesDir except the logo.
// Screenshots are named by base file name.
func loadImages(m Manual) ([]manualpdf.File, error) {
	paths, err := fileutil.FindImages(m.ImagesDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadImage, err)
	}

	logo := ""
	if m.LogoPath != "" {
		logo = filepath.Clean(m.LogoPath)
	}

	files := make([]manualpdf.File, 0, len(paths))
	for _, p := range paths {
		if filepath.Clean(p) == logo {
			continue
		}
		data, err := os.ReadFile(p) // #nosec G304 -- discovered path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadImage, err)
		}
		files = append(files, manualpdf.File{Name: filepath.Base(p), Data: data})
	}
	return files, nil
}

// loadLogo reads the logo file, or returns nil when path is empty.
func loadLogo(path string) (*manualpdf.File, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: logo: %v", ErrReadImage, err)
	}
	return &manualpdf.File{Name: filepath.Base(path), Data: data}, nil
}

// resolveOutputPath determines the PDF output path for a markdown file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".pdf")
	}

	if strings.HasSuffix(outputDir, ".pdf") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+".pdf")
		}
	}

	return filepath.Join(outputDir, base+".pdf")
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !fileutil.IsMarkdownName(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > manualpdf.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, manualpdf.MaxPoolSize)
	}
	return nil
}

// htmlOutputPath returns the HTML path corresponding to a PDF path.
func htmlOutputPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, ".pdf") + ".html"
}
