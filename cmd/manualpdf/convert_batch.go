package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	manualpdf "github.com/alnah/go-manualpdf"
	"github.com/alnah/go-manualpdf/internal/hints"
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Pages      int
	Unresolved []string
	Warnings   []string
	Err        error
	Duration   time.Duration
}

// convertBatch processes manuals concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, manuals []Manual, params *conversionParams) []ConversionResult {
	if len(manuals) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(manuals))

	results := make([]ConversionResult, len(manuals))
	var wg sync.WaitGroup
	jobs := make(chan int, len(manuals))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Converter creation failed, mark remaining jobs as failed
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: manuals[idx].InputPath,
						Err:       err,
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: manuals[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, manuals[idx], params)
			}
		}()
	}

	for i := range manuals {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single manual and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, m Manual, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  m.InputPath,
		OutputPath: m.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(m.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	images, err := loadImages(m)
	if err != nil {
		return fail(err)
	}
	logo, err := loadLogo(m.LogoPath)
	if err != nil {
		return fail(err)
	}

	outDir := filepath.Dir(m.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err))
	}

	title := params.title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(m.InputPath), filepath.Ext(m.InputPath))
	}

	params.logger.Debug("converting manual",
		zap.String("input", m.InputPath),
		zap.Int("screenshots", len(images)),
		zap.Bool("logo", logo != nil))

	convResult, err := conv.Convert(ctx, manualpdf.Input{
		Markdown:        string(content),
		Images:          images,
		Logo:            logo,
		Title:           title,
		Page:            params.page,
		DisableAutoLink: params.disableAutoLink,
		RequireImages:   params.requireImages,
		HTMLOnly:        params.htmlOnly,
	})
	if err != nil {
		return fail(err)
	}
	result.Pages = convResult.Pages
	result.Unresolved = convResult.Unresolved
	result.Warnings = convResult.Warnings

	// Write HTML output if requested (--html or --html-only)
	if params.htmlOnly || params.htmlOutput {
		htmlPath := htmlOutputPath(m.OutputPath)
		// #nosec G306 -- HTML files are meant to be readable
		if err := os.WriteFile(htmlPath, convResult.HTML, filePermissions); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		if params.htmlOnly {
			result.OutputPath = htmlPath
			result.Duration = time.Since(start)
			return result
		}
	}

	// #nosec G306 -- PDFs are meant to be readable
	if err := os.WriteFile(m.OutputPath, convResult.PDF, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
// Warnings and unresolved references go to stderr unless quiet.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		for _, w := range r.Warnings {
			fmt.Fprintf(env.Stderr, "warning: %s: %s\n", r.InputPath, w)
		}
		if len(r.Unresolved) > 0 {
			fmt.Fprintf(env.Stderr, "warning: %s: %d image reference(s) unresolved%s\n",
				r.InputPath, len(r.Unresolved), hints.ForUnresolved(r.Unresolved))
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d pages, %v)\n", r.InputPath, r.OutputPath, r.Pages, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
