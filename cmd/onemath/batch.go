package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	onemath "github.com/alnah/go-onemath"
	"github.com/alnah/go-onemath/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---
	filePermissions = 0o644 // rw-r--r--
)

// PageConverter renders one page.
type PageConverter interface {
	Convert(ctx context.Context, input onemath.Input) (*onemath.ConvertResult, error)
}

var _ PageConverter = (*onemath.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (PageConverter, error)
	Release(PageConverter)
	Size() int
}

// converterPool adapts onemath.ConverterPool to Pool.
type converterPool struct {
	pool *onemath.ConverterPool
}

func (p *converterPool) Acquire() (PageConverter, error) {
	conv, err := p.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (p *converterPool) Release(c PageConverter) {
	if conv, ok := c.(*onemath.Converter); ok {
		p.pool.Release(conv)
	}
}

func (p *converterPool) Size() int { return p.pool.Size() }

// renderParams groups settings shared by every page of a batch.
type renderParams struct {
	title string // overrides per-page titles when set
}

// RenderResult holds the outcome of a single page.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// renderBatch renders pages concurrently, one converter per worker.
// Results keep the order of pages.
func renderBatch(ctx context.Context, pool Pool, pages []PageToRender, params *renderParams) []RenderResult {
	if len(pages) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(pages))
	results := make([]RenderResult, len(pages))
	jobs := make(chan int, len(pages))
	for i := range pages {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				for idx := range jobs {
					results[idx] = RenderResult{InputPath: pages[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{InputPath: pages[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = renderPage(ctx, conv, pages[idx], params)
			}
		}()
	}

	wg.Wait()
	return results
}

// renderPage reads one source file, converts it and writes the HTML.
func renderPage(ctx context.Context, conv PageConverter, p PageToRender, params *renderParams) RenderResult {
	start := time.Now()
	result := RenderResult{InputPath: p.InputPath, OutputPath: p.OutputPath}
	finish := func(err error) RenderResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	input, err := buildInput(p.InputPath, params)
	if err != nil {
		return finish(err)
	}

	if err := os.MkdirAll(filepath.Dir(p.OutputPath), dirPermissions); err != nil {
		return finish(fmt.Errorf("%w: creating output directory: %w", ErrWriteOutput, err))
	}

	out, err := conv.Convert(ctx, input)
	if err != nil {
		return finish(err)
	}

	if err := fileutil.WriteFileAtomic(p.OutputPath, out.HTML, filePermissions); err != nil {
		return finish(fmt.Errorf("%w: %w", ErrWriteOutput, err))
	}
	return finish(nil)
}

// buildInput reads a source file into a conversion input. Segment lists
// become single-equation pages; everything else is Markdown.
func buildInput(path string, params *renderParams) (onemath.Input, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		return onemath.Input{}, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if isSegmentList(path) {
		segments, err := onemath.DecodeSegments(content)
		if err != nil {
			return onemath.Input{}, err
		}
		return onemath.Input{Segments: segments, Title: pickTitle(params.title, "", name)}, nil
	}

	markdown := string(content)
	sourceDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		sourceDir = filepath.Dir(path)
	}
	return onemath.Input{
		Markdown:  markdown,
		Title:     pickTitle(params.title, extractFirstHeading(markdown), name),
		SourceDir: sourceDir,
	}, nil
}

// pickTitle returns the first non-empty candidate.
func pickTitle(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// firstHeadingPattern matches the first # heading in markdown content.
var firstHeadingPattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)

func extractFirstHeading(markdown string) string {
	if m := firstHeadingPattern.FindStringSubmatch(markdown); len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}
