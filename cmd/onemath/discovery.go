package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-onemath/internal/config"
	"github.com/alnah/go-onemath/internal/fileutil"
)

var (
	markdownExts = []string{".md", ".markdown"}
	segmentExts  = []string{".yaml", ".yml"}
)

const htmlExt = ".html"

// PageToRender pairs a source file with its HTML destination.
type PageToRender struct {
	InputPath  string
	OutputPath string
}

// isSegmentList reports whether path holds a YAML segment list rather than
// a Markdown page.
func isSegmentList(path string) bool {
	return fileutil.HasExtension(path, segmentExts...)
}

func isPage(path string) bool {
	return fileutil.HasExtension(path, markdownExts...) || isSegmentList(path)
}

// resolveInputPath picks the positional argument, then input.defaultDir.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// discoverFiles lists the pages under inputPath, a file or a directory.
func discoverFiles(inputPath, outputDir string) ([]PageToRender, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !isPage(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		return []PageToRender{{InputPath: inputPath, OutputPath: resolveOutputPath(inputPath, outputDir, "")}}, nil
	}

	var pages []PageToRender
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isPage(path) {
			return nil
		}
		pages = append(pages, PageToRender{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, outputDir, inputPath),
		})
		return nil
	})
	return pages, err
}

// resolveOutputPath maps a source file to its .html path. An outputDir that
// itself ends in .html names the output file of a single page.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+htmlExt)
	}
	if baseInputDir == "" && fileutil.HasExtension(outputDir, htmlExt) {
		return outputDir
	}
	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(rel), base+htmlExt)
		}
	}
	return filepath.Join(outputDir, base+htmlExt)
}
