package main

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/alnah/go-onemath/internal/config"
)

func TestResolveInputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		cfg     *config.Config
		want    string
		wantErr error
	}{
		{
			name: "args take precedence over config",
			args: []string{"page.md"},
			cfg:  &config.Config{Input: config.InputConfig{DefaultDir: "./notes/"}},
			want: "page.md",
		},
		{
			name: "config fallback when no args",
			cfg:  &config.Config{Input: config.InputConfig{DefaultDir: "./notes/"}},
			want: "./notes/",
		},
		{
			name:    "error when no args and no config",
			cfg:     &config.Config{},
			wantErr: ErrNoInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveInputPath(tt.args, tt.cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveInputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		want      string
	}{
		{"next to source", filepath.Join("notes", "a.md"), "", "", filepath.Join("notes", "a.html")},
		{"segment list", filepath.Join("notes", "eq.yaml"), "", "", filepath.Join("notes", "eq.html")},
		{"explicit file", "a.md", "out.html", "", "out.html"},
		{"output dir", "a.md", "site", "", filepath.Join("site", "a.html")},
		{"mirrors tree", filepath.Join("notes", "ch1", "a.md"), "site", "notes", filepath.Join("site", "ch1", "a.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveOutputPath(tt.input, tt.outputDir, tt.baseDir); got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDiscoverFiles - Page discovery in files and directory trees
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	t.Run("directory tree", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "a.md", "# A")
		writeFile(t, dir, "eq.yml", radicalSegments)
		writeFile(t, dir, filepath.Join("ch1", "b.markdown"), "# B")
		writeFile(t, dir, "notes.txt", "skip")
		writeFile(t, dir, filepath.Join(".git", "c.md"), "# hidden")

		pages, err := discoverFiles(dir, "")
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}

		var got []string
		for _, p := range pages {
			rel, _ := filepath.Rel(dir, p.InputPath)
			got = append(got, rel)
		}
		sort.Strings(got)
		want := []string{"a.md", filepath.Join("ch1", "b.markdown"), "eq.yml"}
		if len(got) != len(want) {
			t.Fatalf("pages = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("page[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("single file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "page.md", "# P")
		pages, err := discoverFiles(path, "")
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if len(pages) != 1 || pages[0].InputPath != path {
			t.Errorf("pages = %+v", pages)
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "page.txt", "text")
		if _, err := discoverFiles(path, ""); !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("error = %v, want ErrInvalidExtension", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "absent.md")
		if _, err := discoverFiles(missing, ""); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})
}
