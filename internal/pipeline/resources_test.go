package pipeline

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestResolveRelativeLinks(t *testing.T) {
	t.Parallel()

	sourceDir := "/notes"
	if runtime.GOOS == "windows" {
		sourceDir = `C:\notes`
	}
	imageURL := fileURL(filepath.Join(sourceDir, "img", "plot.png"))

	tests := []struct {
		name         string
		html         string
		sourceDir    string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "relative image",
			html:         `<img src="img/plot.png">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="` + imageURL + `"`},
		},
		{
			name:         "dot slash image",
			html:         `<img src="./img/plot.png">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="` + imageURL + `"`},
		},
		{
			name:         "relative link",
			html:         `<a href="other.md">next</a>`,
			sourceDir:    sourceDir,
			wantContains: []string{`href="file://`},
		},
		{
			name:         "anchor untouched",
			html:         `<a href="#eq-1">see</a>`,
			sourceDir:    sourceDir,
			wantContains: []string{`href="#eq-1"`},
		},
		{
			name:         "url untouched",
			html:         `<img src="https://example.com/a.png">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="https://example.com/a.png"`},
		},
		{
			name:         "mailto untouched",
			html:         `<a href="mailto:a@example.com">mail</a>`,
			sourceDir:    sourceDir,
			wantContains: []string{`href="mailto:a@example.com"`},
		},
		{
			name:         "data uri untouched",
			html:         `<img src="data:image/png;base64,AAAA">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="data:image/png;base64,AAAA"`},
		},
		{
			name:         "traversal untouched",
			html:         `<img src="../../etc/passwd">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="../../etc/passwd"`},
			wantExcludes: []string{"file://"},
		},
		{
			name:         "empty source dir",
			html:         `<img src="img/plot.png">`,
			sourceDir:    "",
			wantContains: []string{`<img src="img/plot.png">`},
		},
		{
			name:         "full document keeps math",
			html:         `<!DOCTYPE html><html><head></head><body><math><mi>x</mi></math><img src="a.png"></body></html>`,
			sourceDir:    sourceDir,
			wantContains: []string{"<!DOCTYPE html>", "<math><mi>x</mi></math>", `src="file://`},
		},
		{
			name:         "fragment not wrapped",
			html:         `<p><img src="a.png"></p>`,
			sourceDir:    sourceDir,
			wantExcludes: []string{"<html>", "<body>"},
			wantContains: []string{`<p><img src="file://`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveRelativeLinks(tt.html, tt.sourceDir)
			if err != nil {
				t.Fatalf("ResolveRelativeLinks() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("missing %q in %q", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("unexpected %q in %q", exclude, got)
				}
			}
		})
	}
}

func TestIsLocalRelative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ref  string
		want bool
	}{
		{"img/a.png", true},
		{"./a.png", true},
		{"../a.png", true},
		{"", false},
		{"#top", false},
		{"//cdn.example.com/a.png", false},
		{"/abs/a.png", false},
		{"https://example.com", false},
		{"file:///a.png", false},
		{"data:image/png;base64,AA", false},
	}

	for _, tt := range tests {
		if got := isLocalRelative(tt.ref); got != tt.want {
			t.Errorf("isLocalRelative(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}
