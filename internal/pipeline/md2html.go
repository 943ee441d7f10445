package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates goldmark failed to render the page.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultTitle is used when a page has no title of its own.
const DefaultTitle = "Notes"

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// HTMLConverter converts a Markdown page to a complete HTML document.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content, title string) (string, error)
}

// GoldmarkConverter renders Markdown with GFM, footnotes, chroma
// highlighting and equation blocks.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter builds the goldmark pipeline. A nil equations renderer
// leaves equation blocks as ordinary code blocks.
func NewGoldmarkConverter(equations EquationRenderer) *GoldmarkConverter {
	extenders := []goldmark.Extender{
		extension.GFM,
		extension.Footnote,
		highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		),
	}
	if equations != nil {
		extenders = append(extenders, NewEquationExtension(equations))
	}

	md := goldmark.New(
		goldmark.WithExtensions(extenders...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			gmhtml.WithXHTML(),
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML renders content inside the page template. goldmark has no context
// support, so conversion runs on its own goroutine and ctx only bounds the wait.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %w", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: WrapDocument(title, buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// WrapDocument places an HTML body fragment in the page template. An empty
// title becomes DefaultTitle.
func WrapDocument(title, body string) string {
	if title == "" {
		title = DefaultTitle
	}
	return fmt.Sprintf(htmlTemplate, html.EscapeString(title), body)
}

var _ HTMLConverter = (*GoldmarkConverter)(nil)
