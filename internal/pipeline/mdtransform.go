package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// ==text== highlights travel through goldmark as Private Use Area
// placeholders so the renderer never needs raw HTML enabled.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==(.*?)==`)
	equationFence      = regexp.MustCompile("(?m)^(`{3,}|~{3,})[ \t]*" + EquationLanguage + "[ \t]*$")
)

// MarkdownPreprocessor rewrites Markdown before it reaches goldmark.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor normalizes line endings, converts ==highlights==
// and compresses runs of blank lines. Equation blocks are left untouched so
// a segment text containing "==" survives.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown returns content unchanged when ctx is already done.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = outsideEquations(content, func(s string) string {
		s = highlightPattern.ReplaceAllString(s, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
		return multipleBlankLines.ReplaceAllString(s, "\n\n")
	})
	return content
}

// outsideEquations applies fn to every part of content that is not inside an
// equation fence. An unterminated fence runs to the end of the content.
func outsideEquations(content string, fn func(string) string) string {
	var b strings.Builder
	b.Grow(len(content))

	for {
		loc := equationFence.FindStringSubmatchIndex(content)
		if loc == nil {
			b.WriteString(fn(content))
			return b.String()
		}
		b.WriteString(fn(content[:loc[0]]))

		bodyStart := loc[1]
		if bodyStart < len(content) && content[bodyStart] == '\n' {
			bodyStart++
		}
		end := closingFence(content[bodyStart:], content[loc[2]:loc[3]])
		if end < 0 {
			b.WriteString(content[loc[0]:])
			return b.String()
		}
		b.WriteString(content[loc[0] : bodyStart+end])
		content = content[bodyStart+end:]
	}
}

// closingFence returns the length of s up to and including the line that
// closes fence, or -1. A closing fence uses the same character and is at
// least as long as the opening one.
func closingFence(s, fence string) int {
	for offset := 0; offset < len(s); {
		line, _, found := strings.Cut(s[offset:], "\n")
		next := offset + len(line)
		if found {
			next++
		}
		trimmed := strings.TrimSpace(line)
		if len(trimmed) >= len(fence) && strings.Trim(trimmed, fence[:1]) == "" {
			return next
		}
		offset = next
	}
	return -1
}

// ConvertMarkPlaceholders turns highlight placeholders into <mark> tags once
// goldmark has escaped everything else.
func ConvertMarkPlaceholders(content string) string {
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>"),
		MarkEndPlaceholder, "</mark>",
	)
}
