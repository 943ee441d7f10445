package onemath

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-onemath/internal/assets"
	"github.com/alnah/go-onemath/internal/fileutil"
	"github.com/alnah/go-onemath/internal/mathml"
	"github.com/alnah/go-onemath/internal/pipeline"
	"github.com/alnah/go-onemath/internal/yamlutil"
)

var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ assets.StyleLoader            = (*assets.AssetResolver)(nil)
)

// Converter renders inline math to MathML and Markdown pages with equation
// blocks to standalone HTML. A Converter is safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	styles        assets.StyleLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
}

// NewConverter creates a Converter. It fails when the asset path is not a
// readable directory or the configured style cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout: defaultTimeout,
			logger:  zerolog.Nop(),
		},
		styles:       assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}
	c.htmlConverter = pipeline.NewGoldmarkConverter(c.renderEquationBlock)

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAssetPath, err)
		}
		c.styles = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}
	return c, nil
}

// RenderMath renders one equation, given as its ordered segments, to a
// <math> element. Unsupported features are logged and rendered without the
// feature; structural problems fail with ErrMathRender.
func (c *Converter) RenderMath(segments []Segment) (string, error) {
	segs, err := toMathSegments(segments)
	if err != nil {
		return "", err
	}

	out, err := mathml.Render(segs, c.cfg.logger)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMathRender, err)
	}
	return out, nil
}

// RenderParagraph renders a rich-text paragraph. Consecutive runs with the
// same Math flag form a group. Plain groups are escaped and emitted as is.
// A math group of n runs takes the next n objects, one per run; objects past
// the end of the list are treated as empty. Once objects are exhausted, a
// math group is rendered as a single fragment of its joined text. Line breaks
// in the result become <br> with their indentation kept.
func (c *Converter) RenderParagraph(runs []TextRun, objects []MathObject) (string, error) {
	var b strings.Builder
	offset := 0

	for start := 0; start < len(runs); {
		end := start + 1
		for end < len(runs) && runs[end].Math == runs[start].Math {
			end++
		}
		group := runs[start:end]
		start = end

		if !group[0].Math {
			for _, run := range group {
				b.WriteString(html.EscapeString(run.Text))
			}
			continue
		}

		var segments []Segment
		if offset >= len(objects) {
			var text strings.Builder
			for _, run := range group {
				text.WriteString(run.Text)
			}
			segments = []Segment{{Text: text.String()}}
		} else {
			segments = make([]Segment, len(group))
			for i, run := range group {
				segments[i].Text = run.Text
				if offset+i < len(objects) {
					segments[i].Object = &objects[offset+i]
				}
			}
			offset += len(group)
		}

		out, err := c.RenderMath(segments)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}

	if b.Len() == 0 {
		return "&nbsp;", nil
	}
	return pipeline.FixNewlines(b.String()), nil
}

// Convert renders a page to a standalone HTML document.
// Recovers from internal panics so a malformed page cannot crash the caller.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	var htmlContent string
	if input.Markdown != "" {
		md := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		htmlContent, err = c.htmlConverter.ToHTML(ctx, md, input.Title)
		if err != nil {
			return nil, fmt.Errorf("converting to HTML: %w", err)
		}
	} else {
		eq, err := c.RenderMath(input.Segments)
		if err != nil {
			return nil, err
		}
		htmlContent = pipeline.WrapDocument(input.Title, `<div class="equation">`+eq+"</div>")
	}

	if input.SourceDir != "" {
		htmlContent, err = pipeline.ResolveRelativeLinks(htmlContent, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("resolving relative links: %w", err)
		}
	}

	htmlContent = pipeline.ConvertMarkPlaceholders(htmlContent)

	// Style first so input CSS can override it.
	css := c.cfg.resolvedStyle
	if input.CSS != "" {
		css += "\n" + input.CSS
	}
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, css)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	c.cfg.logger.Debug().Int("bytes", len(htmlContent)).Msg("page rendered")
	return &ConvertResult{HTML: []byte(htmlContent)}, nil
}

// renderEquationBlock decodes the YAML segment list of an equation block and
// renders it.
func (c *Converter) renderEquationBlock(source []byte) (string, error) {
	segments, err := DecodeSegments(source)
	if err != nil {
		return "", err
	}
	return c.RenderMath(segments)
}

// DecodeSegments reads a YAML list of segments:
//
//	- text: "\uFDD0"
//	  object: {type: fraction, args: 2}
//	- text: "1"
//	- ...
//
// Unknown keys are rejected.
func DecodeSegments(data []byte) ([]Segment, error) {
	var segments []Segment
	if err := yamlutil.UnmarshalStrict(data, &segments); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEquationBlock, err)
	}
	for i := range segments {
		if err := segments[i].Object.Validate(); err != nil {
			return nil, fmt.Errorf("%w: segment %d: %w", ErrInvalidEquationBlock, i, err)
		}
	}
	return segments, nil
}

// resolveStyle turns the style option (name, file path or CSS content) into
// CSS once, when the converter is built.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		return nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	css, err := c.styles.LoadStyle(input)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return fmt.Errorf("%w: %q", ErrStyleNotFound, input)
		}
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

func (c *Converter) validateInput(input Input) error {
	if input.Markdown == "" && len(input.Segments) == 0 {
		return ErrEmptyMarkdown
	}
	for i := range input.Segments {
		if err := input.Segments[i].Object.Validate(); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return nil
}

// toMathSegments converts public segments to the parser's input.
func toMathSegments(segments []Segment) ([]mathml.Segment, error) {
	out := make([]mathml.Segment, len(segments))
	for i, s := range segments {
		obj, err := s.Object.toObject()
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		out[i] = mathml.Segment{Text: s.Text, Object: obj}
	}
	return out, nil
}
