package pipeline

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// EquationLanguage is the fenced code block info string that marks an
// equation block.
const EquationLanguage = "equation"

// EquationRenderer turns the raw body of an equation block into markup.
// The returned string is written to the page unescaped.
type EquationRenderer func(source []byte) (string, error)

// KindEquation is the goldmark node kind of an equation block.
var KindEquation = ast.NewNodeKind("Equation")

// EquationBlock is a fenced block whose body describes one equation.
type EquationBlock struct {
	ast.BaseBlock
}

// Kind implements ast.Node.
func (n *EquationBlock) Kind() ast.NodeKind {
	return KindEquation
}

// IsRaw implements ast.Node.
func (n *EquationBlock) IsRaw() bool {
	return true
}

// Dump implements ast.Node.
func (n *EquationBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Source joins the block's lines.
func (n *EquationBlock) Source(source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	return buf.Bytes()
}

type equationExtension struct {
	render EquationRenderer
}

// NewEquationExtension returns a goldmark extender that replaces
// "equation" fenced blocks with the output of render.
func NewEquationExtension(render EquationRenderer) goldmark.Extender {
	return &equationExtension{render: render}
}

func (e *equationExtension) Extend(md goldmark.Markdown) {
	md.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(equationTransformer{}, 100),
		),
	)
	md.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&equationNodeRenderer{render: e.render}, 100),
		),
	)
}

type equationTransformer struct{}

func (equationTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	var blocks []*ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fenced, ok := n.(*ast.FencedCodeBlock); ok &&
			bytes.Equal(fenced.Language(reader.Source()), []byte(EquationLanguage)) {
			blocks = append(blocks, fenced)
		}
		return ast.WalkContinue, nil
	})

	// Replacing while walking would break the sibling chain.
	for _, fenced := range blocks {
		parent := fenced.Parent()
		if parent == nil {
			continue
		}
		eq := &EquationBlock{}
		eq.SetLines(fenced.Lines())
		parent.ReplaceChild(parent, fenced, eq)
	}
}

type equationNodeRenderer struct {
	render EquationRenderer
}

func (r *equationNodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindEquation, r.renderEquation)
}

func (r *equationNodeRenderer) renderEquation(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	markup, err := r.render(n.(*EquationBlock).Source(source))
	if err != nil {
		return ast.WalkStop, err
	}

	_, _ = w.WriteString(`<div class="equation">`)
	_, _ = w.WriteString(markup)
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}

var (
	_ parser.ASTTransformer = equationTransformer{}
	_ renderer.NodeRenderer = (*equationNodeRenderer)(nil)
)
