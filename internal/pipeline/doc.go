// Package pipeline turns a Markdown page with equation blocks into a
// standalone HTML document.
//
// Stages, in the order the root package runs them:
//   - Markdown preprocessing (line endings, ==highlight== syntax)
//   - Markdown to HTML via goldmark, with an extension that hands every
//     fenced block tagged "equation" to an EquationRenderer
//   - relative image and link resolution against the source directory
//   - CSS injection into the document head
//
// FixNewlines is the paragraph-level post-processing step applied to
// rich text that mixes plain runs with rendered math.
package pipeline
