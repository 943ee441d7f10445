package pipeline

import (
	"regexp"
	"strings"
)

var (
	lineBreaks = strings.NewReplacer(
		"\u000b", "<br>",
		"\n", "<br>",
		"\r", "<br>",
	)

	indentAfterBreak = regexp.MustCompile(`<br>(\s+)`)
)

// FixNewlines turns vertical tab, line feed and carriage return into <br>
// and keeps the indentation that follows a break by replacing each of its
// bytes with &nbsp;.
func FixNewlines(text string) string {
	text = lineBreaks.Replace(text)
	return indentAfterBreak.ReplaceAllStringFunc(text, func(m string) string {
		indent := len(m) - len("<br>")
		return "<br>" + strings.Repeat("&nbsp;", indent)
	})
}
