// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/alnah/go-onemath/internal/mathml"
)

// configDirName must match config.DirName.
const configDirName = "go-onemath"

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large notebooks, use --timeout flag")
}

// ForConfigNotFound suggests --config, or creating the user-level file
// found among the searched paths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if filepath.Base(filepath.Dir(p)) == configDirName {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the styles that can be used instead.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForEquation explains an equation decoding or rendering failure.
// It returns "" for errors it has nothing to add to.
func ForEquation(err error) string {
	var hs []string
	switch {
	case errors.Is(err, mathml.ErrUnexpectedToken):
		hs = append(hs, "every start marker (\\uFDD0) needs a matching end marker (\\uFDEF) of the same object type")
	case errors.Is(err, mathml.ErrArgCount):
		hs = append(hs, "args must equal the number of separators (\\uFDEE) plus one")
	case errors.Is(err, mathml.ErrMissingField):
		hs = append(hs, "this object type needs char, char1, char2 or align set on its start segment")
	case errors.Is(err, mathml.ErrInvalidValue), errors.Is(err, mathml.ErrUnexpectedAlign):
		hs = append(hs, "check the object type name and its align value")
	default:
		return ""
	}
	hs = append(hs, "render with -v to log unsupported features")
	return formatHints(hs)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
