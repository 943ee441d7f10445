package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName rejects names that are empty or contain a path separator
// or a dot. Dots are refused so a caller cannot pick another extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
