package assets

// StyleLoader loads a CSS style by name (without the .css extension).
//
// Implementations return ErrStyleNotFound when the style does not exist and
// ErrInvalidAssetName when the name could escape the style directory.
type StyleLoader interface {
	LoadStyle(name string) (string, error)
}
