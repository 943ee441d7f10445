package assets

// DefaultStyleName is the built-in style applied when none is configured.
const DefaultStyleName = "default"

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads an embedded style by name, without the .css extension.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// Styles lists the embedded style names in lexical order.
func Styles() []string {
	return defaultLoader.Styles()
}
