// Package assets provides the CSS styles injected into rendered math pages.
//
// # Loaders
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - styles compiled into the binary
//	    ├── FilesystemLoader  - styles read from a directory on disk
//	    └── AssetResolver     - custom directory first, embedded fallback
//
// A custom directory only needs the styles it overrides:
//
//	{basePath}/
//	└── styles/
//	    └── {name}.css
//
// Style names are validated before they touch a filesystem, and the
// FilesystemLoader resolves symlinks so a lookup never leaves basePath.
package assets
