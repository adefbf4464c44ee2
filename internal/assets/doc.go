// Package assets provides the preview document shell, its base stylesheet and
// the built-in template collection. Assets can be loaded from embedded files
// or from a custom directory on disk.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (defaults)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver tries the custom FilesystemLoader first and falls back to
// EmbeddedLoader when the asset is not found, so a directory can override a
// single asset while keeping the other defaults.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css       # preview stylesheet (e.g., preview.css)
//	├── templates/
//	│   └── {name}.html      # preview document shell
//	└── data/
//	    └── {name}.json      # template collections (e.g., templates.json)
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
