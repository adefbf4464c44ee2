package assets

import (
	"fmt"
	"strings"
)

// AssetLoader defines the contract for loading preview assets.
// Implementations may load from embedded assets, filesystem, etc.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML document shell by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)

	// LoadData loads a JSON data file by name (without .json extension).
	// Returns ErrDataNotFound if the file doesn't exist.
	LoadData(name string) ([]byte, error)
}

// assetKind describes where one kind of asset lives and how a miss is reported.
type assetKind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = assetKind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = assetKind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
	dataKind     = assetKind{dir: "data", ext: ".json", notFound: ErrDataNotFound}
)

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Rejects empty names and names containing path separators or dots.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
