package assets

import (
	"embed"
	"fmt"
)

//go:embed styles/* templates/* data/*
var files embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	b, err := e.load(styleKind, name)
	return string(b), err
}

func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	b, err := e.load(templateKind, name)
	return string(b), err
}

func (e *EmbeddedLoader) LoadData(name string) ([]byte, error) {
	return e.load(dataKind, name)
}

func (e *EmbeddedLoader) load(kind assetKind, name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	content, err := files.ReadFile(kind.dir + "/" + name + kind.ext)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", kind.notFound, name)
	}
	return content, nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
