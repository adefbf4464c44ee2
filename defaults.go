package mdlayout

import (
	"fmt"
	"sync"

	"github.com/alnah/go-mdlayout/internal/assets"
)

var (
	defaultsOnce sync.Once
	defaultsSeed *Collection
)

// DefaultCollection returns a fresh copy of the built-in template collection.
func DefaultCollection() *Collection {
	defaultsOnce.Do(func() {
		c, err := ParseCollection(assets.DefaultTemplates())
		if err != nil {
			// The seed ships with the binary; failing here is a packaging bug.
			panic(fmt.Sprintf("mdlayout: built-in templates are invalid: %v", err))
		}
		defaultsSeed = c
	})
	return defaultsSeed.Clone()
}

// LoadDefaultCollection parses a default collection from an asset loader,
// letting a custom asset directory replace the built-in seed.
func LoadDefaultCollection(loader assets.AssetLoader) (*Collection, error) {
	data, err := loader.LoadData(assets.DefaultTemplatesName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return ParseCollection(data)
}
