package assets

// Names of the built-in assets.
const (
	DefaultStyleName     = "preview"   // styles/preview.css
	ShellTemplateName    = "preview"   // templates/preview.html
	DefaultTemplatesName = "templates" // data/templates.json
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// DefaultTemplates returns the built-in template collection as JSON.
func DefaultTemplates() []byte {
	b, err := defaultLoader.LoadData(DefaultTemplatesName)
	if err != nil {
		// Embedded at build time; a miss is a packaging bug.
		panic(err)
	}
	return b
}
