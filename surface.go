package mdlayout

import (
	"bytes"
	"fmt"
	"html/template"
	"sync"

	"github.com/alnah/go-mdlayout/internal/assets"
	"github.com/alnah/go-mdlayout/internal/pipeline"
)

// Surface is the rendering target of a Preview: one document with a template
// style slot, an optional front region and a column region.
// Implementations return ErrRenderNotReady when they have no document yet.
type Surface interface {
	SetStyle(css string) error
	SetContent(c Content) error
	SetHost(h HostStyle) error
}

// Content is the rendered markdown split into its two regions.
type Content struct {
	Front string // HTML shown above the columns; empty when there is no front matter
	Body  string // HTML laid out in columns
}

// HasFront reports whether the front region should be rendered.
func (c Content) HasFront() bool {
	return c.Front != ""
}

// DefaultTitle is the document title used when none is set.
const DefaultTitle = "Preview"

// shellData is the data passed to the document shell template.
type shellData struct {
	Title    string
	Style    template.CSS
	HasFront bool
	Front    template.HTML
	Body     template.HTML
	Host     template.CSS
}

// DocumentSurface is an in-memory Surface producing a standalone HTML
// document. The zero value has no document and rejects every mutation.
type DocumentSurface struct {
	mu        sync.Mutex
	shell     *template.Template
	baseStyle string
	title     string

	style   string
	content Content
	host    HostStyle
}

// DocumentOption configures a DocumentSurface.
type DocumentOption func(*DocumentSurface)

// WithTitle sets the document title.
func WithTitle(title string) DocumentOption {
	return func(s *DocumentSurface) {
		if title != "" {
			s.title = title
		}
	}
}

// NewDocumentSurface loads the document shell and base stylesheet from loader.
// A nil loader uses the embedded assets.
func NewDocumentSurface(loader assets.AssetLoader, opts ...DocumentOption) (*DocumentSurface, error) {
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}

	shellSrc, err := loader.LoadTemplate(assets.ShellTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading document shell: %w", err)
	}
	shell, err := template.New(assets.ShellTemplateName).Parse(shellSrc)
	if err != nil {
		return nil, fmt.Errorf("parsing document shell: %w", err)
	}
	baseStyle, err := loader.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return nil, fmt.Errorf("loading base style: %w", err)
	}

	s := &DocumentSurface{
		shell:     shell,
		baseStyle: baseStyle,
		title:     DefaultTitle,
		host:      DefaultLayout().Host(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SetStyle replaces the template style slot.
func (s *DocumentSurface) SetStyle(css string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shell == nil {
		return ErrRenderNotReady
	}
	s.style = css
	return nil
}

// SetContent replaces the front and column regions.
func (s *DocumentSurface) SetContent(c Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shell == nil {
		return ErrRenderNotReady
	}
	s.content = c
	return nil
}

// SetHost replaces the inline style of the column container.
func (s *DocumentSurface) SetHost(h HostStyle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shell == nil {
		return ErrRenderNotReady
	}
	s.host = h
	return nil
}

// Document renders the current state as a standalone HTML document with the
// base stylesheet inlined ahead of the template style slot.
func (s *DocumentSurface) Document() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shell == nil {
		return "", &RenderNotReadyError{Op: "document"}
	}

	data := shellData{
		Title:    s.title,
		Style:    template.CSS(pipeline.SanitizeCSS(s.style)), // #nosec G203 -- synthesized from sanitized values
		HasFront: s.content.HasFront(),
		Front:    template.HTML(s.content.Front), // #nosec G203 -- sanitized by the renderer
		Body:     template.HTML(s.content.Body),  // #nosec G203 -- sanitized by the renderer
		Host:     template.CSS(s.host.String()),  // #nosec G203 -- built from sanitized values
	}

	var buf bytes.Buffer
	if err := s.shell.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}

	injector := &pipeline.CSSInjection{ID: "baseStyle"}
	return injector.InjectCSS(buf.String(), s.baseStyle), nil
}

// Compile-time interface checks.
var _ Surface = (*DocumentSurface)(nil)
