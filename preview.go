package mdlayout

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/alnah/go-mdlayout/internal/pipeline"
)

// State is the lifecycle state of a Preview.
type State int

const (
	// StateUninitialized queues every operation until MarkReady.
	StateUninitialized State = iota
	// StateReady applies operations immediately.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Preview drives a Surface from markdown text, templates and layout
// parameters. Operations issued before the surface is ready are queued and
// replayed once, in order, by MarkReady.
//
// Queued operations read the latest requested markdown and layout when they
// run, so the surface always shows the most recent request.
type Preview struct {
	mu       sync.Mutex
	surface  Surface
	renderer pipeline.MarkdownRenderer
	log      *zap.Logger

	sourceDir string

	state State
	queue []func() error

	headingCSS string
	layoutCSS  string

	pendingMarkdown string
	pendingLayout   Layout
}

// PreviewOption configures a Preview.
type PreviewOption func(*Preview)

// WithLogger sets the logger used for deferred operation failures.
func WithLogger(log *zap.Logger) PreviewOption {
	return func(p *Preview) {
		if log != nil {
			p.log = log
		}
	}
}

// WithRenderer replaces the markdown renderer.
func WithRenderer(r pipeline.MarkdownRenderer) PreviewOption {
	return func(p *Preview) {
		if r != nil {
			p.renderer = r
		}
	}
}

// WithSourceDir rewrites relative image and link paths against dir.
func WithSourceDir(dir string) PreviewOption {
	return func(p *Preview) {
		p.sourceDir = dir
	}
}

// NewPreview creates an uninitialized Preview bound to surface.
func NewPreview(surface Surface, opts ...PreviewOption) (*Preview, error) {
	if surface == nil {
		return nil, ErrSurfaceMissing
	}

	p := &Preview{
		surface:       surface,
		renderer:      pipeline.NewRenderer(),
		log:           zap.NewNop(),
		pendingLayout: DefaultLayout(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// State returns the current lifecycle state.
func (p *Preview) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// MarkReady signals that the surface has a document. It pushes the current
// host style and style slot, then runs every queued operation in submission
// order. A failing operation is logged and the flush continues.
// Calls after the first are no-ops.
func (p *Preview) MarkReady() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateReady {
		return
	}
	p.state = StateReady

	if err := p.surfaceErr("set host", p.surface.SetHost(p.pendingLayout.Host())); err != nil {
		p.log.Warn("Unable to apply preview layout", zap.Error(err))
	}
	if err := p.syncStyle(); err != nil {
		p.log.Warn("Unable to apply preview styles", zap.Error(err))
	}

	queue := p.queue
	p.queue = nil
	for i, fn := range queue {
		if err := fn(); err != nil {
			p.log.Warn("Deferred render failed", zap.Int("index", i), zap.Error(err))
		}
	}
}

// runWhenReady runs fn now when ready, otherwise queues it. Callers hold mu.
func (p *Preview) runWhenReady(fn func() error) error {
	if p.state == StateReady {
		return fn()
	}
	p.queue = append(p.queue, fn)
	return nil
}

// ApplyTemplate sets the heading and figure rules from t.
func (p *Preview) ApplyTemplate(t Template) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.headingCSS = BuildHeadingCSS(&t)
	return p.runWhenReady(p.syncStyle)
}

// SetLayout merges update into the pending layout and applies it: column
// container style and print page rule.
func (p *Preview) SetLayout(update Layout) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pendingLayout = p.pendingLayout.Merge(update)
	return p.runWhenReady(p.applyLayout)
}

// RenderMarkdown renders markdown into the front and column regions.
func (p *Preview) RenderMarkdown(markdown string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pendingMarkdown = markdown
	return p.runWhenReady(p.renderPending)
}

// Refresh re-renders markdown and re-applies layout. Both effects reflect only
// the latest request.
func (p *Preview) Refresh(markdown string, layout Layout) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pendingMarkdown = markdown
	p.pendingLayout = p.pendingLayout.Merge(layout)
	return multierr.Combine(
		p.runWhenReady(p.renderPending),
		p.runWhenReady(p.applyLayout),
	)
}

// Layout returns the layout that is or will be applied.
func (p *Preview) Layout() Layout {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pendingLayout.Merge(Layout{})
}

func (p *Preview) syncStyle() error {
	return p.surfaceErr("set style", p.surface.SetStyle(p.headingCSS+p.layoutCSS))
}

func (p *Preview) applyLayout() error {
	if err := p.surfaceErr("set host", p.surface.SetHost(p.pendingLayout.Host())); err != nil {
		return err
	}
	p.layoutCSS = BuildLayoutCSS(p.pendingLayout)
	return p.syncStyle()
}

func (p *Preview) renderPending() error {
	content, err := p.render(p.pendingMarkdown)
	if err != nil {
		return err
	}
	return p.surfaceErr("set content", p.surface.SetContent(content))
}

// render runs the markdown pipeline: sanitized HTML, node tree, front/body
// split and figure wrapping.
func (p *Preview) render(markdown string) (Content, error) {
	nodes, err := pipeline.ParseNodes(p.renderer.Render(markdown))
	if err != nil {
		return Content{}, fmt.Errorf("parsing rendered markdown: %w", err)
	}

	front, body := pipeline.Split(nodes)
	pipeline.ProcessFigures(front)
	pipeline.ProcessFigures(body)

	if p.sourceDir != "" {
		if err := pipeline.RewriteImageSources(front, p.sourceDir); err != nil {
			return Content{}, fmt.Errorf("rewriting image paths: %w", err)
		}
		if err := pipeline.RewriteImageSources(body, p.sourceDir); err != nil {
			return Content{}, fmt.Errorf("rewriting image paths: %w", err)
		}
	}

	frontHTML, err := pipeline.RenderNodes(front)
	if err != nil {
		return Content{}, fmt.Errorf("rendering front matter: %w", err)
	}
	bodyHTML, err := pipeline.RenderNodes(body)
	if err != nil {
		return Content{}, fmt.Errorf("rendering body: %w", err)
	}
	return Content{Front: frontHTML, Body: bodyHTML}, nil
}

func (p *Preview) surfaceErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrRenderNotReady) {
		return &RenderNotReadyError{Op: op}
	}
	return fmt.Errorf("%s: %w", op, err)
}
