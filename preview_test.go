package mdlayout

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
)

// recordingSurface records every mutation in call order.
type recordingSurface struct {
	mu      sync.Mutex
	ops     []string
	styles  []string
	content []Content
	hosts   []HostStyle

	styleErr   error
	contentErr error
}

func (r *recordingSurface) SetStyle(css string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, "style")
	r.styles = append(r.styles, css)
	return r.styleErr
}

func (r *recordingSurface) SetContent(c Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, "content")
	r.content = append(r.content, c)
	return r.contentErr
}

func (r *recordingSurface) SetHost(h HostStyle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, "host")
	r.hosts = append(r.hosts, h)
	return nil
}

func (r *recordingSurface) opList() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.ops)
}

func newTestPreview(t *testing.T, s Surface, opts ...PreviewOption) *Preview {
	t.Helper()
	p, err := NewPreview(s, opts...)
	if err != nil {
		t.Fatalf("NewPreview() unexpected error: %v", err)
	}
	return p
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

func TestNewPreview_NilSurface(t *testing.T) {
	t.Parallel()

	if _, err := NewPreview(nil); !errors.Is(err, ErrSurfaceMissing) {
		t.Errorf("NewPreview(nil) error = %v, want ErrSurfaceMissing", err)
	}
}

func TestPreview_QueuesUntilReady(t *testing.T) {
	t.Parallel()

	s := &recordingSurface{}
	p := newTestPreview(t, s)

	tpl := validTemplate()
	tpl.Headings = &Headings{H1: &HeadingStyle{}}

	if err := p.RenderMarkdown("# Title"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetLayout(Layout{Columns: 3}); err != nil {
		t.Fatal(err)
	}
	if err := p.ApplyTemplate(tpl); err != nil {
		t.Fatal(err)
	}

	if ops := s.opList(); len(ops) != 0 {
		t.Fatalf("surface touched before ready: %v", ops)
	}
	if p.State() != StateUninitialized {
		t.Errorf("State() = %v, want uninitialized", p.State())
	}

	p.MarkReady()

	want := []string{"host", "style", "content", "host", "style", "style"}
	if got := s.opList(); !slices.Equal(got, want) {
		t.Errorf("ops = %v, want %v", got, want)
	}
	if p.State() != StateReady {
		t.Errorf("State() = %v, want ready", p.State())
	}

	p.MarkReady()
	if got := s.opList(); len(got) != len(want) {
		t.Errorf("second MarkReady replayed operations: %v", got)
	}
}

func TestPreview_ImmediateAfterReady(t *testing.T) {
	t.Parallel()

	s := &recordingSurface{}
	p := newTestPreview(t, s)
	p.MarkReady()
	before := len(s.opList())

	if err := p.RenderMarkdown("text"); err != nil {
		t.Fatal(err)
	}
	if got := s.opList()[before:]; !slices.Equal(got, []string{"content"}) {
		t.Errorf("ops after ready = %v, want [content]", got)
	}
}

func TestPreview_Refresh_TemplateWithoutOffsetResetsOffset(t *testing.T) {
	t.Parallel()

	withOffset := validTemplate()
	withOffset.ContentTopOffsetMm = floatPtr(12)

	s := &recordingSurface{}
	p := newTestPreview(t, s)
	p.MarkReady()

	if err := p.Refresh("x", LayoutFromTemplate(withOffset)); err != nil {
		t.Fatal(err)
	}
	if err := p.Refresh("x", LayoutFromTemplate(validTemplate())); err != nil {
		t.Fatal(err)
	}

	last := s.styles[len(s.styles)-1]
	if !strings.Contains(last, "--content-top-offset:0mm;") {
		t.Errorf("style = %q, want --content-top-offset:0mm", last)
	}
	if strings.Contains(last, "12mm") {
		t.Errorf("style = %q, still carries the previous offset", last)
	}
}

func TestPreview_LastWriteWins(t *testing.T) {
	t.Parallel()

	s := &recordingSurface{}
	p := newTestPreview(t, s)

	if err := p.RenderMarkdown("first draft"); err != nil {
		t.Fatal(err)
	}
	if err := p.Refresh("second draft", Layout{Columns: 4}); err != nil {
		t.Fatal(err)
	}
	p.MarkReady()

	if len(s.content) == 0 {
		t.Fatal("no content applied")
	}
	for i, c := range s.content {
		if strings.Contains(c.Body, "first") || !strings.Contains(c.Body, "second draft") {
			t.Errorf("content[%d] = %q, want only the latest markdown", i, c.Body)
		}
	}
	for i, h := range s.hosts {
		if h.Columns != 4 {
			t.Errorf("hosts[%d].Columns = %d, want 4", i, h.Columns)
		}
	}
}

func TestPreview_FailedDeferredOperationContinues(t *testing.T) {
	t.Parallel()

	log, logs := observedLogger()
	s := &recordingSurface{contentErr: errors.New("boom")}
	p := newTestPreview(t, s, WithLogger(log))

	_ = p.RenderMarkdown("text")
	_ = p.SetLayout(Layout{Columns: 2})
	p.MarkReady()

	want := []string{"host", "style", "content", "host", "style"}
	if got := s.opList(); !slices.Equal(got, want) {
		t.Errorf("ops = %v, want %v", got, want)
	}
	if n := logs.FilterMessage("Deferred render failed").Len(); n != 1 {
		t.Errorf("logged %d deferred failures, want 1", n)
	}
}

func TestPreview_RenderNotReady(t *testing.T) {
	t.Parallel()

	s := &recordingSurface{styleErr: ErrRenderNotReady}
	p := newTestPreview(t, s)
	p.MarkReady()

	err := p.ApplyTemplate(validTemplate())
	if !errors.Is(err, ErrRenderNotReady) {
		t.Fatalf("ApplyTemplate() error = %v, want ErrRenderNotReady", err)
	}
	var rnr *RenderNotReadyError
	if !errors.As(err, &rnr) || rnr.Op != "set style" {
		t.Errorf("error = %#v, want *RenderNotReadyError for set style", err)
	}
}

func TestPreview_ImmediateErrorIsWrapped(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	s := &recordingSurface{contentErr: errBoom}
	p := newTestPreview(t, s)
	p.MarkReady()

	err := p.RenderMarkdown("x")
	if !errors.Is(err, errBoom) {
		t.Errorf("RenderMarkdown() error = %v, want wrapped %v", err, errBoom)
	}
}

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

func TestPreview_RenderMarkdown_Regions(t *testing.T) {
	t.Parallel()

	s := &recordingSurface{}
	p := newTestPreview(t, s)
	p.MarkReady()

	md := "# Membrane transport\n\nA. Author, B. Author\n\n## Introduction\n\nSee ![Cell viability|span=2](fig1.png)\n"
	if err := p.RenderMarkdown(md); err != nil {
		t.Fatal(err)
	}

	c := s.content[len(s.content)-1]
	if !c.HasFront() {
		t.Fatal("expected front matter")
	}
	for _, want := range []string{"<h1", "Membrane transport", "A. Author"} {
		if !strings.Contains(c.Front, want) {
			t.Errorf("front missing %q: %s", want, c.Front)
		}
	}
	for _, want := range []string{"<h2", `data-span="2"`, "<figcaption>Cell viability</figcaption>", `alt="Cell viability"`} {
		if !strings.Contains(c.Body, want) {
			t.Errorf("body missing %q: %s", want, c.Body)
		}
	}
	if strings.Contains(c.Body, "<h1") {
		t.Errorf("body should not contain the title: %s", c.Body)
	}
}

func TestPreview_RenderMarkdown_NoFront(t *testing.T) {
	t.Parallel()

	s := &recordingSurface{}
	p := newTestPreview(t, s)
	p.MarkReady()

	if err := p.RenderMarkdown("## Methods\n\nplain text"); err != nil {
		t.Fatal(err)
	}
	c := s.content[len(s.content)-1]
	if c.HasFront() {
		t.Errorf("front = %q, want empty", c.Front)
	}
	if !strings.Contains(c.Body, "plain text") {
		t.Errorf("body = %q", c.Body)
	}
}

func TestPreview_SourceDir(t *testing.T) {
	t.Parallel()

	s := &recordingSurface{}
	p := newTestPreview(t, s, WithSourceDir("/data/paper"))
	p.MarkReady()

	if err := p.RenderMarkdown("![Plot](img/plot.png)"); err != nil {
		t.Fatal(err)
	}
	body := s.content[len(s.content)-1].Body
	if !strings.Contains(body, `src="file:///data/paper/img/plot.png"`) {
		t.Errorf("image path not rewritten: %s", body)
	}
}

func TestPreview_Refresh_Styles(t *testing.T) {
	t.Parallel()

	s := &recordingSurface{}
	p := newTestPreview(t, s)
	p.MarkReady()

	tpl := validTemplate()
	tpl.Headings = &Headings{H2: &HeadingStyle{Size: "1.4em"}}
	if err := p.ApplyTemplate(tpl); err != nil {
		t.Fatal(err)
	}
	if err := p.Refresh("text", LayoutFromTemplate(tpl)); err != nil {
		t.Fatal(err)
	}

	style := s.styles[len(s.styles)-1]
	for _, want := range []string{
		".preview-doc h2{font-size:1.4em;",
		"size:A4;margin:20mm 15mm 20mm 15mm;",
		"column-count:2;",
	} {
		if !strings.Contains(style, want) {
			t.Errorf("style missing %q: %s", want, style)
		}
	}
	if got := p.Layout().PageSize; got != "A4" {
		t.Errorf("Layout().PageSize = %q, want A4", got)
	}
}
