package mdlayout

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultBrowserTimeout bounds page loads and PDF printing.
const DefaultBrowserTimeout = 30 * time.Second

// Scripts run in the page to mutate the document regions.
const (
	setStyleJS = `(css) => {
		const el = document.getElementById('tplStyle');
		if (el) el.textContent = css;
	}`

	setHostJS = `(style) => {
		const el = document.getElementById('doc');
		if (el) el.setAttribute('style', style);
	}`

	setContentJS = `(front, body) => {
		let header = document.getElementById('front');
		if (front) {
			if (!header) {
				header = document.createElement('header');
				header.id = 'front';
				header.className = 'preview-front';
				const doc = document.getElementById('doc');
				doc.parentNode.insertBefore(header, doc);
			}
			header.innerHTML = front;
		} else if (header) {
			header.remove();
		}
		const doc = document.getElementById('doc');
		if (doc) doc.innerHTML = body;
	}`
)

// RodSurface is a Surface backed by a headless Chrome page. Rod downloads
// Chromium on first use when no browser is installed.
type RodSurface struct {
	mu      sync.Mutex
	shell   *DocumentSurface
	timeout time.Duration
	browser *rod.Browser
	page    *rod.Page
}

// NewRodSurface creates a surface whose page is initialized from shell.
// The page does not exist until Open.
func NewRodSurface(shell *DocumentSurface, timeout time.Duration) *RodSurface {
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	return &RodSurface{shell: shell, timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (s *RodSurface) ensureBrowser() error {
	if s.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use a pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	s.browser = rod.New().ControlURL(u)
	if err := s.browser.Connect(); err != nil {
		s.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Open loads the document shell in a new page, waits for it to load and then
// marks preview ready, flushing its queued operations. A nil preview only
// opens the page.
func (s *RodSurface) Open(ctx context.Context, preview *Preview) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.shell == nil {
		return ErrSurfaceMissing
	}
	doc, err := s.shell.Document()
	if err != nil {
		return err
	}

	s.mu.Lock()
	if err := s.ensureBrowser(); err != nil {
		s.mu.Unlock()
		return err
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	page = page.Context(ctx).Timeout(s.timeout)
	if err := page.SetDocumentContent(doc); err != nil {
		_ = page.Close()
		s.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrPageLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		_ = page.Close()
		s.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrPageLoad, err)
	}
	s.page = page.CancelTimeout()
	s.mu.Unlock()

	if preview != nil {
		preview.MarkReady()
	}
	return nil
}

func (s *RodSurface) eval(js string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page == nil {
		return ErrRenderNotReady
	}
	if _, err := s.page.Eval(js, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrPageLoad, err)
	}
	return nil
}

// SetStyle replaces the template style slot of the page.
func (s *RodSurface) SetStyle(css string) error {
	return s.eval(setStyleJS, css)
}

// SetContent replaces the front and column regions of the page.
func (s *RodSurface) SetContent(c Content) error {
	return s.eval(setContentJS, c.Front, c.Body)
}

// SetHost replaces the inline style of the column container.
func (s *RodSurface) SetHost(h HostStyle) error {
	return s.eval(setHostJS, h.String())
}

// PDF prints the current page. The synthesized @page rule decides paper
// size and margins.
func (s *RodSurface) PDF(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page == nil {
		return nil, &RenderNotReadyError{Op: "pdf"}
	}

	reader, err := s.page.Context(ctx).Timeout(s.timeout).PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// Close releases the page and browser.
func (s *RodSurface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.page != nil {
		_ = s.page.Close()
		s.page = nil
	}
	if s.browser != nil {
		err := s.browser.Close()
		s.browser = nil
		return err
	}
	return nil
}

// Compile-time interface check.
var _ Surface = (*RodSurface)(nil)
