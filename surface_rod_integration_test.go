//go:build integration

package mdlayout

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}

	if len(data) < 100 {
		t.Errorf("PDF data suspiciously small: %d bytes", len(data))
	}
}

// TestRodSurface_Integration opens a headless page, flushes queued operations
// and prints the result. Rod downloads Chromium on first run if not found.
func TestRodSurface_Integration(t *testing.T) {
	shell := newTestDocument(t)
	s := NewRodSurface(shell, 60*time.Second)
	t.Cleanup(func() { _ = s.Close() })

	p := newTestPreview(t, s)
	tpl, _ := DefaultCollection().Get("poster-three-column")
	if err := p.ApplyTemplate(tpl); err != nil {
		t.Fatal(err)
	}
	if err := p.Refresh("# Poster\n\nAuthors\n\n## Results\n\nText", LayoutFromTemplate(tpl)); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.Open(ctx, p); err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	if p.State() != StateReady {
		t.Fatalf("State() = %v, want ready after Open", p.State())
	}

	if err := p.RenderMarkdown("# Updated\n\nBody"); err != nil {
		t.Fatalf("RenderMarkdown() after ready unexpected error: %v", err)
	}

	pdf, err := s.PDF(ctx)
	if err != nil {
		t.Fatalf("PDF() unexpected error: %v", err)
	}
	assertValidPDF(t, pdf)
}
