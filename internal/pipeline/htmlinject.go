package pipeline

import (
	"strings"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
// It is used to inline the base stylesheet into standalone preview documents.
type CSSInjection struct {
	// ID is set on the injected <style> element when non-empty.
	ID string
}

// InjectCSS inserts a <style> block into HTML content.
// Tries the start of <head> first so later style blocks in the document win
// the cascade, then <body>, then prepends to the HTML.
func (s *CSSInjection) InjectCSS(htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	open := "<style>"
	if s.ID != "" {
		open = `<style id="` + s.ID + `">`
	}
	styleBlock := open + SanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	for _, tag := range []string{"<head", "<body"} {
		idx := strings.Index(lowerHTML, tag)
		if idx == -1 {
			continue
		}
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx == -1 {
			continue
		}
		insertPos := idx + closeIdx + 1
		return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
	}

	return styleBlock + htmlContent
}

// SanitizeCSS escapes sequences that could break out of a <style> block.
func SanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// Compile-time interface check.
var _ CSSInjector = (*CSSInjection)(nil)
