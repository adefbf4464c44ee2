package pipeline

import (
	"bytes"
	"html"
	"regexp"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// MarkdownRenderer abstracts markdown to sanitized HTML conversion.
type MarkdownRenderer interface {
	Render(content string) string
}

// Renderer converts markdown to sanitized HTML fragments using goldmark and
// bluemonday. It holds no per-call state and is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a Renderer with GFM extensions, footnotes, syntax
// highlighting and hard line breaks.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			MarkHighlight,      // ==text== becomes <mark>
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes instead of inline styles
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(), // Single newline inside a paragraph becomes <br>
			goldmarkhtml.WithXHTML(),
		),
	)
	return &Renderer{md: md, policy: newSanitizerPolicy()}
}

var (
	checkboxType = regexp.MustCompile(`^checkbox$`)
	spanValue    = regexp.MustCompile(`^[0-9]+$`)
)

// newSanitizerPolicy allows the document profile (headings, lists, tables,
// images, blockquotes, figures, highlighted code) and strips scripts, event
// handlers and javascript: URLs.
func newSanitizerPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowElements("figure", "figcaption", "mark", "section")
	p.AllowAttrs("data-span").Matching(spanValue).OnElements("figure")
	p.AllowAttrs("type").Matching(checkboxType).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")
	return p
}

// Render converts markdown to a sanitized HTML fragment. It never fails:
// unsafe content is dropped by the sanitizer.
func (r *Renderer) Render(content string) string {
	content = Preprocess(content)

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "<p>" + html.EscapeString(content) + "</p>"
	}

	return r.policy.Sanitize(buf.String())
}

// Compile-time interface check.
var _ MarkdownRenderer = (*Renderer)(nil)
