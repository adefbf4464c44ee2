// Package mdlayout renders scientific Markdown into a multi-column paper
// preview driven by named layout templates.
//
// # Quick Start
//
// Load the template store, create a preview on a surface, push markdown:
//
//	store := mdlayout.NewStore(storage.NewMemory(nil))
//	store.Load()
//	tpl, _ := store.Template("journal-two-column")
//
//	doc, err := mdlayout.NewDocumentSurface(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	preview, err := mdlayout.NewPreview(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = preview.ApplyTemplate(tpl)
//	_ = preview.Refresh(markdown, mdlayout.LayoutFromTemplate(tpl))
//	preview.MarkReady()
//
//	html, err := doc.Document()
//
// Operations issued before MarkReady are queued and replayed in order. Later
// calls win: a queued render always uses the most recent markdown.
//
// # Rendering Pipeline
//
//  1. Markdown preprocessing (line normalization, blank line compression)
//  2. Markdown to sanitized HTML via Goldmark (GFM, footnotes, ==mark==, highlighting)
//  3. Front/body split: everything before the first H2 is front matter
//  4. Figure wrapping: images become <figure> with a caption taken from the
//     alt text; a trailing "|span=N" sets data-span
//  5. Style synthesis: heading and figure rules from the template, plus the
//     @page rule and column container rule from the layout
//
// # Templates
//
// A Collection is an ordered set of validated templates. Store persists the
// working collection through any Persistence (file, sqlite, redis, memory in
// internal/storage). Persistence failures are logged and never returned.
// Invalid imports return a *ValidationError listing every violation.
//
// # Surfaces
//
// DocumentSurface assembles a standalone HTML document. RodSurface drives a
// headless Chrome page and prints it to PDF; Rod downloads Chromium on first
// run. For containers and CI, set ROD_NO_SANDBOX=1. Use ROD_BROWSER_BIN to
// pick a Chrome binary.
package mdlayout
