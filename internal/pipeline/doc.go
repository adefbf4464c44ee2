// Package pipeline implements the markdown rendering pipeline behind the
// manuscript preview:
//   - Markdown preprocessing (line normalization) and ==highlight== parsing
//   - Markdown to sanitized HTML via Goldmark and bluemonday
//   - Parsing sanitized HTML into a tagged node tree (Element | Text)
//   - Splitting top-level nodes into front matter and columnized body
//   - Captioning images as figures with an optional column span
//   - CSS injection and relative image path rewriting for standalone output
//
// Layout CSS is synthesized separately by the root mdlayout package, which
// keeps this package free of template concerns.
package pipeline
