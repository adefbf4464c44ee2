package mdlayout

import "slices"

// Template is a named layout configuration: body columns, fonts, page
// geometry and optional heading/figure styling.
type Template struct {
	DisplayName        string       `json:"displayName,omitempty"`
	Columns            int          `json:"columns"`
	FontFamily         string       `json:"fontFamily"`
	BaseSizePx         int          `json:"baseSizePx"`
	PageSize           string       `json:"pageSize"`
	MarginsMm          []float64    `json:"marginsMm"` // top, right, bottom, left
	ContentTopOffsetMm *float64     `json:"contentTopOffsetMm,omitempty"`
	MaxPages           *int         `json:"maxPages,omitempty"`
	Headings           *Headings    `json:"headings,omitempty"`
	Figure             *FigureStyle `json:"figure,omitempty"`
}

// Headings maps heading levels to their style overrides.
// A nil level inherits the page defaults.
type Headings struct {
	H1 *HeadingStyle `json:"h1,omitempty"`
	H2 *HeadingStyle `json:"h2,omitempty"`
	H3 *HeadingStyle `json:"h3,omitempty"`
}

// HeadingStyle holds CSS values for one heading level. Empty fields fall back
// to the level defaults.
type HeadingStyle struct {
	Size   string `json:"size,omitempty"`
	Weight *int   `json:"weight,omitempty"`
	Margin string `json:"margin,omitempty"`
}

// FigureStyle controls figure captions and the default figure span keyword.
type FigureStyle struct {
	CaptionSize  string `json:"captionSize,omitempty"`
	CaptionColor string `json:"captionColor,omitempty"`
	Span         string `json:"span,omitempty"`
}

// TopOffset returns ContentTopOffsetMm, or 0 when unset.
func (t *Template) TopOffset() float64 {
	if t.ContentTopOffsetMm == nil {
		return 0
	}
	return *t.ContentTopOffsetMm
}

// Clone returns a deep copy sharing no memory with t.
func (t Template) Clone() Template {
	c := t
	c.MarginsMm = slices.Clone(t.MarginsMm)
	if t.ContentTopOffsetMm != nil {
		v := *t.ContentTopOffsetMm
		c.ContentTopOffsetMm = &v
	}
	if t.MaxPages != nil {
		v := *t.MaxPages
		c.MaxPages = &v
	}
	if t.Headings != nil {
		h := Headings{
			H1: t.Headings.H1.clone(),
			H2: t.Headings.H2.clone(),
			H3: t.Headings.H3.clone(),
		}
		c.Headings = &h
	}
	if t.Figure != nil {
		f := *t.Figure
		c.Figure = &f
	}
	return c
}

func (h *HeadingStyle) clone() *HeadingStyle {
	if h == nil {
		return nil
	}
	c := *h
	if h.Weight != nil {
		w := *h.Weight
		c.Weight = &w
	}
	return &c
}

// level returns the style for "h1", "h2" or "h3".
func (h *Headings) level(name string) *HeadingStyle {
	if h == nil {
		return nil
	}
	switch name {
	case "h1":
		return h.H1
	case "h2":
		return h.H2
	case "h3":
		return h.H3
	}
	return nil
}
