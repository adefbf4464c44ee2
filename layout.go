package mdlayout

import (
	"slices"
	"strconv"
	"strings"
)

// Layout defaults used before any template is applied.
const (
	DefaultColumns    = 2
	DefaultBaseSizePx = 12
	DefaultPageSize   = "A4"
	DefaultMarginMm   = 18
)

// Layout holds the page and column parameters read from a template.
type Layout struct {
	Columns            int
	FontFamily         string
	BaseSizePx         int
	PageSize           string
	MarginsMm          []float64 // top, right, bottom, left
	ContentTopOffsetMm *float64  // nil keeps the previous offset on Merge
}

// DefaultLayout returns the layout used until the first SetLayout.
func DefaultLayout() Layout {
	return Layout{
		Columns:    DefaultColumns,
		BaseSizePx: DefaultBaseSizePx,
		PageSize:   DefaultPageSize,
		MarginsMm:  []float64{DefaultMarginMm, DefaultMarginMm, DefaultMarginMm, DefaultMarginMm},
	}
}

// LayoutFromTemplate extracts the layout parameters of t.
func LayoutFromTemplate(t Template) Layout {
	return Layout{
		Columns:            t.Columns,
		FontFamily:         t.FontFamily,
		BaseSizePx:         t.BaseSizePx,
		PageSize:           t.PageSize,
		MarginsMm:          slices.Clone(t.MarginsMm),
		ContentTopOffsetMm: offsetPtr(t.TopOffset()),
	}
}

// TopOffset returns ContentTopOffsetMm, or 0 when unset.
func (l Layout) TopOffset() float64 {
	if l.ContentTopOffsetMm == nil {
		return 0
	}
	return *l.ContentTopOffsetMm
}

func offsetPtr(v float64) *float64 { return &v }

// Merge returns l updated with the non-zero fields of update. Margins are
// taken only when update carries exactly four of them. A non-nil offset
// always replaces, zero included.
func (l Layout) Merge(update Layout) Layout {
	out := l
	out.MarginsMm = slices.Clone(l.MarginsMm)
	if l.ContentTopOffsetMm != nil {
		out.ContentTopOffsetMm = offsetPtr(*l.ContentTopOffsetMm)
	}
	if update.Columns != 0 {
		out.Columns = update.Columns
	}
	if update.FontFamily != "" {
		out.FontFamily = update.FontFamily
	}
	if update.BaseSizePx != 0 {
		out.BaseSizePx = update.BaseSizePx
	}
	if update.PageSize != "" {
		out.PageSize = update.PageSize
	}
	if len(update.MarginsMm) == MarginCount {
		out.MarginsMm = slices.Clone(update.MarginsMm)
	}
	if update.ContentTopOffsetMm != nil {
		out.ContentTopOffsetMm = offsetPtr(*update.ContentTopOffsetMm)
	}
	return out
}

// HostStyle is the inline style of the column container.
type HostStyle struct {
	Columns    int
	FontFamily string
	BaseSizePx int
}

// Host returns the inline container style for l.
func (l Layout) Host() HostStyle {
	return HostStyle{Columns: l.Columns, FontFamily: l.FontFamily, BaseSizePx: l.BaseSizePx}
}

// String renders the style attribute value. The font and size custom
// properties are set only when present.
func (h HostStyle) String() string {
	var b strings.Builder
	b.WriteString("column-count: ")
	b.WriteString(strconv.Itoa(max(h.Columns, MinColumns)))
	b.WriteString(";")
	if font := sanitizeValue(h.FontFamily, ""); font != "" {
		b.WriteString(" --font-family: " + font + ";")
	}
	if h.BaseSizePx > 0 {
		b.WriteString(" --base-size: " + strconv.Itoa(h.BaseSizePx) + "px;")
	}
	return b.String()
}
