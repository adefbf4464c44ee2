package mdlayout

import (
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// headingDefaults holds the fallback values for one heading level.
type headingDefaults struct {
	level  string
	size   string
	weight int
	margin string
}

var headingLevelDefaults = []headingDefaults{
	{level: "h1", size: "1.6em", weight: 700, margin: "0.8em 0 0.4em"},
	{level: "h2", size: "1.3em", weight: 600, margin: "0.7em 0 0.35em"},
	{level: "h3", size: "1.15em", weight: 600, margin: "0.6em 0 0.3em"},
}

// Figure span keywords that make every figure span all columns.
const (
	FigureSpanAll  = "all"
	FigureSpanPage = "page"
)

// BuildHeadingCSS generates the heading and figure rules for t.
// Only levels present in t.Headings get a rule; the rest inherit the page
// defaults. Omitted sub-fields fall back to the level defaults.
func BuildHeadingCSS(t *Template) string {
	if t == nil {
		return ""
	}

	var buf strings.Builder
	for _, d := range headingLevelDefaults {
		h := t.Headings.level(d.level)
		if h == nil {
			continue
		}
		size := sanitizeValue(h.Size, d.size)
		weight := d.weight
		if h.Weight != nil {
			weight = *h.Weight
		}
		margin := sanitizeValue(h.Margin, d.margin)

		buf.WriteString(".preview-doc ")
		buf.WriteString(d.level)
		buf.WriteString("{font-size:")
		buf.WriteString(size)
		buf.WriteString(";font-weight:")
		buf.WriteString(strconv.Itoa(weight))
		buf.WriteString(";margin:")
		buf.WriteString(margin)
		buf.WriteString(";}")
	}

	buf.WriteString(buildFigureCSS(t.Figure))
	return buf.String()
}

// buildFigureCSS emits the caption rule only for the properties present, and
// a column-span rule for the "all"/"page" span keyword.
func buildFigureCSS(f *FigureStyle) string {
	if f == nil {
		return ""
	}

	var buf strings.Builder
	size := sanitizeValue(f.CaptionSize, "")
	color := sanitizeValue(f.CaptionColor, "")
	if size != "" || color != "" {
		buf.WriteString(".figure figcaption{")
		if size != "" {
			buf.WriteString("font-size:" + size + ";")
		}
		if color != "" {
			buf.WriteString("color:" + color + ";")
		}
		buf.WriteString("}")
	}

	switch strings.ToLower(strings.TrimSpace(f.Span)) {
	case FigureSpanAll, FigureSpanPage:
		buf.WriteString(".preview-doc .figure{column-span:all;}")
	}
	return buf.String()
}

// BuildLayoutCSS generates the print page rule and the column container rule.
func BuildLayoutCSS(l Layout) string {
	var buf strings.Builder

	margins := l.MarginsMm
	if len(margins) != MarginCount {
		margins = DefaultLayout().MarginsMm
	}
	buf.WriteString("@media print{@page{size:")
	buf.WriteString(sanitizeValue(l.PageSize, DefaultPageSize))
	buf.WriteString(";margin:")
	for i, m := range margins {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(formatMm(m))
	}
	buf.WriteString(";}}")

	columns := l.Columns
	if columns < MinColumns {
		columns = MinColumns
	}
	buf.WriteString(".preview-doc{column-count:")
	buf.WriteString(strconv.Itoa(columns))
	buf.WriteString(";column-gap:var(--column-gap);column-fill:balance;--content-top-offset:")
	buf.WriteString(formatMm(l.TopOffset()))
	buf.WriteString(";")
	if font := sanitizeValue(l.FontFamily, ""); font != "" {
		buf.WriteString("--font-family:" + font + ";")
	}
	if l.BaseSizePx > 0 {
		buf.WriteString("--base-size:" + strconv.Itoa(l.BaseSizePx) + "px;")
	}
	buf.WriteString("}")

	return buf.String()
}

// BuildStyles returns the full content of the template style slot: heading and
// figure rules followed by the layout rules.
func BuildStyles(t *Template, l Layout) string {
	return BuildHeadingCSS(t) + BuildLayoutCSS(l)
}

func formatMm(v float64) string {
	if v < 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "mm"
}

// sanitizeValue reduces a user supplied CSS value to the tokens of a single
// declaration value. Anything that could close the declaration or the rule is
// dropped. An empty result yields fallback.
func sanitizeValue(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	l := css.NewLexer(parse.NewInputString(value))
	var buf strings.Builder
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		switch tt {
		case css.SemicolonToken, css.ColonToken,
			css.LeftBraceToken, css.RightBraceToken,
			css.AtKeywordToken, css.CDOToken, css.CDCToken,
			css.CommentToken, css.URLToken, css.BadURLToken, css.BadStringToken:
			continue
		case css.DelimToken:
			if len(data) == 1 && (data[0] == '<' || data[0] == '>' || data[0] == '\\') {
				continue
			}
		case css.WhitespaceToken:
			data = []byte(" ")
		}
		buf.Write(data)
	}

	out := strings.TrimSpace(buf.String())
	if out == "" {
		return fallback
	}
	return out
}
