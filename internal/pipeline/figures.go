package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// FallbackCaption labels figures whose alt text is empty.
const FallbackCaption = "Figura"

// FigureClass is the class of generated figure containers.
const FigureClass = "figure"

// spanDirective matches a trailing "|span=N" in alt text, with an optional
// closing "|".
var spanDirective = regexp.MustCompile(`(?i)\s*\|\s*span\s*=\s*(\d+)\s*\|?\s*$`)

// ParseAlt splits alt text into a caption and a column span (minimum 1).
func ParseAlt(alt string) (caption string, span int) {
	m := spanDirective.FindStringSubmatchIndex(alt)
	if m == nil {
		return strings.TrimSpace(alt), 1
	}
	span, err := strconv.Atoi(alt[m[2]:m[3]])
	if err != nil || span < 1 {
		span = 1
	}
	return strings.TrimSpace(alt[:m[0]]), span
}

// ProcessFigures wraps every image in a captioned figure, in place and in
// document order:
//
//	<figure class="figure" data-span="N"><img alt="caption"><figcaption>caption</figcaption></figure>
//
// Figures produced by an earlier pass are left alone.
func ProcessFigures(nodes []Node) {
	for i, n := range nodes {
		nodes[i] = processFigure(n)
	}
}

func processFigure(n Node) Node {
	el, ok := n.(*Element)
	if !ok {
		return n
	}
	if el.Tag == "img" {
		return wrapFigure(el)
	}
	if isGeneratedFigure(el) {
		return el
	}
	for i, c := range el.Children {
		el.Children[i] = processFigure(c)
	}
	return el
}

// isGeneratedFigure reports a figure this package already emitted. Skipping
// it keeps a second ProcessFigures pass from nesting figures; goldmark never
// emits data-span itself, so every rendered image is still wrapped once.
func isGeneratedFigure(el *Element) bool {
	if el.Tag != "figure" {
		return false
	}
	_, ok := el.Attr("data-span")
	return ok
}

func wrapFigure(img *Element) *Element {
	alt, _ := img.Attr("alt")
	caption, span := ParseAlt(alt)
	if caption == "" {
		caption = FallbackCaption
	}
	img.SetAttr("alt", caption)

	return &Element{
		Tag: "figure",
		Attrs: []Attr{
			{Key: "class", Val: FigureClass},
			{Key: "data-span", Val: strconv.Itoa(span)},
		},
		Children: []Node{
			img,
			&Element{Tag: "figcaption", Children: []Node{&Text{Content: caption}}},
		},
	}
}
