package pipeline

import "slices"

// frontContinuation lists the elements that may follow the first h1 and still
// belong to front matter (authors, abstract, keywords, a title figure).
var frontContinuation = map[string]bool{
	"p":          true,
	"hr":         true,
	"ul":         true,
	"ol":         true,
	"blockquote": true,
	"figure":     true,
}

// structuralTags always end front matter.
var structuralTags = map[string]bool{
	"section": true,
	"table":   true,
	"article": true,
	"main":    true,
	"aside":   true,
}

func isHeading(tag string) bool {
	return len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6'
}

// Split partitions top-level nodes into front matter, rendered outside the
// column layout, and body.
//
// Everything up to and including the first h1 is front matter, followed by
// any run of continuation elements. The run stops at a heading, a structural
// tag, any other element, or non-blank text. Without an h1 everything is body.
// Blank text nodes never reach either group.
func Split(nodes []Node) (front, body []Node) {
	nodes = slices.DeleteFunc(slices.Clone(nodes), func(n Node) bool {
		t, ok := n.(*Text)
		return ok && t.IsBlank()
	})

	first := slices.IndexFunc(nodes, func(n Node) bool {
		el, ok := n.(*Element)
		return ok && el.Tag == "h1"
	})
	if first < 0 {
		return nil, nodes
	}

	end := first + 1
	for end < len(nodes) && continuesFront(nodes[end]) {
		end++
	}
	return nodes[:end:end], nodes[end:]
}

func continuesFront(n Node) bool {
	el, ok := n.(*Element)
	if !ok {
		return false
	}
	if isHeading(el.Tag) || structuralTags[el.Tag] {
		return false
	}
	return frontContinuation[el.Tag]
}
