package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node is one node of the rendered document tree: *Element or *Text.
type Node interface {
	isNode()
}

// Attr is an element attribute.
type Attr struct {
	Key string
	Val string
}

// Element is an HTML element with its attributes and children.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []Node
}

// Text is a text node. Content is unescaped.
type Text struct {
	Content string
}

func (*Element) isNode() {}
func (*Text) isNode()    {}

// Attr returns the value of the named attribute.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, replacing any existing value.
func (e *Element) SetAttr(key, val string) {
	for i := range e.Attrs {
		if e.Attrs[i].Key == key {
			e.Attrs[i].Val = val
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Key: key, Val: val})
}

// IsBlank reports whether the text holds only whitespace.
func (t *Text) IsBlank() bool {
	return strings.TrimSpace(t.Content) == ""
}

// ParseNodes parses an HTML fragment into its top-level nodes. Comments are
// dropped, as are top-level text nodes holding only whitespace.
func ParseNodes(fragment string) ([]Node, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	parsed, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(parsed))
	for _, n := range parsed {
		node := fromHTML(n)
		if node == nil {
			continue
		}
		if t, ok := node.(*Text); ok && t.IsBlank() {
			continue
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func fromHTML(n *html.Node) Node {
	switch n.Type {
	case html.TextNode:
		return &Text{Content: n.Data}
	case html.ElementNode:
		el := &Element{Tag: n.Data}
		if len(n.Attr) > 0 {
			el.Attrs = make([]Attr, len(n.Attr))
			for i, a := range n.Attr {
				el.Attrs[i] = Attr{Key: a.Key, Val: a.Val}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := fromHTML(c); child != nil {
				el.Children = append(el.Children, child)
			}
		}
		return el
	default:
		return nil
	}
}

func toHTML(n Node) *html.Node {
	switch v := n.(type) {
	case *Text:
		return &html.Node{Type: html.TextNode, Data: v.Content}
	case *Element:
		out := &html.Node{
			Type:     html.ElementNode,
			Data:     v.Tag,
			DataAtom: atom.Lookup([]byte(v.Tag)),
		}
		for _, a := range v.Attrs {
			out.Attr = append(out.Attr, html.Attribute{Key: a.Key, Val: a.Val})
		}
		for _, c := range v.Children {
			if child := toHTML(c); child != nil {
				out.AppendChild(child)
			}
		}
		return out
	}
	return nil
}

// RenderNodes serializes nodes back to HTML.
func RenderNodes(nodes []Node) (string, error) {
	var buf strings.Builder
	for _, n := range nodes {
		h := toHTML(n)
		if h == nil {
			continue
		}
		if err := html.Render(&buf, h); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// Walk calls fn for every node in document order. Returning false skips the
// node's children.
func Walk(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		if el, ok := n.(*Element); ok {
			Walk(el.Children, fn)
		}
	}
}
