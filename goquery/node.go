package goquery

import (
	"strings"

	"golang.org/x/net/html"
)

// cloneTree deep-copies a subtree. The copy is detached: commentary and
// footnote sanitizing happens on copies so the parsed document is never
// mutated and repeated extraction stays byte-identical.
func cloneTree(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneTree(child))
	}
	return c
}

func removeNode(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// unlink replaces an anchor with its plain text content.
func unlink(n *html.Node) {
	if n.Parent == nil {
		return
	}
	text := &html.Node{Type: html.TextNode, Data: nodeText(n)}
	n.Parent.InsertBefore(text, n)
	n.Parent.RemoveChild(n)
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
