package goquery

import (
	"github.com/fwojciec/fictionfetch"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ApplyBracketBold walks the text nodes under root and replaces bracketed
// spans with <strong> elements, using the same bracket convention as
// fictionfetch.BoldBrackets. Existing markup (em, p, hr, ...) is untouched;
// only text content is rewritten.
//
// The node list is snapshotted before any mutation so that inserting and
// removing nodes cannot invalidate the traversal.
func ApplyBracketBold(root *html.Node) {
	for _, node := range collectTextNodes(root) {
		parent := node.Parent
		if parent == nil || parent.Type != html.ElementNode {
			continue
		}

		if !fictionfetch.ContainsBrackets(node.Data) {
			continue
		}

		spans := fictionfetch.SplitBracketSpans(node.Data)
		if len(spans) == 1 && !spans[0].Bold {
			// No complete pair; still strip the stray brackets.
			node.Data = fictionfetch.StripBrackets(spans[0].Text)
			continue
		}

		for _, span := range spans {
			parent.InsertBefore(materialize(span), node)
		}
		parent.RemoveChild(node)
	}
}

// materialize builds the replacement node for one bracket span.
func materialize(span fictionfetch.BracketSpan) *html.Node {
	if !span.Bold {
		return &html.Node{
			Type: html.TextNode,
			Data: fictionfetch.StripBrackets(span.Text),
		}
	}
	strong := &html.Node{
		Type:     html.ElementNode,
		Data:     "strong",
		DataAtom: atom.Strong,
	}
	strong.AppendChild(&html.Node{
		Type: html.TextNode,
		Data: span.Text,
	})
	return strong
}

// collectTextNodes returns all text nodes under root in document order.
func collectTextNodes(root *html.Node) []*html.Node {
	var nodes []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.TextNode {
				nodes = append(nodes, child)
			}
			walk(child)
		}
	}
	walk(root)
	return nodes
}
