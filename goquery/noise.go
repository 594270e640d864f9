package goquery

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultNoiseThreshold is the maximum length, in characters, of a
// single-line text segment removed by StripNoise.
const DefaultNoiseThreshold = 200

// StripNoise removes short single-line text sitting between two consecutive
// <br> elements. This targets one-liner noise like "Patreon" adverts or
// short author notes inserted between line breaks:
//
//	<br>  TEXT  <br>   ->   <br><br>
//
// Text is only removed when it is a single text node (whitespace-only
// siblings aside), non-empty after trimming, and at most maxChars long.
// Each removal invalidates sibling pointers, so the scan restarts until a
// full pass finds nothing to remove.
func StripNoise(root *html.Node, maxChars int) {
	changed := true
	for changed {
		changed = false
		for _, br := range collectBreaks(root) {
			next := skipWhitespace(br.NextSibling)
			if next == nil || next.Type != html.TextNode {
				continue
			}

			text := strings.TrimSpace(next.Data)
			if text == "" || utf8.RuneCountInString(text) > maxChars {
				continue
			}

			if second := skipWhitespace(next.NextSibling); second == nil || !isBreak(second) {
				continue
			}

			next.Parent.RemoveChild(next)

			// Whitespace-only nodes now sitting between the two brs go too.
			probe := br.NextSibling
			for probe != nil && isWhitespaceText(probe) {
				stale := probe
				probe = probe.NextSibling
				stale.Parent.RemoveChild(stale)
			}

			changed = true
			break
		}
	}
}

func collectBreaks(root *html.Node) []*html.Node {
	var brs []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if isBreak(child) {
				brs = append(brs, child)
			}
			walk(child)
		}
	}
	walk(root)
	return brs
}

func isBreak(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Br
}

func isWhitespaceText(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}

// skipWhitespace returns the first sibling at or after n that is not a
// whitespace-only text node.
func skipWhitespace(n *html.Node) *html.Node {
	for n != nil && isWhitespaceText(n) {
		n = n.NextSibling
	}
	return n
}
