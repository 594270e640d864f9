package goquery

import (
	"strings"

	"github.com/fwojciec/fictionfetch"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// allowedTags is the tag allow-list for sanitized chapter fragments.
var allowedTags = map[string]bool{
	"p": true, "br": true, "em": true, "i": true, "strong": true, "b": true,
	"hr": true, "blockquote": true,
	"ul": true, "ol": true, "li": true,
	"h2": true, "h3": true, "h4": true,
	"pre": true, "code": true,
	"span": true,
}

// allowedAttrs lists the permitted attributes per allowed tag. Tags absent
// from the map permit no attributes at all (em, i, strong, b, br).
var allowedAttrs = map[string]map[string]bool{
	"span":       {"class": true},
	"p":          {"class": true},
	"blockquote": {"class": true},
	"hr":         {"class": true},
	"pre":        {"class": true},
	"code":       {"class": true},
	"ul":         {"class": true},
	"ol":         {"class": true},
	"li":         {"class": true},
	"h2":         {"class": true},
	"h3":         {"class": true},
	"h4":         {"class": true},
}

// Ensure Sanitizer implements fictionfetch.Sanitizer at compile time.
var _ fictionfetch.Sanitizer = (*Sanitizer)(nil)

// Sanitizer filters HTML fragments to the chapter-content allow-list:
// script and style elements are dropped outright (content included),
// disallowed tags are unwrapped keeping their children, and disallowed
// attributes are removed. Bracket bolding and noise stripping run as
// post-passes over the filtered tree.
type Sanitizer struct {
	noiseThreshold int
}

// SanitizerOption configures a Sanitizer.
type SanitizerOption func(*Sanitizer)

// WithNoiseThreshold sets the maximum length of single-line text removed
// between consecutive line breaks. Defaults to DefaultNoiseThreshold.
func WithNoiseThreshold(maxChars int) SanitizerOption {
	return func(s *Sanitizer) {
		s.noiseThreshold = maxChars
	}
}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer(opts ...SanitizerOption) *Sanitizer {
	s := &Sanitizer{noiseThreshold: DefaultNoiseThreshold}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sanitize filters the fragment and returns its serialized inner HTML.
func (s *Sanitizer) Sanitize(fragment string) (string, error) {
	bodyCtx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), bodyCtx)
	if err != nil {
		return "", fictionfetch.Errorf(fictionfetch.EINVALID, "failed to parse fragment: %v", err)
	}

	// Reparent into a scratch container so every filtered node has a parent
	// to unwrap into.
	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	dropUnsafe(container)
	filterAllowList(container)
	ApplyBracketBold(container)
	StripNoise(container, s.noiseThreshold)

	return renderChildren(container)
}

// dropUnsafe removes script and style subtrees entirely.
func dropUnsafe(root *html.Node) {
	for _, n := range collectElements(root) {
		if n.DataAtom == atom.Script || n.DataAtom == atom.Style {
			if n.Parent != nil {
				n.Parent.RemoveChild(n)
			}
		}
	}
}

// filterAllowList unwraps disallowed elements and strips disallowed
// attributes from allowed ones. The element list is snapshotted up front;
// unwrapping keeps children in the tree, so nodes from the snapshot are
// still visited after their former parent is gone.
func filterAllowList(root *html.Node) {
	for _, n := range collectElements(root) {
		name := nodeName(n)
		if !allowedTags[name] {
			unwrap(n)
			continue
		}

		allowed := allowedAttrs[name]
		kept := n.Attr[:0]
		for _, attr := range n.Attr {
			if attr.Namespace == "" && allowed[attr.Key] {
				kept = append(kept, attr)
			}
		}
		n.Attr = kept
	}
}

// unwrap removes n from the tree, moving its children into its place.
func unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		n.RemoveChild(child)
		parent.InsertBefore(child, n)
		child = next
	}
	parent.RemoveChild(n)
}

func nodeName(n *html.Node) string {
	if n.DataAtom != 0 {
		return n.DataAtom.String()
	}
	return strings.ToLower(n.Data)
}

// collectElements returns all element nodes under root in document order.
func collectElements(root *html.Node) []*html.Node {
	var nodes []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.ElementNode {
				nodes = append(nodes, child)
			}
			walk(child)
		}
	}
	walk(root)
	return nodes
}

// renderChildren serializes the children of n, i.e. its inner HTML.
func renderChildren(n *html.Node) (string, error) {
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&b, child); err != nil {
			return "", fictionfetch.Errorf(fictionfetch.EINTERNAL, "failed to render fragment: %v", err)
		}
	}
	return b.String(), nil
}
