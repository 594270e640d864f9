package goquery_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// parseFragment parses an HTML fragment in body context and reparents it
// into a scratch container, mirroring how the sanitizer holds fragments.
func parseFragment(t *testing.T, fragment string) *html.Node {
	t.Helper()

	bodyCtx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), bodyCtx)
	require.NoError(t, err)

	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container
}

// renderInner serializes the children of n.
func renderInner(t *testing.T, n *html.Node) string {
	t.Helper()

	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		require.NoError(t, html.Render(&b, child))
	}
	return b.String()
}
