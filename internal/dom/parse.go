package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseBody parses an HTML fragment and returns a detached body
// element owning the parsed children. The body element serves as the
// editable root.
func ParseBody(fragment string) (*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return body, nil
}

// RenderChildren serializes the children of n, leaving out n itself.
func RenderChildren(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		// Render cannot fail on a strings.Builder.
		_ = html.Render(&sb, c)
	}
	return sb.String()
}
