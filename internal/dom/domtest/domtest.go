// Package domtest provides snippet helpers for tests working with
// document trees. A snippet is an HTML fragment with the range
// boundaries marked by literal "[" and "]" characters, e.g.
// "<h1>a[bc</h1><p>de]f</p>". "[]" marks a collapsed range.
package domtest

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/dshills/excise/internal/dom"
)

// MustParse parses a marked snippet and returns the body root together
// with the range described by the markers.
func MustParse(t *testing.T, snippet string) (*html.Node, dom.Range) {
	t.Helper()
	body, err := dom.ParseBody(snippet)
	if err != nil {
		t.Fatalf("parse snippet %q: %v", snippet, err)
	}
	start, ok := extractMarker(body, '[')
	if !ok {
		t.Fatalf("snippet %q has no start marker", snippet)
	}
	end, ok := extractMarker(body, ']')
	if !ok {
		t.Fatalf("snippet %q has no end marker", snippet)
	}
	return body, normalizeMarked(start, end)
}

// MustParseBody parses an unmarked snippet into a body root.
func MustParseBody(t *testing.T, snippet string) *html.Node {
	t.Helper()
	body, err := dom.ParseBody(snippet)
	if err != nil {
		t.Fatalf("parse snippet %q: %v", snippet, err)
	}
	return body
}

// Format renders the children of body with the boundaries of r marked
// by "[" and "]". It mutates the tree to place the markers, so call it
// only after all assertions against the live tree are done.
func Format(body *html.Node, r dom.Range) string {
	insertMarker(r.End, "]")
	insertMarker(r.Start, "[")
	return dom.RenderChildren(body)
}

// extractMarker finds the first text node containing the marker rune,
// removes the rune from its data and returns its position.
func extractMarker(root *html.Node, marker byte) (dom.Position, bool) {
	for n := dom.FirstLeaf(root); n != nil; n = dom.NextLeaf(n, root) {
		if !dom.IsText(n) {
			continue
		}
		if i := strings.IndexByte(n.Data, marker); i >= 0 {
			n.Data = n.Data[:i] + n.Data[i+1:]
			return dom.Position{Container: n, Offset: i}, true
		}
	}
	return dom.Position{}, false
}

// normalizeMarked rewrites positions sitting in text nodes that were
// emptied by marker extraction into the equivalent element positions
// and detaches the empty nodes. The end boundary is fixed up first so
// that detaching the start node cannot stale its offset, and vice
// versa: removing the start node shifts any element offset after it in
// the same parent down by one.
func normalizeMarked(start, end dom.Position) dom.Range {
	emptied := func(p dom.Position) bool {
		return dom.IsText(p.Container) && p.Container.Data == ""
	}

	if emptied(start) && start.Container == end.Container {
		// Collapsed "[]" markers inside one text node.
		p := dom.PositionBefore(start.Container)
		dom.Detach(start.Container)
		return dom.CollapsedAt(p)
	}
	if emptied(end) {
		n := end.Container
		end = dom.PositionBefore(n)
		dom.Detach(n)
	}
	if emptied(start) {
		n := start.Container
		parent := n.Parent
		idx := dom.Index(n)
		start = dom.PositionBefore(n)
		dom.Detach(n)
		if end.Container == parent && end.Offset > idx {
			end.Offset--
		}
	}
	return dom.NewRange(start, end)
}

func insertMarker(p dom.Position, marker string) {
	if p.IsZero() {
		return
	}
	if dom.IsText(p.Container) {
		d := p.Container.Data
		p.Container.Data = d[:p.Offset] + marker + d[p.Offset:]
		return
	}
	ref := dom.ChildAt(p.Container, p.Offset)
	p.Container.InsertBefore(dom.NewText(marker), ref)
}
