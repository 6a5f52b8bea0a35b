package dom

import "golang.org/x/net/html"

// NewText creates a detached text node.
func NewText(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// SplitText splits the text node n at byte offset off. n keeps the
// data before the offset; a new sibling holding the remainder is
// inserted directly after n and returned. The offset must be strictly
// interior (0 < off < len).
func SplitText(n *html.Node, off int) *html.Node {
	right := NewText(n.Data[off:])
	n.Data = n.Data[:off]
	InsertAfter(n.Parent, n, right)
	return right
}
