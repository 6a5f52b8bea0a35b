package dom

import "golang.org/x/net/html"

// IsText returns true if n is a text node.
func IsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// IsElement returns true if n is an element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// ChildCount returns the number of children of n.
func ChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// ChildAt returns the i-th child of n, or nil if out of range.
func ChildAt(n *html.Node, i int) *html.Node {
	if i < 0 {
		return nil
	}
	c := n.FirstChild
	for ; c != nil && i > 0; c = c.NextSibling {
		i--
	}
	return c
}

// Index returns the position of n among its parent's children.
// Returns -1 if n has no parent.
func Index(n *html.Node) int {
	if n.Parent == nil {
		return -1
	}
	i := 0
	for c := n.Parent.FirstChild; c != nil; c = c.NextSibling {
		if c == n {
			return i
		}
		i++
	}
	return -1
}

// Length returns the addressable extent of n: byte length for text
// nodes, child count for everything else.
func Length(n *html.Node) int {
	if IsText(n) {
		return len(n.Data)
	}
	return ChildCount(n)
}

// Contains returns true if n is ancestor or equals ancestor.
func Contains(ancestor, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// Detach removes n from its parent. No-op if n has no parent.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// InsertAfter inserts newChild into parent directly after ref.
// A nil ref prepends newChild.
func InsertAfter(parent, ref, newChild *html.Node) {
	if ref == nil {
		parent.InsertBefore(newChild, parent.FirstChild)
		return
	}
	parent.InsertBefore(newChild, ref.NextSibling)
}

// Unwrap splices the children of n into n's parent at n's position and
// detaches the emptied n.
func Unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
}

// MoveChildren appends every child of from to the end of to,
// preserving order.
func MoveChildren(from, to *html.Node) {
	for c := from.FirstChild; c != nil; c = from.FirstChild {
		from.RemoveChild(c)
		to.AppendChild(c)
	}
}

// Ancestors returns the chain from n (inclusive) up to the root.
func Ancestors(n *html.Node) []*html.Node {
	var chain []*html.Node
	for ; n != nil; n = n.Parent {
		chain = append(chain, n)
	}
	return chain
}

// CommonAncestor returns the lowest node containing both a and b,
// or nil if they belong to different trees.
func CommonAncestor(a, b *html.Node) *html.Node {
	seen := make(map[*html.Node]bool)
	for n := a; n != nil; n = n.Parent {
		seen[n] = true
	}
	for n := b; n != nil; n = n.Parent {
		if seen[n] {
			return n
		}
	}
	return nil
}

// FirstLeaf descends to the first leaf of the subtree rooted at n.
func FirstLeaf(n *html.Node) *html.Node {
	for n.FirstChild != nil {
		n = n.FirstChild
	}
	return n
}

// LastLeaf descends to the last leaf of the subtree rooted at n.
func LastLeaf(n *html.Node) *html.Node {
	for n.LastChild != nil {
		n = n.LastChild
	}
	return n
}

// PreviousLeaf returns the leaf preceding n in document order, staying
// within root. Returns nil at the front of the tree.
func PreviousLeaf(n, root *html.Node) *html.Node {
	for n != nil && n != root {
		if n.PrevSibling != nil {
			return LastLeaf(n.PrevSibling)
		}
		n = n.Parent
	}
	return nil
}

// NextLeaf returns the leaf following n in document order, staying
// within root. Returns nil at the back of the tree.
func NextLeaf(n, root *html.Node) *html.Node {
	for n != nil && n != root {
		if n.NextSibling != nil {
			return FirstLeaf(n.NextSibling)
		}
		n = n.Parent
	}
	return nil
}

// Attr returns the value of the named attribute and whether it is set.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces the named attribute on n.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
