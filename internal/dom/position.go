package dom

import (
	"fmt"

	"golang.org/x/net/html"
)

// Position is a boundary point in the document tree. For a text-node
// container, Offset is a byte index into the text (0..len). For an
// element container, Offset is a child index (0..childCount) denoting
// a point between children.
type Position struct {
	Container *html.Node
	Offset    int
}

// IsZero returns true for the zero Position (no container).
func (p Position) IsZero() bool {
	return p.Container == nil
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	if p.Container == nil {
		return "(nil)"
	}
	name := p.Container.Data
	if IsText(p.Container) {
		name = fmt.Sprintf("%q", p.Container.Data)
	}
	return fmt.Sprintf("(%s:%d)", name, p.Offset)
}

// PositionBefore returns the element position immediately before n in
// its parent.
func PositionBefore(n *html.Node) Position {
	return Position{Container: n.Parent, Offset: Index(n)}
}

// PositionAfter returns the element position immediately after n in
// its parent.
func PositionAfter(n *html.Node) Position {
	return Position{Container: n.Parent, Offset: Index(n) + 1}
}

// PositionAtStart returns the position at the very start of n.
func PositionAtStart(n *html.Node) Position {
	return Position{Container: n, Offset: 0}
}

// PositionAtEnd returns the position at the very end of n.
func PositionAtEnd(n *html.Node) Position {
	return Position{Container: n, Offset: Length(n)}
}

// Compare returns -1 if p sorts before q in tree order, 0 if equal,
// 1 if after. Both positions must belong to the same tree.
func (p Position) Compare(q Position) int {
	if p.Container == q.Container {
		switch {
		case p.Offset < q.Offset:
			return -1
		case p.Offset > q.Offset:
			return 1
		default:
			return 0
		}
	}

	// Containment cases: compare the offset against the index of the
	// direct child leading toward the other container.
	if Contains(p.Container, q.Container) {
		c := childToward(p.Container, q.Container)
		if p.Offset <= Index(c) {
			return -1
		}
		return 1
	}
	if Contains(q.Container, p.Container) {
		c := childToward(q.Container, p.Container)
		if q.Offset <= Index(c) {
			return 1
		}
		return -1
	}

	// Disjoint containers: compare the diverging children under the
	// common ancestor.
	ca := CommonAncestor(p.Container, q.Container)
	pc := childToward(ca, p.Container)
	qc := childToward(ca, q.Container)
	if Index(pc) < Index(qc) {
		return -1
	}
	return 1
}

// Before returns true if p sorts strictly before q.
func (p Position) Before(q Position) bool {
	return p.Compare(q) < 0
}

// After returns true if p sorts strictly after q.
func (p Position) After(q Position) bool {
	return p.Compare(q) > 0
}

// childToward returns the direct child of ancestor on the path down to
// descendant.
func childToward(ancestor, descendant *html.Node) *html.Node {
	c := descendant
	for c.Parent != ancestor {
		c = c.Parent
	}
	return c
}

// NodeAfter returns the child immediately following an element
// position, or nil if the position is at the container's end or the
// container is a text node.
func (p Position) NodeAfter() *html.Node {
	if IsText(p.Container) {
		return nil
	}
	return ChildAt(p.Container, p.Offset)
}

// NodeBefore returns the child immediately preceding an element
// position, or nil if the position is at the container's start or the
// container is a text node.
func (p Position) NodeBefore() *html.Node {
	if IsText(p.Container) {
		return nil
	}
	return ChildAt(p.Container, p.Offset-1)
}
