package caret

import (
	"golang.org/x/net/html"

	"github.com/dshills/excise/internal/classify"
	"github.com/dshills/excise/internal/dom"
)

// Finder navigates the tree by visually-distinct positions within one
// editable root.
type Finder struct {
	c    *classify.Classifier
	root *html.Node
}

// New creates a Finder scoped to the given editable root.
func New(c *classify.Classifier, root *html.Node) *Finder {
	return &Finder{c: c, root: root}
}

// Root returns the editable root the finder is scoped to.
func (f *Finder) Root() *html.Node {
	return f.root
}

// Previous returns the nearest visible position before pos, or false
// if the editable root is exhausted.
func (f *Finder) Previous(pos dom.Position) (dom.Position, bool) {
	originBlock := f.c.ClosestBlock(pos.Container)

	if dom.IsText(pos.Container) {
		if p, ok := f.prevInText(pos.Container, pos.Offset); ok {
			return p, true
		}
		return f.prevFromLeaf(dom.PreviousLeaf(pos.Container, f.root), originBlock)
	}
	if pos.Offset > 0 {
		child := dom.ChildAt(pos.Container, pos.Offset-1)
		return f.prevFromLeaf(dom.LastLeaf(child), originBlock)
	}
	return f.prevFromLeaf(dom.PreviousLeaf(pos.Container, f.root), originBlock)
}

// Next returns the nearest visible position after pos, or false if the
// editable root is exhausted.
func (f *Finder) Next(pos dom.Position) (dom.Position, bool) {
	originBlock := f.c.ClosestBlock(pos.Container)

	if dom.IsText(pos.Container) {
		if p, ok := f.nextInText(pos.Container, pos.Offset); ok {
			return p, true
		}
		return f.nextFromLeaf(dom.NextLeaf(pos.Container, f.root), originBlock)
	}
	if child := dom.ChildAt(pos.Container, pos.Offset); child != nil {
		return f.nextFromLeaf(dom.FirstLeaf(child), originBlock)
	}
	return f.nextFromLeaf(dom.NextLeaf(pos.Container, f.root), originBlock)
}

// prevFromLeaf walks leaves backward starting at leaf itself. Once the
// walk crosses out of the origin block nothing is skipped anymore, so
// every block crossed yields at least one position.
func (f *Finder) prevFromLeaf(leaf *html.Node, originBlock *html.Node) (dom.Position, bool) {
	blockSwitched := false
	for ; leaf != nil; leaf = dom.PreviousLeaf(leaf, f.root) {
		if island := f.c.NonEditableRoot(leaf, f.root); island != nil {
			if blockSwitched {
				return dom.PositionAfter(island), true
			}
			return dom.PositionBefore(island), true
		}
		if f.c.ClosestBlock(leaf) != originBlock {
			blockSwitched = true
		}
		if dom.IsText(leaf) {
			if blockSwitched {
				return dom.Position{Container: leaf, Offset: len(leaf.Data)}, true
			}
			if p, ok := f.prevInText(leaf, len(leaf.Data)); ok {
				return p, true
			}
			continue
		}
		if blockSwitched || !f.skipLeaf(leaf) {
			return dom.PositionBefore(leaf), true
		}
	}
	return dom.Position{}, false
}

// nextFromLeaf is the forward mirror of prevFromLeaf.
func (f *Finder) nextFromLeaf(leaf *html.Node, originBlock *html.Node) (dom.Position, bool) {
	blockSwitched := false
	for ; leaf != nil; leaf = dom.NextLeaf(leaf, f.root) {
		if island := f.c.NonEditableRoot(leaf, f.root); island != nil {
			if blockSwitched {
				return dom.PositionBefore(island), true
			}
			return dom.PositionAfter(island), true
		}
		if f.c.ClosestBlock(leaf) != originBlock {
			blockSwitched = true
		}
		if dom.IsText(leaf) {
			if blockSwitched {
				return dom.Position{Container: leaf, Offset: 0}, true
			}
			if p, ok := f.nextInText(leaf, 0); ok {
				return p, true
			}
			continue
		}
		if blockSwitched {
			return dom.PositionBefore(leaf), true
		}
		if !f.skipLeaf(leaf) {
			return dom.PositionAfter(leaf), true
		}
	}
	return dom.Position{}, false
}

// skipLeaf reports whether an element leaf carries no position of its
// own: filler breaks, empty placeholders and empty wrappers. Authored
// line breaks and replaced content such as images do count.
func (f *Finder) skipLeaf(leaf *html.Node) bool {
	if f.c.IsFakeLineBreak(leaf) {
		return true
	}
	if f.c.IsLineBreak(leaf) {
		return false
	}
	return !f.c.HasVisibleContent(leaf)
}

// prevInText scans text backward from byte offset `from` for the start
// of the nearest visible grapheme cluster.
func (f *Finder) prevInText(n *html.Node, from int) (dom.Position, bool) {
	starts := graphemeStarts(n.Data)
	for i := len(starts) - 1; i >= 0; i-- {
		s := starts[i]
		if s >= from {
			continue
		}
		e := len(n.Data)
		if i+1 < len(starts) {
			e = starts[i+1]
		}
		if f.charVisible(n, s, e) {
			return dom.Position{Container: n, Offset: s}, true
		}
	}
	return dom.Position{}, false
}

// nextInText scans text forward from byte offset `from` and returns
// the position just after the nearest visible grapheme cluster.
func (f *Finder) nextInText(n *html.Node, from int) (dom.Position, bool) {
	starts := graphemeStarts(n.Data)
	for i, s := range starts {
		if s < from {
			continue
		}
		e := len(n.Data)
		if i+1 < len(starts) {
			e = starts[i+1]
		}
		if f.charVisible(n, s, e) {
			return dom.Position{Container: n, Offset: e}, true
		}
	}
	return dom.Position{}, false
}
