package caret

import (
	"golang.org/x/net/html"

	"github.com/dshills/excise/internal/dom"
)

// PreviousLineBoundary returns the position at the start of the line
// containing pos: just after the nearest authored break within the
// block, or the block start. If pos already sits at that boundary the
// call degenerates to Previous, so a line delete at a boundary behaves
// like a character delete.
func (f *Finder) PreviousLineBoundary(pos dom.Position) (dom.Position, bool) {
	block := f.c.ClosestBlock(pos.Container)
	if block == nil {
		return f.Previous(pos)
	}
	if f.atLineStart(pos, block) {
		return f.Previous(pos)
	}
	for leaf := f.leafBefore(pos, block); leaf != nil; leaf = dom.PreviousLeaf(leaf, block) {
		if f.c.IsLineBreak(leaf) && !f.c.IsFakeLineBreak(leaf) {
			return dom.PositionAfter(leaf), true
		}
	}
	return dom.PositionAtStart(block), true
}

// NextLineBoundary is the forward mirror of PreviousLineBoundary.
func (f *Finder) NextLineBoundary(pos dom.Position) (dom.Position, bool) {
	block := f.c.ClosestBlock(pos.Container)
	if block == nil {
		return f.Next(pos)
	}
	if f.atLineEnd(pos, block) {
		return f.Next(pos)
	}
	for leaf := f.leafAfter(pos, block); leaf != nil; leaf = dom.NextLeaf(leaf, block) {
		if f.c.IsLineBreak(leaf) {
			return dom.PositionBefore(leaf), true
		}
	}
	return dom.PositionAtEnd(block), true
}

// leafBefore returns the last leaf strictly before pos, bounded by
// root.
func (f *Finder) leafBefore(pos dom.Position, root *html.Node) *html.Node {
	if dom.IsText(pos.Container) {
		return dom.PreviousLeaf(pos.Container, root)
	}
	if child := dom.ChildAt(pos.Container, pos.Offset-1); child != nil && pos.Offset > 0 {
		return dom.LastLeaf(child)
	}
	return dom.PreviousLeaf(pos.Container, root)
}

// leafAfter returns the first leaf strictly after pos, bounded by
// root.
func (f *Finder) leafAfter(pos dom.Position, root *html.Node) *html.Node {
	if dom.IsText(pos.Container) {
		return dom.NextLeaf(pos.Container, root)
	}
	if child := dom.ChildAt(pos.Container, pos.Offset); child != nil {
		return dom.FirstLeaf(child)
	}
	return dom.NextLeaf(pos.Container, root)
}

// atLineStart reports whether no visible content precedes pos within
// its line.
func (f *Finder) atLineStart(pos dom.Position, block *html.Node) bool {
	if dom.IsText(pos.Container) {
		if _, decided := classifyTail(pos.Container.Data[:pos.Offset]); decided {
			return false
		}
	}
	for leaf := f.leafBefore(pos, block); leaf != nil; leaf = dom.PreviousLeaf(leaf, block) {
		if f.c.IsLineBreak(leaf) {
			return true
		}
		if f.leafHasContent(leaf) {
			return false
		}
	}
	return true
}

// atLineEnd reports whether no visible content follows pos within its
// line.
func (f *Finder) atLineEnd(pos dom.Position, block *html.Node) bool {
	if dom.IsText(pos.Container) {
		if _, decided := classifyHead(pos.Container.Data[pos.Offset:]); decided {
			return false
		}
	}
	for leaf := f.leafAfter(pos, block); leaf != nil; leaf = dom.NextLeaf(leaf, block) {
		if f.c.IsLineBreak(leaf) {
			return true
		}
		if f.leafHasContent(leaf) {
			return false
		}
	}
	return true
}

// AtBlockStart reports whether no visible content precedes pos inside
// its closest block.
func (f *Finder) AtBlockStart(pos dom.Position) bool {
	block := f.c.ClosestBlock(pos.Container)
	if block == nil {
		return true
	}
	if dom.IsText(pos.Container) {
		if _, decided := classifyTail(pos.Container.Data[:pos.Offset]); decided {
			return false
		}
	}
	for leaf := f.leafBefore(pos, block); leaf != nil; leaf = dom.PreviousLeaf(leaf, block) {
		if f.leafHasContent(leaf) {
			return false
		}
		if f.c.IsLineBreak(leaf) && !f.c.IsFakeLineBreak(leaf) {
			return false
		}
	}
	return true
}

func (f *Finder) leafHasContent(leaf *html.Node) bool {
	if dom.IsText(leaf) {
		_, decided := classifyTail(leaf.Data)
		return decided
	}
	return f.c.HasVisibleContent(leaf)
}
