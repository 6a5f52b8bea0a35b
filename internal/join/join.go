package join

import (
	"golang.org/x/net/html"

	"github.com/dshills/excise/internal/classify"
	"github.com/dshills/excise/internal/dom"
	"github.com/dshills/excise/internal/policy"
)

// Kind classifies a joinable fragment.
type Kind uint8

const (
	// KindNone means no fragment is available on that side.
	KindNone Kind = iota
	// KindInline marks an inline fragment (element or text).
	KindInline
	// KindBlock marks a block fragment.
	KindBlock
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindInline:
		return "inline"
	case KindBlock:
		return "block"
	default:
		return "none"
	}
}

// Side selects which boundary of a range to inspect.
type Side uint8

const (
	// SideStart inspects the fragment preceding the cut.
	SideStart Side = iota
	// SideEnd inspects the fragment following the cut.
	SideEnd
)

// Fragment is a joinable fragment adjacent to a cut.
type Fragment struct {
	Node *html.Node
	Kind Kind
}

// Joiner applies fragment merges under policy control.
type Joiner struct {
	c      *classify.Classifier
	policy *policy.Registry
}

// New creates a Joiner.
func New(c *classify.Classifier, p *policy.Registry) *Joiner {
	return &Joiner{c: c, policy: p}
}

// JoinableFragment walks upward from the boundary container toward
// (not including) the common ancestor. The first block ancestor is the
// joinable block; failing that, the last inline ancestor visited is
// the joinable inline. When the boundary container is the common
// ancestor itself, the adjacent sibling at the boundary offset is the
// fragment, but only if it is inline: a block sibling is never
// auto-joined across a direct-child cut.
func (j *Joiner) JoinableFragment(rng dom.Range, side Side) Fragment {
	ca := rng.CommonAncestor()
	pos := rng.Start
	if side == SideEnd {
		pos = rng.End
	}

	if pos.Container == ca {
		var sib *html.Node
		if side == SideStart {
			sib = pos.NodeBefore()
		} else {
			sib = pos.NodeAfter()
		}
		if sib == nil || j.c.IsBlock(sib) {
			return Fragment{Kind: KindNone}
		}
		return Fragment{Node: sib, Kind: KindInline}
	}

	var lastInline *html.Node
	for n := pos.Container; n != nil && n != ca; n = n.Parent {
		if j.c.IsBlock(n) {
			return Fragment{Node: n, Kind: KindBlock}
		}
		lastInline = n
	}
	if lastInline == nil {
		return Fragment{Kind: KindNone}
	}
	return Fragment{Node: lastInline, Kind: KindInline}
}

// Join inspects the fragments on both sides of the cut and applies the
// appropriate merge. On success the returned range is collapsed to the
// original start; on a failed or no-op join the input range is
// returned unchanged with ok false.
func (j *Joiner) Join(rng dom.Range) (dom.Range, bool) {
	ca := rng.CommonAncestor()
	left := j.JoinableFragment(rng, SideStart)
	right := j.JoinableFragment(rng, SideEnd)

	var joined bool
	switch {
	case left.Kind == KindBlock && right.Kind == KindBlock:
		joined = j.mergeBlocks(left.Node, right.Node, ca)
	case left.Kind == KindBlock && right.Kind == KindInline:
		joined = j.absorbInline(left.Node, right.Node, ca)
	case left.Kind == KindInline && right.Kind == KindBlock:
		joined = j.unwrapBlock(left.Node, right.Node, ca)
	}
	if !joined {
		return rng, false
	}
	return rng.CollapseToStart(), true
}

// mergeBlocks appends the right block's children to the left block and
// removes the emptied right block, collapsing any wrapper shells it
// leaves behind up to (not including) the common ancestor.
func (j *Joiner) mergeBlocks(left, right *html.Node, ca *html.Node) bool {
	if j.policy.Unmergeable(left, ca) || j.policy.Unmergeable(right, ca) {
		return false
	}
	dom.MoveChildren(right, left)
	removeAndCollapse(right, ca)
	return true
}

// absorbInline relocates the run of inline siblings starting at the
// right fragment (stopping at the next block sibling) to the end of
// the left block.
func (j *Joiner) absorbInline(left, right *html.Node, ca *html.Node) bool {
	if j.policy.Unmergeable(left, ca) {
		return false
	}
	parent := right.Parent
	for n := right; n != nil && !j.c.IsBlock(n); {
		next := n.NextSibling
		dom.Detach(n)
		left.AppendChild(n)
		n = next
	}
	collapseEmptyShells(parent, ca)
	return true
}

// unwrapBlock splices the right block's children directly after the
// left inline fragment and removes the emptied block. If the collapse
// of emptied wrappers reaches all the way to the common ancestor, an
// explicit line break is inserted before whatever inline content
// originally followed the removed block, preserving the visual line
// separation the block used to provide.
func (j *Joiner) unwrapBlock(left, right *html.Node, ca *html.Node) bool {
	if j.policy.Unmergeable(right, ca) {
		return false
	}

	// Topmost node that will vanish once the block empties out.
	top := right
	for top.Parent != ca && dom.ChildCount(top.Parent) == 1 {
		top = top.Parent
	}
	following := top.NextSibling

	parent := left.Parent
	ref := left
	for c := right.FirstChild; c != nil; c = right.FirstChild {
		right.RemoveChild(c)
		dom.InsertAfter(parent, ref, c)
		ref = c
	}
	reachedCA := top.Parent == ca
	removeAndCollapse(right, ca)

	if reachedCA && following != nil && j.c.IsInline(following) {
		br := &html.Node{Type: html.ElementNode, Data: "br"}
		following.Parent.InsertBefore(br, following)
	}
	return true
}

// removeAndCollapse detaches n and then removes any ancestors the
// detachment emptied, stopping at (not including) ca. The walk is
// iterative so stack depth stays independent of tree depth.
func removeAndCollapse(n, ca *html.Node) {
	parent := n.Parent
	dom.Detach(n)
	collapseEmptyShells(parent, ca)
}

func collapseEmptyShells(parent, ca *html.Node) {
	for parent != nil && parent != ca && parent.FirstChild == nil {
		next := parent.Parent
		dom.Detach(parent)
		parent = next
	}
}
