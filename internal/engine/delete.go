package engine

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/dshills/excise/internal/classify"
	"github.com/dshills/excise/internal/dom"
)

// DeleteRange removes the content covered by r and, when the deletion
// empties the boundary between two fragments, joins the survivors. It
// returns the resulting range; an already-collapsed range is returned
// unchanged with nothing mutated.
func (e *Engine) DeleteRange(r dom.Range) dom.Range {
	if r.IsZero() || r.IsCollapsed() {
		return r
	}

	r = e.splitBoundaries(r)
	if r.IsCollapsed() {
		return r
	}

	restoreSpaces := e.prepareSpaceRestore(r)
	defer restoreSpaces()

	ca := r.CommonAncestor()
	neutralized := e.neutralizeFakeBreaks(&r, ca)

	// Anchor the boundaries on nodes that survive removal: offsets
	// into the boundary containers go stale as children vanish.
	startBefore := r.Start.NodeBefore()
	endAt := r.End.NodeAfter()

	allRemoved := e.remover.RemoveRange(r)

	r = reanchor(r, startBefore, endAt)
	e.fillEmptyInlines(&r)

	if allRemoved && !r.IsCollapsed() {
		if joined, ok := e.joiner.Join(r); ok {
			r = joined
		}
	}

	e.restoreFakeBreaks(neutralized)
	e.fillEmptyBlocks(ca)

	return r
}

// splitBoundaries turns both boundary containers into element nodes
// with integer child offsets. A text offset at the node's very edge is
// translated without mutating text; a strictly interior offset splits
// the node. Boundaries are re-expressed through node references so the
// start split cannot stale the end offset.
func (e *Engine) splitBoundaries(r dom.Range) dom.Range {
	type anchor struct {
		parent *html.Node
		before *html.Node // position is just before this child; nil means at parent's end
	}
	toAnchor := func(p dom.Position) anchor {
		if !dom.IsText(p.Container) {
			return anchor{p.Container, dom.ChildAt(p.Container, p.Offset)}
		}
		n := p.Container
		switch {
		case p.Offset <= 0:
			return anchor{n.Parent, n}
		case p.Offset >= len(n.Data):
			return anchor{n.Parent, n.NextSibling}
		default:
			return anchor{n.Parent, dom.SplitText(n, p.Offset)}
		}
	}
	resolve := func(a anchor) dom.Position {
		if a.before == nil {
			return dom.PositionAtEnd(a.parent)
		}
		return dom.PositionBefore(a.before)
	}

	endA := toAnchor(r.End)
	startA := toAnchor(r.Start)
	return dom.NewRange(resolve(startA), resolve(endA))
}

// reanchor recomputes boundary offsets after removal from the nodes
// captured beside the cut.
func reanchor(r dom.Range, startBefore, endAt *html.Node) dom.Range {
	if startBefore != nil && startBefore.Parent == r.Start.Container {
		r.Start.Offset = dom.Index(startBefore) + 1
	} else {
		r.Start.Offset = 0
	}
	if endAt != nil && endAt.Parent == r.End.Container {
		r.End = dom.PositionBefore(endAt)
	} else if endAt == nil {
		r.End = dom.PositionAtEnd(r.End.Container)
	} else {
		r.End.Offset = 0
	}
	return r
}

type fakeBreak struct {
	block *html.Node
	br    *html.Node
}

// neutralizeFakeBreaks removes filler line breaks along both boundary
// ancestor chains up to and including the common ancestor, so removal
// and merge logic never mistakes a filler for authored content. The
// removed breaks are restored later on nodes the deletion left
// untouched. Boundary offsets sitting after a detached filler are
// pulled back in step.
func (e *Engine) neutralizeFakeBreaks(r *dom.Range, ca *html.Node) []fakeBreak {
	var out []fakeBreak
	seen := make(map[*html.Node]bool)
	chain := func(from *html.Node) {
		for n := from; n != nil; n = n.Parent {
			if !seen[n] && dom.IsElement(n) {
				seen[n] = true
				if last := n.LastChild; last != nil && e.c.IsFakeLineBreak(last) {
					idx := dom.Index(last)
					dom.Detach(last)
					out = append(out, fakeBreak{block: n, br: last})
					if r.Start.Container == n && r.Start.Offset > idx {
						r.Start.Offset--
					}
					if r.End.Container == n && r.End.Offset > idx {
						r.End.Offset--
					}
				}
			}
			if n == ca {
				break
			}
		}
	}
	chain(r.Start.Container)
	chain(r.End.Container)
	return out
}

// restoreFakeBreaks puts neutralized filler breaks back on surviving,
// still-attached nodes that need one. A block that gained visible
// content, as after a merge, no longer needs its filler.
func (e *Engine) restoreFakeBreaks(breaks []fakeBreak) {
	for _, fb := range breaks {
		if !dom.Contains(e.root, fb.block) {
			continue
		}
		if e.c.HasVisibleContent(fb.block) {
			continue
		}
		if last := fb.block.LastChild; last != nil && e.c.IsLineBreak(last) {
			continue
		}
		fb.block.AppendChild(fb.br)
	}
}

// fillEmptyInlines keeps an inline boundary element that the deletion
// emptied focusable by giving it a zero-width placeholder.
func (e *Engine) fillEmptyInlines(r *dom.Range) {
	fill := func(n *html.Node) {
		if n == e.root || !dom.IsElement(n) || e.c.IsBlock(n) {
			return
		}
		if n.FirstChild != nil || e.c.IsVoid(n) {
			return
		}
		n.AppendChild(dom.NewText(string(classify.ZeroWidthSpace)))
	}
	fill(r.Start.Container)
	if r.End.Container != r.Start.Container {
		fill(r.End.Container)
	}
}

// fillEmptyBlocks gives every block the operation collapsed a break
// placeholder, innermost first across the whole common-ancestor
// subtree, then the common ancestor's own containing block.
func (e *Engine) fillEmptyBlocks(ca *html.Node) {
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		e.fillBlock(n)
	}
	walk(ca)
	if block := e.c.ClosestBlock(ca); block != nil && block != ca {
		e.fillBlock(block)
	}
}

func (e *Engine) fillBlock(n *html.Node) {
	if !e.c.IsBlock(n) || n == e.root {
		return
	}
	if e.c.HasVisibleContent(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsElement(c) {
			return
		}
	}
	br := &html.Node{Type: html.ElementNode, Data: "br"}
	dom.SetAttr(br, classify.AttrBogus, "")
	n.AppendChild(br)
}

// prepareSpaceRestore captures the text nodes flanking the cut and
// returns a closure that reasserts whitespace visibility after the
// structural changes: a collapsible space the surgery pushed against a
// line edge is replaced with a non-breaking space. The orchestrator
// invokes the closure on every exit path.
func (e *Engine) prepareSpaceRestore(r dom.Range) func() {
	var left, right *html.Node
	if n := r.Start.NodeBefore(); n != nil && dom.IsText(n) {
		left = n
	} else if n := dom.PreviousLeaf(leafAnchor(r.Start), e.root); n != nil && dom.IsText(n) {
		left = n
	}
	if n := r.End.NodeAfter(); n != nil && dom.IsText(n) {
		right = n
	} else if n := dom.NextLeaf(leafAnchor(r.End), e.root); n != nil && dom.IsText(n) {
		right = n
	}

	return func() {
		if left != nil && dom.Contains(e.root, left) {
			if i := len(left.Data) - 1; i >= 0 && left.Data[i] == ' ' && !e.finder.SpaceVisibleAt(left, i) {
				left.Data = left.Data[:i] + string(classify.NonBreakingSpace)
			}
		}
		if right != nil && dom.Contains(e.root, right) {
			if strings.HasPrefix(right.Data, " ") && !e.finder.SpaceVisibleAt(right, 0) {
				right.Data = string(classify.NonBreakingSpace) + right.Data[1:]
			}
		}
	}
}

// leafAnchor picks a node to walk leaves from for an element position.
func leafAnchor(p dom.Position) *html.Node {
	if n := p.NodeBefore(); n != nil {
		return n
	}
	if n := p.NodeAfter(); n != nil {
		return n
	}
	return p.Container
}
