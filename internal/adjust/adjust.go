package adjust

import (
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/dshills/excise/internal/caret"
	"github.com/dshills/excise/internal/classify"
	"github.com/dshills/excise/internal/dom"
)

// Step rewrites a range without mutating the tree.
type Step func(dom.Range) dom.Range

// Apply runs the steps left to right.
func Apply(r dom.Range, steps ...Step) dom.Range {
	for _, s := range steps {
		r = s(r)
	}
	return r
}

// Adjuster provides the range-rewriting steps. Its methods are used as
// Step values.
type Adjuster struct {
	c *classify.Classifier
	f *caret.Finder
}

// New creates an Adjuster.
func New(c *classify.Classifier, f *caret.Finder) *Adjuster {
	return &Adjuster{c: c, f: f}
}

// IncludeEndOrStartBlock extends a block-spanning range to swallow one
// boundary block whole. The end side is tried first: deleting the end
// fragment's block fully merges the remainder into the earlier block,
// which is the commonly expected outcome. Only if the end boundary is
// not flush with its block's end is the start side tried. At most one
// side is extended.
func (a *Adjuster) IncludeEndOrStartBlock(r dom.Range) dom.Range {
	startBlock := a.realBlock(r.Start.Container)
	endBlock := a.realBlock(r.End.Container)
	if startBlock == endBlock {
		return r
	}
	if endBlock != nil {
		if p, ok := extendPastEnd(r.End, endBlock); ok {
			r.End = p
			return r
		}
	}
	if startBlock != nil {
		if p, ok := extendPastStart(r.Start, startBlock); ok {
			r.Start = p
		}
	}
	return r
}

// FullyIncludeLinks pulls a boundary sitting exactly at a link's edge
// outside the link, so a deletion reaching the edge never leaves a
// partially-edited hyperlink behind.
func (a *Adjuster) FullyIncludeLinks(r dom.Range) dom.Range {
	if link := a.closestLink(r.Start.Container); link != nil {
		if _, ok := extendPastStart(r.Start, link); ok {
			r.Start = dom.PositionBefore(link)
		}
	}
	if link := a.closestLink(r.End.Container); link != nil {
		if _, ok := extendPastEnd(r.End, link); ok {
			r.End = dom.PositionAfter(link)
		}
	}
	return r
}

// ExpandToNonEditables widens the range around non-editable islands so
// they are deleted whole, never partially.
func (a *Adjuster) ExpandToNonEditables(r dom.Range) dom.Range {
	root := a.f.Root()
	if island := a.c.NonEditableRoot(r.Start.Container, root); island != nil {
		if prev := dom.PreviousLeaf(island, root); prev != nil {
			r.Start = positionAfterLeaf(prev)
		} else {
			r.Start = dom.PositionAtStart(island.Parent)
		}
	}
	if island := a.c.NonEditableRoot(r.End.Container, root); island != nil {
		r.End = dom.PositionAfter(island)
	}
	return r
}

// IncludeEmptyInlineStart consumes an empty inline wrapper around the
// start boundary rather than leaving an empty shell behind.
func (a *Adjuster) IncludeEmptyInlineStart(r dom.Range) dom.Range {
	if w := a.outermostEmptyInline(r.Start.Container); w != nil {
		r.Start = dom.PositionBefore(w)
	}
	return r
}

// IncludeEmptyInlineEnd is the end-side mirror of
// IncludeEmptyInlineStart.
func (a *Adjuster) IncludeEmptyInlineEnd(r dom.Range) dom.Range {
	if w := a.outermostEmptyInline(r.End.Container); w != nil {
		r.End = dom.PositionAfter(w)
	}
	return r
}

// IncludePreviousZWS absorbs zero-width markers directly before the
// start boundary.
func (a *Adjuster) IncludePreviousZWS(r dom.Range) dom.Range {
	p := r.Start
	for {
		if dom.IsText(p.Container) && p.Offset > 0 {
			rn, size := utf8.DecodeLastRuneInString(p.Container.Data[:p.Offset])
			if classify.IsZeroWidth(rn) {
				p.Offset -= size
				continue
			}
			break
		}
		prev := p.NodeBefore()
		if prev == nil || !dom.IsText(prev) || len(prev.Data) == 0 {
			break
		}
		rn, _ := utf8.DecodeLastRuneInString(prev.Data)
		if !classify.IsZeroWidth(rn) {
			break
		}
		p = dom.PositionAtEnd(prev)
	}
	r.Start = p
	return r
}

// IncludeNextZWS absorbs zero-width markers directly after the end
// boundary.
func (a *Adjuster) IncludeNextZWS(r dom.Range) dom.Range {
	p := r.End
	for {
		if dom.IsText(p.Container) && p.Offset < len(p.Container.Data) {
			rn, size := utf8.DecodeRuneInString(p.Container.Data[p.Offset:])
			if classify.IsZeroWidth(rn) {
				p.Offset += size
				continue
			}
			break
		}
		next := p.NodeAfter()
		if next == nil || !dom.IsText(next) || len(next.Data) == 0 {
			break
		}
		rn, _ := utf8.DecodeRuneInString(next.Data)
		if !classify.IsZeroWidth(rn) {
			break
		}
		p = dom.PositionAtStart(next)
	}
	r.End = p
	return r
}

// CorrectTripleClick compensates for whole-paragraph triple-click
// selections that overshoot into the start of the following block: an
// end boundary at offset 0 with nothing meaningful before it is pulled
// back to the previous visible position.
func (a *Adjuster) CorrectTripleClick(r dom.Range) dom.Range {
	if r.End.Offset != 0 || !a.f.AtBlockStart(r.End) {
		return r
	}
	if prev, ok := a.f.Previous(r.End); ok && r.Start.Compare(prev) <= 0 {
		r.End = prev
	}
	return r
}

// realBlock returns the closest genuine block ancestor, treating the
// editable root as no block.
func (a *Adjuster) realBlock(n *html.Node) *html.Node {
	b := a.c.ClosestBlock(n)
	if b == nil || !a.c.IsBlock(b) || b == a.f.Root() {
		return nil
	}
	return b
}

func (a *Adjuster) closestLink(n *html.Node) *html.Node {
	for ; n != nil && n != a.f.Root(); n = n.Parent {
		if dom.IsElement(n) && n.Data == "a" {
			return n
		}
	}
	return nil
}

func (a *Adjuster) outermostEmptyInline(n *html.Node) *html.Node {
	var target *html.Node
	for w := n; w != nil && w != a.f.Root() && a.c.IsEmptyInline(w); w = w.Parent {
		target = w
	}
	return target
}

// extendPastEnd walks ancestors while the position sits exactly at
// each ancestor's end; it succeeds when the walk reaches node itself,
// returning the position just after it.
func extendPastEnd(p dom.Position, node *html.Node) (dom.Position, bool) {
	for {
		if p.Offset != dom.Length(p.Container) {
			return dom.Position{}, false
		}
		if p.Container == node {
			return dom.PositionAfter(node), true
		}
		if p.Container.Parent == nil || !dom.Contains(node, p.Container) {
			return dom.Position{}, false
		}
		p = dom.PositionAfter(p.Container)
	}
}

// extendPastStart is the backward mirror of extendPastEnd.
func extendPastStart(p dom.Position, node *html.Node) (dom.Position, bool) {
	for {
		if p.Offset != 0 {
			return dom.Position{}, false
		}
		if p.Container == node {
			return dom.PositionBefore(node), true
		}
		if p.Container.Parent == nil || !dom.Contains(node, p.Container) {
			return dom.Position{}, false
		}
		p = dom.PositionBefore(p.Container)
	}
}

// positionAfterLeaf returns the position immediately after a leaf's
// content: inside a text leaf at its end, or the element position
// after any other leaf.
func positionAfterLeaf(leaf *html.Node) dom.Position {
	if dom.IsText(leaf) {
		return dom.PositionAtEnd(leaf)
	}
	return dom.PositionAfter(leaf)
}
