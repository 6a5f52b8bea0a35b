package caret

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/net/html"

	"github.com/dshills/excise/internal/classify"
	"github.com/dshills/excise/internal/dom"
)

// graphemeStarts returns the byte offsets at which grapheme clusters
// begin, so navigation treats combining sequences and emoji atomically.
func graphemeStarts(s string) []int {
	var starts []int
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		start, _ := g.Positions()
		starts = append(starts, start)
	}
	return starts
}

// SpaceVisibleAt reports whether the single-byte collapsible space at
// byte offset idx of text node n is visible in context. Used by the
// orchestrator's whitespace restoration.
func (f *Finder) SpaceVisibleAt(n *html.Node, idx int) bool {
	return f.charVisible(n, idx, idx+1)
}

// charClass describes what precedes or follows a character within its
// line (bounded by the closest block and authored breaks).
type charClass int

const (
	ctxLineEdge charClass = iota
	ctxSpace
	ctxVisible
)

// charVisible reports whether the grapheme cluster n.Data[start:end]
// is visually distinct. Zero-width markers never are. Collapsible
// whitespace is visible only at the start of a run flanked by visible
// content on both sides within the line.
func (f *Finder) charVisible(n *html.Node, start, end int) bool {
	r, _ := utf8.DecodeRuneInString(n.Data[start:end])
	if classify.IsZeroWidth(r) {
		return false
	}
	if !classify.IsCollapsibleSpace(r) {
		return true
	}
	if f.before(n, start) != ctxVisible {
		return false
	}
	return f.visibleAfterRun(n, end)
}

// before classifies the nearest preceding character (or content)
// within the line, crossing text leaves but stopping at authored
// breaks and block edges.
func (f *Finder) before(n *html.Node, idx int) charClass {
	if cls, decided := classifyTail(n.Data[:idx]); decided {
		return cls
	}
	block := f.c.ClosestBlock(n)
	for leaf := dom.PreviousLeaf(n, block); leaf != nil; leaf = dom.PreviousLeaf(leaf, block) {
		if dom.IsText(leaf) {
			if cls, decided := classifyTail(leaf.Data); decided {
				return cls
			}
			continue
		}
		if f.c.IsLineBreak(leaf) {
			return ctxLineEdge
		}
		if f.c.HasVisibleContent(leaf) {
			return ctxVisible
		}
	}
	return ctxLineEdge
}

// classifyTail inspects the trailing characters of s, skipping
// zero-width markers. The second return is false when s holds nothing
// but zero-width content and the caller must keep scanning.
func classifyTail(s string) (charClass, bool) {
	for len(s) > 0 {
		r, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
		if classify.IsZeroWidth(r) {
			continue
		}
		if classify.IsCollapsibleSpace(r) {
			return ctxSpace, true
		}
		return ctxVisible, true
	}
	return ctxLineEdge, false
}

// visibleAfterRun reports whether visible content follows the
// whitespace run starting before byte offset idx, within the same
// line. Trailing whitespace before a break or block edge is invisible.
func (f *Finder) visibleAfterRun(n *html.Node, idx int) bool {
	if cls, decided := classifyHead(n.Data[idx:]); decided {
		return cls == ctxVisible
	}
	block := f.c.ClosestBlock(n)
	for leaf := dom.NextLeaf(n, block); leaf != nil; leaf = dom.NextLeaf(leaf, block) {
		if dom.IsText(leaf) {
			if cls, decided := classifyHead(leaf.Data); decided {
				return cls == ctxVisible
			}
			continue
		}
		if f.c.IsLineBreak(leaf) {
			return false
		}
		if f.c.HasVisibleContent(leaf) {
			return true
		}
	}
	return false
}

// classifyHead inspects the leading characters of s, skipping
// zero-width markers and further whitespace of the run.
func classifyHead(s string) (charClass, bool) {
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if classify.IsZeroWidth(r) || classify.IsCollapsibleSpace(r) {
			continue
		}
		return ctxVisible, true
	}
	return ctxLineEdge, false
}
