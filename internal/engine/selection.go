package engine

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/excise/internal/caret"
	"github.com/dshills/excise/internal/dom"
)

// SelectionService is the engine's view of the host's selection: read
// the current selection, publish a new one, and extend a range by one
// word for word-granularity deletion.
type SelectionService interface {
	Selection() (dom.Range, bool)
	SetSelection(r dom.Range)
	ExtendByWord(r dom.Range, dir Direction) dom.Range
}

// BasicSelection is a minimal in-process selection service for hosts
// without a native selection, such as tests and the demo surface. Word
// extension steps through visible positions and stops when the crossed
// character is no longer a word character.
type BasicSelection struct {
	finder *caret.Finder
	r      dom.Range
	set    bool
}

// NewBasicSelection creates a BasicSelection using the given finder.
func NewBasicSelection(f *caret.Finder) *BasicSelection {
	return &BasicSelection{finder: f}
}

// Selection implements SelectionService.
func (s *BasicSelection) Selection() (dom.Range, bool) {
	return s.r, s.set
}

// SetSelection implements SelectionService.
func (s *BasicSelection) SetSelection(r dom.Range) {
	s.r = r
	s.set = true
}

// ExtendByWord implements SelectionService.
func (s *BasicSelection) ExtendByWord(r dom.Range, dir Direction) dom.Range {
	if dir == Backward {
		r.Start = s.walkWord(r.Start, true)
		return r
	}
	r.End = s.walkWord(r.End, false)
	return r
}

func (s *BasicSelection) walkWord(p dom.Position, backward bool) dom.Position {
	first := true
	for {
		var q dom.Position
		var ok bool
		if backward {
			q, ok = s.finder.Previous(p)
		} else {
			q, ok = s.finder.Next(p)
		}
		if !ok {
			return p
		}
		ch, sameText := crossedChar(p, q, backward)
		if first {
			p = q
			first = false
			if !sameText || !isWordRune(ch) {
				return p
			}
			continue
		}
		if !sameText || !isWordRune(ch) {
			return p
		}
		p = q
	}
}

// crossedChar returns the character stepped over between p and q when
// both sit in the same text node.
func crossedChar(p, q dom.Position, backward bool) (rune, bool) {
	if p.Container != q.Container || !dom.IsText(p.Container) {
		return 0, false
	}
	at := p.Offset
	if backward {
		at = q.Offset
	}
	if at < 0 || at >= len(p.Container.Data) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(p.Container.Data[at:])
	return r, true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
