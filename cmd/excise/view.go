package main

import (
	"golang.org/x/net/html"

	"github.com/dshills/excise/internal/classify"
	"github.com/dshills/excise/internal/dom"
)

// layout flattens the document into display lines. Block elements and
// line breaks start new lines; zero-width characters are dropped. The
// returned coordinates locate cur on the screen, or (-1, -1) when the
// cursor position was not seen during the walk.
func layout(root *html.Node, cl *classify.Classifier, cur dom.Position) (lines [][]rune, cx, cy int) {
	l := &layouter{cl: cl, cur: cur, cx: -1, cy: -1}
	l.walk(root)
	l.flush()
	if len(l.lines) == 0 {
		l.lines = append(l.lines, nil)
	}
	return l.lines, l.cx, l.cy
}

type layouter struct {
	cl    *classify.Classifier
	cur   dom.Position
	lines [][]rune
	line  []rune
	dirty bool

	cx, cy int
}

func (l *layouter) walk(n *html.Node) {
	if dom.IsText(n) {
		l.text(n)
		return
	}
	if !dom.IsElement(n) {
		return
	}
	if l.cl.IsLineBreak(n) {
		l.newline()
		return
	}
	block := l.cl.IsBlock(n)
	if block && l.dirty {
		l.newline()
	}
	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if l.cur.Container == n && l.cur.Offset == i {
			l.here()
		}
		l.walk(c)
		i++
	}
	if l.cur.Container == n && l.cur.Offset == i {
		l.here()
	}
	if block && l.dirty {
		l.newline()
	}
}

func (l *layouter) text(n *html.Node) {
	target := l.cur.Container == n
	for i, r := range n.Data {
		if target && l.cur.Offset == i {
			l.here()
		}
		if classify.IsZeroWidth(r) {
			continue
		}
		if r == '\n' || r == '\r' {
			r = ' '
		}
		l.line = append(l.line, r)
		l.dirty = true
	}
	if target && l.cur.Offset == len(n.Data) {
		l.here()
	}
}

func (l *layouter) here() {
	l.cx = len(l.line)
	l.cy = len(l.lines)
}

func (l *layouter) newline() {
	l.lines = append(l.lines, l.line)
	l.line = nil
	l.dirty = false
}

func (l *layouter) flush() {
	if len(l.line) > 0 || l.dirty {
		l.newline()
	}
}
