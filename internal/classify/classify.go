package classify

import (
	"golang.org/x/net/html"

	"github.com/dshills/excise/internal/dom"
)

// Attribute names recognized by the classifier.
const (
	// AttrBogus marks a line break inserted by the engine to keep an
	// emptied block visibly non-collapsed, as opposed to an authored
	// break.
	AttrBogus = "data-bogus"

	// AttrUnbreakable flags an element that blocks fragment joins
	// across it.
	AttrUnbreakable = "data-unbreakable"

	// AttrContentEditable carries the host's editability flag. The
	// value "false" marks a non-editable island.
	AttrContentEditable = "contenteditable"
)

// ZeroWidthSpace keeps an emptied inline element focusable.
const ZeroWidthSpace = '\u200b'

// NonBreakingSpace replaces a collapsible space that tree surgery
// would otherwise render invisible.
const NonBreakingSpace = '\u00a0'

// defaultBlockTags lists elements that occupy their own line.
var defaultBlockTags = []string{
	"address", "article", "aside", "blockquote", "caption", "dd",
	"div", "dl", "dt", "fieldset", "figcaption", "figure", "footer",
	"form", "h1", "h2", "h3", "h4", "h5", "h6", "header", "hr", "li",
	"main", "nav", "ol", "p", "pre", "section", "table", "tbody",
	"td", "tfoot", "th", "thead", "tr", "ul",
}

// defaultVoidTags lists self-closing elements.
var defaultVoidTags = []string{
	"area", "base", "br", "col", "embed", "hr", "img", "input",
	"link", "meta", "param", "source", "track", "wbr",
}

// Classifier classifies document nodes. The zero value is not usable;
// construct with New.
type Classifier struct {
	block       map[string]bool
	void        map[string]bool
	unbreakable map[string]bool
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithBlockTags adds tags to the block set.
func WithBlockTags(tags ...string) Option {
	return func(c *Classifier) {
		for _, t := range tags {
			c.block[t] = true
		}
	}
}

// WithVoidTags adds tags to the self-closing set.
func WithVoidTags(tags ...string) Option {
	return func(c *Classifier) {
		for _, t := range tags {
			c.void[t] = true
		}
	}
}

// WithUnbreakableTags adds tags to the unbreakable set.
func WithUnbreakableTags(tags ...string) Option {
	return func(c *Classifier) {
		for _, t := range tags {
			c.unbreakable[t] = true
		}
	}
}

// New creates a Classifier with the standard HTML tag sets plus any
// options.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		block:       make(map[string]bool, len(defaultBlockTags)),
		void:        make(map[string]bool, len(defaultVoidTags)),
		unbreakable: make(map[string]bool),
	}
	for _, t := range defaultBlockTags {
		c.block[t] = true
	}
	for _, t := range defaultVoidTags {
		c.void[t] = true
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// IsBlock returns true if n is an element occupying its own line.
func (c *Classifier) IsBlock(n *html.Node) bool {
	return dom.IsElement(n) && c.block[n.Data]
}

// IsInline returns true if n is a text node or a non-block element.
func (c *Classifier) IsInline(n *html.Node) bool {
	return dom.IsText(n) || (dom.IsElement(n) && !c.block[n.Data])
}

// IsVoid returns true if n is a self-closing element.
func (c *Classifier) IsVoid(n *html.Node) bool {
	return dom.IsElement(n) && c.void[n.Data]
}

// IsLineBreak returns true if n is a br element.
func (c *Classifier) IsLineBreak(n *html.Node) bool {
	return dom.IsElement(n) && n.Data == "br"
}

// IsFakeLineBreak returns true if n is a break that exists only to
// keep its block visibly non-collapsed: either explicitly marked, or
// the lone trailing break of its closest block. A break adjacent to
// another break is authored: consecutive breaks render a blank line.
func (c *Classifier) IsFakeLineBreak(n *html.Node) bool {
	if !c.IsLineBreak(n) {
		return false
	}
	if _, ok := dom.Attr(n, AttrBogus); ok {
		return true
	}
	block := c.ClosestBlock(n)
	if block == nil {
		return false
	}
	for leaf := dom.NextLeaf(n, block); leaf != nil; leaf = dom.NextLeaf(leaf, block) {
		if c.IsLineBreak(leaf) || c.isVisibleLeaf(leaf) {
			return false
		}
	}
	for leaf := dom.PreviousLeaf(n, block); leaf != nil; leaf = dom.PreviousLeaf(leaf, block) {
		if c.IsLineBreak(leaf) {
			return false
		}
		if c.isVisibleLeaf(leaf) {
			break
		}
	}
	return true
}

// IsNonEditable returns true if n itself carries the non-editable flag.
func (c *Classifier) IsNonEditable(n *html.Node) bool {
	if !dom.IsElement(n) {
		return false
	}
	v, ok := dom.Attr(n, AttrContentEditable)
	return ok && v == "false"
}

// NonEditableRoot returns the outermost non-editable ancestor of n
// (self included), walking no higher than root. Returns nil if n is
// editable.
func (c *Classifier) NonEditableRoot(n, root *html.Node) *html.Node {
	var island *html.Node
	for ; n != nil && n != root; n = n.Parent {
		if c.IsNonEditable(n) {
			island = n
		}
	}
	return island
}

// IsUnbreakable returns true if n blocks fragment joins across it.
func (c *Classifier) IsUnbreakable(n *html.Node) bool {
	if !dom.IsElement(n) {
		return false
	}
	if c.unbreakable[n.Data] {
		return true
	}
	_, ok := dom.Attr(n, AttrUnbreakable)
	return ok
}

// ClosestBlock returns the nearest block ancestor of n, self included.
func (c *Classifier) ClosestBlock(n *html.Node) *html.Node {
	for ; n != nil; n = n.Parent {
		if c.IsBlock(n) || (dom.IsElement(n) && n.Data == "body") {
			return n
		}
	}
	return nil
}

// HasVisibleContent reports whether the subtree rooted at n contains
// anything a user can see or select: a non-whitespace, non-zero-width
// character, a replaced element such as an image, or a non-editable
// widget. Line breaks do not count.
func (c *Classifier) HasVisibleContent(n *html.Node) bool {
	if dom.IsText(n) {
		return HasVisibleChar(n.Data)
	}
	if !dom.IsElement(n) {
		return false
	}
	if c.IsNonEditable(n) {
		return true
	}
	if c.IsVoid(n) && !c.IsLineBreak(n) {
		return true
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if c.HasVisibleContent(child) {
			return true
		}
	}
	return false
}

// IsEmptyInline returns true if n is an inline element with no visible
// content.
func (c *Classifier) IsEmptyInline(n *html.Node) bool {
	return dom.IsElement(n) && !c.IsBlock(n) && !c.HasVisibleContent(n)
}

// isVisibleLeaf reports whether a single leaf contributes visible
// content on its own.
func (c *Classifier) isVisibleLeaf(n *html.Node) bool {
	if dom.IsText(n) {
		return HasVisibleChar(n.Data)
	}
	if c.IsLineBreak(n) {
		return false
	}
	return c.HasVisibleContent(n)
}
