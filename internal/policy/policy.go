package policy

import (
	"sync"

	"golang.org/x/net/html"

	"github.com/dshills/excise/internal/classify"
	"github.com/dshills/excise/internal/dom"
)

// Rule decides whether a node must survive a deletion rooted at root.
// The root parameter lets a rule scope itself: some elements are only
// unremovable in isolation (a table cell is removable when its whole
// table is being removed).
type Rule func(n, root *html.Node) bool

// DescendantsHook lets a composite widget take over partial removal.
// It returns the exact descendants to remove and true when it claims
// the node; the node itself is then removed unconditionally.
type DescendantsHook func(n *html.Node) ([]*html.Node, bool)

// Registry evaluates removal policy. Rules are checked in registration
// order; any match makes a node unremovable.
type Registry struct {
	mu    sync.RWMutex
	c     *classify.Classifier
	rules []namedRule
	hooks []DescendantsHook
}

type namedRule struct {
	name string
	fn   Rule
}

// NewRegistry creates a Registry backed by the given classifier.
func NewRegistry(c *classify.Classifier) *Registry {
	return &Registry{c: c}
}

// AddRule registers an unremovable predicate under a diagnostic name.
func (r *Registry) AddRule(name string, fn Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, namedRule{name: name, fn: fn})
}

// AddHook registers a descendants-to-remove hook.
func (r *Registry) AddHook(fn DescendantsHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, fn)
}

// Rules returns the names of the registered rules in order.
func (r *Registry) Rules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.rules))
	for i, nr := range r.rules {
		names[i] = nr.name
	}
	return names
}

// Unremovable returns true if any registered rule claims n for a
// deletion rooted at root. Text nodes are always removable.
func (r *Registry) Unremovable(n, root *html.Node) bool {
	if !dom.IsElement(n) {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, nr := range r.rules {
		if nr.fn(n, root) {
			return true
		}
	}
	return false
}

// DescendantsToRemove consults the hooks in order; the first hook to
// claim n wins.
func (r *Registry) DescendantsToRemove(n *html.Node) ([]*html.Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.hooks {
		if nodes, ok := h(n); ok {
			return nodes, true
		}
	}
	return nil, false
}

// Unmergeable returns true if n blocks fragment joins: unremovable for
// the given root, or externally flagged unbreakable.
func (r *Registry) Unmergeable(n, root *html.Node) bool {
	return r.Unremovable(n, root) || r.c.IsUnbreakable(n)
}

// TagRule builds a rule matching elements by tag name regardless of
// the removal root.
func TagRule(tags ...string) Rule {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return func(n, _ *html.Node) bool {
		return set[n.Data]
	}
}

// AttrRule builds a rule matching elements carrying the named
// attribute.
func AttrRule(key string) Rule {
	return func(n, _ *html.Node) bool {
		_, ok := dom.Attr(n, key)
		return ok
	}
}

// IsolatedTagRule builds a rule matching elements by tag name only in
// isolation: the element survives a partial cut but goes down with its
// enclosing structure. A table cell, for example, is removable when
// its whole table sits inside the removal root.
func IsolatedTagRule(tag, enclosing string) Rule {
	return func(n, root *html.Node) bool {
		if n.Data != tag {
			return false
		}
		for a := n.Parent; a != nil; a = a.Parent {
			if dom.IsElement(a) && a.Data == enclosing {
				return !dom.Contains(root, a)
			}
		}
		return true
	}
}
