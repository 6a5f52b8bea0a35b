package remove

import (
	"golang.org/x/net/html"

	"github.com/dshills/excise/internal/dom"
	"github.com/dshills/excise/internal/policy"
)

// Remover deletes nodes under policy control.
type Remover struct {
	policy *policy.Registry
}

// New creates a Remover backed by the given policy registry.
func New(p *policy.Registry) *Remover {
	return &Remover{policy: p}
}

// RemoveNode deletes the subtree rooted at n. It returns true only if
// the entire subtree was removed; an unremovable survivor anywhere in
// the subtree yields false.
func (r *Remover) RemoveNode(n *html.Node) bool {
	return r.removeNode(n, n)
}

func (r *Remover) removeNode(n, root *html.Node) bool {
	if dom.IsText(n) {
		dom.Detach(n)
		return true
	}

	// A composite widget may claim custom partial removal: exactly the
	// descendants it names go, and the node itself goes with them.
	if descendants, ok := r.policy.DescendantsToRemove(n); ok {
		for _, d := range descendants {
			dom.Detach(d)
		}
		dom.Detach(n)
		return true
	}

	// Children first, over a snapshot fixed at entry: removal reshapes
	// the child list as it goes.
	children := snapshot(n)
	for _, c := range children {
		r.removeNode(c, root)
	}

	if r.policy.Unremovable(n, root) {
		if n.FirstChild != nil {
			// Unremovable wrapper around surviving content: the
			// children replace the wrapper in its parent.
			dom.Unwrap(n)
		}
		return false
	}
	if n.FirstChild != nil {
		// Removable, but something inside survived.
		return false
	}
	dom.Detach(n)
	return true
}

// RemoveRange removes every node strictly between the range
// boundaries. Both boundary containers must be element nodes (the
// orchestrator splits text boundaries first). It returns true only if
// every covered node was fully removed; any survivor means an obstacle
// remains between the fragments and joining must not be attempted.
func (r *Remover) RemoveRange(rng dom.Range) bool {
	all := true
	for _, n := range CoveredNodes(rng) {
		if !r.RemoveNode(n) {
			all = false
		}
	}
	return all
}

// CoveredNodes collects, without mutating the tree, the nodes strictly
// between the range boundaries: trailing children at every level of
// the start chain, leading children at every level of the end chain,
// and the direct children of the common ancestor strictly between the
// two chains.
func CoveredNodes(rng dom.Range) []*html.Node {
	ca := rng.CommonAncestor()
	var nodes []*html.Node

	if rng.Start.Container == ca && rng.End.Container == ca {
		for i := rng.Start.Offset; i < rng.End.Offset; i++ {
			nodes = append(nodes, dom.ChildAt(ca, i))
		}
		return nodes
	}

	var startTop, endTop *html.Node

	if rng.Start.Container != ca {
		for c := dom.ChildAt(rng.Start.Container, rng.Start.Offset); c != nil; c = c.NextSibling {
			nodes = append(nodes, c)
		}
		node := rng.Start.Container
		for node.Parent != ca {
			for c := node.NextSibling; c != nil; c = c.NextSibling {
				nodes = append(nodes, c)
			}
			node = node.Parent
		}
		startTop = node
	}

	var endNodes []*html.Node
	if rng.End.Container != ca {
		endOff := dom.ChildAt(rng.End.Container, rng.End.Offset)
		for c := rng.End.Container.FirstChild; c != nil && c != endOff; c = c.NextSibling {
			endNodes = append(endNodes, c)
		}
		node := rng.End.Container
		for node.Parent != ca {
			for c := node.Parent.FirstChild; c != nil && c != node; c = c.NextSibling {
				endNodes = append(endNodes, c)
			}
			node = node.Parent
		}
		endTop = node
	}

	// Direct children of the common ancestor strictly between the two
	// boundary chains.
	var from *html.Node
	if startTop != nil {
		from = startTop.NextSibling
	} else {
		from = dom.ChildAt(ca, rng.Start.Offset)
	}
	var until *html.Node
	if endTop != nil {
		until = endTop
	} else {
		until = dom.ChildAt(ca, rng.End.Offset)
	}
	for c := from; c != nil && c != until; c = c.NextSibling {
		nodes = append(nodes, c)
	}

	return append(nodes, endNodes...)
}

func snapshot(n *html.Node) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return children
}
