package remove

import (
	"testing"

	"golang.org/x/net/html"

	"github.com/dshills/excise/internal/classify"
	"github.com/dshills/excise/internal/dom"
	"github.com/dshills/excise/internal/dom/domtest"
	"github.com/dshills/excise/internal/policy"
)

func newRemover(rules ...policy.Rule) *Remover {
	reg := policy.NewRegistry(classify.New())
	for _, r := range rules {
		reg.AddRule("test", r)
	}
	return New(reg)
}

func findTag(t *testing.T, root *html.Node, tag string) *html.Node {
	t.Helper()
	var walk func(n *html.Node) *html.Node
	walk = func(n *html.Node) *html.Node {
		if dom.IsElement(n) && n.Data == tag {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if found := walk(c); found != nil {
				return found
			}
		}
		return nil
	}
	found := walk(root)
	if found == nil {
		t.Fatalf("no <%s> in tree", tag)
	}
	return found
}

func TestRemoveNodePlain(t *testing.T) {
	body := domtest.MustParseBody(t, "<p>a</p><div><b>x</b>y</div>")
	div := findTag(t, body, "div")

	if !newRemover().RemoveNode(div) {
		t.Error("plain subtree not fully removed")
	}
	if got := dom.RenderChildren(body); got != "<p>a</p>" {
		t.Errorf("tree = %q", got)
	}
}

func TestRemoveNodeUnremovableChildless(t *testing.T) {
	body := domtest.MustParseBody(t, "<div><figure>x</figure>y</div>")
	div := findTag(t, body, "div")
	r := newRemover(policy.TagRule("figure"))

	if r.RemoveNode(div) {
		t.Error("removal reported complete despite a survivor")
	}
	// The figure loses its content but holds its place; the emptied
	// div survives because something inside it did.
	if got := dom.RenderChildren(body); got != "<div><figure></figure></div>" {
		t.Errorf("tree = %q", got)
	}
}

func TestRemoveNodeUnremovableWrapperUnwraps(t *testing.T) {
	body := domtest.MustParseBody(t, "<section><figure>a</figure>b</section>")
	section := findTag(t, body, "section")
	r := newRemover(policy.TagRule("section", "figure"))

	if r.RemoveNode(section) {
		t.Error("removal reported complete despite survivors")
	}
	// The unremovable wrapper still holding a survivor is replaced by
	// its children in the parent.
	if got := dom.RenderChildren(body); got != "<figure></figure>" {
		t.Errorf("tree = %q", got)
	}
}

func TestRemoveNodeDescendantsHook(t *testing.T) {
	body := domtest.MustParseBody(t, "<div><b>x</b><i>y</i></div>")
	div := findTag(t, body, "div")
	b := findTag(t, body, "b")

	reg := policy.NewRegistry(classify.New())
	reg.AddRule("never", policy.TagRule("i")) // would survive without the hook
	reg.AddHook(func(n *html.Node) ([]*html.Node, bool) {
		if n == div {
			return []*html.Node{b}, true
		}
		return nil, false
	})

	if !New(reg).RemoveNode(div) {
		t.Error("hook-claimed removal reported incomplete")
	}
	if got := dom.RenderChildren(body); got != "" {
		t.Errorf("tree = %q", got)
	}
}

func TestCoveredNodesSameContainer(t *testing.T) {
	body, r := domtest.MustParse(t, "<p>a</p>[<div>x</div><div>y</div>]<p>b</p>")

	nodes := CoveredNodes(r)
	if len(nodes) != 2 || nodes[0].Data != "div" || nodes[1].Data != "div" {
		t.Fatalf("CoveredNodes = %v", nodes)
	}
	if nodes[0] != dom.ChildAt(body, 1) || nodes[1] != dom.ChildAt(body, 2) {
		t.Error("covered nodes are not the two middle divs")
	}
}

func TestCoveredNodesAcrossChains(t *testing.T) {
	body, r := domtest.MustParse(t,
		"<div><b>p[q</b>r</div><i>mid</i><div>s]t</div>")

	nodes := CoveredNodes(r)
	if len(nodes) != 2 {
		t.Fatalf("CoveredNodes = %d nodes, want 2", len(nodes))
	}
	if !dom.IsText(nodes[0]) || nodes[0].Data != "r" {
		t.Errorf("first covered = %v, want trailing text \"r\"", nodes[0])
	}
	if !dom.IsElement(nodes[1]) || nodes[1].Data != "i" {
		t.Errorf("second covered = %v, want the middle <i>", nodes[1])
	}
	// Boundary text nodes are never covered.
	if got := dom.RenderChildren(body); got != "<div><b>pq</b>r</div><i>mid</i><div>st</div>" {
		t.Errorf("CoveredNodes mutated the tree: %q", got)
	}
}

func TestCoveredNodesAdjacentBoundaries(t *testing.T) {
	_, r := domtest.MustParse(t, "<h1>a[b</h1><p>c]d</p>")
	if nodes := CoveredNodes(r); len(nodes) != 0 {
		t.Errorf("CoveredNodes = %v, want none between adjacent chains", nodes)
	}
}

func TestRemoveRange(t *testing.T) {
	body, r := domtest.MustParse(t,
		"<div><b>p[q</b>r</div><i>mid</i><div>s]t</div>")

	if !newRemover().RemoveRange(r) {
		t.Error("RemoveRange reported survivors")
	}
	if got := dom.RenderChildren(body); got != "<div><b>pq</b></div><div>st</div>" {
		t.Errorf("tree = %q", got)
	}
}

func TestRemoveRangeSurvivor(t *testing.T) {
	body, r := domtest.MustParse(t, "<p>a</p>[<figure>x</figure>]<p>b</p>")
	rem := newRemover(policy.TagRule("figure"))

	if rem.RemoveRange(r) {
		t.Error("RemoveRange reported complete despite a survivor")
	}
	if got := dom.RenderChildren(body); got != "<p>a</p><figure></figure><p>b</p>" {
		t.Errorf("tree = %q", got)
	}
}
