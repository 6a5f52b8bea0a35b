package dom

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// mustParse parses a fragment for tests in this package. The domtest
// helpers live downstream of dom and cannot be used here.
func mustParse(t *testing.T, fragment string) *html.Node {
	t.Helper()
	body, err := ParseBody(fragment)
	if err != nil {
		t.Fatalf("ParseBody(%q): %v", fragment, err)
	}
	return body
}

// findTag returns the first element with the given tag name.
func findTag(t *testing.T, root *html.Node, tag string) *html.Node {
	t.Helper()
	var walk func(n *html.Node) *html.Node
	walk = func(n *html.Node) *html.Node {
		if IsElement(n) && n.Data == tag {
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

func TestChildAccess(t *testing.T) {
	body := mustParse(t, "<p>ab</p><div></div><span>x</span>")

	if got := ChildCount(body); got != 3 {
		t.Errorf("ChildCount = %d, want 3", got)
	}
	p := ChildAt(body, 0)
	if p == nil || p.Data != "p" {
		t.Fatalf("ChildAt(0) = %v, want <p>", p)
	}
	if got := ChildAt(body, 3); got != nil {
		t.Errorf("ChildAt(3) = %v, want nil", got)
	}
	if got := ChildAt(body, -1); got != nil {
		t.Errorf("ChildAt(-1) = %v, want nil", got)
	}
	span := ChildAt(body, 2)
	if got := Index(span); got != 2 {
		t.Errorf("Index(span) = %d, want 2", got)
	}
	if got := Index(body); got != -1 {
		t.Errorf("Index(detached root) = %d, want -1", got)
	}
}

func TestLength(t *testing.T) {
	body := mustParse(t, "<p>héllo</p>")
	p := findTag(t, body, "p")

	if got := Length(p); got != 1 {
		t.Errorf("Length(element) = %d, want child count 1", got)
	}
	if got := Length(p.FirstChild); got != len("héllo") {
		t.Errorf("Length(text) = %d, want byte length %d", got, len("héllo"))
	}
}

func TestContains(t *testing.T) {
	body := mustParse(t, "<p><b>x</b></p><div>y</div>")
	p := findTag(t, body, "p")
	b := findTag(t, body, "b")
	div := findTag(t, body, "div")

	tests := []struct {
		name     string
		ancestor *html.Node
		n        *html.Node
		want     bool
	}{
		{"descendant", p, b.FirstChild, true},
		{"self", p, p, true},
		{"sibling subtree", p, div.FirstChild, false},
		{"child of root", body, div, true},
		{"inverted", b, p, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.ancestor, tt.n); got != tt.want {
				t.Errorf("Contains = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetachAndInsertAfter(t *testing.T) {
	body := mustParse(t, "<p>a</p><p>b</p><p>c</p>")
	second := ChildAt(body, 1)

	Detach(second)
	if got := ChildCount(body); got != 2 {
		t.Fatalf("ChildCount after Detach = %d, want 2", got)
	}
	if second.Parent != nil {
		t.Error("detached node still has a parent")
	}
	Detach(second) // no-op on a detached node

	InsertAfter(body, body.FirstChild, second)
	if got := RenderChildren(body); got != "<p>a</p><p>b</p><p>c</p>" {
		t.Errorf("after reinsert: %q", got)
	}

	Detach(second)
	InsertAfter(body, nil, second)
	if got := RenderChildren(body); got != "<p>b</p><p>a</p><p>c</p>" {
		t.Errorf("after prepend: %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	body := mustParse(t, "<p>a<b>c<i>d</i></b>e</p>")
	b := findTag(t, body, "b")

	Unwrap(b)
	if got := RenderChildren(body); got != "<p>ac<i>d</i>e</p>" {
		t.Errorf("Unwrap: %q", got)
	}
	if b.Parent != nil || b.FirstChild != nil {
		t.Error("unwrapped node not emptied and detached")
	}
}

func TestMoveChildren(t *testing.T) {
	body := mustParse(t, "<p>ab</p><div><b>c</b>d</div>")
	p := findTag(t, body, "p")
	div := findTag(t, body, "div")

	MoveChildren(div, p)
	if got := RenderChildren(body); got != "<p>ab<b>c</b>d</p><div></div>" {
		t.Errorf("MoveChildren: %q", got)
	}
}

func TestCommonAncestor(t *testing.T) {
	body := mustParse(t, "<div><p><b>x</b></p><p>y</p></div><h1>z</h1>")
	div := findTag(t, body, "div")
	b := findTag(t, body, "b")
	h1 := findTag(t, body, "h1")
	secondP := div.LastChild

	if got := CommonAncestor(b.FirstChild, secondP.FirstChild); got != div {
		t.Errorf("CommonAncestor across paragraphs = %v, want div", got)
	}
	if got := CommonAncestor(b, h1); got != body {
		t.Errorf("CommonAncestor across top level = %v, want body", got)
	}
	if got := CommonAncestor(b, b.FirstChild); got != b {
		t.Errorf("CommonAncestor with containment = %v, want b", got)
	}
	detached := NewText("loose")
	if got := CommonAncestor(b, detached); got != nil {
		t.Errorf("CommonAncestor across trees = %v, want nil", got)
	}
}

func TestLeafWalks(t *testing.T) {
	body := mustParse(t, "<p>a<b>c</b></p><div><i>d</i>e</div>")

	var leaves []string
	for n := FirstLeaf(body); n != nil; n = NextLeaf(n, body) {
		leaves = append(leaves, n.Data)
	}
	if got := strings.Join(leaves, ","); got != "a,c,d,e" {
		t.Errorf("forward leaves = %q, want \"a,c,d,e\"", got)
	}

	leaves = leaves[:0]
	for n := LastLeaf(body); n != nil; n = PreviousLeaf(n, body) {
		leaves = append(leaves, n.Data)
	}
	if got := strings.Join(leaves, ","); got != "e,d,c,a" {
		t.Errorf("backward leaves = %q, want \"e,d,c,a\"", got)
	}
}

func TestLeafWalkStaysInRoot(t *testing.T) {
	body := mustParse(t, "<p>a</p><div>b</div><p>c</p>")
	div := findTag(t, body, "div")

	if got := NextLeaf(div.FirstChild, div); got != nil {
		t.Errorf("NextLeaf confined to div = %v, want nil", got)
	}
	if got := PreviousLeaf(div.FirstChild, div); got != nil {
		t.Errorf("PreviousLeaf confined to div = %v, want nil", got)
	}
}

func TestAttr(t *testing.T) {
	body := mustParse(t, `<p data-kind="note">x</p>`)
	p := findTag(t, body, "p")

	if v, ok := Attr(p, "data-kind"); !ok || v != "note" {
		t.Errorf("Attr = %q, %v; want \"note\", true", v, ok)
	}
	if _, ok := Attr(p, "missing"); ok {
		t.Error("Attr found a missing key")
	}

	SetAttr(p, "data-kind", "aside")
	if v, _ := Attr(p, "data-kind"); v != "aside" {
		t.Errorf("SetAttr replace = %q, want \"aside\"", v)
	}
	SetAttr(p, "id", "x")
	if v, _ := Attr(p, "id"); v != "x" {
		t.Errorf("SetAttr add = %q, want \"x\"", v)
	}
}

func TestSplitText(t *testing.T) {
	body := mustParse(t, "<p>hello</p>")
	p := findTag(t, body, "p")
	text := p.FirstChild

	right := SplitText(text, 2)
	if text.Data != "he" || right.Data != "llo" {
		t.Errorf("SplitText halves = %q, %q", text.Data, right.Data)
	}
	if text.NextSibling != right {
		t.Error("right half not inserted after the left")
	}
	if got := RenderChildren(body); got != "<p>hello</p>" {
		t.Errorf("serialized form changed: %q", got)
	}
}

func TestParseBodyRejectsNothing(t *testing.T) {
	// The fragment parser is forgiving; the root is always a detached
	// body element owning the parsed children.
	body := mustParse(t, "plain text")
	if body.Parent != nil {
		t.Error("root has a parent")
	}
	if got := RenderChildren(body); got != "plain text" {
		t.Errorf("RenderChildren = %q", got)
	}
}
