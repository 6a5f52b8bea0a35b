package engine

import (
	"testing"

	"github.com/dshills/excise/internal/dom"
)

func TestMapIntent(t *testing.T) {
	tests := []struct {
		intent string
		want   Command
	}{
		{"deleteContentBackward", Command{Backward, Character}},
		{"deleteContentForward", Command{Forward, Character}},
		{"deleteWordBackward", Command{Backward, Word}},
		{"deleteWordForward", Command{Forward, Word}},
		{"deleteSoftLineBackward", Command{Backward, Line}},
		{"deleteSoftLineForward", Command{Forward, Line}},
		{"deleteHardLineBackward", Command{Backward, Line}},
		{"deleteHardLineForward", Command{Forward, Line}},
	}
	for _, tt := range tests {
		t.Run(tt.intent, func(t *testing.T) {
			cmd, ok := MapIntent(tt.intent)
			if !ok || cmd != tt.want {
				t.Errorf("MapIntent(%q) = %v, %v", tt.intent, cmd, ok)
			}
		})
	}
	if _, ok := MapIntent("insertText"); ok {
		t.Error("non-delete intent mapped")
	}
}

func TestHandleBeforeInput(t *testing.T) {
	e, body, r := newEngine(t, "<p>ab[]</p>")
	e.Selection().SetSelection(r)

	if !e.HandleBeforeInput("deleteContentBackward") {
		t.Fatal("known intent not handled")
	}
	if got := dom.RenderChildren(body); got != "<p>a</p>" {
		t.Errorf("tree = %q", got)
	}
	if e.HandleBeforeInput("insertParagraph") {
		t.Error("unknown intent claimed")
	}
}

func TestHandleBeforeInputAtBoundary(t *testing.T) {
	// A recognized intent is claimed even when there is nothing left to
	// delete, so the platform default never runs.
	e, body, r := newEngine(t, "<p>[]ab</p>")
	e.Selection().SetSelection(r)

	if !e.HandleBeforeInput("deleteContentBackward") {
		t.Fatal("boundary intent not claimed")
	}
	if got := dom.RenderChildren(body); got != "<p>ab</p>" {
		t.Errorf("tree = %q", got)
	}
}

func TestPrepareTextInsertion(t *testing.T) {
	e, body, r := newEngine(t, "<p>a[bc]d</p>")
	e.Selection().SetSelection(r)

	if !e.PrepareTextInsertion() {
		t.Fatal("non-collapsed selection not cleared")
	}
	if got := dom.RenderChildren(body); got != "<p>ad</p>" {
		t.Errorf("tree = %q", got)
	}
	sel, ok := e.Selection().Selection()
	if !ok || !sel.IsCollapsed() {
		t.Errorf("selection after clearing = %v, %v", sel, ok)
	}
}

func TestPrepareTextInsertionCollapsed(t *testing.T) {
	e, body, r := newEngine(t, "<p>ab[]cd</p>")
	e.Selection().SetSelection(r)

	if e.PrepareTextInsertion() {
		t.Error("collapsed selection reported as cleared")
	}
	if got := dom.RenderChildren(body); got != "<p>abcd</p>" {
		t.Errorf("tree mutated: %q", got)
	}
}

func TestPrepareTextInsertionNoSelection(t *testing.T) {
	e, _, _ := newEngine(t, "<p>ab[]</p>")
	if e.PrepareTextInsertion() {
		t.Error("missing selection reported as cleared")
	}
}
