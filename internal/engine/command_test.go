package engine

import (
	"testing"

	"github.com/dshills/excise/internal/dom"
	"github.com/dshills/excise/internal/dom/domtest"
)

// runCommand sets the marked range as the selection, executes cmd and
// renders the document with the resulting selection marked.
func runCommand(t *testing.T, snippet string, cmd Command) (string, bool) {
	t.Helper()
	e, body, r := newEngine(t, snippet)
	e.Selection().SetSelection(r)
	res, mutated := e.Delete(cmd)
	return domtest.Format(body, res), mutated
}

func TestDeleteBackwardCharacter(t *testing.T) {
	cmd := Command{Direction: Backward, Granularity: Character}
	tests := []struct {
		name    string
		in      string
		want    string
		mutated bool
	}{
		{"plain character", "<p>ab[]</p>", "<p>a[]</p>", true},
		{"document start no-op", "<p>[]ab</p>", "<p>[]ab</p>", false},
		{"merges blocks", "<h1>ab</h1><p>[]cd</p>", "<h1>ab[]cd</h1>", true},
		{"island removed whole",
			`<p>ab<span contenteditable="false">w</span>[]cd</p>`,
			"<p>ab[]cd</p>", true},
		{"empty wrapper consumed", "<p>ab<b></b>[]cd</p>", "<p>a[]cd</p>", true},
		{"blank line removed before letter", "<p>ab<br/><br/>[]</p>",
			"<p>ab<br/>[]</p>", true},
		{"merge drops the filler break", "<h1>ab<br/></h1><p>[]cd</p>",
			"<h1>ab[]cd</h1>", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, mutated := runCommand(t, tt.in, cmd)
			if mutated != tt.mutated {
				t.Fatalf("mutated = %v, want %v", mutated, tt.mutated)
			}
			if got != tt.want {
				t.Errorf("result: %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDeleteForwardCharacter(t *testing.T) {
	cmd := Command{Direction: Forward, Granularity: Character}
	tests := []struct {
		name    string
		in      string
		want    string
		mutated bool
	}{
		{"plain character", "<p>[]ab</p>", "<p>[]b</p>", true},
		{"document end no-op", "<p>ab[]</p>", "<p>ab[]</p>", false},
		{"merges blocks", "<h1>ab[]</h1><p>cd</p>", "<h1>ab[]cd</h1>", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, mutated := runCommand(t, tt.in, cmd)
			if mutated != tt.mutated {
				t.Fatalf("mutated = %v, want %v", mutated, tt.mutated)
			}
			if got != tt.want {
				t.Errorf("result: %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDeleteWordBackward(t *testing.T) {
	got, mutated := runCommand(t, "<p>hello world[]</p>",
		Command{Direction: Backward, Granularity: Word})
	if !mutated {
		t.Fatal("word delete did not mutate")
	}
	if want := "<p>hello\u00a0[]</p>"; got != want {
		t.Errorf("result: %s, want %s", got, want)
	}
}

func TestDeleteLineBackward(t *testing.T) {
	got, mutated := runCommand(t, "<p>ab<br/>cd[]</p>",
		Command{Direction: Backward, Granularity: Line})
	if !mutated {
		t.Fatal("line delete did not mutate")
	}
	if want := "<p>ab<br/>[]</p>"; got != want {
		t.Errorf("result: %s, want %s", got, want)
	}
}

func TestDeleteLineForward(t *testing.T) {
	got, mutated := runCommand(t, "<p>[]ab<br/>cd</p>",
		Command{Direction: Forward, Granularity: Line})
	if !mutated {
		t.Fatal("line delete did not mutate")
	}
	if want := "<p>[]<br/>cd</p>"; got != want {
		t.Errorf("result: %s, want %s", got, want)
	}
}

func TestDeleteSelection(t *testing.T) {
	e, body, r := newEngine(t, "<p>x[yz</p><p>ab]c</p>")
	e.Selection().SetSelection(r)

	res, mutated := e.DeleteSelection()
	if !mutated {
		t.Fatal("selection delete did not mutate")
	}
	if got := domtest.Format(body, res); got != "<p>x[]c</p>" {
		t.Errorf("result: %s", got)
	}
}

func TestDeleteSelectionTripleClick(t *testing.T) {
	// A triple-click selection overshooting into the next block clears
	// the paragraph without merging it into the following one.
	e, body, r := newEngine(t, "<p>[ab</p><h1>]cd</h1>")
	e.Selection().SetSelection(r)

	res, mutated := e.DeleteSelection()
	if !mutated {
		t.Fatal("selection delete did not mutate")
	}
	want := `<p>[]<br data-bogus=""/></p><h1>cd</h1>`
	if got := domtest.Format(body, res); got != want {
		t.Errorf("result: %s, want %s", got, want)
	}
}

func TestDeleteBackwardCollapsesToEnd(t *testing.T) {
	e, _, r := newEngine(t, "<h1>ab</h1><p>[]cd</p>")
	e.Selection().SetSelection(r)

	res, _ := e.Delete(Command{Direction: Backward, Granularity: Character})
	if !res.IsCollapsed() {
		t.Fatalf("result not collapsed: %v", res)
	}
	sel, ok := e.Selection().Selection()
	if !ok || sel != res {
		t.Error("selection not updated to the command result")
	}
}

func TestDeleteWithoutSelection(t *testing.T) {
	e, body, _ := newEngine(t, "<p>ab[]</p>")
	// No selection published: nothing to do.
	res, mutated := e.Delete(Command{Direction: Backward, Granularity: Character})
	if mutated || !res.IsZero() {
		t.Errorf("Delete without selection = %v, %v", res, mutated)
	}
	if got := dom.RenderChildren(body); got != "<p>ab</p>" {
		t.Errorf("tree mutated: %q", got)
	}
}

func TestInterceptor(t *testing.T) {
	e, body, r := newEngine(t, "<p>ab[]</p>")
	e.Selection().SetSelection(r)

	var seen []Command
	e.Intercept(func(cmd Command, sel dom.Range) bool {
		seen = append(seen, cmd)
		return true
	})
	e.Intercept(func(cmd Command, sel dom.Range) bool {
		t.Error("second interceptor ran after the first claimed")
		return false
	})

	cmd := Command{Direction: Backward, Granularity: Character}
	if _, mutated := e.Delete(cmd); mutated {
		t.Error("intercepted command mutated the tree")
	}
	if len(seen) != 1 || seen[0] != cmd {
		t.Errorf("interceptor saw %v", seen)
	}
	if got := dom.RenderChildren(body); got != "<p>ab</p>" {
		t.Errorf("tree = %q", got)
	}
}

func TestDeletePanicsOnUndefinedCommand(t *testing.T) {
	e, _, r := newEngine(t, "<p>ab[]</p>")
	e.Selection().SetSelection(r)

	assertPanics := func(name string, cmd Command) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s did not panic", name)
			}
		}()
		e.Delete(cmd)
	}
	assertPanics("direction", Command{Direction: Direction(9), Granularity: Character})
	assertPanics("granularity", Command{Direction: Backward, Granularity: Granularity(9)})
}

func TestCheckpointRecording(t *testing.T) {
	var labels []string
	rec := RecorderFunc(func(cp Checkpoint) {
		if cp.ID.String() == "00000000-0000-0000-0000-000000000000" {
			t.Error("checkpoint carries a zero id")
		}
		labels = append(labels, cp.Label)
	})

	body, r := domtest.MustParse(t, "<p>ab[]</p>")
	e := New(body, WithRecorder(rec))
	e.Selection().SetSelection(r)

	e.Delete(Command{Direction: Backward, Granularity: Character})
	if len(labels) != 1 || labels[0] != "delete.backward.character" {
		t.Fatalf("labels = %v", labels)
	}

	// A no-op command records nothing.
	e.Selection().SetSelection(dom.CollapsedAt(dom.PositionAtStart(body.FirstChild)))
	e.Delete(Command{Direction: Backward, Granularity: Character})
	if len(labels) != 1 {
		t.Errorf("no-op recorded a checkpoint: %v", labels)
	}
}

func TestCommandStrings(t *testing.T) {
	if Backward.String() != "backward" || Forward.String() != "forward" {
		t.Error("direction names wrong")
	}
	if Character.String() != "character" || Word.String() != "word" || Line.String() != "line" {
		t.Error("granularity names wrong")
	}
}
