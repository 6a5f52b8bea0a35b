package engine

import (
	"fmt"

	"github.com/dshills/excise/internal/adjust"
	"github.com/dshills/excise/internal/dom"
)

// Direction of a delete command.
type Direction uint8

const (
	// Backward deletes toward the start of the document.
	Backward Direction = iota
	// Forward deletes toward the end of the document.
	Forward
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Backward:
		return "backward"
	case Forward:
		return "forward"
	default:
		return "unknown"
	}
}

// Granularity of a delete command.
type Granularity uint8

const (
	// Character deletes one visible character (grapheme cluster).
	Character Granularity = iota
	// Word deletes to the nearest word boundary, as decided by the
	// selection service.
	Word
	// Line deletes to the line boundary within the current block.
	Line
)

// String returns the granularity name.
func (g Granularity) String() string {
	switch g {
	case Character:
		return "character"
	case Word:
		return "word"
	case Line:
		return "line"
	default:
		return "unknown"
	}
}

// Command is one abstract delete request.
type Command struct {
	Direction   Direction
	Granularity Granularity
}

// Interceptor inspects a command before the default pipeline runs.
// Returning true marks the command handled and aborts the pipeline
// before any mutation occurs.
type Interceptor func(cmd Command, sel dom.Range) bool

// Intercept registers a command interceptor. Interceptors run in
// registration order; the first to claim the command wins.
func (e *Engine) Intercept(fn Interceptor) {
	e.interceptors = append(e.interceptors, fn)
}

// Delete executes one delete command against the current selection.
// It returns the resulting selection and whether the tree was
// mutated. Requesting an undefined direction or granularity is a
// programming error and panics.
func (e *Engine) Delete(cmd Command) (dom.Range, bool) {
	validate(cmd)

	sel, ok := e.selection.Selection()
	if !ok {
		return dom.Range{}, false
	}
	for _, ic := range e.interceptors {
		if ic(cmd, sel) {
			return sel, false
		}
	}
	if !sel.IsCollapsed() {
		return e.replaceSelection(sel, cmd.Direction)
	}

	r, ok := e.commandRange(cmd, sel.Start)
	if !ok {
		// Document boundary: degrade gracefully, nothing to delete.
		return sel, false
	}
	r = adjust.Apply(r, e.stepsFor(cmd)...)

	res := e.DeleteRange(r)

	out := dom.CollapsedAt(res.Start)
	if cmd.Direction == Backward {
		out = dom.CollapsedAt(res.End)
	}
	e.selection.SetSelection(out)
	e.checkpoint("delete." + cmd.Direction.String() + "." + cmd.Granularity.String())
	return out, true
}

// DeleteBackward runs a backward delete at the given granularity.
func (e *Engine) DeleteBackward(g Granularity) (dom.Range, bool) {
	return e.Delete(Command{Direction: Backward, Granularity: g})
}

// DeleteForward runs a forward delete at the given granularity.
func (e *Engine) DeleteForward(g Granularity) (dom.Range, bool) {
	return e.Delete(Command{Direction: Forward, Granularity: g})
}

// DeleteSelection removes the current non-collapsed selection, as
// happens before typed text replaces it.
func (e *Engine) DeleteSelection() (dom.Range, bool) {
	sel, ok := e.selection.Selection()
	if !ok || sel.IsCollapsed() {
		return sel, false
	}
	return e.replaceSelection(sel, Forward)
}

func (e *Engine) replaceSelection(sel dom.Range, dir Direction) (dom.Range, bool) {
	r := adjust.Apply(sel,
		e.adjuster.ExpandToNonEditables,
		e.adjuster.CorrectTripleClick,
	)
	res := e.DeleteRange(r)

	// Selection replacement and forward deletion leave the cursor at
	// the start of the cut; backward deletion at its end.
	out := dom.CollapsedAt(res.Start)
	if dir == Backward {
		out = dom.CollapsedAt(res.End)
	}
	e.selection.SetSelection(out)
	e.checkpoint("delete.selection")
	return out, true
}

// commandRange builds the initial deletion range for a collapsed
// selection at pos.
func (e *Engine) commandRange(cmd Command, pos dom.Position) (dom.Range, bool) {
	switch cmd.Granularity {
	case Character:
		if cmd.Direction == Backward {
			prev, ok := e.finder.Previous(pos)
			if !ok {
				return dom.Range{}, false
			}
			return dom.NewRange(prev, pos), true
		}
		next, ok := e.finder.Next(pos)
		if !ok {
			return dom.Range{}, false
		}
		return dom.NewRange(pos, next), true

	case Line:
		if cmd.Direction == Backward {
			prev, ok := e.finder.PreviousLineBoundary(pos)
			if !ok {
				return dom.Range{}, false
			}
			return dom.NewRange(prev, pos), true
		}
		next, ok := e.finder.NextLineBoundary(pos)
		if !ok {
			return dom.Range{}, false
		}
		return dom.NewRange(pos, next), true

	case Word:
		r := e.selection.ExtendByWord(dom.CollapsedAt(pos), cmd.Direction)
		if r.IsZero() || r.IsCollapsed() {
			return dom.Range{}, false
		}
		return r, true
	}
	// validate already rejected everything else.
	return dom.Range{}, false
}

// stepsFor selects the range-adjustment pipeline for a command.
func (e *Engine) stepsFor(cmd Command) []adjust.Step {
	a := e.adjuster
	if cmd.Direction == Backward {
		return []adjust.Step{
			a.FullyIncludeLinks,
			a.IncludeEmptyInlineStart,
			a.IncludePreviousZWS,
			a.ExpandToNonEditables,
			a.IncludeEndOrStartBlock,
		}
	}
	return []adjust.Step{
		a.FullyIncludeLinks,
		a.IncludeEmptyInlineEnd,
		a.IncludeNextZWS,
		a.ExpandToNonEditables,
		a.IncludeEndOrStartBlock,
	}
}

func validate(cmd Command) {
	if cmd.Direction != Backward && cmd.Direction != Forward {
		panic(fmt.Sprintf("engine: undefined delete direction %d", cmd.Direction))
	}
	switch cmd.Granularity {
	case Character, Word, Line:
	default:
		panic(fmt.Sprintf("engine: undefined delete granularity %d", cmd.Granularity))
	}
}
