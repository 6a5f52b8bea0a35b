package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/net/html"

	"github.com/dshills/excise/internal/config"
	"github.com/dshills/excise/internal/dom"
	"github.com/dshills/excise/internal/engine"
	"github.com/dshills/excise/internal/policy"
)

// editor is the terminal host: one document, one engine, one screen.
type editor struct {
	mu     sync.Mutex
	screen tcell.Screen
	root   *html.Node
	eng    *engine.Engine
	script *policy.Script
	path   string
	status string
}

func newEditor(root *html.Node, cfg config.Config, path string) (*editor, error) {
	ed := &editor{root: root, path: path}

	eng, script, err := buildEngine(root, cfg, ed.recorder())
	if err != nil {
		return nil, err
	}
	ed.eng = eng
	ed.script = script
	eng.Selection().SetSelection(dom.CollapsedAt(dom.PositionAtStart(root)))

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("excise: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("excise: init screen: %w", err)
	}
	ed.screen = screen
	ed.status = path
	return ed, nil
}

func (e *editor) close() {
	if e.screen != nil {
		e.screen.Fini()
	}
	if e.script != nil {
		e.script.Close()
	}
}

// recorder surfaces undo checkpoints on the status line. History
// itself is out of scope for the demo.
func (e *editor) recorder() engine.Recorder {
	return engine.RecorderFunc(func(cp engine.Checkpoint) {
		e.status = fmt.Sprintf("%s [%s]", cp.Label, cp.ID.String()[:8])
	})
}

// reconfigure swaps in a freshly loaded policy configuration,
// preserving the document and the selection.
func (e *editor) reconfigure(cfg config.Config) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sel, ok := e.eng.Selection().Selection()
	eng, script, err := buildEngine(e.root, cfg, e.recorder())
	if err != nil {
		e.status = err.Error()
		return
	}
	if e.script != nil {
		e.script.Close()
	}
	e.eng = eng
	e.script = script
	if ok {
		eng.Selection().SetSelection(sel)
	}
	e.status = "configuration reloaded"
	e.draw()
	e.screen.Show()
}

func (e *editor) setStatus(s string) {
	e.mu.Lock()
	e.status = s
	e.draw()
	e.screen.Show()
	e.mu.Unlock()
}

func (e *editor) loop() error {
	for {
		e.mu.Lock()
		e.draw()
		e.screen.Show()
		e.mu.Unlock()

		ev := e.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			e.screen.Sync()
		case *tcell.EventKey:
			if quit := e.handleKey(ev); quit {
				return nil
			}
		}
	}
}

func (e *editor) handleKey(ev *tcell.EventKey) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyEscape:
		return true
	case tcell.KeyCtrlS:
		e.save()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.eng.DeleteBackward(engine.Character)
	case tcell.KeyDelete:
		e.eng.DeleteForward(engine.Character)
	case tcell.KeyCtrlW:
		e.eng.DeleteBackward(engine.Word)
	case tcell.KeyCtrlU:
		e.eng.DeleteBackward(engine.Line)
	case tcell.KeyCtrlK:
		e.eng.DeleteForward(engine.Line)
	case tcell.KeyLeft:
		e.moveCursor(engine.Backward)
	case tcell.KeyRight:
		e.moveCursor(engine.Forward)
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 && ev.Rune() == 'd' {
			e.eng.DeleteForward(engine.Word)
		}
	}
	return false
}

func (e *editor) moveCursor(dir engine.Direction) {
	sel, ok := e.eng.Selection().Selection()
	if !ok {
		return
	}
	pos := sel.Start
	var next dom.Position
	if dir == engine.Backward {
		next, ok = e.eng.Finder().Previous(pos)
	} else {
		next, ok = e.eng.Finder().Next(pos)
	}
	if !ok {
		return
	}
	e.eng.Selection().SetSelection(dom.CollapsedAt(next))
}

func (e *editor) save() {
	out := dom.RenderChildren(e.root)
	if err := os.WriteFile(e.path, []byte(out), 0o644); err != nil {
		e.status = err.Error()
		return
	}
	e.status = "saved " + e.path
}

func (e *editor) draw() {
	e.screen.Clear()
	w, h := e.screen.Size()

	var cur dom.Position
	if sel, ok := e.eng.Selection().Selection(); ok {
		cur = sel.Start
	}
	lines, cx, cy := layout(e.root, e.eng.Classifier(), cur)

	style := tcell.StyleDefault
	for y, line := range lines {
		if y >= h-1 {
			break
		}
		x := 0
		for _, r := range line {
			if x >= w {
				break
			}
			e.screen.SetContent(x, y, r, nil, style)
			x++
		}
	}

	bar := tcell.StyleDefault.Reverse(true)
	for x := 0; x < w; x++ {
		e.screen.SetContent(x, h-1, ' ', nil, bar)
	}
	for x, r := range []rune(e.status) {
		if x >= w {
			break
		}
		e.screen.SetContent(x, h-1, r, nil, bar)
	}

	if cy >= 0 && cy < h-1 && cx >= 0 {
		e.screen.ShowCursor(cx, cy)
	} else {
		e.screen.HideCursor()
	}
}
