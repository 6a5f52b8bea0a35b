package engine

// intentCommands maps platform before-input intent names to delete
// commands.
var intentCommands = map[string]Command{
	"deleteContentBackward":  {Direction: Backward, Granularity: Character},
	"deleteContentForward":   {Direction: Forward, Granularity: Character},
	"deleteWordBackward":     {Direction: Backward, Granularity: Word},
	"deleteWordForward":      {Direction: Forward, Granularity: Word},
	"deleteSoftLineBackward": {Direction: Backward, Granularity: Line},
	"deleteSoftLineForward":  {Direction: Forward, Granularity: Line},
	"deleteHardLineBackward": {Direction: Backward, Granularity: Line},
	"deleteHardLineForward":  {Direction: Forward, Granularity: Line},
}

// MapIntent translates a platform "before text change" intent into a
// delete command.
func MapIntent(name string) (Command, bool) {
	cmd, ok := intentCommands[name]
	return cmd, ok
}

// HandleBeforeInput maps a platform intent onto a command and runs it.
// It returns true when the intent was recognized, whether or not the
// command mutated anything.
func (e *Engine) HandleBeforeInput(intent string) bool {
	cmd, ok := MapIntent(intent)
	if !ok {
		return false
	}
	e.Delete(cmd)
	return true
}

// PrepareTextInsertion clears a non-collapsed selection before typed
// text is inserted. It returns true if a selection was deleted.
func (e *Engine) PrepareTextInsertion() bool {
	sel, ok := e.selection.Selection()
	if !ok || sel.IsCollapsed() {
		return false
	}
	_, mutated := e.DeleteSelection()
	return mutated
}
