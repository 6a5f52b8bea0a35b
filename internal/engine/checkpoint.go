package engine

import "github.com/google/uuid"

// Checkpoint signals that an undo step should be recorded after a
// mutating command.
type Checkpoint struct {
	ID    uuid.UUID
	Label string
}

// Recorder receives undo checkpoints. History management itself lives
// with the host.
type Recorder interface {
	RecordCheckpoint(cp Checkpoint)
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(cp Checkpoint)

// RecordCheckpoint implements Recorder.
func (f RecorderFunc) RecordCheckpoint(cp Checkpoint) {
	f(cp)
}

func (e *Engine) checkpoint(label string) {
	if e.recorder == nil {
		return
	}
	e.recorder.RecordCheckpoint(Checkpoint{ID: uuid.New(), Label: label})
}
