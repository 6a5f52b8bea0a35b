// Package engine is the deletion orchestrator and the entry point
// exposed to callers. A range deletion runs as a fixed sequence:
// boundary text nodes are split, filler line breaks neutralized,
// covered nodes removed, emptied inline elements refilled with a
// zero-width placeholder, the surviving fragments joined, collapsed
// blocks refilled with a break placeholder, and whitespace visibility
// restored. On top of that the package wraps the per-command behavior
// for backward/forward deletion at character, word and line
// granularity plus selection replacement.
//
// The engine runs single-threaded and synchronously. It assumes
// exclusive access to the document tree for the duration of one call
// and performs no internal parallelism. Registered interceptors can
// veto a command before any mutation occurs.
package engine
