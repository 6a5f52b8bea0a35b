package engine

import (
	"golang.org/x/net/html"

	"github.com/dshills/excise/internal/adjust"
	"github.com/dshills/excise/internal/caret"
	"github.com/dshills/excise/internal/classify"
	"github.com/dshills/excise/internal/join"
	"github.com/dshills/excise/internal/policy"
	"github.com/dshills/excise/internal/remove"
)

// Engine mutates one editable document tree in place. The tree is
// owned by the hosting editing surface; the engine only holds a
// reference to its root.
type Engine struct {
	root      *html.Node
	c         *classify.Classifier
	finder    *caret.Finder
	adjuster  *adjust.Adjuster
	remover   *remove.Remover
	joiner    *join.Joiner
	policy    *policy.Registry
	selection SelectionService
	recorder  Recorder

	interceptors []Interceptor
}

// Option configures an Engine.
type Option func(*Engine)

// WithClassifier supplies a custom classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(e *Engine) { e.c = c }
}

// WithPolicy supplies a custom removal policy registry.
func WithPolicy(p *policy.Registry) Option {
	return func(e *Engine) { e.policy = p }
}

// WithSelection supplies the host's selection service.
func WithSelection(s SelectionService) Option {
	return func(e *Engine) { e.selection = s }
}

// WithRecorder supplies an undo-checkpoint recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// New creates an Engine for the editable tree rooted at root.
func New(root *html.Node, opts ...Option) *Engine {
	e := &Engine{root: root}
	for _, o := range opts {
		o(e)
	}
	if e.c == nil {
		e.c = classify.New()
	}
	if e.policy == nil {
		e.policy = policy.NewRegistry(e.c)
	}
	// The editable root itself must survive any deletion.
	e.policy.AddRule("editable-root", func(n, _ *html.Node) bool {
		return n == e.root
	})
	e.finder = caret.New(e.c, root)
	e.adjuster = adjust.New(e.c, e.finder)
	e.remover = remove.New(e.policy)
	e.joiner = join.New(e.c, e.policy)
	if e.selection == nil {
		e.selection = NewBasicSelection(e.finder)
	}
	return e
}

// Root returns the editable root.
func (e *Engine) Root() *html.Node {
	return e.root
}

// Finder returns the engine's position finder, for hosts that place
// carets themselves.
func (e *Engine) Finder() *caret.Finder {
	return e.finder
}

// Classifier returns the engine's classifier.
func (e *Engine) Classifier() *classify.Classifier {
	return e.c
}

// Policy returns the engine's removal policy registry.
func (e *Engine) Policy() *policy.Registry {
	return e.policy
}

// Selection returns the engine's selection service.
func (e *Engine) Selection() SelectionService {
	return e.selection
}
