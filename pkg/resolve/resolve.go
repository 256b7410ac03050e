// Package resolve keeps derived and dependent field values consistent after
// every store change. Two stages run in a fixed order: dependency resolution
// clears fields whose controller emptied, then address recombination rebuilds
// the full-address field from its group members. Stages are effects over the
// latest committed values, not one-shot computations; a burst of edits settles
// into a consistent state before control returns to the caller.
package resolve

import (
	"github.com/goliatone/go-customfields/pkg/values"
)

// Stage is one resolution step. Implementations never fail; malformed state
// degrades to a no-op for the fields involved.
type Stage interface {
	Name() string
	Apply(store *values.Store)
}

// Pipeline runs the stages against a store after every committed change.
type Pipeline struct {
	store  *values.Store
	stages []Stage
	cancel func()

	running bool
	dirty   bool
}

// NewPipeline attaches a pipeline to the store. With no explicit stages it
// installs the standard pair: dependency resolution, then address
// recombination. The pipeline subscribes to the store and re-runs on every
// change until Close is called.
func NewPipeline(store *values.Store, stages ...Stage) *Pipeline {
	if len(stages) == 0 {
		stages = []Stage{Dependency{}, Address{}}
	}
	p := &Pipeline{store: store, stages: stages}
	p.cancel = store.Subscribe(func(values.Change) { p.Run() })
	return p
}

// Run executes the stages in order until the store settles. Stage writes
// re-enter Run through the store subscription; re-entrant calls mark the
// pipeline dirty and return, and the outer invocation loops until a full pass
// commits nothing. Sessions are single-goroutine, so no lock is needed here.
func (p *Pipeline) Run() {
	if p.running {
		p.dirty = true
		return
	}
	p.running = true
	defer func() { p.running = false }()

	for {
		p.dirty = false
		for _, stage := range p.stages {
			stage.Apply(p.store)
		}
		if !p.dirty {
			return
		}
	}
}

// Close detaches the pipeline from the store.
func (p *Pipeline) Close() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
