package vfstest

import (
	"context"
	"sync"

	"github.com/jmgilman/loadpath/vfs"
)

// Eval is one call observed by a Recorder.
type Eval struct {
	Path   string
	Source string
	// Hook is set when the call came from an extension hook made by
	// Recorder.Hook rather than from source evaluation.
	Hook string
}

// Recorder is a vfs.Interpreter that records what it is asked to run.
//
// Fail makes evaluation of a path return an error. OnEval, when set, runs
// after a call is recorded and can issue nested Require or Load calls.
type Recorder struct {
	mu     sync.Mutex
	evals  []Eval
	Fail   map[string]error
	OnEval func(ctx context.Context, path string) error
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{Fail: make(map[string]error)}
}

// Eval records path and source.
func (r *Recorder) Eval(ctx context.Context, path string, source []byte) error {
	r.record(Eval{Path: path, Source: string(source)})
	if err := r.Fail[path]; err != nil {
		return err
	}
	if r.OnEval != nil {
		return r.OnEval(ctx, path)
	}
	return nil
}

// Hook returns an extension hook that records a call named name. It returns
// fail's result when fail is non-nil.
func (r *Recorder) Hook(name string, fail func() error) vfs.ExtensionHook {
	return func(context.Context, vfs.Interpreter) error {
		r.record(Eval{Hook: name})
		if fail != nil {
			return fail()
		}
		return nil
	}
}

func (r *Recorder) record(e Eval) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evals = append(r.evals, e)
}

// Evals returns every recorded call in order.
func (r *Recorder) Evals() []Eval {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Eval, len(r.evals))
	copy(out, r.evals)
	return out
}

// Count returns how many times path was evaluated as source.
func (r *Recorder) Count(path string) int {
	n := 0
	for _, e := range r.Evals() {
		if e.Hook == "" && e.Path == path {
			n++
		}
	}
	return n
}

// HookCount returns how many times the hook named name ran.
func (r *Recorder) HookCount(name string) int {
	n := 0
	for _, e := range r.Evals() {
		if e.Hook == name {
			n++
		}
	}
	return n
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evals = nil
}
