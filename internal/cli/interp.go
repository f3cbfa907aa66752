package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/jmgilman/loadpath/errors"
	"github.com/jmgilman/loadpath/vfs"
)

// maxEvalDepth bounds nested evaluation. Cycles the active set cannot see,
// such as a load that resolves to a different root than the file being
// evaluated, stop here instead of exhausting the stack.
const maxEvalDepth = 128

var directivePattern = regexp.MustCompile(`^\s*(require|require_relative|load)\s*\(?\s*["']([^"']+)["']`)

// EvalRecord is one source evaluation seen by the trace interpreter.
type EvalRecord struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
	Depth int    `json:"depth"`
}

// traceInterpreter stands in for a Ruby interpreter. It records every file it
// is asked to evaluate and follows require, require_relative and load lines,
// so a dependency tree can be walked without executing any Ruby.
type traceInterpreter struct {
	store vfs.Store
	trace io.Writer
	depth int
	Evals []EvalRecord

	// active holds the files being evaluated. A require of one of them is a
	// cycle and is skipped.
	active map[string]bool
}

func newTraceInterpreter(store vfs.Store, trace io.Writer) *traceInterpreter {
	return &traceInterpreter{store: store, trace: trace, active: make(map[string]bool)}
}

// Eval records path and runs the directives in source.
func (t *traceInterpreter) Eval(ctx context.Context, path string, source []byte) error {
	if t.depth >= maxEvalDepth {
		return errors.WithContext(
			errors.WithPath(errors.New(errors.CodeInvalidInput, "evaluation nested too deeply"), path),
			"depth", t.depth)
	}
	t.Evals = append(t.Evals, EvalRecord{Path: path, Bytes: len(source), Depth: t.depth})
	t.tracef("eval %s (%d bytes)", path, len(source))

	t.depth++
	t.active[path] = true
	defer func() {
		t.depth--
		delete(t.active, path)
	}()

	scanner := bufio.NewScanner(bytes.NewReader(source))
	for scanner.Scan() {
		m := directivePattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		if err := t.directive(ctx, m[1], m[2], path); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (t *traceInterpreter) directive(ctx context.Context, kind, arg, caller string) error {
	switch kind {
	case "require":
		target, err := vfs.FindFeature(t.store, arg)
		if err != nil {
			return err
		}
		if resolved, err := t.store.Resolve(target); err == nil && t.active[resolved] {
			t.tracef("skip %s (cycle)", resolved)
			return nil
		}
		_, err = t.store.Require(ctx, t, target)
		return err
	case "require_relative":
		name := arg
		if !strings.HasSuffix(name, vfs.SourceExtension) {
			name += vfs.SourceExtension
		}
		style := t.store.Style()
		if resolved, err := vfs.NormalizeSlashes(style, vfs.Resolve(style, name, vfs.Dir(style, caller))); err == nil && t.active[resolved] {
			t.tracef("skip %s (cycle)", resolved)
			return nil
		}
		_, err := vfs.RequireRelative(ctx, t.store, t, name, caller)
		return err
	default:
		if resolved, err := t.store.Resolve(arg); err == nil && t.active[resolved] {
			t.tracef("skip %s (cycle)", resolved)
			return nil
		}
		_, err := t.store.Load(ctx, t, arg)
		return err
	}
}

func (t *traceInterpreter) tracef(format string, args ...interface{}) {
	if t.trace == nil {
		return
	}
	fmt.Fprintf(t.trace, strings.Repeat("  ", t.depth)+format+"\n", args...)
}
