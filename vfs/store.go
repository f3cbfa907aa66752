package vfs

import (
	"context"
	"strings"
	"time"

	"github.com/jmgilman/loadpath/errors"
	"github.com/jmgilman/loadpath/internal/logging"
)

// Strategy identifies a store implementation. It is fixed when the store is
// constructed.
type Strategy int

const (
	// StrategyMemory keeps every entry in memory.
	StrategyMemory Strategy = iota
	// StrategyNative passes every operation through to the host filesystem.
	StrategyNative
	// StrategyHybrid serves the reserved load-path root from memory and
	// everything else from the host.
	StrategyHybrid
	// StrategySearchPath probes an ordered list of host directories.
	StrategySearchPath
)

// String returns the strategy name used in configuration and logs.
func (s Strategy) String() string {
	switch s {
	case StrategyMemory:
		return "memory"
	case StrategyNative:
		return "native"
	case StrategyHybrid:
		return "hybrid"
	case StrategySearchPath:
		return "search_path"
	default:
		return "unknown"
	}
}

// ParseStrategy parses a strategy name as produced by Strategy.String.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "-", "_")) {
	case "memory":
		return StrategyMemory, nil
	case "native":
		return StrategyNative, nil
	case "hybrid":
		return StrategyHybrid, nil
	case "search_path", "searchpath", "rubylib":
		return StrategySearchPath, nil
	default:
		return StrategyMemory, errors.Newf(errors.CodeInvalidInput, "unknown store strategy %q", name)
	}
}

// Outcome reports what a Require or Load call did.
type Outcome int

const (
	// Loaded means Require executed the feature for the first time.
	Loaded Outcome = iota + 1
	// AlreadyLoaded means Require found the feature in the registry and did
	// nothing.
	AlreadyLoaded
	// Executed means Load executed the feature.
	Executed
)

// String returns a lower-case description of the outcome.
func (o Outcome) String() string {
	switch o {
	case Loaded:
		return "loaded"
	case AlreadyLoaded:
		return "already loaded"
	case Executed:
		return "executed"
	default:
		return "unknown"
	}
}

// Interpreter evaluates source text. It is the only view the stores have of
// the interpreter; evaluation errors are returned to the caller unchanged.
type Interpreter interface {
	Eval(ctx context.Context, path string, source []byte) error
}

// ExtensionHook is a native callback that stands in for source text at a
// path. Its side effects on the interpreter are the entire effect of loading
// that path.
type ExtensionHook func(ctx context.Context, interp Interpreter) error

// Store is the load-path filesystem seen by require, load and
// require_relative. Every path argument is resolved against Cwd first.
type Store interface {
	// Strategy returns the implementation chosen at construction.
	Strategy() Strategy

	// Style returns the path style the store resolves paths under.
	Style() Style

	// Cwd returns the directory relative paths are resolved against.
	Cwd() string

	// Resolve returns the normalized form of path.
	Resolve(path string) (string, error)

	// Exists reports whether path holds source text, a hook or a directory.
	Exists(path string) bool

	// IsDirectory reports whether path is a directory.
	IsDirectory(path string) bool

	// Read returns a copy of the source text at path.
	Read(path string) ([]byte, error)

	// Write stores source text at path, replacing any entry there.
	Write(path string, data []byte) error

	// RegisterExtension stores hook at path, replacing any entry there.
	RegisterExtension(path string, hook ExtensionHook) error

	// Require executes path unless it has already been required.
	Require(ctx context.Context, interp Interpreter, path string) (Outcome, error)

	// Load executes path unconditionally.
	Load(ctx context.Context, interp Interpreter, path string) (Outcome, error)

	// IsRequired reports whether path has been required successfully.
	IsRequired(path string) bool

	// LoadedFeatures returns registry keys in load order.
	LoadedFeatures() []string
}

// New builds a store for strategy.
//
// Example:
//
//	store, err := vfs.New(vfs.StrategyHybrid, vfs.WithLogger(logger))
func New(strategy Strategy, opts ...Option) (Store, error) {
	switch strategy {
	case StrategyMemory:
		return NewMemory(opts...), nil
	case StrategyNative:
		return NewNative(opts...)
	case StrategyHybrid:
		return NewHybrid(opts...)
	case StrategySearchPath:
		o := newOptions(opts)
		return NewSearchPath(o.searchPath, opts...)
	default:
		return nil, errors.Newf(errors.CodeInvalidInput, "unknown store strategy %d", int(strategy))
	}
}

// feature is a resolved path ready to be executed.
type feature struct {
	// key is the Feature Registry key.
	key string
	// path is the resolved path reported to the interpreter.
	path string
	hook ExtensionHook
	read func() ([]byte, error)
}

// loader holds the state every store shares with its delegates.
type loader struct {
	strategy Strategy
	style    Style
	features *FeatureRegistry
	hooks    *HookTable
	logger   *logging.Logger
}

func newLoader(strategy Strategy, o options) *loader {
	return &loader{
		strategy: strategy,
		style:    o.style,
		features: NewFeatureRegistry(),
		hooks:    NewHookTable(),
		logger:   o.logger.WithStrategy(strategy.String()),
	}
}

// Strategy returns the store strategy.
func (l *loader) Strategy() Strategy {
	return l.strategy
}

// Style returns the store path style.
func (l *loader) Style() Style {
	return l.style
}

// LoadedFeatures returns registry keys in load order.
func (l *loader) LoadedFeatures() []string {
	return l.features.Features()
}

func (l *loader) require(ctx context.Context, interp Interpreter, f feature) (Outcome, error) {
	if l.features.Contains(f.key) {
		l.logger.Debug(ctx, "feature already loaded", "path", f.path, "key", f.key)
		return AlreadyLoaded, nil
	}

	start := time.Now()
	err := l.execute(ctx, interp, f)
	logging.LogOperation(ctx, l.logger, logging.OpRequire, f.path, time.Since(start), err)
	if err != nil {
		return 0, err
	}

	if !l.features.Mark(f.key) {
		// A nested require of the same feature finished first.
		l.logger.Debug(ctx, "feature loaded reentrantly", "path", f.path, "key", f.key)
		return Loaded, nil
	}
	l.logger.Debug(ctx, "feature loaded", "path", f.path, "key", f.key, "features", l.features.Len())
	return Loaded, nil
}

func (l *loader) load(ctx context.Context, interp Interpreter, f feature) (Outcome, error) {
	start := time.Now()
	err := l.execute(ctx, interp, f)
	logging.LogOperation(ctx, l.logger, logging.OpLoad, f.path, time.Since(start), err)
	if err != nil {
		return 0, err
	}
	return Executed, nil
}

// execute runs the hook at f if there is one and evaluates its source
// otherwise.
func (l *loader) execute(ctx context.Context, interp Interpreter, f feature) error {
	if f.hook != nil {
		if err := f.hook(ctx, interp); err != nil {
			return errors.WithPath(
				errors.Wrap(err, errors.CodeHookFailed, "extension hook failed"), f.path)
		}
		return nil
	}

	source, err := f.read()
	if err != nil {
		return err
	}
	if interp == nil {
		return errors.WithPath(
			errors.New(errors.CodeInvalidInput, "no interpreter to evaluate source"), f.path)
	}
	return interp.Eval(ctx, f.path, source)
}

func (l *loader) logged(ctx context.Context, op logging.Operation, path string, fn func() error) error {
	start := time.Now()
	err := fn()
	logging.LogOperation(ctx, l.logger, op, path, time.Since(start), err)
	return err
}

func validateHook(path string, hook ExtensionHook) error {
	if hook == nil {
		return errors.WithPath(errors.New(errors.CodeInvalidInput, "extension hook is nil"), path)
	}
	return nil
}

// Compile-time interface checks.
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*NativeStore)(nil)
	_ Store = (*HybridStore)(nil)
	_ Store = (*SearchPathStore)(nil)
)
