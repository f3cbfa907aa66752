package vfs

import (
	"github.com/jmgilman/loadpath/fs/core"
	"github.com/jmgilman/loadpath/internal/logging"
)

// Option configures a store.
type Option func(*options)

type options struct {
	style      Style
	cwd        string
	cwdSet     bool
	logger     *logging.Logger
	searchPath []string
	local      core.FS
	memory     core.FS
}

func newOptions(opts []Option) options {
	o := options{
		style:  HostStyle(),
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithStyle overrides the host path style.
func WithStyle(style Style) Option {
	return func(o *options) {
		o.style = style
	}
}

// WithCwd sets the directory relative paths are resolved against.
func WithCwd(cwd string) Option {
	return func(o *options) {
		o.cwd = cwd
		o.cwdSet = true
	}
}

// WithLogger sets the logger. Stores log nothing by default.
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSearchPath sets the ordered roots used by StrategySearchPath.
func WithSearchPath(roots ...string) Option {
	return func(o *options) {
		o.searchPath = append([]string(nil), roots...)
	}
}

// WithLocalFS replaces the host filesystem backend. Names passed to it are
// resolved absolute paths.
func WithLocalFS(filesystem core.FS) Option {
	return func(o *options) {
		o.local = filesystem
	}
}

// WithMemoryFS replaces the in-memory backend.
func WithMemoryFS(filesystem core.FS) Option {
	return func(o *options) {
		o.memory = filesystem
	}
}
