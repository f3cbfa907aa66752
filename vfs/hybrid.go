package vfs

import (
	"context"
	"strings"

	"github.com/jmgilman/loadpath/internal/logging"
)

// HybridStore serves the reserved load-path root from a MemoryStore and every
// other path from a NativeStore. Both delegates share one Feature Registry and
// one hook table.
type HybridStore struct {
	*loader
	resolver Resolver
	root     string
	memory   *MemoryStore
	native   *NativeStore
}

// NewHybrid returns a hybrid store whose working directory is the reserved
// load-path root.
func NewHybrid(opts ...Option) (*HybridStore, error) {
	o := newOptions(opts)
	l := newLoader(StrategyHybrid, o)
	root := LoadPathRoot(o.style)

	cwd := root
	if o.cwdSet {
		cwd = o.cwd
	}

	memOpts := o
	memOpts.cwd, memOpts.cwdSet = root, true
	nativeOpts := o
	nativeOpts.cwd, nativeOpts.cwdSet = cwd, true

	native, err := newNativeStore(nativeOpts, l)
	if err != nil {
		return nil, err
	}
	return &HybridStore{
		loader:   l,
		resolver: NewResolver(o.style, cwd),
		root:     root,
		memory:   newMemoryStore(memOpts, l),
		native:   native,
	}, nil
}

// Cwd returns the working directory.
func (h *HybridStore) Cwd() string {
	return h.resolver.Cwd()
}

// Resolve returns the normalized form of path.
func (h *HybridStore) Resolve(path string) (string, error) {
	return h.resolver.Resolve(path)
}

// InMemory reports whether path is served by the memory delegate.
func (h *HybridStore) InMemory(path string) bool {
	p, err := h.Resolve(path)
	if err != nil {
		return false
	}
	return h.routesToMemory(p)
}

// Exists reports whether path exists in the delegate that serves it.
func (h *HybridStore) Exists(path string) bool {
	p, err := h.Resolve(path)
	if err != nil {
		return false
	}
	if h.routesToMemory(p) {
		return h.memory.existsResolved(p)
	}
	return h.native.existsResolved(p)
}

// IsDirectory reports whether path is a directory in the delegate that
// serves it.
func (h *HybridStore) IsDirectory(path string) bool {
	p, err := h.Resolve(path)
	if err != nil {
		return false
	}
	if h.routesToMemory(p) {
		return h.memory.isDirectoryResolved(p)
	}
	return h.native.isDirectoryResolved(p)
}

// Read returns the source text at path.
func (h *HybridStore) Read(path string) ([]byte, error) {
	p, err := h.Resolve(path)
	if err != nil {
		return nil, err
	}
	if h.routesToMemory(p) {
		return h.memory.readResolved(p)
	}
	return h.native.readResolved(p)
}

// Write stores data at path. Paths under the reserved root stay in memory;
// all others are written to the host.
func (h *HybridStore) Write(path string, data []byte) error {
	p, err := h.Resolve(path)
	if err != nil {
		return err
	}
	return h.logged(context.Background(), logging.OpWrite, p, func() error {
		if h.routesToMemory(p) {
			return h.memory.writeResolved(p, data)
		}
		return h.native.writeResolved(p, data)
	})
}

// RegisterExtension stores hook at path in the shared hook table.
func (h *HybridStore) RegisterExtension(path string, hook ExtensionHook) error {
	if err := validateHook(path, hook); err != nil {
		return err
	}
	p, err := h.Resolve(path)
	if err != nil {
		return err
	}
	return h.logged(context.Background(), logging.OpRegisterExtension, p, func() error {
		if h.routesToMemory(p) {
			return h.memory.registerResolved(p, hook)
		}
		return h.native.registerResolved(p, hook)
	})
}

// Require executes path unless it has already been required through either
// delegate.
func (h *HybridStore) Require(ctx context.Context, interp Interpreter, path string) (Outcome, error) {
	p, err := h.Resolve(path)
	if err != nil {
		return 0, err
	}
	return h.require(ctx, interp, h.locateResolved(p))
}

// Load executes path unconditionally.
func (h *HybridStore) Load(ctx context.Context, interp Interpreter, path string) (Outcome, error) {
	p, err := h.Resolve(path)
	if err != nil {
		return 0, err
	}
	return h.load(ctx, interp, h.locateResolved(p))
}

// IsRequired reports whether path has been required successfully.
func (h *HybridStore) IsRequired(path string) bool {
	p, err := h.Resolve(path)
	if err != nil {
		return false
	}
	return h.features.Contains(h.locateResolved(p).key)
}

func (h *HybridStore) locateResolved(p string) feature {
	if h.routesToMemory(p) {
		return h.memory.locateResolved(p)
	}
	return h.native.locateResolved(p)
}

// routesToMemory reports whether the resolved path p is the reserved root or
// lies beneath it.
func (h *HybridStore) routesToMemory(p string) bool {
	return p == h.root || strings.HasPrefix(p, h.root+"/")
}
