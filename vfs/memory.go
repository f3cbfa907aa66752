package vfs

import (
	"context"

	"github.com/jmgilman/loadpath/errors"
	"github.com/jmgilman/loadpath/fs/billy"
	"github.com/jmgilman/loadpath/fs/core"
	"github.com/jmgilman/loadpath/internal/logging"
)

// MemoryStore keeps source text and directories in an in-memory filesystem
// and extension hooks in its hook table. A path holds either source text or a
// hook, never both.
type MemoryStore struct {
	*loader
	resolver Resolver
	fs       core.FS
}

// NewMemory returns an empty in-memory store whose working directory is the
// reserved load-path root.
func NewMemory(opts ...Option) *MemoryStore {
	o := newOptions(opts)
	return newMemoryStore(o, newLoader(StrategyMemory, o))
}

func newMemoryStore(o options, l *loader) *MemoryStore {
	cwd := LoadPathRoot(o.style)
	if o.cwdSet {
		cwd = o.cwd
	}
	backend := o.memory
	if backend == nil {
		backend = billy.NewMemory()
	}
	return &MemoryStore{
		loader:   l,
		resolver: NewResolver(o.style, cwd),
		fs:       backend,
	}
}

// Cwd returns the working directory.
func (m *MemoryStore) Cwd() string {
	return m.resolver.Cwd()
}

// Resolve returns the normalized form of path.
func (m *MemoryStore) Resolve(path string) (string, error) {
	return m.resolver.Resolve(path)
}

// Exists reports whether path holds source text, a hook or a directory.
func (m *MemoryStore) Exists(path string) bool {
	p, err := m.Resolve(path)
	if err != nil {
		return false
	}
	return m.existsResolved(p)
}

// IsDirectory reports whether path is a directory.
func (m *MemoryStore) IsDirectory(path string) bool {
	p, err := m.Resolve(path)
	if err != nil {
		return false
	}
	return m.isDirectoryResolved(p)
}

// Read returns a copy of the source text at path. A path holding only a hook
// has no source text and reports CodeNotFound.
func (m *MemoryStore) Read(path string) ([]byte, error) {
	p, err := m.Resolve(path)
	if err != nil {
		return nil, err
	}
	return m.readResolved(p)
}

// Write stores data at path, creating parent directories and replacing any
// hook registered there.
func (m *MemoryStore) Write(path string, data []byte) error {
	p, err := m.Resolve(path)
	if err != nil {
		return err
	}
	return m.logged(context.Background(), logging.OpWrite, p, func() error {
		return m.writeResolved(p, data)
	})
}

// RegisterExtension stores hook at path, replacing any source text there.
func (m *MemoryStore) RegisterExtension(path string, hook ExtensionHook) error {
	if err := validateHook(path, hook); err != nil {
		return err
	}
	p, err := m.Resolve(path)
	if err != nil {
		return err
	}
	return m.logged(context.Background(), logging.OpRegisterExtension, p, func() error {
		return m.registerResolved(p, hook)
	})
}

// Require executes path unless it has already been required.
func (m *MemoryStore) Require(ctx context.Context, interp Interpreter, path string) (Outcome, error) {
	p, err := m.Resolve(path)
	if err != nil {
		return 0, err
	}
	return m.require(ctx, interp, m.locateResolved(p))
}

// Load executes path unconditionally.
func (m *MemoryStore) Load(ctx context.Context, interp Interpreter, path string) (Outcome, error) {
	p, err := m.Resolve(path)
	if err != nil {
		return 0, err
	}
	return m.load(ctx, interp, m.locateResolved(p))
}

// IsRequired reports whether path has been required successfully.
func (m *MemoryStore) IsRequired(path string) bool {
	p, err := m.Resolve(path)
	if err != nil {
		return false
	}
	return m.features.Contains(p)
}

func (m *MemoryStore) existsResolved(p string) bool {
	if m.hooks.Has(p) {
		return true
	}
	ok, err := m.fs.Exists(p)
	return err == nil && ok
}

func (m *MemoryStore) isDirectoryResolved(p string) bool {
	if m.hooks.Has(p) {
		return false
	}
	info, err := m.fs.Stat(p)
	return err == nil && info.IsDir()
}

func (m *MemoryStore) readResolved(p string) ([]byte, error) {
	data, err := m.fs.ReadFile(p)
	if err != nil {
		return nil, hostError("read", p, err)
	}
	return data, nil
}

func (m *MemoryStore) writeResolved(p string, data []byte) error {
	if err := m.prepareParent(p); err != nil {
		return err
	}
	if err := m.fs.WriteFile(p, data, 0o644); err != nil {
		return hostError("write", p, err)
	}
	m.hooks.Delete(p)
	return nil
}

func (m *MemoryStore) registerResolved(p string, hook ExtensionHook) error {
	if info, err := m.fs.Stat(p); err == nil {
		if info.IsDir() {
			return errors.WithPath(errors.New(errors.CodeIsADirectory, "cannot register extension on a directory"), p)
		}
		if err := m.fs.Remove(p); err != nil {
			return hostError("register extension", p, err)
		}
	}
	if err := m.prepareParent(p); err != nil {
		return err
	}
	m.hooks.Set(p, hook)
	return nil
}

// prepareParent creates the parent directories of p. A hook sitting on one of
// them occupies that path as a file would.
func (m *MemoryStore) prepareParent(p string) error {
	parent := Dir(m.style, p)
	for dir := parent; dir != ""; {
		if m.hooks.Has(dir) {
			return errors.WithPath(errors.New(errors.CodeNotADirectory, "parent is an extension hook"), p)
		}
		next := Dir(m.style, dir)
		if next == dir {
			break
		}
		dir = next
	}
	if parent == "" || parent == p {
		return nil
	}
	if err := m.fs.MkdirAll(parent, 0o755); err != nil {
		return hostError("mkdir", p, err)
	}
	return nil
}

func (m *MemoryStore) locateResolved(p string) feature {
	return feature{
		key:  p,
		path: p,
		hook: m.hooks.Get(p),
		read: func() ([]byte, error) { return m.readResolved(p) },
	}
}
