package vfs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/jmgilman/loadpath/errors"
	"github.com/jmgilman/loadpath/fs/billy"
	"github.com/jmgilman/loadpath/fs/core"
	"github.com/jmgilman/loadpath/internal/logging"
)

// NativeStore passes every operation through to the host filesystem. Hooks
// live only in the store's hook table.
//
// The Feature Registry key for a file is its host-canonical path, so two
// paths that reach the same file through a symbolic link are required once.
type NativeStore struct {
	*loader
	resolver Resolver
	fs       core.FS
}

// NewNative returns a store over the host filesystem whose working directory
// is the process working directory.
func NewNative(opts ...Option) (*NativeStore, error) {
	o := newOptions(opts)
	return newNativeStore(o, newLoader(StrategyNative, o))
}

func newNativeStore(o options, l *loader) (*NativeStore, error) {
	cwd := o.cwd
	if !o.cwdSet {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeIO, "failed to determine working directory")
		}
		cwd = filepath.ToSlash(wd)
	}
	backend := o.local
	if backend == nil {
		backend = billy.NewLocal()
	}
	return &NativeStore{
		loader:   l,
		resolver: NewResolver(o.style, cwd),
		fs:       backend,
	}, nil
}

// Cwd returns the working directory.
func (n *NativeStore) Cwd() string {
	return n.resolver.Cwd()
}

// Resolve returns the normalized form of path.
func (n *NativeStore) Resolve(path string) (string, error) {
	return n.resolver.Resolve(path)
}

// Exists reports whether path exists on the host or holds a hook.
func (n *NativeStore) Exists(path string) bool {
	p, err := n.Resolve(path)
	if err != nil {
		return false
	}
	return n.existsResolved(p)
}

// IsDirectory reports whether path is a directory on the host.
func (n *NativeStore) IsDirectory(path string) bool {
	p, err := n.Resolve(path)
	if err != nil {
		return false
	}
	return n.isDirectoryResolved(p)
}

// Read reads the host file at path.
func (n *NativeStore) Read(path string) ([]byte, error) {
	p, err := n.Resolve(path)
	if err != nil {
		return nil, err
	}
	return n.readResolved(p)
}

// Write writes data to the host file at path, creating parent directories.
func (n *NativeStore) Write(path string, data []byte) error {
	p, err := n.Resolve(path)
	if err != nil {
		return err
	}
	return n.logged(context.Background(), logging.OpWrite, p, func() error {
		return n.writeResolved(p, data)
	})
}

// RegisterExtension records hook at path without touching the host.
func (n *NativeStore) RegisterExtension(path string, hook ExtensionHook) error {
	if err := validateHook(path, hook); err != nil {
		return err
	}
	p, err := n.Resolve(path)
	if err != nil {
		return err
	}
	return n.logged(context.Background(), logging.OpRegisterExtension, p, func() error {
		return n.registerResolved(p, hook)
	})
}

// Require executes path unless its canonical path has already been required.
func (n *NativeStore) Require(ctx context.Context, interp Interpreter, path string) (Outcome, error) {
	p, err := n.Resolve(path)
	if err != nil {
		return 0, err
	}
	return n.require(ctx, interp, n.locateResolved(p))
}

// Load executes path unconditionally.
func (n *NativeStore) Load(ctx context.Context, interp Interpreter, path string) (Outcome, error) {
	p, err := n.Resolve(path)
	if err != nil {
		return 0, err
	}
	return n.load(ctx, interp, n.locateResolved(p))
}

// IsRequired reports whether path has been required successfully.
func (n *NativeStore) IsRequired(path string) bool {
	p, err := n.Resolve(path)
	if err != nil {
		return false
	}
	return n.features.Contains(n.locateResolved(p).key)
}

func (n *NativeStore) existsResolved(p string) bool {
	if n.hooks.Has(p) {
		return true
	}
	ok, err := n.fs.Exists(p)
	return err == nil && ok
}

func (n *NativeStore) isDirectoryResolved(p string) bool {
	if n.hooks.Has(p) {
		return false
	}
	info, err := n.fs.Stat(p)
	return err == nil && info.IsDir()
}

func (n *NativeStore) readResolved(p string) ([]byte, error) {
	data, err := n.fs.ReadFile(p)
	if err != nil {
		return nil, hostError("read", p, err)
	}
	return data, nil
}

func (n *NativeStore) writeResolved(p string, data []byte) error {
	if parent := Dir(n.style, p); parent != "" && parent != p {
		if err := n.fs.MkdirAll(parent, 0o755); err != nil {
			return hostError("mkdir", p, err)
		}
	}
	if err := n.fs.WriteFile(p, data, 0o644); err != nil {
		return hostError("write", p, err)
	}
	n.hooks.Delete(p)
	return nil
}

func (n *NativeStore) registerResolved(p string, hook ExtensionHook) error {
	if n.isDirectoryResolved(p) {
		return errors.WithPath(errors.New(errors.CodeIsADirectory, "cannot register extension on a directory"), p)
	}
	n.hooks.Set(p, hook)
	return nil
}

// canonical returns the host-canonical form of p, or p itself when the
// backend cannot canonicalize it (for example because it does not exist).
func (n *NativeStore) canonical(p string) string {
	c, ok := n.fs.(core.Canonicalizer)
	if !ok {
		return p
	}
	key, err := c.Canonical(p)
	if err != nil {
		return p
	}
	return key
}

func (n *NativeStore) locateResolved(p string) feature {
	if hook := n.hooks.Get(p); hook != nil {
		return feature{key: p, path: p, hook: hook}
	}
	return feature{
		key:  n.canonical(p),
		path: p,
		read: func() ([]byte, error) { return n.readResolved(p) },
	}
}
