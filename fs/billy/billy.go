package billy

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/jmgilman/loadpath/fs/core"
)

// LocalFS wraps billy's osfs for host filesystem access.
// Names are interpreted relative to the host directory it is rooted at.
type LocalFS struct {
	base
	root string
}

// MemoryFS wraps billy's memfs for in-memory storage.
type MemoryFS struct {
	base
}

// Option configures filesystem creation.
type Option func(*config)

type config struct {
	root string
}

// WithRoot roots a LocalFS at the given host directory instead of the host
// filesystem root.
func WithRoot(dir string) Option {
	return func(c *config) {
		c.root = dir
	}
}

// hostRoot is the directory absolute names are joined onto. Windows names
// carry their own drive, so nothing is prepended there.
func hostRoot() string {
	if runtime.GOOS == "windows" {
		return ""
	}
	return "/"
}

// NewLocal creates a go-billy-backed host filesystem, rooted at "/" unless
// WithRoot says otherwise.
func NewLocal(opts ...Option) *LocalFS {
	cfg := config{root: hostRoot()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &LocalFS{
		base: base{bfs: osfs.New(cfg.root)},
		root: cfg.root,
	}
}

// NewMemory creates an empty go-billy-backed in-memory filesystem.
func NewMemory(_ ...Option) *MemoryFS {
	return &MemoryFS{
		base: base{bfs: memfs.New()},
	}
}

// Root returns the host directory the filesystem is rooted at.
func (lfs *LocalFS) Root() string {
	return lfs.root
}

// Canonical resolves name to an absolute host path with every symbolic link
// followed.
func (lfs *LocalFS) Canonical(name string) (string, error) {
	host := filepath.Join(lfs.root, filepath.FromSlash(normalize(name)))
	resolved, err := filepath.EvalSymlinks(host)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(abs), nil
}

// normalize converts names to forward slashes and cleans them.
func normalize(name string) string {
	return path.Clean(filepath.ToSlash(name))
}

// base holds the operations osfs and memfs share.
type base struct {
	bfs billy.Filesystem
}

// Stat returns file metadata for the named file.
func (b *base) Stat(name string) (fs.FileInfo, error) {
	name = normalize(name)
	info, err := b.bfs.Stat(name)
	if err != nil {
		return nil, pathError("stat", name, err)
	}
	return info, nil
}

// ReadFile reads the named file and returns its contents.
func (b *base) ReadFile(name string) ([]byte, error) {
	name = normalize(name)
	info, err := b.bfs.Stat(name)
	if err != nil {
		return nil, pathError("read", name, err)
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: core.ErrIsDir}
	}
	f, err := b.bfs.Open(name)
	if err != nil {
		return nil, pathError("open", name, err)
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// Exists reports whether the named file or directory exists.
func (b *base) Exists(name string) (bool, error) {
	_, err := b.bfs.Stat(normalize(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) || core.IsNotDirError(err) {
		return false, nil
	}
	return false, err
}

// WriteFile writes data to the named file, creating it if necessary.
func (b *base) WriteFile(name string, data []byte, perm fs.FileMode) error {
	name = normalize(name)
	if info, err := b.bfs.Stat(name); err == nil && info.IsDir() {
		return &fs.PathError{Op: "write", Path: name, Err: core.ErrIsDir}
	}
	if err := b.checkAncestors("write", name); err != nil {
		return err
	}
	f, err := b.bfs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return pathError("write", name, err)
	}
	defer func() { _ = f.Close() }()
	_, err = f.Write(data)
	return err
}

// MkdirAll creates a directory named p, along with any necessary parents.
func (b *base) MkdirAll(p string, perm fs.FileMode) error {
	p = normalize(p)
	if info, err := b.bfs.Stat(p); err == nil {
		if info.IsDir() {
			return nil
		}
		return &fs.PathError{Op: "mkdir", Path: p, Err: core.ErrNotDir}
	}
	if err := b.checkAncestors("mkdir", p); err != nil {
		return err
	}
	if err := b.bfs.MkdirAll(p, perm); err != nil {
		return pathError("mkdir", p, err)
	}
	return nil
}

// Remove removes the named file or empty directory.
func (b *base) Remove(name string) error {
	name = normalize(name)
	if err := b.bfs.Remove(name); err != nil {
		return pathError("remove", name, err)
	}
	return nil
}

// checkAncestors fails with ErrNotDir when a parent component of name is a
// file. memfs would otherwise report an untyped error.
func (b *base) checkAncestors(op, name string) error {
	dir := path.Dir(name)
	for dir != "." && dir != "/" && !strings.HasSuffix(dir, ":") {
		info, err := b.bfs.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return &fs.PathError{Op: op, Path: name, Err: core.ErrNotDir}
			}
			return nil
		}
		parent := path.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil
}

// pathError makes sure backend errors are *fs.PathError values so callers can
// rely on errors.Is against the io/fs sentinels.
func pathError(op, name string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return err
	}
	if os.IsNotExist(err) {
		err = fs.ErrNotExist
	}
	return &fs.PathError{Op: op, Path: name, Err: err}
}

// Compile-time interface checks.
var (
	_ core.FS            = (*LocalFS)(nil)
	_ core.FS            = (*MemoryFS)(nil)
	_ core.Canonicalizer = (*LocalFS)(nil)
)
