package vfs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/jmgilman/loadpath/errors"
	"github.com/jmgilman/loadpath/internal/logging"
)

// SearchPathStore probes an ordered list of host directories. Each root is
// served by its own NativeStore whose working directory is that root; the
// first root containing a path wins. Roots share no file entries, but the
// store's Feature Registry and hook table are common to all of them.
type SearchPathStore struct {
	*loader
	roots     []string
	delegates []*NativeStore
}

// NewSearchPath returns a store probing roots in order. Relative roots are
// resolved against the process working directory.
func NewSearchPath(roots []string, opts ...Option) (*SearchPathStore, error) {
	if len(roots) == 0 {
		return nil, errors.New(errors.CodeInvalidConfig, "search path has no roots")
	}

	o := newOptions(opts)
	l := newLoader(StrategySearchPath, o)

	var wd string
	store := &SearchPathStore{loader: l}
	for _, root := range roots {
		if root == "" {
			return nil, errors.New(errors.CodeInvalidConfig, "search path root is empty")
		}
		root = filepath.ToSlash(root)
		base := ""
		if !IsAbs(o.style, root) {
			if wd == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return nil, errors.Wrap(err, errors.CodeIO, "failed to determine working directory")
				}
				wd = filepath.ToSlash(cwd)
			}
			base = wd
		}
		resolved, err := NormalizeSlashes(o.style, Resolve(o.style, root, base))
		if err != nil {
			return nil, err
		}
		root = resolved

		delegateOpts := o
		delegateOpts.cwd, delegateOpts.cwdSet = root, true
		delegate, err := newNativeStore(delegateOpts, l)
		if err != nil {
			return nil, err
		}
		store.roots = append(store.roots, root)
		store.delegates = append(store.delegates, delegate)
	}
	return store, nil
}

// SearchPathFromEnv splits the environment variable name, such as RUBYLIB,
// into search path roots using the host list separator.
func SearchPathFromEnv(name string) ([]string, error) {
	value := os.Getenv(name)
	var roots []string
	for _, root := range filepath.SplitList(value) {
		if root != "" {
			roots = append(roots, root)
		}
	}
	if len(roots) == 0 {
		return nil, errors.WithContext(
			errors.Newf(errors.CodeInvalidConfig, "environment variable %s names no search path roots", name),
			"env", name)
	}
	return roots, nil
}

// Roots returns the resolved roots in probe order.
func (s *SearchPathStore) Roots() []string {
	out := make([]string, len(s.roots))
	copy(out, s.roots)
	return out
}

// Cwd returns the first root.
func (s *SearchPathStore) Cwd() string {
	return s.roots[0]
}

// Resolve returns path resolved against the first root.
func (s *SearchPathStore) Resolve(path string) (string, error) {
	return s.delegates[0].Resolve(path)
}

// find returns the delegate serving path along with path resolved against
// that delegate's root. A file or hook in any root wins over a directory in
// an earlier one; a directory is returned only when no root holds a file
// there.
func (s *SearchPathStore) find(path string) (*NativeStore, string, error) {
	var dir *NativeStore
	var dirPath string
	for _, delegate := range s.delegates {
		p, err := delegate.Resolve(path)
		if err != nil {
			return nil, "", err
		}
		if !delegate.existsResolved(p) {
			continue
		}
		if !delegate.isDirectoryResolved(p) {
			return delegate, p, nil
		}
		if dir == nil {
			dir, dirPath = delegate, p
		}
	}
	if dir != nil {
		return dir, dirPath, nil
	}
	return nil, "", errors.WithContext(notFound(path), "roots", s.Roots())
}

// Exists reports whether any root holds path.
func (s *SearchPathStore) Exists(path string) bool {
	_, _, err := s.find(path)
	return err == nil
}

// IsDirectory reports whether path is a directory in some root and a file
// in none.
func (s *SearchPathStore) IsDirectory(path string) bool {
	delegate, p, err := s.find(path)
	if err != nil {
		return false
	}
	return delegate.isDirectoryResolved(p)
}

// Read reads path from the first root that holds it.
func (s *SearchPathStore) Read(path string) ([]byte, error) {
	delegate, p, err := s.find(path)
	if err != nil {
		return nil, err
	}
	return delegate.readResolved(p)
}

// Write writes data to path under the first root.
func (s *SearchPathStore) Write(path string, data []byte) error {
	p, err := s.Resolve(path)
	if err != nil {
		return err
	}
	return s.logged(context.Background(), logging.OpWrite, p, func() error {
		return s.delegates[0].writeResolved(p, data)
	})
}

// RegisterExtension records hook at path resolved against the first root.
func (s *SearchPathStore) RegisterExtension(path string, hook ExtensionHook) error {
	if err := validateHook(path, hook); err != nil {
		return err
	}
	p, err := s.Resolve(path)
	if err != nil {
		return err
	}
	return s.logged(context.Background(), logging.OpRegisterExtension, p, func() error {
		return s.delegates[0].registerResolved(p, hook)
	})
}

// Require executes path from the first root holding it unless it has already
// been required.
func (s *SearchPathStore) Require(ctx context.Context, interp Interpreter, path string) (Outcome, error) {
	delegate, p, err := s.find(path)
	if err != nil {
		return 0, err
	}
	return s.require(ctx, interp, delegate.locateResolved(p))
}

// Load executes path from the first root holding it.
func (s *SearchPathStore) Load(ctx context.Context, interp Interpreter, path string) (Outcome, error) {
	delegate, p, err := s.find(path)
	if err != nil {
		return 0, err
	}
	return s.load(ctx, interp, delegate.locateResolved(p))
}

// IsRequired reports whether the copy of path that Require would pick has
// been required.
func (s *SearchPathStore) IsRequired(path string) bool {
	delegate, p, err := s.find(path)
	if err != nil {
		return false
	}
	return s.features.Contains(delegate.locateResolved(p).key)
}
