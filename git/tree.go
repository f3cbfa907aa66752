package git

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/jmgilman/loadpath/errors"
	"github.com/jmgilman/loadpath/vfs"
)

// Resolve returns the commit hash rev points at. An empty rev means HEAD.
func (r *Repository) Resolve(rev string) (string, error) {
	commit, err := r.commit(rev)
	if err != nil {
		return "", err
	}
	return commit.Hash.String(), nil
}

func (r *Repository) commit(rev string) (*object.Commit, error) {
	if rev == "" {
		rev = "HEAD"
	}
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, errors.WithContext(wrapError(err, "failed to resolve revision"), "revision", rev)
	}
	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, errors.WithContext(wrapError(err, "failed to read commit"), "revision", rev)
	}
	return commit, nil
}

// Files returns the paths of the files in rev beneath subdir, relative to
// subdir. An empty subdir lists the whole tree.
func (r *Repository) Files(rev, subdir string) ([]string, error) {
	var names []string
	err := r.walk(context.Background(), rev, subdir, func(rel string, _ *object.File) error {
		names = append(names, rel)
		return nil
	})
	return names, err
}

// Preload writes every file of rev beneath subdir into store under dstDir and
// returns the number of files written.
func (r *Repository) Preload(ctx context.Context, store vfs.Store, rev, subdir, dstDir string) (int, error) {
	count := 0
	err := r.walk(ctx, rev, subdir, func(rel string, f *object.File) error {
		reader, err := f.Reader()
		if err != nil {
			return wrapError(err, "failed to open blob")
		}
		data, err := io.ReadAll(reader)
		_ = reader.Close()
		if err != nil {
			return wrapError(err, "failed to read blob")
		}

		if err := store.Write(path.Join(dstDir, rel), data); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}

func (r *Repository) walk(ctx context.Context, rev, subdir string, fn func(rel string, f *object.File) error) error {
	commit, err := r.commit(rev)
	if err != nil {
		return err
	}
	tree, err := commit.Tree()
	if err != nil {
		return wrapError(err, "failed to read tree")
	}

	subdir = strings.Trim(subdir, "/")
	if subdir != "" && subdir != "." {
		tree, err = tree.Tree(subdir)
		if err != nil {
			return errors.WithPath(wrapError(err, "failed to read subdirectory"), subdir)
		}
	}

	err = tree.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Symlinks carry no source text.
		if f.Mode != filemode.Regular && f.Mode != filemode.Executable {
			return nil
		}
		return fn(f.Name, f)
	})
	if err != nil {
		var platformErr errors.PlatformError
		if errors.As(err, &platformErr) {
			return err
		}
		return wrapError(err, "failed to walk tree")
	}
	return nil
}
