package core

import (
	"io/fs"
)

// FS is the backend contract the load-path stores are built on.
//
// Names handed to an FS are already resolved and use forward slashes; the
// backend performs no relative-path resolution of its own beyond its root.
type FS interface {
	ReadFS
	WriteFS
	ManageFS
}

// ReadFS defines read-only operations.
type ReadFS interface {
	// Stat returns file metadata.
	// If there is an error, it will be of type *fs.PathError.
	Stat(name string) (fs.FileInfo, error)

	// ReadFile reads the named file and returns its contents.
	// Reading a directory is an error.
	ReadFile(name string) ([]byte, error)

	// Exists reports whether the named file or directory exists.
	// A false result with a non-nil error means existence could not be
	// determined, not that the path is absent.
	Exists(name string) (bool, error)
}

// WriteFS defines write operations.
type WriteFS interface {
	// WriteFile writes data to the named file, creating it if necessary and
	// truncating it otherwise. Parent directories must already exist.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// MkdirAll creates a directory named path, along with any necessary
	// parents. If path is already a directory, MkdirAll does nothing.
	MkdirAll(path string, perm fs.FileMode) error
}

// ManageFS defines removal of entries.
type ManageFS interface {
	// Remove removes the named file or empty directory.
	// Removing a path that does not exist returns an error wrapping ErrNotExist.
	Remove(name string) error
}

// Canonicalizer is implemented by backends that can resolve a name to the
// host's canonical form (symbolic links followed). Memory backends have no
// links and do not implement it.
//
//	if c, ok := backend.(core.Canonicalizer); ok {
//	    key, err = c.Canonical(name)
//	}
type Canonicalizer interface {
	// Canonical returns the canonical absolute form of name.
	// It fails if name does not exist.
	Canonical(name string) (string, error)
}
