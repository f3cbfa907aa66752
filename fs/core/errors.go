package core

import (
	"errors"
	"io/fs"
	"syscall"
)

var (
	// ErrNotExist is returned when a file or directory does not exist.
	// Re-exported from io/fs for convenience.
	ErrNotExist = fs.ErrNotExist

	// ErrExist is returned when a file or directory already exists.
	// Re-exported from io/fs for convenience.
	ErrExist = fs.ErrExist

	// ErrPermission is returned when permission is denied.
	// Re-exported from io/fs for convenience.
	ErrPermission = fs.ErrPermission

	// ErrIsDir is returned when a file operation targets a directory.
	ErrIsDir = errors.New("is a directory")

	// ErrNotDir is returned when a path component is not a directory.
	ErrNotDir = errors.New("not a directory")
)

// IsDirError reports whether err indicates a file operation hit a directory.
func IsDirError(err error) bool {
	return errors.Is(err, ErrIsDir) || errors.Is(err, syscall.EISDIR)
}

// IsNotDirError reports whether err indicates a path component is a file.
func IsNotDirError(err error) bool {
	return errors.Is(err, ErrNotDir) || errors.Is(err, syscall.ENOTDIR)
}
