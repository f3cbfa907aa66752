package vfs

import (
	"io/fs"

	"github.com/jmgilman/loadpath/errors"
	"github.com/jmgilman/loadpath/fs/core"
)

// hostError maps a backend error onto the store error codes and attaches the
// resolved path.
func hostError(op, path string, err error) error {
	if err == nil {
		return nil
	}

	var code errors.ErrorCode
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = errors.CodeNotFound
	case core.IsDirError(err):
		code = errors.CodeIsADirectory
	case core.IsNotDirError(err):
		code = errors.CodeNotADirectory
	case errors.Is(err, fs.ErrPermission):
		code = errors.CodePermissionDenied
	default:
		code = errors.CodeIO
	}
	return errors.WithPath(errors.Wrapf(err, code, "%s failed", op), path)
}

func notFound(path string) error {
	return errors.WithPath(errors.New(errors.CodeNotFound, "no such file to load"), path)
}
