package vfs_test

import (
	stderrors "errors"
	"io/fs"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/loadpath/errors"
	"github.com/jmgilman/loadpath/fs/billy"
	"github.com/jmgilman/loadpath/fs/core"
	"github.com/jmgilman/loadpath/vfs"
)

// failingFS serves everything from an in-memory backend except reads and
// writes, which fail with err.
type failingFS struct {
	core.FS
	err error
}

func (f failingFS) ReadFile(name string) ([]byte, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: f.err}
}

func (f failingFS) WriteFile(name string, _ []byte, _ fs.FileMode) error {
	return &fs.PathError{Op: "open", Path: name, Err: f.err}
}

func TestNativeStore_HostErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      errors.ErrorCode
		retryable bool
	}{
		{name: "not exist", err: fs.ErrNotExist, code: errors.CodeNotFound},
		{name: "permission", err: fs.ErrPermission, code: errors.CodePermissionDenied},
		{name: "is a directory", err: syscall.EISDIR, code: errors.CodeIsADirectory},
		{name: "not a directory", err: syscall.ENOTDIR, code: errors.CodeNotADirectory},
		{name: "other", err: stderrors.New("input/output error"), code: errors.CodeIO, retryable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := vfs.NewNative(
				vfs.WithStyle(vfs.StylePOSIX),
				vfs.WithCwd("/work"),
				vfs.WithLocalFS(failingFS{FS: billy.NewMemory(), err: tt.err}),
			)
			require.NoError(t, err)

			_, err = store.Read("lib.rb")
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
			assert.Equal(t, tt.retryable, errors.IsRetryable(err))
			assert.ErrorIs(t, err, tt.err)

			var platformErr errors.PlatformError
			require.True(t, errors.As(err, &platformErr))
			assert.Equal(t, "/work/lib.rb", platformErr.Context()["path"])

			err = store.Write("out.rb", []byte("x"))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
			require.True(t, errors.As(err, &platformErr))
			assert.Equal(t, "/work/out.rb", platformErr.Context()["path"])
		})
	}
}
