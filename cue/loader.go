package cue

import (
	"context"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"github.com/jmgilman/loadpath/errors"
	"github.com/jmgilman/loadpath/fs/core"
)

// Loader compiles CUE read from a filesystem. It owns the CUE context, so
// values produced by one Loader can be unified with each other.
type Loader struct {
	fs     core.ReadFS
	cueCtx *cue.Context
}

// NewLoader creates a loader reading from filesystem.
func NewLoader(filesystem core.ReadFS) *Loader {
	return &Loader{
		fs:     filesystem,
		cueCtx: cuecontext.New(),
	}
}

// Context returns the underlying CUE context.
func (l *Loader) Context() *cue.Context {
	return l.cueCtx
}

// LoadFile loads a single CUE file. filePath is a name understood by the
// loader's filesystem.
//
// Returns CodeCUELoadFailed on file I/O errors.
// Returns CodeCUEBuildFailed on CUE compilation errors.
func (l *Loader) LoadFile(ctx context.Context, filePath string) (cue.Value, error) {
	if err := ctx.Err(); err != nil {
		return cue.Value{}, wrapError(err, errors.CodeCUELoadFailed, "context cancelled", "path", filePath)
	}

	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return cue.Value{}, wrapError(err, errors.CodeCUELoadFailed, "failed to read CUE file", "path", filePath)
	}

	// load.Instances works on absolute names, so the file is served from an
	// overlay keyed by its absolute form.
	absPath := filePath
	if absPath == "" || absPath[0] != '/' {
		absPath = "/" + absPath
	}
	config := &load.Config{
		Dir:     "/",
		Overlay: map[string]load.Source{absPath: load.FromBytes(data)},
	}

	insts := load.Instances([]string{absPath}, config)
	if len(insts) == 0 {
		return cue.Value{}, wrapError(fmt.Errorf("no instances loaded"), errors.CodeCUELoadFailed,
			"failed to load CUE file", "path", filePath)
	}
	if err := insts[0].Err; err != nil {
		return cue.Value{}, wrapError(err, errors.CodeCUEBuildFailed, "failed to load CUE file", "path", filePath)
	}

	val := l.cueCtx.BuildInstance(insts[0])
	if err := val.Err(); err != nil {
		return cue.Value{}, wrapError(err, errors.CodeCUEBuildFailed, "failed to build CUE file", "path", filePath)
	}
	if err := val.Validate(); err != nil {
		return cue.Value{}, wrapError(err, errors.CodeCUEBuildFailed, "CUE validation failed", "path", filePath)
	}

	return val, nil
}

// LoadBytes compiles CUE source. filename is only used in error messages.
//
// Returns CodeCUEBuildFailed on CUE compilation errors.
func (l *Loader) LoadBytes(ctx context.Context, source []byte, filename string) (cue.Value, error) {
	if err := ctx.Err(); err != nil {
		return cue.Value{}, wrapError(err, errors.CodeCUEBuildFailed, "context cancelled", "path", filename)
	}

	if filename == "" {
		filename = "<input>"
	}

	val := l.cueCtx.CompileBytes(source, cue.Filename(filename))
	if err := val.Err(); err != nil {
		return cue.Value{}, wrapError(err, errors.CodeCUEBuildFailed, "failed to compile CUE source",
			"path", filename, "source_size", len(source))
	}
	if err := val.Validate(); err != nil {
		return cue.Value{}, wrapError(err, errors.CodeCUEBuildFailed, "CUE validation failed", "path", filename)
	}

	return val, nil
}
