package vfs

import (
	"context"
	"strings"

	"github.com/jmgilman/loadpath/errors"
)

// SourceExtension is the suffix tried when a feature name has none.
const SourceExtension = ".rb"

// RequireRelative requires path resolved against the directory of caller,
// the file issuing the call.
func RequireRelative(ctx context.Context, store Store, interp Interpreter, path, caller string) (Outcome, error) {
	callerPath, err := store.Resolve(caller)
	if err != nil {
		return 0, err
	}
	style := store.Style()
	target, err := NormalizeSlashes(style, Resolve(style, path, Dir(style, callerPath)))
	if err != nil {
		return 0, err
	}
	return store.Require(ctx, interp, target)
}

// FindFeature maps a feature name to the path Require should be given. A name
// without the source extension is tried with it first, then as written.
// Directories never match.
func FindFeature(store Store, name string) (string, error) {
	candidates := []string{name}
	if !strings.HasSuffix(name, SourceExtension) {
		candidates = []string{name + SourceExtension, name}
	}
	for _, candidate := range candidates {
		if store.Exists(candidate) && !store.IsDirectory(candidate) {
			return candidate, nil
		}
	}
	return "", errors.WithPath(errors.New(errors.CodeNotFound, "cannot load such file"), name)
}
