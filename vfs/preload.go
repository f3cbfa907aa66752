package vfs

import (
	"io/fs"
	"path"
	"strings"

	"github.com/jmgilman/loadpath/errors"
)

// PreloadFS copies every file under srcRoot in src into store beneath dstDir,
// preserving the directory structure. It returns the number of files copied.
//
// Use "." as srcRoot to copy the whole source filesystem. A relative dstDir
// is resolved against the store's working directory.
//
// Example:
//
//	//go:embed lib
//	var bundled embed.FS
//
//	n, err := vfs.PreloadFS(store, bundled, "lib", vfs.LoadPathRoot(store.Style()))
func PreloadFS(store Store, src fs.FS, srcRoot, dstDir string) (int, error) {
	count := 0
	err := fs.WalkDir(src, srcRoot, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		data, err := fs.ReadFile(src, filePath)
		if err != nil {
			return err
		}

		rel := filePath
		if srcRoot != "." && srcRoot != "" {
			rel = strings.TrimPrefix(filePath, srcRoot)
			rel = strings.TrimPrefix(rel, "/")
		}

		if err := store.Write(path.Join(dstDir, rel), data); err != nil {
			return err
		}
		count++
		return nil
	})

	if err != nil {
		var platformErr errors.PlatformError
		if errors.As(err, &platformErr) {
			return count, err
		}
		return count, errors.WithPath(errors.Wrap(err, errors.CodeIO, "failed to read preload source"), srcRoot)
	}
	return count, nil
}
