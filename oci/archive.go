package oci

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"io"
	"io/fs"

	"github.com/jmgilman/loadpath/errors"
)

// Archive writes the regular files of src to w as a tar.gz stream. Names are
// the fs.FS paths, so they are relative and "/"-separated.
func Archive(ctx context.Context, src fs.FS, w io.Writer) error {
	gzipWriter := gzip.NewWriter(w)
	tarWriter := tar.NewWriter(gzipWriter)

	err := fs.WalkDir(src, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		data, err := fs.ReadFile(src, name)
		if err != nil {
			return err
		}
		header := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(data)),
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			return err
		}
		_, err = tarWriter.Write(data)
		return err
	})
	if err != nil {
		return wrapError(err, "failed to archive sources")
	}

	if err := tarWriter.Close(); err != nil {
		return wrapError(err, "failed to finish tar stream")
	}
	if err := gzipWriter.Close(); err != nil {
		return wrapError(err, "failed to finish gzip stream")
	}
	return nil
}

// extract reads a tar.gz stream and calls fn for every regular file.
// Directories are implied by file names; links and devices are skipped.
// Extraction stops once more than maxSize bytes of file content are seen.
func extract(ctx context.Context, r io.Reader, maxSize int64, fn func(name string, data []byte) error) error {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return errors.Wrap(err, errors.CodeInvalidInput, "bundle layer is not gzip compressed")
	}
	defer func() { _ = gzipReader.Close() }()

	tarReader := tar.NewReader(gzipReader)
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return wrapError(err, "extraction cancelled")
		}

		header, err := tarReader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, errors.CodeInvalidInput, "bundle layer is not a tar stream")
		}

		if err := validateMember(header.Name); err != nil {
			return err
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		total += header.Size
		if maxSize > 0 && total > maxSize {
			return errors.WithContext(
				errors.New(errors.CodeInvalidInput, "bundle exceeds maximum size"), "max_size", maxSize)
		}

		data, err := io.ReadAll(io.LimitReader(tarReader, header.Size))
		if err != nil {
			return wrapError(err, "failed to read archive member")
		}
		if err := fn(header.Name, data); err != nil {
			return err
		}
	}
}
