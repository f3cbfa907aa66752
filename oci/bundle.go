package oci

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"path"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content"

	"github.com/jmgilman/loadpath/errors"
	"github.com/jmgilman/loadpath/vfs"
)

const (
	// ArtifactType identifies load-path bundles.
	ArtifactType = "application/vnd.loadpath.bundle.v1"

	// LayerMediaType is the media type of the source tree layer.
	LayerMediaType = "application/vnd.loadpath.bundle.layer.v1.tar+gzip"

	// DefaultMaxSize bounds the uncompressed size of a bundle.
	DefaultMaxSize int64 = 512 << 20
)

// PreloadOption configures Preload.
type PreloadOption func(*preloadOptions)

type preloadOptions struct {
	maxSize int64
}

// WithMaxSize bounds the uncompressed size of the files Preload writes.
// Zero disables the check.
func WithMaxSize(n int64) PreloadOption {
	return func(o *preloadOptions) {
		o.maxSize = n
	}
}

// Push archives src into a bundle, pushes it to target and tags it with
// tag. An empty tag leaves the manifest untagged. It returns the manifest
// descriptor.
func Push(ctx context.Context, target oras.Target, tag string, src fs.FS) (ocispec.Descriptor, error) {
	var buf bytes.Buffer
	if err := Archive(ctx, src, &buf); err != nil {
		return ocispec.Descriptor{}, err
	}

	layer, err := oras.PushBytes(ctx, target, LayerMediaType, buf.Bytes())
	if err != nil {
		return ocispec.Descriptor{}, wrapError(err, "failed to push bundle layer")
	}

	manifest, err := oras.PackManifest(ctx, target, oras.PackManifestVersion1_1, ArtifactType,
		oras.PackManifestOptions{Layers: []ocispec.Descriptor{layer}})
	if err != nil {
		return ocispec.Descriptor{}, wrapError(err, "failed to pack bundle manifest")
	}

	if tag != "" {
		if err := target.Tag(ctx, manifest, tag); err != nil {
			return ocispec.Descriptor{}, errors.WithContext(wrapError(err, "failed to tag bundle"), "tag", tag)
		}
	}
	return manifest, nil
}

// Preload fetches the bundle ref from source and writes its files into store
// beneath dstDir. ref is a tag or digest understood by source. It returns
// the number of files written.
func Preload(ctx context.Context, source oras.ReadOnlyTarget, ref string, store vfs.Store, dstDir string, opts ...PreloadOption) (int, error) {
	o := preloadOptions{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(&o)
	}

	layer, err := findLayer(ctx, source, ref)
	if err != nil {
		return 0, errors.WithContext(err, "reference", ref)
	}
	if o.maxSize > 0 && layer.Size > o.maxSize {
		return 0, errors.WithContextMap(
			errors.New(errors.CodeInvalidInput, "bundle layer exceeds maximum size"),
			map[string]interface{}{"reference": ref, "max_size": o.maxSize})
	}

	data, err := content.FetchAll(ctx, source, layer)
	if err != nil {
		return 0, errors.WithContext(wrapError(err, "failed to fetch bundle layer"), "reference", ref)
	}

	count := 0
	err = extract(ctx, bytes.NewReader(data), o.maxSize, func(name string, data []byte) error {
		if err := store.Write(path.Join(dstDir, name), data); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, errors.WithContext(err, "reference", ref)
}

// findLayer resolves ref to a bundle manifest and returns its source layer.
func findLayer(ctx context.Context, source oras.ReadOnlyTarget, ref string) (ocispec.Descriptor, error) {
	desc, rc, err := oras.Fetch(ctx, source, ref, oras.DefaultFetchOptions)
	if err != nil {
		return ocispec.Descriptor{}, wrapError(err, "failed to resolve bundle")
	}
	raw, err := content.ReadAll(rc, desc)
	_ = rc.Close()
	if err != nil {
		return ocispec.Descriptor{}, wrapError(err, "failed to read bundle manifest")
	}

	if desc.MediaType != ocispec.MediaTypeImageManifest {
		return ocispec.Descriptor{}, errors.Newf(errors.CodeInvalidInput,
			"reference is not an image manifest: %s", desc.MediaType)
	}
	var manifest ocispec.Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return ocispec.Descriptor{}, errors.Wrap(err, errors.CodeInvalidInput, "malformed bundle manifest")
	}

	for _, layer := range manifest.Layers {
		if layer.MediaType == LayerMediaType {
			return layer, nil
		}
	}
	return ocispec.Descriptor{}, errors.WithContext(
		errors.New(errors.CodeInvalidInput, "manifest has no load-path bundle layer"),
		"artifact_type", manifest.ArtifactType)
}
