// Package oci distributes load-path sources as OCI artifacts.
//
// A bundle is an OCI 1.1 image manifest with artifact type ArtifactType and
// a single tar.gz layer holding the source tree. Push builds a bundle from
// any fs.FS; Preload fetches one and writes its files into a store:
//
//	repo, tag, err := oci.NewRepository("ghcr.io/org/gems:v1")
//	if err != nil {
//	    return err
//	}
//	n, err := oci.Preload(ctx, repo, tag, store, vfs.LoadPathRoot(store.Style()))
//
// Targets are oras-go targets, so the same calls work against a remote
// registry, an OCI layout on disk or an in-memory store.
//
// Archive members are validated before anything is written: absolute names,
// ".." components and oversized bundles are rejected with CodeInvalidInput.
package oci
