// Package core defines the backend contract shared by the load-path stores.
//
// A backend is a small filesystem surface (stat, read, write, mkdir, remove) over either the host disk or an in-memory tree. The stores in
// package vfs hold one or more backends and add path resolution, extension
// hooks and the loaded-feature registry on top.
//
// # Interface Hierarchy
//
//   - ReadFS: Stat, ReadFile, Exists
//   - WriteFS: WriteFile, MkdirAll
//   - ManageFS: Remove
//
// Optional capabilities are discovered with type assertions:
//
//   - Canonicalizer: host-canonical names with symbolic links resolved
//
// # Errors
//
// Backends return *fs.PathError values wrapping the io/fs sentinels, which
// this package re-exports (ErrNotExist, ErrExist, ErrPermission). IsDirError
// and IsNotDirError recognise directory mismatches from either the host or an
// in-memory backend.
//
// Concrete backends live in package fs/billy.
package core
