// Package vfs implements the load-path filesystem behind require, load and
// require_relative.
//
// Every store resolves the paths it is given with Resolve and
// NormalizeSlashes before consulting its hook table, its Feature Registry or
// its backend. Four strategies are available and one is picked when the
// store is built:
//
//   - StrategyMemory keeps sources and hooks in memory, rooted at
//     LoadPathRoot.
//   - StrategyNative reads and writes the host filesystem and keys its
//     registry by host-canonical path.
//   - StrategyHybrid serves LoadPathRoot from memory and everything else from
//     the host, sharing one registry.
//   - StrategySearchPath probes an ordered list of host roots.
//
// Require executes a feature at most once and reports AlreadyLoaded
// afterwards. Load executes every time and never touches the registry. A
// feature is marked loaded only after its hook or source ran without error,
// so a failed require can be retried.
//
// Stores are not safe for concurrent use. They belong to a single
// interpreter, which serializes access to them.
//
// Basic usage:
//
//	store := vfs.NewMemory()
//	if err := store.Write("set.rb", []byte("class Set; end")); err != nil {
//	    return err
//	}
//	outcome, err := store.Require(ctx, interp, "set.rb")
package vfs
