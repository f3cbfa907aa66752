// Package billy provides go-billy-backed implementations of core.FS.
//
// LocalFS wraps go-billy's osfs and serves the native load-path stores;
// MemoryFS wraps memfs and holds the source text of the in-memory store.
// Both share one implementation of the core operations, so a directory
// mismatch or a missing path surfaces as the same *fs.PathError regardless
// of the backend.
//
// Usage:
//
//	host := billy.NewLocal()
//	data, err := host.ReadFile("/usr/lib/ruby/set.rb")
//
//	mem := billy.NewMemory()
//	err = mem.WriteFile("/artichoke/virtual_root/src/lib/set.rb", src, 0o644)
//
// LocalFS additionally implements core.Canonicalizer, following symbolic
// links so two paths reaching one host file share a canonical name.
//
// # Thread Safety
//
// go-billy synchronizes memfs internally, but the load-path stores built on
// these backends are single-threaded and add no locking of their own.
package billy
