package fstest

import (
	"bytes"
	"testing"

	"github.com/jmgilman/loadpath/fs/core"
)

// TestWriteFS tests WriteFile and MkdirAll.
func TestWriteFS(t *testing.T, filesystem core.FS) {
	t.Run("WriteFile", func(t *testing.T) {
		if err := filesystem.WriteFile("write.rb", []byte("first"), 0o644); err != nil {
			t.Fatalf("WriteFile(%q): got error %v, want nil", "write.rb", err)
		}
		data, err := filesystem.ReadFile("write.rb")
		if err != nil {
			t.Fatalf("ReadFile(%q): got error %v, want nil", "write.rb", err)
		}
		if !bytes.Equal(data, []byte("first")) {
			t.Errorf("ReadFile(%q): got %q, want %q", "write.rb", data, "first")
		}
	})

	t.Run("WriteFileTruncates", func(t *testing.T) {
		if err := filesystem.WriteFile("truncate.rb", []byte("a much longer body"), 0o644); err != nil {
			t.Fatalf("WriteFile(%q): setup failed: %v", "truncate.rb", err)
		}
		if err := filesystem.WriteFile("truncate.rb", []byte("short"), 0o644); err != nil {
			t.Fatalf("WriteFile(%q): got error %v, want nil", "truncate.rb", err)
		}
		data, err := filesystem.ReadFile("truncate.rb")
		if err != nil {
			t.Fatalf("ReadFile(%q): got error %v, want nil", "truncate.rb", err)
		}
		if !bytes.Equal(data, []byte("short")) {
			t.Errorf("ReadFile(%q): got %q, want %q", "truncate.rb", data, "short")
		}
	})

	t.Run("WriteFileOverDirectory", func(t *testing.T) {
		if err := filesystem.MkdirAll("occupied", 0o755); err != nil {
			t.Fatalf("MkdirAll(%q): setup failed: %v", "occupied", err)
		}
		err := filesystem.WriteFile("occupied", []byte("x"), 0o644)
		if !core.IsDirError(err) {
			t.Errorf("WriteFile(%q): got error %v, want a directory error", "occupied", err)
		}
	})

	t.Run("WriteFileUnderFile", func(t *testing.T) {
		if err := filesystem.WriteFile("leaf.rb", []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(%q): setup failed: %v", "leaf.rb", err)
		}
		err := filesystem.WriteFile("leaf.rb/child.rb", []byte("y"), 0o644)
		if !core.IsNotDirError(err) {
			t.Errorf("WriteFile(%q): got error %v, want a not-a-directory error", "leaf.rb/child.rb", err)
		}
	})

	t.Run("MkdirAllIdempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := filesystem.MkdirAll("a/b/c", 0o755); err != nil {
				t.Fatalf("MkdirAll(%q) #%d: got error %v, want nil", "a/b/c", i, err)
			}
		}
		for _, dir := range []string{"a", "a/b", "a/b/c"} {
			info, err := filesystem.Stat(dir)
			if err != nil {
				t.Errorf("Stat(%q): got error %v, want nil", dir, err)
				continue
			}
			if !info.IsDir() {
				t.Errorf("Stat(%q): IsDir() = false, want true", dir)
			}
		}
	})
}
