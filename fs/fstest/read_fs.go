package fstest

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/loadpath/fs/core"
)

// TestReadFS tests Stat, ReadFile and Exists.
func TestReadFS(t *testing.T, filesystem core.FS) {
	testContent := []byte("puts 'hello'")

	if err := filesystem.MkdirAll("testdir", 0o755); err != nil {
		t.Fatalf("MkdirAll(testdir): setup failed: %v", err)
	}
	if err := filesystem.WriteFile("testdir/testfile.rb", testContent, 0o644); err != nil {
		t.Fatalf("WriteFile(testdir/testfile.rb): setup failed: %v", err)
	}

	t.Run("StatFile", func(t *testing.T) {
		info, err := filesystem.Stat("testdir/testfile.rb")
		if err != nil {
			t.Fatalf("Stat(%q): got error %v, want nil", "testdir/testfile.rb", err)
		}
		if info.IsDir() {
			t.Errorf("Stat(%q): IsDir() = true, want false", "testdir/testfile.rb")
		}
		if info.Size() != int64(len(testContent)) {
			t.Errorf("Stat(%q): Size() = %d, want %d", "testdir/testfile.rb", info.Size(), len(testContent))
		}
	})

	t.Run("StatDir", func(t *testing.T) {
		info, err := filesystem.Stat("testdir")
		if err != nil {
			t.Fatalf("Stat(%q): got error %v, want nil", "testdir", err)
		}
		if !info.IsDir() {
			t.Errorf("Stat(%q): IsDir() = false, want true", "testdir")
		}
	})

	t.Run("StatNotExist", func(t *testing.T) {
		_, err := filesystem.Stat("nonexistent")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Stat(%q): got error %v, want fs.ErrNotExist", "nonexistent", err)
		}
	})

	t.Run("ReadFile", func(t *testing.T) {
		data, err := filesystem.ReadFile("testdir/testfile.rb")
		if err != nil {
			t.Fatalf("ReadFile(%q): got error %v, want nil", "testdir/testfile.rb", err)
		}
		if !bytes.Equal(data, testContent) {
			t.Errorf("ReadFile(%q): got %q, want %q", "testdir/testfile.rb", data, testContent)
		}
	})

	t.Run("ReadFileNotExist", func(t *testing.T) {
		_, err := filesystem.ReadFile("testdir/missing.rb")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("ReadFile(%q): got error %v, want fs.ErrNotExist", "testdir/missing.rb", err)
		}
	})

	t.Run("ReadFileDirectory", func(t *testing.T) {
		_, err := filesystem.ReadFile("testdir")
		if !core.IsDirError(err) {
			t.Errorf("ReadFile(%q): got error %v, want a directory error", "testdir", err)
		}
	})

	t.Run("Exists", func(t *testing.T) {
		for _, name := range []string{"testdir", "testdir/testfile.rb"} {
			exists, err := filesystem.Exists(name)
			if err != nil {
				t.Errorf("Exists(%q): got error %v, want nil", name, err)
				continue
			}
			if !exists {
				t.Errorf("Exists(%q): got false, want true", name)
			}
		}
	})

	t.Run("ExistsNotExist", func(t *testing.T) {
		for _, name := range []string{"nonexistent", "testdir/testfile.rb/child.rb"} {
			exists, err := filesystem.Exists(name)
			if err != nil {
				t.Errorf("Exists(%q): got error %v, want nil", name, err)
				continue
			}
			if exists {
				t.Errorf("Exists(%q): got true, want false", name)
			}
		}
	})
}
