package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/loadpath/fs/core"
)

// TestManageFS tests Remove.
func TestManageFS(t *testing.T, filesystem core.FS) {
	t.Run("RemoveFile", func(t *testing.T) {
		if err := filesystem.WriteFile("remove.rb", []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(%q): setup failed: %v", "remove.rb", err)
		}
		if err := filesystem.Remove("remove.rb"); err != nil {
			t.Fatalf("Remove(%q): got error %v, want nil", "remove.rb", err)
		}
		exists, err := filesystem.Exists("remove.rb")
		if err != nil || exists {
			t.Errorf("Exists(%q) after Remove: got (%v, %v), want (false, nil)", "remove.rb", exists, err)
		}
	})

	t.Run("RemoveNotExist", func(t *testing.T) {
		err := filesystem.Remove("never-there.rb")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Remove(%q): got error %v, want fs.ErrNotExist", "never-there.rb", err)
		}
	})
}
