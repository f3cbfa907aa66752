// Package fstest provides a conformance suite for core.FS backends.
//
// Backend packages import it from their tests and hand it a constructor:
//
//	func TestMyBackend(t *testing.T) {
//	    fstest.TestSuite(t, func() core.FS {
//	        return mybackend.New()
//	    })
//	}
//
// The suite checks the contract the load-path stores depend on: typed
// not-exist and directory-mismatch errors, overwrite semantics and an
// idempotent MkdirAll.
package fstest

import (
	"testing"

	"github.com/jmgilman/loadpath/fs/core"
)

// FSTestConfig configures the suite for backend-specific differences.
type FSTestConfig struct {
	// SkipTests lists test groups to skip, e.g. "ManageFS".
	SkipTests []string
}

// TestSuite runs every conformance group against fresh filesystems.
// newFS must return an empty filesystem on each call.
func TestSuite(t *testing.T, newFS func() core.FS) {
	TestSuiteWithConfig(t, newFS, FSTestConfig{})
}

// TestSuiteWithConfig runs the conformance groups honoring config.
func TestSuiteWithConfig(t *testing.T, newFS func() core.FS, config FSTestConfig) {
	shouldSkip := func(name string) bool {
		for _, skip := range config.SkipTests {
			if skip == name {
				return true
			}
		}
		return false
	}

	groups := []struct {
		name string
		run  func(*testing.T, core.FS)
	}{
		{"ReadFS", TestReadFS},
		{"WriteFS", TestWriteFS},
		{"ManageFS", TestManageFS},
	}

	for _, group := range groups {
		t.Run(group.name, func(t *testing.T) {
			if shouldSkip(group.name) {
				t.Skip("Skipped by provider configuration")
				return
			}
			group.run(t, newFS())
		})
	}
}
