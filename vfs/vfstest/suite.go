// Package vfstest provides a conformance suite for vfs.Store implementations
// and a recording interpreter for driving them in tests.
//
//	func TestMemoryStore(t *testing.T) {
//	    vfstest.TestSuite(t, func(t *testing.T) vfs.Store {
//	        return vfs.NewMemory()
//	    })
//	}
//
// The suite only uses relative paths, so the constructor decides where files
// land by choosing the store's working directory. Host-backed stores should
// use t.TempDir().
package vfstest

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/jmgilman/loadpath/errors"
	"github.com/jmgilman/loadpath/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSuite runs every conformance check, calling newStore for a fresh store
// in each subtest.
func TestSuite(t *testing.T, newStore func(t *testing.T) vfs.Store) {
	tests := []struct {
		name string
		run  func(*testing.T, vfs.Store)
	}{
		{"WriteRead", testWriteRead},
		{"WriteOverwrites", testWriteOverwrites},
		{"ReadMissing", testReadMissing},
		{"ReadDirectory", testReadDirectory},
		{"HookOnDirectory", testHookOnDirectory},
		{"RequireOnce", testRequireOnce},
		{"LoadAlways", testLoadAlways},
		{"RequireThenLoad", testRequireThenLoad},
		{"RequireMissing", testRequireMissing},
		{"RequireSameFeatureTwoSpellings", testRequireSameFeatureTwoSpellings},
		{"HookOnly", testHookOnly},
		{"HookPrecedence", testHookPrecedence},
		{"FailingHook", testFailingHook},
		{"FailingEval", testFailingEval},
		{"NestedRequire", testNestedRequire},
		{"NilHook", testNilHook},
		{"FindFeature", testFindFeature},
		{"RequireRelative", testRequireRelative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.run(t, newStore(t))
		})
	}
}

func testWriteRead(t *testing.T, store vfs.Store) {
	require.NoError(t, store.Write("conformance/a.rb", []byte("puts 1")))

	data, err := store.Read("conformance/a.rb")
	require.NoError(t, err)
	assert.Equal(t, "puts 1", string(data))

	assert.True(t, store.Exists("conformance/a.rb"))
	assert.False(t, store.IsDirectory("conformance/a.rb"))
	assert.True(t, store.Exists("conformance"))
	assert.True(t, store.IsDirectory("conformance"))
	assert.False(t, store.Exists("conformance/b.rb"))

	// The store owns its copy.
	data[0] = 'X'
	again, err := store.Read("conformance/a.rb")
	require.NoError(t, err)
	assert.Equal(t, "puts 1", string(again))
}

func testWriteOverwrites(t *testing.T, store vfs.Store) {
	require.NoError(t, store.Write("overwrite.rb", []byte("first version")))
	require.NoError(t, store.Write("overwrite.rb", []byte("second")))

	data, err := store.Read("overwrite.rb")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func testReadMissing(t *testing.T, store vfs.Store) {
	_, err := store.Read("missing/nothing.rb")
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func testReadDirectory(t *testing.T, store vfs.Store) {
	require.NoError(t, store.Write("dir/inner.rb", []byte("x")))

	_, err := store.Read("dir")
	require.Error(t, err)
	assert.Equal(t, errors.CodeIsADirectory, errors.GetCode(err))
}

func testHookOnDirectory(t *testing.T, store vfs.Store) {
	require.NoError(t, store.Write("hookdir/inner.rb", []byte("x")))

	err := store.RegisterExtension("hookdir", NewRecorder().Hook("dir", nil))
	require.Error(t, err)
	assert.Equal(t, errors.CodeIsADirectory, errors.GetCode(err))
	assert.True(t, store.IsDirectory("hookdir"))

	_, err = store.Require(context.Background(), NewRecorder(), "hookdir")
	assert.Equal(t, errors.CodeIsADirectory, errors.GetCode(err))
}

func testRequireOnce(t *testing.T, store vfs.Store) {
	ctx := context.Background()
	rec := NewRecorder()
	require.NoError(t, store.Write("once.rb", []byte("puts 1")))
	before := len(store.LoadedFeatures())

	outcome, err := store.Require(ctx, rec, "once.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.Loaded, outcome)

	outcome, err = store.Require(ctx, rec, "once.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.AlreadyLoaded, outcome)

	p, err := store.Resolve("once.rb")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Count(p))
	assert.True(t, store.IsRequired("once.rb"))
	assert.Len(t, store.LoadedFeatures(), before+1)
}

func testLoadAlways(t *testing.T, store vfs.Store) {
	ctx := context.Background()
	rec := NewRecorder()
	require.NoError(t, store.Write("always.rb", []byte("puts 2")))

	for i := 0; i < 2; i++ {
		outcome, err := store.Load(ctx, rec, "always.rb")
		require.NoError(t, err)
		assert.Equal(t, vfs.Executed, outcome)
	}

	p, err := store.Resolve("always.rb")
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Count(p))
	assert.False(t, store.IsRequired("always.rb"))
}

func testRequireThenLoad(t *testing.T, store vfs.Store) {
	ctx := context.Background()
	rec := NewRecorder()
	require.NoError(t, store.Write("mixed.rb", []byte("puts 1")))

	outcome, err := store.Require(ctx, rec, "mixed.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.Loaded, outcome)
	outcome, err = store.Require(ctx, rec, "mixed.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.AlreadyLoaded, outcome)
	outcome, err = store.Load(ctx, rec, "mixed.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.Executed, outcome)

	p, err := store.Resolve("mixed.rb")
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Count(p))
	assert.True(t, store.IsRequired("mixed.rb"))
}

func testRequireMissing(t *testing.T, store vfs.Store) {
	rec := NewRecorder()
	_, err := store.Require(context.Background(), rec, "missing.rb")
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	assert.False(t, store.IsRequired("missing.rb"))
	assert.Empty(t, rec.Evals())
}

func testRequireSameFeatureTwoSpellings(t *testing.T, store vfs.Store) {
	ctx := context.Background()
	rec := NewRecorder()
	require.NoError(t, store.Write("spell/feature.rb", []byte("x")))

	abs, err := store.Resolve("spell/feature.rb")
	require.NoError(t, err)

	outcome, err := store.Require(ctx, rec, "spell/../spell/./feature.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.Loaded, outcome)

	outcome, err = store.Require(ctx, rec, abs)
	require.NoError(t, err)
	assert.Equal(t, vfs.AlreadyLoaded, outcome)
}

func testHookOnly(t *testing.T, store vfs.Store) {
	ctx := context.Background()
	rec := NewRecorder()
	require.NoError(t, store.RegisterExtension("ext/native.rb", rec.Hook("native", nil)))

	assert.True(t, store.Exists("ext/native.rb"))
	assert.False(t, store.IsDirectory("ext/native.rb"))

	outcome, err := store.Require(ctx, rec, "ext/native.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.Loaded, outcome)
	outcome, err = store.Require(ctx, rec, "ext/native.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.AlreadyLoaded, outcome)
	outcome, err = store.Load(ctx, rec, "ext/native.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.Executed, outcome)

	assert.Equal(t, 2, rec.HookCount("native"))
	for _, e := range rec.Evals() {
		assert.Empty(t, e.Source, "no source is read for a hook")
	}
}

func testHookPrecedence(t *testing.T, store vfs.Store) {
	ctx := context.Background()
	rec := NewRecorder()
	require.NoError(t, store.Write("both.rb", []byte("source")))
	require.NoError(t, store.RegisterExtension("both.rb", rec.Hook("both", nil)))

	outcome, err := store.Require(ctx, rec, "both.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.Loaded, outcome)

	p, err := store.Resolve("both.rb")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.HookCount("both"))
	assert.Equal(t, 0, rec.Count(p))
}

func testFailingHook(t *testing.T, store vfs.Store) {
	ctx := context.Background()
	rec := NewRecorder()
	boom := stderrors.New("boom")
	fail := true
	hook := rec.Hook("flaky", func() error {
		if fail {
			return boom
		}
		return nil
	})
	require.NoError(t, store.RegisterExtension("flaky.rb", hook))

	_, err := store.Require(ctx, rec, "flaky.rb")
	require.Error(t, err)
	assert.Equal(t, errors.CodeHookFailed, errors.GetCode(err))
	assert.ErrorIs(t, err, boom)
	assert.False(t, store.IsRequired("flaky.rb"))

	fail = false
	outcome, err := store.Require(ctx, rec, "flaky.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.Loaded, outcome)
	assert.Equal(t, 2, rec.HookCount("flaky"))
}

func testFailingEval(t *testing.T, store vfs.Store) {
	ctx := context.Background()
	rec := NewRecorder()
	require.NoError(t, store.Write("broken.rb", []byte("syntax error")))
	p, err := store.Resolve("broken.rb")
	require.NoError(t, err)

	boom := stderrors.New("syntax error")
	rec.Fail[p] = boom

	_, err = store.Require(ctx, rec, "broken.rb")
	assert.Same(t, boom, err)
	assert.False(t, store.IsRequired("broken.rb"))

	delete(rec.Fail, p)
	outcome, err := store.Require(ctx, rec, "broken.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.Loaded, outcome)
}

func testNestedRequire(t *testing.T, store vfs.Store) {
	ctx := context.Background()
	rec := NewRecorder()
	require.NoError(t, store.Write("outer.rb", []byte("require 'inner'")))
	require.NoError(t, store.Write("inner.rb", []byte("puts 'inner'")))

	outer, err := store.Resolve("outer.rb")
	require.NoError(t, err)

	var outerRequiredDuringInner bool
	rec.OnEval = func(ctx context.Context, path string) error {
		if path != outer {
			return nil
		}
		outerRequiredDuringInner = store.IsRequired("outer.rb")
		_, err := store.Require(ctx, rec, "inner.rb")
		return err
	}

	before := len(store.LoadedFeatures())
	outcome, err := store.Require(ctx, rec, "outer.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.Loaded, outcome)
	assert.False(t, outerRequiredDuringInner, "outer is registered only after it finishes")

	features := store.LoadedFeatures()[before:]
	require.Len(t, features, 2)
	assert.True(t, store.IsRequired("inner.rb"))
	assert.True(t, store.IsRequired("outer.rb"))

	outcome, err = store.Require(ctx, rec, "inner.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.AlreadyLoaded, outcome)
}

func testNilHook(t *testing.T, store vfs.Store) {
	err := store.RegisterExtension("nil.rb", nil)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func testFindFeature(t *testing.T, store vfs.Store) {
	require.NoError(t, store.Write("find/set.rb", []byte("class Set; end")))
	require.NoError(t, store.Write("find/VERSION", []byte("1")))

	got, err := vfs.FindFeature(store, "find/set")
	require.NoError(t, err)
	assert.Equal(t, "find/set.rb", got)

	got, err = vfs.FindFeature(store, "find/set.rb")
	require.NoError(t, err)
	assert.Equal(t, "find/set.rb", got)

	got, err = vfs.FindFeature(store, "find/VERSION")
	require.NoError(t, err)
	assert.Equal(t, "find/VERSION", got)

	_, err = vfs.FindFeature(store, "find")
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func testRequireRelative(t *testing.T, store vfs.Store) {
	ctx := context.Background()
	rec := NewRecorder()
	require.NoError(t, store.Write("rel/lib/main.rb", []byte("require_relative 'helper'")))
	require.NoError(t, store.Write("rel/lib/helper.rb", []byte("puts 'helper'")))

	outcome, err := vfs.RequireRelative(ctx, store, rec, "helper.rb", "rel/lib/main.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.Loaded, outcome)
	assert.True(t, store.IsRequired("rel/lib/helper.rb"))

	outcome, err = vfs.RequireRelative(ctx, store, rec, "../lib/helper.rb", "rel/lib/main.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.AlreadyLoaded, outcome)
}
