package vfs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/jmgilman/loadpath/errors"
	"github.com/jmgilman/loadpath/fs/billy"
	"github.com/jmgilman/loadpath/vfs"
	"github.com/jmgilman/loadpath/vfs/vfstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempDir(t *testing.T) string {
	t.Helper()
	return filepath.ToSlash(t.TempDir())
}

func TestMemoryStore_Conformance(t *testing.T) {
	vfstest.TestSuite(t, func(t *testing.T) vfs.Store {
		return vfs.NewMemory()
	})
}

func TestMemoryStore_WindowsConformance(t *testing.T) {
	vfstest.TestSuite(t, func(t *testing.T) vfs.Store {
		return vfs.NewMemory(vfs.WithStyle(vfs.StyleWindows))
	})
}

func TestNativeStore_Conformance(t *testing.T) {
	vfstest.TestSuite(t, func(t *testing.T) vfs.Store {
		store, err := vfs.NewNative(vfs.WithCwd(tempDir(t)))
		require.NoError(t, err)
		return store
	})
}

func TestHybridStore_Conformance(t *testing.T) {
	t.Run("Memory", func(t *testing.T) {
		vfstest.TestSuite(t, func(t *testing.T) vfs.Store {
			store, err := vfs.NewHybrid()
			require.NoError(t, err)
			return store
		})
	})
	t.Run("Native", func(t *testing.T) {
		vfstest.TestSuite(t, func(t *testing.T) vfs.Store {
			store, err := vfs.NewHybrid(vfs.WithCwd(tempDir(t)))
			require.NoError(t, err)
			return store
		})
	})
}

func TestSearchPathStore_Conformance(t *testing.T) {
	vfstest.TestSuite(t, func(t *testing.T) vfs.Store {
		store, err := vfs.NewSearchPath([]string{tempDir(t), tempDir(t)})
		require.NoError(t, err)
		return store
	})
}

func TestNew(t *testing.T) {
	tmp := tempDir(t)
	tests := []struct {
		strategy vfs.Strategy
		opts     []vfs.Option
	}{
		{vfs.StrategyMemory, nil},
		{vfs.StrategyNative, []vfs.Option{vfs.WithCwd(tmp)}},
		{vfs.StrategyHybrid, nil},
		{vfs.StrategySearchPath, []vfs.Option{vfs.WithSearchPath(tmp)}},
	}

	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			store, err := vfs.New(tt.strategy, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.strategy, store.Strategy())
		})
	}

	_, err := vfs.New(vfs.Strategy(42))
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = vfs.New(vfs.StrategySearchPath)
	assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
}

func TestParseStrategy(t *testing.T) {
	for _, s := range []vfs.Strategy{vfs.StrategyMemory, vfs.StrategyNative, vfs.StrategyHybrid, vfs.StrategySearchPath} {
		got, err := vfs.ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := vfs.ParseStrategy("search-path")
	require.NoError(t, err)
	assert.Equal(t, vfs.StrategySearchPath, got)

	_, err = vfs.ParseStrategy("cloud")
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "loaded", vfs.Loaded.String())
	assert.Equal(t, "already loaded", vfs.AlreadyLoaded.String())
	assert.Equal(t, "executed", vfs.Executed.String())
	assert.Equal(t, "unknown", vfs.Outcome(0).String())
}

func TestMemoryStore_RequireThenLoadScenario(t *testing.T) {
	ctx := context.Background()
	store := vfs.NewMemory(vfs.WithStyle(vfs.StylePOSIX))
	rec := vfstest.NewRecorder()
	path := "/artichoke/virtual_root/src/lib/a.rb"

	require.NoError(t, store.Write(path, []byte("puts 1")))

	outcome, err := store.Require(ctx, rec, path)
	require.NoError(t, err)
	assert.Equal(t, vfs.Loaded, outcome)

	outcome, err = store.Require(ctx, rec, path)
	require.NoError(t, err)
	assert.Equal(t, vfs.AlreadyLoaded, outcome)

	outcome, err = store.Load(ctx, rec, path)
	require.NoError(t, err)
	assert.Equal(t, vfs.Executed, outcome)

	assert.Equal(t, 2, rec.Count(path))
	assert.Equal(t, []string{path}, store.LoadedFeatures())
}

func TestMemoryStore_DefaultCwd(t *testing.T) {
	store := vfs.NewMemory(vfs.WithStyle(vfs.StylePOSIX))
	assert.Equal(t, "/artichoke/virtual_root/src/lib", store.Cwd())

	require.NoError(t, store.Write("set.rb", []byte("class Set; end")))
	assert.True(t, store.Exists("/artichoke/virtual_root/src/lib/set.rb"))
	assert.True(t, store.IsDirectory("/artichoke/virtual_root"))
}

func TestMemoryStore_WindowsPaths(t *testing.T) {
	store := vfs.NewMemory(vfs.WithStyle(vfs.StyleWindows))
	require.NoError(t, store.Write(`nested\a.rb`, []byte("x")))

	p, err := store.Resolve(`nested\a.rb`)
	require.NoError(t, err)
	assert.Equal(t, "c:/artichoke/virtual_root/src/lib/nested/a.rb", p)

	data, err := store.Read("c:/artichoke/virtual_root/src/lib/nested/a.rb")
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestMemoryStore_HookAndSourceAreExclusive(t *testing.T) {
	ctx := context.Background()
	store := vfs.NewMemory()
	rec := vfstest.NewRecorder()

	require.NoError(t, store.Write("ext.rb", []byte("source")))
	require.NoError(t, store.RegisterExtension("ext.rb", rec.Hook("ext", nil)))

	_, err := store.Read("ext.rb")
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err), "registering a hook drops the source")
	assert.True(t, store.Exists("ext.rb"))

	require.NoError(t, store.Write("ext.rb", []byte("source again")))
	_, err = store.Load(ctx, rec, "ext.rb")
	require.NoError(t, err)

	p, err := store.Resolve("ext.rb")
	require.NoError(t, err)
	assert.Equal(t, 0, rec.HookCount("ext"), "writing source drops the hook")
	assert.Equal(t, 1, rec.Count(p))
}

func TestMemoryStore_TypeMismatch(t *testing.T) {
	store := vfs.NewMemory()
	rec := vfstest.NewRecorder()

	require.NoError(t, store.Write("file.rb", []byte("x")))
	require.NoError(t, store.RegisterExtension("hook.rb", rec.Hook("hook", nil)))
	require.NoError(t, store.Write("dir/inner.rb", []byte("x")))

	tests := []struct {
		name string
		op   func() error
		want errors.ErrorCode
	}{
		{"write under file", func() error { return store.Write("file.rb/child.rb", nil) }, errors.CodeNotADirectory},
		{"write under hook", func() error { return store.Write("hook.rb/child.rb", nil) }, errors.CodeNotADirectory},
		{"write over directory", func() error { return store.Write("dir", nil) }, errors.CodeIsADirectory},
		{"hook over directory", func() error { return store.RegisterExtension("dir", rec.Hook("d", nil)) }, errors.CodeIsADirectory},
		{"hook under file", func() error { return store.RegisterExtension("file.rb/x.rb", rec.Hook("x", nil)) }, errors.CodeNotADirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op()
			require.Error(t, err)
			assert.Equal(t, tt.want, errors.GetCode(err))
		})
	}
}

func TestMemoryStore_EncodingError(t *testing.T) {
	store := vfs.NewMemory()

	err := store.Write("bad\x00.rb", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeEncoding, errors.GetCode(err))
	assert.False(t, store.Exists("bad\x00.rb"))

	_, err = store.Require(context.Background(), vfstest.NewRecorder(), "bad\x00.rb")
	assert.Equal(t, errors.CodeEncoding, errors.GetCode(err))
}

func TestMemoryStore_ErrorCarriesPath(t *testing.T) {
	store := vfs.NewMemory(vfs.WithStyle(vfs.StylePOSIX))
	_, err := store.Read("nothing.rb")
	require.Error(t, err)

	var platformErr errors.PlatformError
	require.True(t, errors.As(err, &platformErr))
	assert.Equal(t, "/artichoke/virtual_root/src/lib/nothing.rb", platformErr.Context()["path"])
}

func TestMemoryStore_RelativeCwd(t *testing.T) {
	ctx := context.Background()
	store := vfs.NewMemory(vfs.WithCwd("relative/path"))
	rec := vfstest.NewRecorder()

	require.NoError(t, store.Write("a.rb", []byte("x")))
	p, err := store.Resolve("a.rb")
	require.NoError(t, err)
	assert.Equal(t, "relative/path/a.rb", p)

	_, err = store.Require(ctx, rec, "../../relative/path/a.rb")
	require.NoError(t, err)
	assert.Equal(t, []string{"relative/path/a.rb"}, store.LoadedFeatures())
}

func TestNativeStore_SymlinkDeduplication(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	realPath := filepath.Join(dir, "real.rb")
	require.NoError(t, os.WriteFile(realPath, []byte("puts 'real'"), 0o644))
	if err := os.Symlink(realPath, filepath.Join(dir, "link.rb")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	store, err := vfs.NewNative(vfs.WithCwd(filepath.ToSlash(dir)))
	require.NoError(t, err)
	rec := vfstest.NewRecorder()

	outcome, err := store.Require(ctx, rec, "real.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.Loaded, outcome)

	outcome, err = store.Require(ctx, rec, "link.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.AlreadyLoaded, outcome)
	assert.True(t, store.IsRequired("link.rb"))
	assert.Len(t, rec.Evals(), 1)
}

func TestNativeStore_DefaultCwd(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	store, err := vfs.NewNative()
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(wd), store.Cwd())
}

func TestNativeStore_ReadsHostFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "host.rb"), []byte("from disk"), 0o644))

	store, err := vfs.NewNative(vfs.WithCwd(filepath.ToSlash(dir)))
	require.NoError(t, err)

	data, err := store.Read("host.rb")
	require.NoError(t, err)
	assert.Equal(t, "from disk", string(data))

	require.NoError(t, store.Write("sub/written.rb", []byte("to disk")))
	onDisk, err := os.ReadFile(filepath.Join(dir, "sub", "written.rb"))
	require.NoError(t, err)
	assert.Equal(t, "to disk", string(onDisk))

	require.NoError(t, store.RegisterExtension("ext.rb", func(context.Context, vfs.Interpreter) error { return nil }))
	_, err = os.Stat(filepath.Join(dir, "ext.rb"))
	assert.True(t, os.IsNotExist(err), "hooks never touch the host")
}

func TestHybridStore_Backends(t *testing.T) {
	local, memory := billy.NewMemory(), billy.NewMemory()
	store, err := vfs.NewHybrid(
		vfs.WithStyle(vfs.StylePOSIX),
		vfs.WithCwd("/work"),
		vfs.WithLocalFS(local),
		vfs.WithMemoryFS(memory),
	)
	require.NoError(t, err)

	root := vfs.LoadPathRoot(vfs.StylePOSIX)
	require.NoError(t, store.Write("app.rb", []byte("app")))
	require.NoError(t, store.Write(root+"/set.rb", []byte("set")))

	data, err := local.ReadFile("/work/app.rb")
	require.NoError(t, err)
	assert.Equal(t, "app", string(data))

	data, err = memory.ReadFile(root + "/set.rb")
	require.NoError(t, err)
	assert.Equal(t, "set", string(data))

	ok, err := local.Exists(root + "/set.rb")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHybridStore_Scenario(t *testing.T) {
	ctx := context.Background()
	dir := tempDir(t)
	hostFile := dir + "/b.rb"
	require.NoError(t, os.WriteFile(filepath.FromSlash(hostFile), []byte("puts 'b'"), 0o644))

	store, err := vfs.NewHybrid(vfs.WithStyle(vfs.StylePOSIX))
	require.NoError(t, err)
	memPath := "/artichoke/virtual_root/src/lib/a.rb"
	require.NoError(t, store.Write(memPath, []byte("puts 'a'")))

	assert.True(t, store.InMemory(memPath))
	assert.False(t, store.InMemory(hostFile))
	_, err = os.Stat(memPath)
	assert.True(t, os.IsNotExist(err), "memory entries never reach the host")

	rec := vfstest.NewRecorder()
	for _, p := range []string{hostFile, memPath} {
		outcome, err := store.Require(ctx, rec, p)
		require.NoError(t, err)
		assert.Equal(t, vfs.Loaded, outcome, p)

		outcome, err = store.Require(ctx, rec, p)
		require.NoError(t, err)
		assert.Equal(t, vfs.AlreadyLoaded, outcome, p)
	}

	evals := rec.Evals()
	require.Len(t, evals, 2)
	assert.Equal(t, "puts 'b'", evals[0].Source)
	assert.Equal(t, "puts 'a'", evals[1].Source)
	assert.Len(t, store.LoadedFeatures(), 2)
}

func TestHybridStore_RoutingBoundary(t *testing.T) {
	store, err := vfs.NewHybrid(vfs.WithStyle(vfs.StylePOSIX))
	require.NoError(t, err)

	assert.True(t, store.InMemory("/artichoke/virtual_root/src/lib"))
	assert.True(t, store.InMemory("/artichoke/virtual_root/src/lib/nested/x.rb"))
	assert.True(t, store.InMemory("x.rb"))
	assert.True(t, store.InMemory("/artichoke/virtual_root/src/lib/../lib/x.rb"))
	assert.False(t, store.InMemory("/artichoke/virtual_root/src/library/x.rb"))
	assert.False(t, store.InMemory("/artichoke/virtual_root/src"))
	assert.False(t, store.InMemory("../x.rb"))
}

func TestHybridStore_RoutingEquivalence(t *testing.T) {
	ctx := context.Background()
	hybrid, err := vfs.NewHybrid(vfs.WithStyle(vfs.StylePOSIX))
	require.NoError(t, err)
	memory := vfs.NewMemory(vfs.WithStyle(vfs.StylePOSIX))

	for _, store := range []vfs.Store{hybrid, memory} {
		require.NoError(t, store.Write("pkg/a.rb", []byte("a")))
		require.NoError(t, store.RegisterExtension("pkg/ext.rb", func(context.Context, vfs.Interpreter) error { return nil }))
	}

	memPaths := []string{"pkg", "pkg/a.rb", "pkg/ext.rb", "pkg/missing.rb", "/artichoke/virtual_root/src/lib"}
	for _, p := range memPaths {
		assert.Equal(t, memory.Exists(p), hybrid.Exists(p), "Exists(%q)", p)
		assert.Equal(t, memory.IsDirectory(p), hybrid.IsDirectory(p), "IsDirectory(%q)", p)

		wantData, wantErr := memory.Read(p)
		gotData, gotErr := hybrid.Read(p)
		assert.Equal(t, wantData, gotData, "Read(%q)", p)
		assert.Equal(t, errors.GetCode(wantErr), errors.GetCode(gotErr), "Read(%q)", p)

		wantOutcome, wantErr := memory.Require(ctx, vfstest.NewRecorder(), p)
		gotOutcome, gotErr := hybrid.Require(ctx, vfstest.NewRecorder(), p)
		assert.Equal(t, wantOutcome, gotOutcome, "Require(%q)", p)
		assert.Equal(t, errors.GetCode(wantErr), errors.GetCode(gotErr), "Require(%q)", p)
	}

	dir := tempDir(t)
	require.NoError(t, os.WriteFile(filepath.FromSlash(dir+"/host.rb"), []byte("host"), 0o644))
	native, err := vfs.NewNative()
	require.NoError(t, err)

	hostPaths := []string{dir, dir + "/host.rb", dir + "/missing.rb"}
	for _, p := range hostPaths {
		assert.Equal(t, native.Exists(p), hybrid.Exists(p), "Exists(%q)", p)
		assert.Equal(t, native.IsDirectory(p), hybrid.IsDirectory(p), "IsDirectory(%q)", p)

		wantData, wantErr := native.Read(p)
		gotData, gotErr := hybrid.Read(p)
		assert.Equal(t, wantData, gotData, "Read(%q)", p)
		assert.Equal(t, errors.GetCode(wantErr), errors.GetCode(gotErr), "Read(%q)", p)
	}
}

func TestHybridStore_SharedRegistry(t *testing.T) {
	ctx := context.Background()
	dir := tempDir(t)
	require.NoError(t, os.WriteFile(filepath.FromSlash(dir+"/host.rb"), []byte("host"), 0o644))

	store, err := vfs.NewHybrid(vfs.WithStyle(vfs.StylePOSIX))
	require.NoError(t, err)
	rec := vfstest.NewRecorder()
	require.NoError(t, store.RegisterExtension("native.rb", rec.Hook("native", nil)))
	require.NoError(t, store.RegisterExtension(dir+"/ext.rb", rec.Hook("host-ext", nil)))

	for _, p := range []string{"native.rb", dir + "/host.rb", dir + "/ext.rb"} {
		_, err := store.Require(ctx, rec, p)
		require.NoError(t, err)
	}

	features := store.LoadedFeatures()
	require.Len(t, features, 3)
	assert.Equal(t, "/artichoke/virtual_root/src/lib/native.rb", features[0])
	assert.Equal(t, dir+"/ext.rb", features[2])
	assert.Equal(t, 1, rec.HookCount("native"))
	assert.Equal(t, 1, rec.HookCount("host-ext"))
}

func TestSearchPathStore_Ordering(t *testing.T) {
	ctx := context.Background()
	first, second := tempDir(t), tempDir(t)
	require.NoError(t, os.WriteFile(filepath.FromSlash(first+"/x.rb"), []byte("first"), 0o644))
	require.NoError(t, os.WriteFile(filepath.FromSlash(second+"/x.rb"), []byte("second"), 0o644))
	require.NoError(t, os.WriteFile(filepath.FromSlash(second+"/only.rb"), []byte("only"), 0o644))

	store, err := vfs.NewSearchPath([]string{first, second})
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, store.Roots())
	assert.Equal(t, first, store.Cwd())

	data, err := store.Read("x.rb")
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	rec := vfstest.NewRecorder()
	outcome, err := store.Require(ctx, rec, "x.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.Loaded, outcome)
	outcome, err = store.Require(ctx, rec, "only.rb")
	require.NoError(t, err)
	assert.Equal(t, vfs.Loaded, outcome)

	evals := rec.Evals()
	require.Len(t, evals, 2)
	assert.Equal(t, "first", evals[0].Source)
	assert.Equal(t, first+"/x.rb", evals[0].Path)
	assert.Equal(t, "only", evals[1].Source)
	assert.Equal(t, second+"/only.rb", evals[1].Path)

	_, err = store.Require(ctx, rec, "nowhere.rb")
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	require.NoError(t, store.Write("new.rb", []byte("new")))
	_, err = os.Stat(filepath.FromSlash(first + "/new.rb"))
	assert.NoError(t, err, "writes go to the first root")
}

func TestSearchPathStore_FileBehindDirectory(t *testing.T) {
	ctx := context.Background()
	first, second := tempDir(t), tempDir(t)
	require.NoError(t, os.MkdirAll(filepath.FromSlash(first+"/json"), 0o755))
	require.NoError(t, os.WriteFile(filepath.FromSlash(second+"/json"), []byte("json"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.FromSlash(first+"/set"), 0o755))

	store, err := vfs.NewSearchPath([]string{first, second})
	require.NoError(t, err)

	assert.True(t, store.Exists("json"))
	assert.False(t, store.IsDirectory("json"))

	data, err := store.Read("json")
	require.NoError(t, err)
	assert.Equal(t, "json", string(data))

	found, err := vfs.FindFeature(store, "json")
	require.NoError(t, err)
	assert.Equal(t, "json", found)

	rec := vfstest.NewRecorder()
	outcome, err := store.Require(ctx, rec, "json")
	require.NoError(t, err)
	assert.Equal(t, vfs.Loaded, outcome)
	require.Len(t, rec.Evals(), 1)
	assert.Equal(t, second+"/json", rec.Evals()[0].Path)
	assert.True(t, store.IsRequired("json"))

	// A directory with no file behind it is still a directory.
	assert.True(t, store.IsDirectory("set"))
	_, err = store.Read("set")
	require.Error(t, err)
	assert.Equal(t, errors.CodeIsADirectory, errors.GetCode(err))
	_, err = store.Load(ctx, rec, "set")
	assert.Equal(t, errors.CodeIsADirectory, errors.GetCode(err))
}

func TestSearchPathStore_RootsDoNotShareEntries(t *testing.T) {
	first, second := tempDir(t), tempDir(t)
	require.NoError(t, os.MkdirAll(filepath.FromSlash(second+"/pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.FromSlash(second+"/pkg/a.rb"), []byte("a"), 0o644))

	store, err := vfs.NewSearchPath([]string{first, second})
	require.NoError(t, err)

	assert.True(t, store.IsDirectory("pkg"))
	assert.True(t, store.Exists("pkg/a.rb"))
	assert.False(t, store.Exists("../pkg/a.rb"))
}

func TestSearchPathStore_InvalidRoots(t *testing.T) {
	_, err := vfs.NewSearchPath(nil)
	assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))

	_, err = vfs.NewSearchPath([]string{""})
	assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
}

func TestSearchPathStore_RelativeRoot(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	store, err := vfs.NewSearchPath([]string{"testdata/../testdata"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.ToSlash(wd) + "/testdata"}, store.Roots())
}

func TestSearchPathFromEnv(t *testing.T) {
	first, second := tempDir(t), tempDir(t)
	t.Setenv("LOADPATH_TEST_RUBYLIB", first+string(os.PathListSeparator)+string(os.PathListSeparator)+second)

	roots, err := vfs.SearchPathFromEnv("LOADPATH_TEST_RUBYLIB")
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, roots)

	t.Setenv("LOADPATH_TEST_RUBYLIB", "")
	_, err = vfs.SearchPathFromEnv("LOADPATH_TEST_RUBYLIB")
	assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
}

func TestPreloadFS(t *testing.T) {
	src := fstest.MapFS{
		"bundle/set.rb":          {Data: []byte("class Set; end")},
		"bundle/json/common.rb":  {Data: []byte("module JSON; end")},
		"bundle/json/version.rb": {Data: []byte("VERSION = '2'")},
		"other/ignored.rb":       {Data: []byte("nope")},
	}
	store := vfs.NewMemory(vfs.WithStyle(vfs.StylePOSIX))

	n, err := vfs.PreloadFS(store, src, "bundle", vfs.LoadPathRoot(vfs.StylePOSIX))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	data, err := store.Read("json/common.rb")
	require.NoError(t, err)
	assert.Equal(t, "module JSON; end", string(data))
	assert.False(t, store.Exists("ignored.rb"))
	assert.False(t, store.Exists("other/ignored.rb"))

	_, err = vfs.PreloadFS(store, src, "absent", "/x")
	require.Error(t, err)
	assert.Equal(t, errors.CodeIO, errors.GetCode(err))
}
