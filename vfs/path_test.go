package vfs

import (
	"testing"

	"github.com/jmgilman/loadpath/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolveNormalized runs Resolve and NormalizeSlashes the way stores do.
func resolveNormalized(t *testing.T, style Style, path, cwd string) string {
	t.Helper()
	out, err := NormalizeSlashes(style, Resolve(style, path, cwd))
	require.NoError(t, err)
	return out
}

func TestResolve_POSIX(t *testing.T) {
	tests := []struct {
		name string
		path string
		cwd  string
		want string
	}{
		{"absolute ignores cwd", "/foo/bar", "/home/artichoke", "/foo/bar"},
		{"absolute ignores relative cwd", "/foo/bar", "relative/path", "/foo/bar"},
		{"absolute dedot current", "/././foo/./bar/./././.", "/home/artichoke", "/foo/bar"},
		{"absolute dedot current relative cwd", "/././foo/./bar/./././.", "relative/path", "/foo/bar"},
		{"absolute dedot parent", "/foo/bar/..", "/home/artichoke", "/foo"},
		{"absolute dedot parent relative cwd", "/foo/bar/..", "relative/path", "/foo"},
		{"absolute collapses to root", "/foo/../../../../bar/../../../", "/home/artichoke", "/"},
		{"absolute collapses to root relative cwd", "/foo/../../../../bar/../../../", "relative/path", "/"},
		{"absolute climbs then descends", "/foo/../../../../bar/../../../boom/baz", "/home/artichoke", "/boom/baz"},
		{"absolute climbs then descends relative cwd", "/foo/../../../../bar/../../../boom/baz", "relative/path", "/boom/baz"},
		{"relative joins cwd", "foo/bar", "/home/artichoke", "/home/artichoke/foo/bar"},
		{"relative joins relative cwd", "foo/bar", "relative/path", "relative/path/foo/bar"},
		{"relative dedot current", "././././foo/./bar/./././.", "/home/artichoke", "/home/artichoke/foo/bar"},
		{"relative dedot current relative cwd", "././././foo/./bar/./././.", "relative/path", "relative/path/foo/bar"},
		{"relative dedot parent", "foo/bar/..", "/home/artichoke", "/home/artichoke/foo"},
		{"relative dedot parent relative cwd", "foo/bar/..", "relative/path", "relative/path/foo"},
		{"relative collapses to root", "foo/../../../../bar/../../../", "/home/artichoke", "/"},
		{"relative underflows to empty", "foo/../../../../bar/../../../", "relative/path", ""},
		{"relative climbs then descends", "foo/../../../../bar/../../../boom/baz", "/home/artichoke", "/boom/baz"},
		{"relative underflow then descends", "foo/../../../../bar/../../../boom/baz", "relative/path", "boom/baz"},
		{"empty path is cwd", "", "/home/artichoke", "/home/artichoke"},
		{"empty path and cwd", "", "", ""},
		{"repeated slashes", "//foo///bar//", "/", "/foo/bar"},
		{"backslash is a name character", `foo\bar`, "/x", `/x/foo\bar`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveNormalized(t, StylePOSIX, tt.path, tt.cwd))
		})
	}
}

func TestResolve_Windows(t *testing.T) {
	tests := []struct {
		name string
		path string
		cwd  string
		want string
	}{
		{"forward dedot parent", "foo/bar/..", "C:/Users/artichoke", "C:/Users/artichoke/foo"},
		{"forward dedot parent relative cwd", "foo/bar/..", "relative/path", "relative/path/foo"},
		{"forward collapses to root", "foo/../../../../bar/../../../", "C:/Users/artichoke", "/"},
		{"forward underflows to empty", "foo/../../../../bar/../../../", "relative/path", ""},
		{"forward climbs past drive", "foo/../../../../bar/../../../boom/baz", "C:/Users/artichoke", "/boom/baz"},
		{"forward underflow then descends", "foo/../../../../bar/../../../boom/baz", "relative/path", "boom/baz"},
		{"backward dedot parent", `foo\bar\..`, `C:\Users\artichoke`, "C:/Users/artichoke/foo"},
		{"backward dedot parent relative cwd", `foo\bar\..`, `relative\path`, "relative/path/foo"},
		{"backward collapses to root", `foo\..\..\..\..\bar\..\..\..\`, `C:\Users\artichoke`, "/"},
		{"backward underflows to empty", `foo\..\..\..\..\bar\..\..\..\`, `relative\path`, ""},
		{"backward climbs past drive", `foo\..\..\..\..\bar\..\..\..\boom\baz`, `C:\Users\artichoke`, "/boom/baz"},
		{"backward underflow then descends", `foo\..\..\..\..\bar\..\..\..\boom\baz`, `relative\path`, "boom/baz"},
		{"stops at drive root", "foo/../../../x", "C:/Users/artichoke", "C:/x"},
		{"drive without root", "foo/../../../../x", "C:/Users/artichoke", "C:x"},
		{"absolute drive path ignores cwd", `D:\lib\..\src`, "C:/Users/artichoke", "D:/src"},
		{"rooted path ignores cwd", `\lib\a.rb`, "C:/Users/artichoke", "/lib/a.rb"},
		{"reserved root", "a.rb", LoadPathRoot(StyleWindows), "c:/artichoke/virtual_root/src/lib/a.rb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveNormalized(t, StyleWindows, tt.path, tt.cwd))
		})
	}
}

func TestResolve_AbsoluteInputInvariance(t *testing.T) {
	paths := []string{"/", "/foo", "/foo/../bar", "/a/./b/../../../c", "/artichoke/virtual_root/src/lib/a.rb"}
	cwds := []string{"", "/", "/home/x", "relative/path", "..", "/a/b/c/d"}

	for _, p := range paths {
		want := Resolve(StylePOSIX, p, "")
		for _, cwd := range cwds {
			assert.Equal(t, want, Resolve(StylePOSIX, p, cwd), "Resolve(%q, %q)", p, cwd)
		}
	}
}

func TestResolve_Idempotent(t *testing.T) {
	inputs := []struct{ path, cwd string }{
		{"/foo/./bar/./.", "/home/x"},
		{"foo/bar", "/home/x"},
		{"../../..", "/a/b"},
		{"a/../../b", ""},
		{"x/y/../z", "rel"},
	}
	for _, in := range inputs {
		once := Resolve(StylePOSIX, in.path, in.cwd)
		assert.Equal(t, once, Resolve(StylePOSIX, once, ""), "Resolve(%q, %q)", in.path, in.cwd)
	}
}

func TestResolve_RootStickiness(t *testing.T) {
	for _, cwd := range []string{"", "/", "/home/x", "relative"} {
		assert.Equal(t, "/bar", Resolve(StylePOSIX, "/foo/../../../bar", cwd))
	}
}

func TestResolve_RelativeUnderflow(t *testing.T) {
	assert.Equal(t, "", Resolve(StylePOSIX, "a/..", ""))
	assert.Equal(t, "", Resolve(StylePOSIX, "a/../..", ""))
	assert.Equal(t, "b", Resolve(StylePOSIX, "a/../../b", ""))
}

func TestResolve_Scenarios(t *testing.T) {
	assert.Equal(t, "/foo/bar", Resolve(StylePOSIX, "/foo/./bar/./.", "/home/x"))
	assert.Equal(t, "/foo", Resolve(StylePOSIX, "/foo/bar/..", "relative/path"))
	assert.Equal(t, "/home/x/foo/bar", Resolve(StylePOSIX, "foo/bar", "/home/x"))
}

func TestNormalizeSlashes(t *testing.T) {
	tests := []struct {
		name     string
		style    Style
		path     string
		want     string
		wantCode errors.ErrorCode
	}{
		{"posix untouched", StylePOSIX, `/a\b/c`, `/a\b/c`, ""},
		{"windows rewrites", StyleWindows, `C:\a\b`, "C:/a/b", ""},
		{"windows mixed", StyleWindows, `C:/a\b/c`, "C:/a/b/c", ""},
		{"posix NUL", StylePOSIX, "/a\x00b", "", errors.CodeEncoding},
		{"windows NUL", StyleWindows, "C:/a\x00b", "", errors.CodeEncoding},
		{"posix invalid utf-8 allowed", StylePOSIX, "/a\xffb", "/a\xffb", ""},
		{"windows invalid utf-8", StyleWindows, "C:/a\xffb", "", errors.CodeEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeSlashes(tt.style, tt.path)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDir(t *testing.T) {
	tests := []struct {
		style Style
		path  string
		want  string
	}{
		{StylePOSIX, "/lib/a.rb", "/lib"},
		{StylePOSIX, "/a.rb", "/"},
		{StylePOSIX, "/", "/"},
		{StylePOSIX, "a.rb", ""},
		{StylePOSIX, "rel/a.rb", "rel"},
		{StyleWindows, "c:/lib/a.rb", "c:/lib"},
		{StyleWindows, "c:/a.rb", "c:/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Dir(tt.style, tt.path), "Dir(%v, %q)", tt.style, tt.path)
	}
}

func TestIsAbs(t *testing.T) {
	assert.True(t, IsAbs(StylePOSIX, "/a"))
	assert.False(t, IsAbs(StylePOSIX, "a"))
	assert.False(t, IsAbs(StylePOSIX, "C:/a"))
	assert.True(t, IsAbs(StyleWindows, "C:/a"))
	assert.True(t, IsAbs(StyleWindows, `\a`))
	assert.False(t, IsAbs(StyleWindows, "C:a"))
	assert.False(t, IsAbs(StyleWindows, "a"))
}

func TestLoadPathRoot(t *testing.T) {
	assert.Equal(t, "/artichoke/virtual_root/src/lib", LoadPathRoot(StylePOSIX))
	assert.Equal(t, "c:/artichoke/virtual_root/src/lib", LoadPathRoot(StyleWindows))
}

func TestParseStyle(t *testing.T) {
	style, err := ParseStyle("windows")
	require.NoError(t, err)
	assert.Equal(t, StyleWindows, style)

	style, err = ParseStyle("")
	require.NoError(t, err)
	assert.Equal(t, HostStyle(), style)

	_, err = ParseStyle("vms")
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(StyleWindows, `C:\Users\artichoke`)
	got, err := r.Resolve(`lib\a.rb`)
	require.NoError(t, err)
	assert.Equal(t, "C:/Users/artichoke/lib/a.rb", got)

	_, err = r.Resolve("bad\x00name")
	assert.Equal(t, errors.CodeEncoding, errors.GetCode(err))
}
