package vfs

import (
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/jmgilman/loadpath/errors"
)

// Style selects the path convention a store resolves paths under.
type Style int

const (
	// StylePOSIX uses "/" as the only separator and root marker.
	StylePOSIX Style = iota
	// StyleWindows accepts "/" and "\" as separators and understands drive
	// prefixes such as "C:".
	StyleWindows
)

// String returns "posix" or "windows".
func (s Style) String() string {
	if s == StyleWindows {
		return "windows"
	}
	return "posix"
}

// ParseStyle parses "posix" or "windows". The empty string selects HostStyle.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(name) {
	case "":
		return HostStyle(), nil
	case "posix", "unix":
		return StylePOSIX, nil
	case "windows":
		return StyleWindows, nil
	default:
		return StylePOSIX, errors.Newf(errors.CodeInvalidInput, "unknown path style %q", name)
	}
}

// HostStyle returns the style of the running host.
func HostStyle() Style {
	if runtime.GOOS == "windows" {
		return StyleWindows
	}
	return StylePOSIX
}

const (
	posixLoadPathRoot   = "/artichoke/virtual_root/src/lib"
	windowsLoadPathRoot = "c:/artichoke/virtual_root/src/lib"
)

// LoadPathRoot returns the reserved directory under which bundled sources and
// extensions live. It is the default working directory of memory-backed
// stores and the routing boundary of hybrid stores.
func LoadPathRoot(style Style) string {
	if style == StyleWindows {
		return windowsLoadPathRoot
	}
	return posixLoadPathRoot
}

type componentKind int

const (
	kindPrefix componentKind = iota
	kindRoot
	kindNormal
)

type component struct {
	kind componentKind
	text string
}

func (s Style) separator() byte {
	if s == StyleWindows {
		return '\\'
	}
	return '/'
}

func (s Style) isSeparator(c byte) bool {
	return c == '/' || (s == StyleWindows && c == '\\')
}

// components splits p into its prefix, root and normal components. "." and
// empty components are dropped; ".." is kept as a normal component.
func (s Style) components(p string) []component {
	var out []component
	if s == StyleWindows && len(p) >= 2 && p[1] == ':' && isDriveLetter(p[0]) {
		out = append(out, component{kind: kindPrefix, text: p[:2]})
		p = p[2:]
	}
	if len(p) > 0 && s.isSeparator(p[0]) {
		out = append(out, component{kind: kindRoot})
	}

	start := 0
	for i := 0; i <= len(p); i++ {
		if i < len(p) && !s.isSeparator(p[i]) {
			continue
		}
		if part := p[start:i]; part != "" && part != "." {
			out = append(out, component{kind: kindNormal, text: part})
		}
		start = i + 1
	}
	return out
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func hasRoot(comps []component) bool {
	for _, c := range comps {
		if c.kind == kindRoot {
			return true
		}
	}
	return false
}

// join renders components with the style's native separator. A drive prefix
// followed directly by a name renders without a separator ("C:foo").
func (s Style) join(comps []component) string {
	sep := s.separator()
	var b strings.Builder
	for i, c := range comps {
		switch c.kind {
		case kindPrefix:
			b.Reset()
			b.WriteString(c.text)
		case kindRoot:
			b.WriteByte(sep)
		case kindNormal:
			if i > 0 && comps[i-1].kind == kindNormal {
				b.WriteByte(sep)
			}
			b.WriteString(c.text)
		}
	}
	return b.String()
}

// Resolve resolves path against cwd without touching any filesystem.
//
// An absolute path ignores cwd. A relative path is appended to cwd's
// components. "." components are dropped. ".." pops the previous component;
// on a rooted accumulator popping the last component re-inserts the root so
// the result never climbs above it, while on a relative accumulator ".." pops
// unconditionally and stops at the empty path.
//
// On Windows the drive prefix is a component of its own, so climbing past
// "C:\" first drops the root and then the drive, leaving "\". The result uses
// the style's native separator; see NormalizeSlashes.
func Resolve(style Style, path, cwd string) string {
	parts := style.components(path)

	var acc []component
	rooted := true
	if len(parts) > 0 && (parts[0].kind == kindRoot || parts[0].kind == kindPrefix) {
		rooted = hasRoot(parts)
	} else {
		acc = style.components(cwd)
		rooted = hasRoot(acc)
	}

	for _, c := range parts {
		if c.kind != kindNormal || c.text != ".." {
			acc = append(acc, c)
			continue
		}
		if len(acc) > 0 {
			acc = acc[:len(acc)-1]
		}
		if rooted && len(acc) == 0 {
			acc = append(acc, component{kind: kindRoot})
		}
	}
	return style.join(acc)
}

// IsAbs reports whether path starts with a root marker, optionally after a
// drive prefix.
func IsAbs(style Style, path string) bool {
	parts := style.components(path)
	return len(parts) > 0 && (parts[0].kind == kindRoot ||
		(parts[0].kind == kindPrefix && len(parts) > 1 && parts[1].kind == kindRoot))
}

// Dir returns the parent directory of a resolved path. The parent of a root
// is the root itself and the parent of a single relative name is "".
func Dir(style Style, path string) string {
	parts := style.components(path)
	if n := len(parts); n > 0 && parts[n-1].kind == kindNormal {
		parts = parts[:n-1]
	}
	out, err := NormalizeSlashes(style, style.join(parts))
	if err != nil {
		return style.join(parts)
	}
	return out
}

// NormalizeSlashes converts a native path into the canonical "/"-separated
// key used by every store. It fails with CodeEncoding when the path could not
// be represented on the host: a NUL byte in any style, or invalid UTF-8 on
// Windows where native paths are UTF-16.
func NormalizeSlashes(style Style, path string) (string, error) {
	if strings.IndexByte(path, 0) >= 0 {
		return "", errors.WithPath(
			errors.New(errors.CodeEncoding, "path contains a NUL byte"), path)
	}
	if style != StyleWindows {
		return path, nil
	}
	if !utf8.ValidString(path) {
		return "", errors.WithPath(
			errors.New(errors.CodeEncoding, "path is not valid UTF-8"), path)
	}
	return strings.ReplaceAll(path, `\`, "/"), nil
}

// Resolver resolves paths against a fixed working directory.
type Resolver struct {
	style Style
	cwd   string
}

// NewResolver returns a Resolver for the given style and working directory.
func NewResolver(style Style, cwd string) Resolver {
	return Resolver{style: style, cwd: cwd}
}

// Style returns the resolver's path style.
func (r Resolver) Style() Style {
	return r.style
}

// Cwd returns the working directory paths are resolved against.
func (r Resolver) Cwd() string {
	return r.cwd
}

// Resolve runs path through Resolve and NormalizeSlashes.
func (r Resolver) Resolve(path string) (string, error) {
	if _, err := NormalizeSlashes(r.style, path); err != nil {
		return "", err
	}
	return NormalizeSlashes(r.style, Resolve(r.style, path, r.cwd))
}
