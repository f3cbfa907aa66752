package oci

import (
	"strings"

	"github.com/jmgilman/loadpath/errors"
)

// validateMember rejects archive names that would land outside the
// destination directory once joined onto it.
func validateMember(name string) error {
	invalid := func(reason string) error {
		return errors.WithPath(errors.New(errors.CodeInvalidInput, reason), name)
	}

	if strings.TrimSpace(name) == "" {
		return invalid("empty archive member name")
	}
	if strings.IndexByte(name, 0) >= 0 {
		return invalid("archive member name contains a NUL byte")
	}
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) ||
		(len(name) >= 2 && name[1] == ':') {
		return invalid("absolute archive member name")
	}

	lower := strings.ToLower(name)
	for _, encoded := range []string{"%2e%2e", "..%2f", "..%5c"} {
		if strings.Contains(lower, encoded) {
			return invalid("encoded path traversal in archive member name")
		}
	}

	for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return invalid("path traversal in archive member name")
		}
	}
	return nil
}
