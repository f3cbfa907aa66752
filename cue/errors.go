package cue

import (
	"github.com/jmgilman/loadpath/errors"
)

// wrapError wraps err with code. fields alternate string keys and values and
// become the error's context; a non-string key drops its pair. Returns nil if
// err is nil.
//
//	wrapError(err, errors.CodeCUELoadFailed, "failed to read CUE file", "path", name)
func wrapError(err error, code errors.ErrorCode, message string, fields ...interface{}) errors.PlatformError {
	if err == nil {
		return nil
	}

	var ctx map[string]interface{}
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		if ctx == nil {
			ctx = make(map[string]interface{}, len(fields)/2)
		}
		ctx[key] = fields[i+1]
	}
	return errors.WrapWithContext(err, code, message, ctx)
}
