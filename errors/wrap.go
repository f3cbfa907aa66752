package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps err with a code and message. The cause stays reachable through
// Unwrap, errors.Is and errors.As.
//
// When err already is (or wraps) a PlatformError its classification is kept,
// otherwise the default classification of code applies. Context attached to
// err is carried over. Returns nil if err is nil.
//
// Example:
//
//	data, err := backend.ReadFile(name)
//	if err != nil {
//	    return nil, errors.Wrap(err, errors.CodeIO, "failed to read source")
//	}
func Wrap(err error, code ErrorCode, message string) PlatformError {
	if err == nil {
		return nil
	}
	return wrap(err, code, message, nil)
}

// Wrapf wraps err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return wrap(err, code, fmt.Sprintf(format, args...), nil)
}

// WrapWithContext wraps err and attaches context metadata in one step.
// The map is copied. Returns nil if err is nil.
//
// Example:
//
//	return errors.WrapWithContext(err, errors.CodeHookFailed, "extension hook failed",
//	    map[string]interface{}{"path": path})
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return wrap(err, code, message, ctx)
}

func wrap(err error, code ErrorCode, message string, ctx map[string]interface{}) PlatformError {
	classification := getDefaultClassification(code)
	var merged map[string]interface{}

	var platformErr PlatformError
	if errors.As(err, &platformErr) {
		classification = platformErr.Classification()
		merged = platformErr.Context()
	}
	if len(ctx) > 0 {
		if merged == nil {
			merged = make(map[string]interface{}, len(ctx))
		}
		for k, v := range ctx {
			merged[k] = v
		}
	}

	return &platformError{
		code:           code,
		classification: classification,
		message:        message,
		context:        merged,
		cause:          err,
	}
}
