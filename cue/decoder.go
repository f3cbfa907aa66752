package cue

import (
	"context"
	"fmt"
	"reflect"

	"cuelang.org/go/cue"
	"github.com/jmgilman/loadpath/errors"
)

// Decode decodes a CUE value into a pointer to a Go struct.
//
// Returns CodeCUEDecodeFailed if target is not a non-nil pointer to a struct,
// if the value carries errors, or if decoding fails. Optional fields and
// schema defaults are honored.
func Decode(ctx context.Context, value cue.Value, target interface{}) error {
	if ctx.Err() != nil {
		return wrapError(ctx.Err(), errors.CodeCUEDecodeFailed, "context cancelled before decoding")
	}

	if target == nil {
		return errors.New(errors.CodeCUEDecodeFailed, "decode target cannot be nil")
	}

	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Ptr {
		return errors.Newf(errors.CodeCUEDecodeFailed,
			"decode target must be a pointer to a struct, got %s", targetValue.Kind())
	}
	if targetValue.IsNil() {
		return errors.New(errors.CodeCUEDecodeFailed, "decode target pointer cannot be nil")
	}

	targetElem := targetValue.Elem()
	if targetElem.Kind() != reflect.Struct {
		return errors.Newf(errors.CodeCUEDecodeFailed,
			"decode target must be a pointer to a struct, got pointer to %s", targetElem.Kind())
	}

	if err := value.Err(); err != nil {
		return wrapError(err, errors.CodeCUEDecodeFailed, "CUE value contains errors and cannot be decoded")
	}

	if err := value.Decode(target); err != nil {
		targetType := targetElem.Type().Name()
		if targetType == "" {
			targetType = targetElem.Type().String()
		}
		return wrapError(err, errors.CodeCUEDecodeFailed, "failed to decode CUE value to Go struct",
			"target_type", targetType,
			"value_kind", fmt.Sprint(value.Kind()))
	}

	return nil
}
