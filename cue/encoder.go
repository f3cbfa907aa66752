package cue

import (
	"context"

	"cuelang.org/go/cue"
	cueyaml "cuelang.org/go/encoding/yaml"
	"github.com/jmgilman/loadpath/errors"
)

// EncodeYAML encodes a concrete CUE value to YAML.
// Returns CodeCUEEncodeFailed if the value has errors or is not concrete.
func EncodeYAML(ctx context.Context, value cue.Value) ([]byte, error) {
	if err := checkEncodable(ctx, value, "YAML"); err != nil {
		return nil, err
	}

	data, err := cueyaml.Encode(value)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeCUEEncodeFailed, "failed to encode CUE value to YAML")
	}
	return data, nil
}

// EncodeJSON encodes a concrete CUE value to JSON.
// Returns CodeCUEEncodeFailed if the value has errors or is not concrete.
func EncodeJSON(ctx context.Context, value cue.Value) ([]byte, error) {
	if err := checkEncodable(ctx, value, "JSON"); err != nil {
		return nil, err
	}

	data, err := value.MarshalJSON()
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeCUEEncodeFailed, "failed to encode CUE value to JSON")
	}
	return data, nil
}

func checkEncodable(ctx context.Context, value cue.Value, format string) error {
	if ctx.Err() != nil {
		return wrapError(ctx.Err(), errors.CodeCUEEncodeFailed, "context cancelled before encoding")
	}
	if err := value.Err(); err != nil {
		return wrapError(err, errors.CodeCUEEncodeFailed, "CUE value contains errors and cannot be encoded",
			"error", err.Error())
	}
	if !value.IsConcrete() {
		return errors.Newf(errors.CodeCUEEncodeFailed,
			"CUE value is not concrete (contains unresolved values) and cannot be encoded to %s", format)
	}
	return nil
}
