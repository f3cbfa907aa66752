// Package cue loads, validates, decodes and encodes CUE values with platform
// error handling.
//
// The load-path configuration is written in CUE. This package reads it from an
// fs/core backend, checks it against a schema, decodes it into Go structs and
// renders effective values back to YAML or JSON.
//
// # Loading
//
//	loader := cue.NewLoader(billy.NewLocal())
//	value, err := loader.LoadFile(ctx, "/etc/loadpath/loadpath.cue")
//
// LoadBytes compiles in-memory source, which is how embedded schemas are
// loaded.
//
// # Validation and decoding
//
//	if err := cue.Validate(ctx, schema, value); err != nil {
//	    for _, issue := range cue.Issues(err) {
//	        fmt.Println(issue.Path, issue.Message)
//	    }
//	}
//	var cfg Config
//	err = cue.Decode(ctx, schema.Unify(value), &cfg)
//
// # Errors
//
// Every function returns errors.PlatformError values with one of
// CodeCUELoadFailed, CodeCUEBuildFailed, CodeCUEValidationFailed,
// CodeCUEDecodeFailed or CodeCUEEncodeFailed. Validation errors carry the
// structured issues in their "issues" context field.
package cue
