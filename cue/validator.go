package cue

import (
	"context"
	"fmt"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"github.com/jmgilman/loadpath/errors"
)

// ValidationOptions configures validation behavior.
type ValidationOptions struct {
	// Concrete requires all values to be concrete (fully specified).
	// If true, incomplete values will cause validation to fail.
	Concrete bool

	// Final resolves default values before validation.
	Final bool

	// All reports all errors instead of stopping at the first one.
	All bool
}

// DefaultValidationOptions requires concrete values, finalizes defaults and
// collects every error.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		Concrete: true,
		Final:    true,
		All:      true,
	}
}

func (o ValidationOptions) cueOptions() []cue.Option {
	var opts []cue.Option
	if o.Concrete {
		opts = append(opts, cue.Concrete(true))
	}
	if o.Final {
		opts = append(opts, cue.Final())
	}
	if o.All {
		opts = append(opts, cue.All())
	}
	return opts
}

// ValidationIssue represents a single validation error.
type ValidationIssue struct {
	// Path is the field path where the error occurred (e.g., ["search_path", "0"]).
	Path []string

	// Message is the human-readable error message.
	Message string

	// Position is the source position if available.
	Position token.Pos
}

// Validate validates data against schema using DefaultValidationOptions.
func Validate(ctx context.Context, schema cue.Value, data cue.Value) error {
	return ValidateWithOptions(ctx, schema, data, DefaultValidationOptions())
}

// ValidateWithOptions unifies schema and data and validates the result.
//
// Returns CodeCUEValidationFailed on validation failure. The structured
// issues are attached under the "issues" context key; see Issues.
func ValidateWithOptions(ctx context.Context, schema cue.Value, data cue.Value, opts ValidationOptions) error {
	if err := ctx.Err(); err != nil {
		return wrapError(err, errors.CodeCUEValidationFailed, "context cancelled")
	}

	if err := schema.Err(); err != nil {
		return wrapError(err, errors.CodeCUEValidationFailed, "schema is invalid",
			"schema_error", cueerrors.Details(err, nil),
			"issues", extractValidationIssues(err))
	}

	if err := data.Err(); err != nil {
		return wrapError(err, errors.CodeCUEValidationFailed, "data is invalid",
			"data_error", cueerrors.Details(err, nil),
			"issues", extractValidationIssues(err))
	}

	// Validate is called on the unified value directly so that All can collect
	// every error at once.
	unified := schema.Unify(data)
	if err := unified.Validate(opts.cueOptions()...); err != nil {
		return wrapError(err, errors.CodeCUEValidationFailed, "validation failed",
			"details", cueerrors.Details(err, nil),
			"issues", extractValidationIssues(err),
			"positions", cueerrors.Positions(err))
	}

	return nil
}

// Issues returns the validation issues attached to an error produced by
// Validate, or nil.
func Issues(err error) []ValidationIssue {
	var platformErr errors.PlatformError
	if !errors.As(err, &platformErr) {
		return nil
	}
	issues, _ := platformErr.Context()["issues"].([]ValidationIssue)
	return issues
}

func extractValidationIssues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}

	var issues []ValidationIssue
	for _, e := range cueerrors.Errors(err) {
		fmtStr, args := e.Msg()

		var pos token.Pos
		if positions := e.InputPositions(); len(positions) > 0 {
			pos = positions[0]
		}

		issues = append(issues, ValidationIssue{
			Path:     e.Path(),
			Message:  fmt.Sprintf(fmtStr, args...),
			Position: pos,
		})
	}

	return issues
}
