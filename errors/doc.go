// Package errors provides the structured error type used across the
// load-path packages.
//
// Every failure surfaced by a store, the configuration loader or the CLI is a
// PlatformError: an ErrorCode drawn from the load-path taxonomy, a retry
// classification, a message, optional context metadata and an optional cause.
// PlatformError stays compatible with the standard library (errors.Is,
// errors.As, errors.Unwrap), so an error returned by an extension hook or by
// the host filesystem remains reachable after wrapping.
//
// # Creating and wrapping
//
//	err := errors.New(errors.CodeNotFound, "no such feature")
//	err = errors.WithPath(err, "/artichoke/virtual_root/src/lib/set.rb")
//
//	if err := hook(ctx, interp); err != nil {
//	    return errors.Wrap(err, errors.CodeHookFailed, "extension hook failed")
//	}
//
// # Codes
//
//   - Lookup: CodeNotFound, CodeIsADirectory, CodeNotADirectory
//   - Paths: CodeEncoding
//   - Host: CodePermissionDenied, CodeIO
//   - Execution: CodeHookFailed
//   - Validation: CodeInvalidInput, CodeInvalidConfig
//   - CUE: CodeCUELoadFailed, CodeCUEBuildFailed, CodeCUEValidationFailed,
//     CodeCUEDecodeFailed, CodeCUEEncodeFailed
//   - System: CodeInternal, CodeUnknown
//
// Only CodeIO is retryable by default. The load-path core itself never
// retries; the classification is advisory for embedders.
//
// # JSON
//
// ToJSON flattens any error into an ErrorResponse without the cause chain.
package errors
