package errors

// ErrorCode identifies a failure condition of the load-path subsystem.
// Codes are strings so they read well in logs and serialize naturally to JSON.
type ErrorCode string

const (
	// Lookup errors.

	// CodeNotFound indicates no entry or host file exists at the resolved path.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeIsADirectory indicates a file operation was attempted on a directory.
	CodeIsADirectory ErrorCode = "IS_A_DIRECTORY"

	// CodeNotADirectory indicates a path component that must be a directory is a file.
	CodeNotADirectory ErrorCode = "NOT_A_DIRECTORY"

	// Path errors.

	// CodeEncoding indicates a path cannot be represented as bytes on the host.
	CodeEncoding ErrorCode = "ENCODING_ERROR"

	// Host errors.

	// CodePermissionDenied indicates the host refused access to a path.
	CodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// CodeIO indicates any other host I/O failure.
	CodeIO ErrorCode = "IO_ERROR"

	// Execution errors.

	// CodeHookFailed indicates an extension hook returned an error while loading.
	CodeHookFailed ErrorCode = "HOOK_FAILED"

	// Validation errors.

	// CodeInvalidInput indicates caller-supplied input is invalid.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates a configuration error prevents building a store.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CUE errors.

	// CodeCUELoadFailed indicates CUE file loading failed.
	CodeCUELoadFailed ErrorCode = "CUE_LOAD_FAILED"

	// CodeCUEBuildFailed indicates CUE build/evaluation failed.
	CodeCUEBuildFailed ErrorCode = "CUE_BUILD_FAILED"

	// CodeCUEValidationFailed indicates CUE validation failed.
	CodeCUEValidationFailed ErrorCode = "CUE_VALIDATION_FAILED"

	// CodeCUEDecodeFailed indicates CUE to Go struct decoding failed.
	CodeCUEDecodeFailed ErrorCode = "CUE_DECODE_FAILED"

	// CodeCUEEncodeFailed indicates CUE to YAML/JSON encoding failed.
	CodeCUEEncodeFailed ErrorCode = "CUE_ENCODE_FAILED"

	// System errors.

	// CodeInternal indicates an internal invariant was violated.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates an unclassified error.
	CodeUnknown ErrorCode = "UNKNOWN"
)

// ErrorClassification indicates whether an error may succeed if the caller
// tries again. The load-path core never retries by itself; the classification
// is advisory for embedders.
type ErrorClassification string

const (
	// ClassificationRetryable marks transient failures, such as host I/O hiccups.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent marks failures that will not change on retry.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates a retry may succeed.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

// defaultClassifications maps error codes to their default classification.
var defaultClassifications = map[ErrorCode]ErrorClassification{
	CodeIO: ClassificationRetryable,

	CodeNotFound:         ClassificationPermanent,
	CodeIsADirectory:     ClassificationPermanent,
	CodeNotADirectory:    ClassificationPermanent,
	CodeEncoding:         ClassificationPermanent,
	CodePermissionDenied: ClassificationPermanent,
	CodeHookFailed:       ClassificationPermanent,
	CodeInvalidInput:     ClassificationPermanent,
	CodeInvalidConfig:    ClassificationPermanent,

	CodeCUELoadFailed:       ClassificationPermanent,
	CodeCUEBuildFailed:      ClassificationPermanent,
	CodeCUEValidationFailed: ClassificationPermanent,
	CodeCUEDecodeFailed:     ClassificationPermanent,
	CodeCUEEncodeFailed:     ClassificationPermanent,

	CodeInternal: ClassificationPermanent,
	CodeUnknown:  ClassificationPermanent,
}

// getDefaultClassification returns the default classification for an error code.
// Unknown codes are permanent.
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
