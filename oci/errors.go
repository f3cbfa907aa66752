package oci

import (
	stderrors "errors"

	"oras.land/oras-go/v2/content"
	"oras.land/oras-go/v2/errdef"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/errcode"

	"github.com/jmgilman/loadpath/errors"
)

// wrapError classifies an oras-go error and wraps it with message. Errors
// that are already PlatformErrors keep their code.
func wrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	var platformErr errors.PlatformError
	if errors.As(err, &platformErr) {
		return errors.Wrap(err, platformErr.Code(), message)
	}
	return errors.Wrap(err, classifyError(err), message)
}

func classifyError(err error) errors.ErrorCode {
	var respErr *errcode.ErrorResponse
	switch {
	case stderrors.Is(err, errdef.ErrNotFound):
		return errors.CodeNotFound
	case stderrors.Is(err, auth.ErrBasicCredentialNotFound):
		return errors.CodePermissionDenied
	case stderrors.As(err, &respErr) && (respErr.StatusCode == 401 || respErr.StatusCode == 403):
		return errors.CodePermissionDenied
	case stderrors.As(err, &respErr) && respErr.StatusCode == 404:
		return errors.CodeNotFound
	case stderrors.Is(err, content.ErrMismatchedDigest),
		stderrors.Is(err, content.ErrTrailingData),
		stderrors.Is(err, errdef.ErrInvalidReference),
		stderrors.Is(err, errdef.ErrInvalidDigest):
		return errors.CodeInvalidInput
	default:
		return errors.CodeIO
	}
}
