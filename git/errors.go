package git

import (
	stderrors "errors"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/jmgilman/loadpath/errors"
)

// wrapError classifies a go-git error and wraps it with message. The go-git
// error stays reachable through errors.Is. Returns nil if err is nil.
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

// classifyError maps go-git errors to error codes.
func classifyError(err error) errors.ErrorCode {
	switch {
	case stderrors.Is(err, gogit.ErrRepositoryNotExists),
		stderrors.Is(err, transport.ErrRepositoryNotFound),
		stderrors.Is(err, transport.ErrEmptyRemoteRepository),
		stderrors.Is(err, plumbing.ErrReferenceNotFound),
		stderrors.Is(err, plumbing.ErrObjectNotFound),
		stderrors.Is(err, object.ErrDirectoryNotFound),
		stderrors.Is(err, object.ErrFileNotFound):
		return errors.CodeNotFound
	case stderrors.Is(err, transport.ErrAuthenticationRequired),
		stderrors.Is(err, transport.ErrAuthorizationFailed):
		return errors.CodePermissionDenied
	case stderrors.Is(err, gogit.ErrMissingURL),
		stderrors.Is(err, gogit.ErrMissingAuthor):
		return errors.CodeInvalidInput
	default:
		return errors.CodeIO
	}
}
