package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeNotFound, "no such feature")

	require.Equal(t, CodeNotFound, err.Code())
	require.Equal(t, "no such feature", err.Message())
	require.Equal(t, ClassificationPermanent, err.Classification())
	require.Nil(t, err.Context())
	require.Nil(t, err.Unwrap())
	require.Equal(t, "[NOT_FOUND] no such feature", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf(CodeInvalidInput, "unknown strategy %q", "floppy")
	require.Equal(t, `unknown strategy "floppy"`, err.Message())
}

func TestErrorClassification_IsRetryable(t *testing.T) {
	tests := []struct {
		name string
		code ErrorCode
		want bool
	}{
		{name: "io is retryable", code: CodeIO, want: true},
		{name: "not found", code: CodeNotFound, want: false},
		{name: "is a directory", code: CodeIsADirectory, want: false},
		{name: "encoding", code: CodeEncoding, want: false},
		{name: "permission denied", code: CodePermissionDenied, want: false},
		{name: "hook failed", code: CodeHookFailed, want: false},
		{name: "unmapped code", code: ErrorCode("MYSTERY"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, New(tt.code, "x").Classification().IsRetryable())
		})
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := Wrap(cause, CodeIO, "failed to read source")

	require.Equal(t, CodeIO, err.Code())
	require.Equal(t, cause, err.Unwrap())
	require.True(t, Is(err, cause))
	require.Equal(t, "[IO_ERROR] failed to read source: disk on fire", err.Error())
}

func TestWrap_NilError(t *testing.T) {
	require.Nil(t, Wrap(nil, CodeIO, "x"))
	require.Nil(t, Wrapf(nil, CodeIO, "x %d", 1))
	require.Nil(t, WrapWithContext(nil, CodeIO, "x", nil))
}

func TestWrap_PreservesClassificationAndContext(t *testing.T) {
	inner := WithPath(New(CodeIO, "short read"), "/tmp/a.rb")
	outer := Wrap(inner, CodeHookFailed, "extension hook failed")

	require.True(t, outer.Classification().IsRetryable())
	require.Equal(t, "/tmp/a.rb", outer.Context()["path"])
	require.True(t, HasCode(outer, CodeIO))
	require.Equal(t, CodeHookFailed, GetCode(outer))
}

func TestWrapWithContext_CopiesMap(t *testing.T) {
	ctx := map[string]interface{}{"path": "/a"}
	err := WrapWithContext(stderrors.New("boom"), CodeHookFailed, "hook", ctx)
	ctx["path"] = "/mutated"

	require.Equal(t, "/a", err.Context()["path"])
}

func TestWithContext_ConvertsPlainError(t *testing.T) {
	plain := stderrors.New("plain")
	err := WithContext(plain, "root", "/srv/lib")

	require.Equal(t, CodeUnknown, err.Code())
	require.Equal(t, "/srv/lib", err.Context()["root"])
	require.True(t, Is(err, plain))
}

func TestWithContextMap_Overrides(t *testing.T) {
	err := WithPath(New(CodeNotFound, "missing"), "/a")
	err = WithContextMap(err, map[string]interface{}{"path": "/b", "root": "/r"})

	require.Equal(t, "/b", err.Context()["path"])
	require.Equal(t, "/r", err.Context()["root"])
	require.Nil(t, WithContextMap(nil, nil))
}

func TestContext_IsCopy(t *testing.T) {
	err := WithPath(New(CodeNotFound, "missing"), "/a")
	err.Context()["path"] = "/changed"
	require.Equal(t, "/a", err.Context()["path"])
}

func TestGetCode(t *testing.T) {
	require.Equal(t, CodeUnknown, GetCode(nil))
	require.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	require.Equal(t, CodeEncoding, GetCode(New(CodeEncoding, "bad bytes")))
}

func TestHasCode(t *testing.T) {
	err := Wrap(New(CodeNotFound, "missing"), CodeHookFailed, "hook")
	require.True(t, HasCode(err, CodeNotFound))
	require.True(t, HasCode(err, CodeHookFailed))
	require.False(t, HasCode(err, CodeIO))
	require.False(t, HasCode(nil, CodeIO))
}

func TestIsRetryable(t *testing.T) {
	require.False(t, IsRetryable(nil))
	require.False(t, IsRetryable(stderrors.New("plain")))
	require.True(t, IsRetryable(New(CodeIO, "eintr")))
}
