package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	err := Internal("internal server error")

	assert.Equal(t, "internal server error: internal server error", err.Error())
	assert.True(t, Is(err, ErrInternal))
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)

	plain := New("X", "plain", http.StatusTeapot)
	assert.Equal(t, "plain", plain.Error())
	assert.Nil(t, plain.Unwrap())
}

func TestDomainKinds(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		sentinel error
		code     string
	}{
		{"invalid image", InvalidImage("/tmp/x.txt", stderrors.New("unknown format")), ErrInvalidImage, "INVALID_IMAGE"},
		{"encode failed", EncodeFailed(stderrors.New("short read")), ErrEncodeFailed, "ENCODE_FAILED"},
		{"completion failed", CompletionFailed(stderrors.New("401 unauthorized")), ErrCompletionFailed, "COMPLETION_FAILED"},
		{"bad request", BadRequest("nope"), ErrBadRequest, "BAD_REQUEST"},
		{"validation", Validation(map[string]string{"file_path": "required"}), ErrValidation, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Is(tt.err, tt.sentinel))
			assert.Equal(t, tt.code, tt.err.Code)

			// survives further wrapping
			wrapped := fmt.Errorf("outer: %w", tt.err)
			var appErr *AppError
			require.True(t, As(wrapped, &appErr))
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestCompletionFailed_KeepsCauseText(t *testing.T) {
	err := CompletionFailed(stderrors.New("connection refused"))
	assert.Equal(t, "connection refused", err.Message)
}

func TestInvalidImage_Details(t *testing.T) {
	err := InvalidImage("/tmp/x.txt", stderrors.New("image: unknown format"))

	assert.Equal(t, "/tmp/x.txt", err.Details["path"])
	assert.Equal(t, "image: unknown format", err.Details["reason"])
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
}
