package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard error types
var (
	ErrBadRequest       = errors.New("bad request")
	ErrInternal         = errors.New("internal server error")
	ErrValidation       = errors.New("validation error")
	ErrInvalidImage     = errors.New("invalid image")
	ErrEncodeFailed     = errors.New("image encoding failed")
	ErrCompletionFailed = errors.New("completion request failed")
)

// AppError represents an application error with context
type AppError struct {
	Err        error             `json:"-"`
	Message    string            `json:"message"`
	Code       string            `json:"code"`
	StatusCode int               `json:"status_code"`
	Details    map[string]string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code string, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Common error constructors

func BadRequest(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		Code:       "BAD_REQUEST",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func Internal(message string) *AppError {
	return &AppError{
		Err:        ErrInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

func Validation(details map[string]string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Code:       "VALIDATION_ERROR",
		Message:    "validation failed",
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

// InvalidImage reports a path that does not exist or does not decode as an image.
func InvalidImage(path string, cause error) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %v", ErrInvalidImage, cause),
		Code:       "INVALID_IMAGE",
		Message:    "not a readable image",
		StatusCode: http.StatusBadRequest,
		Details:    map[string]string{"path": path, "reason": cause.Error()},
	}
}

// EncodeFailed reports a failure while turning image bytes into a base64 payload.
func EncodeFailed(cause error) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %v", ErrEncodeFailed, cause),
		Code:       "ENCODE_FAILED",
		Message:    "failed to encode image",
		StatusCode: http.StatusBadRequest,
	}
}

// CompletionFailed reports a failed or unusable call to the completion API.
// The message is the cause text so it can be surfaced to the caller unchanged.
func CompletionFailed(cause error) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %v", ErrCompletionFailed, cause),
		Code:       "COMPLETION_FAILED",
		Message:    cause.Error(),
		StatusCode: http.StatusBadRequest,
	}
}

// Is checks if the error matches a target error
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to convert an error to a specific type
func As(err error, target any) bool {
	return errors.As(err, target)
}
