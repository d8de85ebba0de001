package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() *AppError
		expected string
	}{
		{
			name: "ErrorWithoutCause",
			setup: func() *AppError {
				return New(ValidationError, "test validation error")
			},
			expected: "VALIDATION_ERROR: test validation error",
		},
		{
			name: "ErrorWithCause",
			setup: func() *AppError {
				cause := fmt.Errorf("original error")
				return Wrap(DatabaseError, "database operation failed", cause)
			},
			expected: "DATABASE_ERROR: database operation failed (caused by: original error)",
		},
		{
			name: "RemoteWithStatus",
			setup: func() *AppError {
				return NewRemoteError("forecast endpoint returned status 503", 503, nil)
			},
			expected: "REMOTE_ERROR: forecast endpoint returned status 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup()
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("original error")
	err := Wrap(DecodeError, "bad json", cause)
	assert.Equal(t, cause, err.Unwrap())

	assert.Nil(t, New(NotFoundError, "resource not found").Unwrap())
}

func TestTypeCheckers_SeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("fetch weather for 42: %w", NewIncompleteDataError("daily arrays missing"))

	assert.True(t, IsIncompleteDataError(wrapped))
	assert.False(t, IsRemoteError(wrapped))
	assert.Equal(t, IncompleteDataError, TypeOf(wrapped))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(fmt.Errorf("plain")))
}

func TestIsCancelled(t *testing.T) {
	assert.True(t, IsCancelled(NewCancelledError("superseded", context.Canceled)))
	assert.True(t, IsCancelled(fmt.Errorf("wrapped: %w", context.Canceled)))
	assert.False(t, IsCancelled(context.DeadlineExceeded))
	assert.False(t, IsCancelled(nil))
	assert.False(t, IsCancelled(NewRemoteError("boom", 500, nil)))
}

func TestErrorType_Retryable(t *testing.T) {
	assert.True(t, RemoteError.Retryable())
	assert.True(t, IncompleteDataError.Retryable())
	assert.True(t, DecodeError.Retryable())
	assert.False(t, ConfigurationError.Retryable())
	assert.False(t, Cancelled.Retryable())
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"nil", nil, ""},
		{"validation passes message through", NewValidationError("unit must be metric or imperial"), "unit must be metric or imperial"},
		{"remote with status", NewRemoteError("x", 502, nil), "HTTP 502"},
		{"remote transport", NewRemoteError("x", 0, fmt.Errorf("dial tcp")), "unreachable"},
		{"decode", NewDecodeError("x", nil), "unexpected data"},
		{"incomplete", fmt.Errorf("ctx: %w", NewIncompleteDataError("x")), "unexpected data"},
		{"plain error", fmt.Errorf("oops"), "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := UserMessage(tt.err)
			if tt.contains == "" {
				assert.Empty(t, msg)
				return
			}
			assert.Contains(t, msg, tt.contains)
		})
	}
}
