package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		innerErr := errors.New("exit status 1")
		err := NewBackend("osc command failed", innerErr)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "BACKEND")
		assert.Contains(t, err.Error(), "osc command failed")
		assert.Contains(t, err.Error(), "exit status 1")
		assert.Equal(t, innerErr, errors.Unwrap(err))
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewNotFound("package not found", nil)

		assert.Contains(t, err.Error(), "NOT_FOUND")
		assert.Contains(t, err.Error(), "package not found")
		assert.Nil(t, errors.Unwrap(err))
	})

	t.Run("stderr context is appended to the message", func(t *testing.T) {
		err := NewBackend("command failed", nil).WithContext("stderr", "401 Unauthorized")

		assert.Contains(t, err.Error(), "401 Unauthorized")
	})

	t.Run("WithError keeps type and suggestion", func(t *testing.T) {
		base := NewInvalidArgument("bad search mode").WithSuggestion("use login, email or realname")
		wrapped := base.WithError(errors.New("boom"))

		assert.Equal(t, TypeInvalidArgument, wrapped.Type)
		assert.Equal(t, base.Suggestion, wrapped.Suggestion)
		assert.EqualError(t, errors.Unwrap(wrapped), "boom")
	})
}

func TestErrUserCancelled(t *testing.T) {
	t.Run("is matchable through errors.Is", func(t *testing.T) {
		assert.True(t, errors.Is(ErrUserCancelled, ErrUserCancelled))
	})

	t.Run("is not a NOT_FOUND error", func(t *testing.T) {
		var appErr *AppError
		assert.True(t, errors.As(ErrUserCancelled, &appErr))
		assert.Equal(t, TypeCancelled, appErr.Type)
	})
}
