package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/thomas-vilte/relx/internal/errors"
)

func TestRun(t *testing.T) {
	t.Run("captures stdout", func(t *testing.T) {
		r := New()

		out, err := r.Run(context.Background(), []string{"echo", "hello"})

		require.NoError(t, err)
		assert.Equal(t, "hello\n", out)
	})

	t.Run("non-zero exit becomes a backend error with stderr context", func(t *testing.T) {
		r := New()

		_, err := r.Run(context.Background(), []string{"sh", "-c", "echo broken >&2; exit 3"})

		require.Error(t, err)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.TypeBackend, appErr.Type)
		assert.Contains(t, err.Error(), "broken")
	})

	t.Run("rejects an empty argument vector", func(t *testing.T) {
		r := New()

		_, err := r.Run(context.Background(), nil)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.TypeInvalidArgument, appErr.Type)
	})
}

func TestStream(t *testing.T) {
	t.Run("yields lines in order", func(t *testing.T) {
		r := New()

		var lines []string
		for line, err := range r.Stream(context.Background(), []string{"sh", "-c", "echo one; echo two"}) {
			require.NoError(t, err)
			lines = append(lines, line)
		}

		assert.Equal(t, []string{"one", "two"}, lines)
	})

	t.Run("stops the process when the consumer breaks early", func(t *testing.T) {
		r := New()

		var first string
		for line, err := range r.Stream(context.Background(), []string{"sh", "-c", "echo head; sleep 30"}) {
			require.NoError(t, err)
			first = line
			break
		}

		assert.Equal(t, "head", first)
	})

	t.Run("surfaces a non-zero exit after the last line", func(t *testing.T) {
		r := New()

		var lines []string
		var streamErr error
		for line, err := range r.Stream(context.Background(), []string{"sh", "-c", "echo partial; exit 1"}) {
			if err != nil {
				streamErr = err
				break
			}
			lines = append(lines, line)
		}

		assert.Equal(t, []string{"partial"}, lines)
		require.Error(t, streamErr)
		var appErr *apperrors.AppError
		require.ErrorAs(t, streamErr, &appErr)
		assert.Equal(t, apperrors.TypeBackend, appErr.Type)
	})
}
