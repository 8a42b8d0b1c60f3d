package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStdinPrompter(t *testing.T) {
	t.Run("should accept a valid choice", func(t *testing.T) {
		var out bytes.Buffer
		prompter := NewStdinPrompter(strings.NewReader("y\n"), &out)

		answer, err := prompter.Ask("Continue?", []string{"y", "n"}, "n")

		assert.NoError(t, err)
		assert.Equal(t, "y", answer)
	})

	t.Run("should fall back to the default on empty input", func(t *testing.T) {
		var out bytes.Buffer
		prompter := NewStdinPrompter(strings.NewReader("\n"), &out)

		answer, err := prompter.Ask("Continue?", []string{"y", "n"}, "n")

		assert.NoError(t, err)
		assert.Equal(t, "n", answer)
	})

	t.Run("should re-ask until the answer is valid", func(t *testing.T) {
		var out bytes.Buffer
		prompter := NewStdinPrompter(strings.NewReader("maybe\nY\n"), &out)

		answer, err := prompter.Ask("Continue?", []string{"y", "n", "a"}, "n")

		assert.NoError(t, err)
		assert.Equal(t, "y", answer)
		assert.Contains(t, out.String(), "Please answer one of")
	})

	t.Run("should fail when the input ends without an answer", func(t *testing.T) {
		var out bytes.Buffer
		prompter := NewStdinPrompter(strings.NewReader(""), &out)

		_, err := prompter.Ask("Continue?", []string{"y", "n"}, "")

		assert.Error(t, err)
	})
}
