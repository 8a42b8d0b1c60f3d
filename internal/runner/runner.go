package runner

import (
	"bufio"
	"bytes"
	"context"
	"iter"
	"os/exec"
	"strings"

	apperrors "github.com/thomas-vilte/relx/internal/errors"
)

// Runner executes an argument vector as a subprocess. Commands are never
// passed through a shell, so backend identifiers with special characters
// cannot be reinterpreted.
type Runner interface {
	// Run executes the command and returns its captured stdout.
	Run(ctx context.Context, args []string) (string, error)
	// Stream executes the command and yields stdout line by line as the
	// subprocess produces it. Breaking out of the loop kills the process.
	Stream(ctx context.Context, args []string) iter.Seq2[string, error]
}

type ExecRunner struct{}

func New() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", apperrors.NewInvalidArgument("empty command")
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", commandFailed(args, stderr.String(), err)
	}

	return stdout.String(), nil
}

func (r *ExecRunner) Stream(ctx context.Context, args []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if len(args) == 0 {
			yield("", apperrors.NewInvalidArgument("empty command"))
			return
		}

		cmd := exec.CommandContext(ctx, args[0], args[1:]...)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		stdout, err := cmd.StdoutPipe()
		if err != nil {
			yield("", commandFailed(args, stderr.String(), err))
			return
		}

		if err := cmd.Start(); err != nil {
			yield("", commandFailed(args, stderr.String(), err))
			return
		}

		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for scanner.Scan() {
			if !yield(scanner.Text(), nil) {
				// Consumer stopped early; reap the process.
				_ = cmd.Process.Kill()
				_ = cmd.Wait()
				return
			}
		}

		if err := scanner.Err(); err != nil {
			_ = cmd.Wait()
			yield("", commandFailed(args, stderr.String(), err))
			return
		}

		if err := cmd.Wait(); err != nil {
			yield("", commandFailed(args, stderr.String(), err))
		}
	}
}

func commandFailed(args []string, stderr string, err error) *apperrors.AppError {
	return apperrors.NewBackend("command failed", err).
		WithContext("command", strings.Join(args, " ")).
		WithContext("stderr", strings.TrimSpace(stderr))
}
