package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// DefaultPager is tried first when paging text; it falls back to $PAGER and
// then to less.
const DefaultPager = "delta"

func resolvePager(program string) (string, []string) {
	candidates := []string{program}
	if envPager := os.Getenv("PAGER"); envPager != "" {
		candidates = append(candidates, envPager)
	}
	candidates = append(candidates, "less")

	for _, candidate := range candidates {
		fields := strings.Fields(candidate)
		if len(fields) == 0 {
			continue
		}
		if path, err := exec.LookPath(fields[0]); err == nil {
			return path, fields[1:]
		}
	}
	return "", nil
}

// PageText pipes body through a pager program, preferring program, then
// $PAGER, then less. With no pager available the body is written directly.
func PageText(ctx context.Context, w io.Writer, program, body string) error {
	path, extraArgs := resolvePager(program)
	if path == "" {
		_, err := fmt.Fprintln(w, body)
		return err
	}

	cmd := exec.CommandContext(ctx, path, extraArgs...)
	cmd.Stdin = strings.NewReader(body)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pager %s failed: %w", path, err)
	}
	return nil
}
