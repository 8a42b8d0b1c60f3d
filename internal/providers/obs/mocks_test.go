package obs

import (
	"context"
	"iter"
	"strings"
)

// fakeRunner maps joined argument vectors to canned outputs and records every
// call, so tests can assert the exact commands a provider builds.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		outputs: make(map[string]string),
		errs:    make(map[string]error),
	}
}

func (r *fakeRunner) on(args string, out string) {
	r.outputs[args] = out
}

func (r *fakeRunner) fail(args string, err error) {
	r.errs[args] = err
}

func (r *fakeRunner) Run(ctx context.Context, args []string) (string, error) {
	key := strings.Join(args, " ")
	r.calls = append(r.calls, key)
	if err, ok := r.errs[key]; ok {
		return "", err
	}
	return r.outputs[key], nil
}

func (r *fakeRunner) Stream(ctx context.Context, args []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		key := strings.Join(args, " ")
		r.calls = append(r.calls, key)
		if err, ok := r.errs[key]; ok {
			yield("", err)
			return
		}
		out := r.outputs[key]
		if out == "" {
			return
		}
		for _, line := range strings.Split(out, "\n") {
			if !yield(line, nil) {
				return
			}
		}
	}
}
