package gitea

import (
	"context"
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/thomas-vilte/relx/internal/errors"
	"github.com/thomas-vilte/relx/internal/models"
	"github.com/thomas-vilte/relx/internal/providers"
)

// fakeRunner maps joined argument vectors to canned outputs and records every
// call, so tests can assert the exact commands the provider builds.
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
		out, err := r.Run(ctx, args)
		if err != nil {
			yield("", err)
			return
		}
		for _, line := range strings.Split(out, "\n") {
			if !yield(line, nil) {
				return
			}
		}
	}
}

const listCall = "git obs pr list --state open --review-state REQUEST_REVIEW " +
	"--no-draft --export --reviewer geeko --target-branch main products/sles"

func giteaListParams() providers.GiteaListRequestsParams {
	return providers.GiteaListRequestsParams{
		Reviewer:   "geeko",
		Branch:     "main",
		Repository: "products/sles",
	}
}

func TestReviewProvider_ListRequests(t *testing.T) {
	t.Run("should parse the exported pull requests", func(t *testing.T) {
		// Arrange
		run := newFakeRunner()
		run.on(listCall, `[{"requests": [
			{"number": 12, "title": "Update vim"},
			{"number": 15, "title": "Update gcc"}
		]}]`)
		provider := NewReviewProvider(run)

		// Act
		requests, err := provider.ListRequests(context.Background(), giteaListParams())

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, []models.Request{
			{ID: "12", Name: "Update vim", Kind: models.KindGitea},
			{ID: "15", Name: "Update gcc", Kind: models.KindGitea},
		}, requests)
	})

	t.Run("should skip entries missing number or title", func(t *testing.T) {
		// Arrange
		run := newFakeRunner()
		run.on(listCall, `[{"requests": [
			{"number": 12},
			{"title": "orphan"},
			{"number": 15, "title": "Update gcc"}
		]}]`)
		provider := NewReviewProvider(run)

		// Act
		requests, err := provider.ListRequests(context.Background(), giteaListParams())

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, []models.Request{
			{ID: "15", Name: "Update gcc", Kind: models.KindGitea},
		}, requests)
	})

	t.Run("should degrade invalid JSON to an empty result", func(t *testing.T) {
		// Arrange
		run := newFakeRunner()
		run.on(listCall, "gitea exploded: not json")
		provider := NewReviewProvider(run)

		// Act
		requests, err := provider.ListRequests(context.Background(), giteaListParams())

		// Assert
		assert.NoError(t, err)
		assert.Nil(t, requests)
	})

	t.Run("should return nothing on empty output", func(t *testing.T) {
		// Arrange
		run := newFakeRunner()
		provider := NewReviewProvider(run)

		// Act
		requests, err := provider.ListRequests(context.Background(), giteaListParams())

		// Assert
		assert.NoError(t, err)
		assert.Nil(t, requests)
	})

	t.Run("should reject incomplete params before any backend call", func(t *testing.T) {
		// Arrange
		run := newFakeRunner()
		provider := NewReviewProvider(run)

		// Act
		_, err := provider.ListRequests(context.Background(),
			providers.GiteaListRequestsParams{Reviewer: "geeko"})

		// Assert
		assert.Error(t, err)
		assert.Empty(t, run.calls)
	})

	t.Run("should reject OBS params before any backend call", func(t *testing.T) {
		// Arrange
		run := newFakeRunner()
		provider := NewReviewProvider(run)

		// Act
		_, err := provider.ListRequests(context.Background(),
			providers.OBSListRequestsParams{Project: "SUSE:Product"})

		// Assert
		var appErr *apperrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.TypeInvalidArgument, appErr.Type)
		assert.Empty(t, run.calls)
	})
}

func TestReviewProvider_GetRequestDiff(t *testing.T) {
	t.Run("should show the patch with timeline context", func(t *testing.T) {
		// Arrange
		run := newFakeRunner()
		run.on("git obs pr show --timeline --patch products/sles#12", "diff --git a/vim.spec")
		provider := NewReviewProvider(run)

		// Act
		diff, err := provider.GetRequestDiff(context.Background(),
			providers.GiteaDiffParams{RequestID: "12", Repository: "products/sles"})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "diff --git a/vim.spec", diff)
	})

	t.Run("should return an empty diff without error", func(t *testing.T) {
		// Arrange
		run := newFakeRunner()
		provider := NewReviewProvider(run)

		// Act
		diff, err := provider.GetRequestDiff(context.Background(),
			providers.GiteaDiffParams{RequestID: "12", Repository: "products/sles"})

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, diff)
	})
}

func TestReviewProvider_ApproveRequest(t *testing.T) {
	t.Run("should post an approval comment naming the reviewer", func(t *testing.T) {
		// Arrange
		run := newFakeRunner()
		run.on("git obs pr comment products/sles#12 -m @geeko: approve", "comment created")
		provider := NewReviewProvider(run)

		// Act
		lines, err := provider.ApproveRequest(context.Background(),
			providers.GiteaApproveParams{RequestID: "12", Repository: "products/sles", Reviewer: "geeko"})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, []string{"comment created"}, lines)
	})

	t.Run("should return an empty slice when the comment produces no output", func(t *testing.T) {
		// Arrange
		run := newFakeRunner()
		provider := NewReviewProvider(run)

		// Act
		lines, err := provider.ApproveRequest(context.Background(),
			providers.GiteaApproveParams{RequestID: "12", Repository: "products/sles", Reviewer: "geeko"})

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, lines)
	})
}
