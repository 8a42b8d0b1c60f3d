package gitea

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/thomas-vilte/relx/internal/errors"
	"github.com/thomas-vilte/relx/internal/logger"
	"github.com/thomas-vilte/relx/internal/models"
	"github.com/thomas-vilte/relx/internal/providers"
	"github.com/thomas-vilte/relx/internal/runner"
)

// ReviewProvider implements providers.ReviewProvider against a Gitea forge
// through the git-obs CLI.
type ReviewProvider struct {
	runner runner.Runner
}

func NewReviewProvider(run runner.Runner) *ReviewProvider {
	return &ReviewProvider{runner: run}
}

// The export format wraps the pull requests in a one-element outer list.
type prExport struct {
	Requests []prEntry `json:"requests"`
}

type prEntry struct {
	Number *int64  `json:"number"`
	Title  *string `json:"title"`
}

// ListRequests returns the open, non-draft pull requests awaiting review by
// the given reviewer on the given target branch. Malformed entries are
// skipped; an unparseable response degrades to an empty result.
func (p *ReviewProvider) ListRequests(ctx context.Context, params providers.ListRequestsParams) ([]models.Request, error) {
	giteaParams, ok := params.(providers.GiteaListRequestsParams)
	if !ok {
		logger.Error(ctx, "invalid params variant for Gitea ListRequests", nil, "got", string(params.Kind()))
		return nil, apperrors.NewInvalidArgument(
			fmt.Sprintf("Gitea review provider cannot handle %s list params", params.Kind()))
	}

	if giteaParams.Reviewer == "" || giteaParams.Branch == "" || giteaParams.Repository == "" {
		return nil, apperrors.NewInvalidArgument(
			"missing reviewer, branch or repository for Gitea ListRequests")
	}

	args := []string{
		"git", "obs", "pr", "list",
		"--state", "open",
		"--review-state", "REQUEST_REVIEW",
		"--no-draft",
		"--export",
		"--reviewer", giteaParams.Reviewer,
		"--target-branch", giteaParams.Branch,
		giteaParams.Repository,
	}

	out, err := p.runner.Run(ctx, args)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out) == "" {
		logger.Info(ctx, "no requests found, command returned empty output")
		return nil, nil
	}

	var exports []prExport
	if err := json.Unmarshal([]byte(out), &exports); err != nil {
		logger.Error(ctx, "failed to parse JSON from command output", err)
		return nil, nil
	}
	if len(exports) == 0 {
		logger.Info(ctx, "no data received from Gitea command")
		return nil, nil
	}

	var requests []models.Request
	for _, entry := range exports[0].Requests {
		if entry.Number == nil || entry.Title == nil {
			logger.Warn(ctx, "skipping malformed request entry")
			continue
		}
		requests = append(requests, models.Request{
			ID:   strconv.FormatInt(*entry.Number, 10),
			Name: *entry.Title,
			Kind: models.KindGitea,
		})
	}
	return requests, nil
}

// GetRequestDiff returns the pull request's patch with timeline context.
func (p *ReviewProvider) GetRequestDiff(ctx context.Context, params providers.DiffParams) (string, error) {
	giteaParams, ok := params.(providers.GiteaDiffParams)
	if !ok {
		logger.Error(ctx, "invalid params variant for Gitea GetRequestDiff", nil, "got", string(params.Kind()))
		return "", apperrors.NewInvalidArgument(
			fmt.Sprintf("Gitea review provider cannot handle %s diff params", params.Kind()))
	}

	args := []string{
		"git", "obs", "pr", "show",
		"--timeline", "--patch",
		fmt.Sprintf("%s#%s", giteaParams.Repository, giteaParams.RequestID),
	}

	out, err := p.runner.Run(ctx, args)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		logger.Info(ctx, "no diff found",
			"request", giteaParams.RequestID, "repository", giteaParams.Repository)
		return "", nil
	}
	return out, nil
}

// ApproveRequest posts a single approval comment naming the reviewer.
func (p *ReviewProvider) ApproveRequest(ctx context.Context, params providers.ApproveParams) ([]string, error) {
	giteaParams, ok := params.(providers.GiteaApproveParams)
	if !ok {
		logger.Error(ctx, "invalid params variant for Gitea ApproveRequest", nil, "got", string(params.Kind()))
		return nil, apperrors.NewInvalidArgument(
			fmt.Sprintf("Gitea review provider cannot handle %s approve params", params.Kind()))
	}

	args := []string{
		"git", "obs", "pr", "comment",
		fmt.Sprintf("%s#%s", giteaParams.Repository, giteaParams.RequestID),
		"-m", fmt.Sprintf("@%s: approve", giteaParams.Reviewer),
	}

	out, err := p.runner.Run(ctx, args)
	if err != nil {
		return nil, err
	}
	if out == "" {
		logger.Info(ctx, "no output from approve comment",
			"request", giteaParams.RequestID, "repository", giteaParams.Repository)
		return []string{}, nil
	}
	return []string{out}, nil
}
