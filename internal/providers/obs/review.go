package obs

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	apperrors "github.com/thomas-vilte/relx/internal/errors"
	"github.com/thomas-vilte/relx/internal/logger"
	"github.com/thomas-vilte/relx/internal/models"
	"github.com/thomas-vilte/relx/internal/providers"
	"github.com/thomas-vilte/relx/internal/runner"
)

const (
	// ReviewingGroup is the fixed group whose sub-review gates every
	// request relx handles.
	ReviewingGroup = "sle-release-managers"

	// StagingManagersGroup additionally accepts bugowner requests, always
	// after ReviewingGroup.
	StagingManagersGroup = "sle-staging-managers"

	acceptMessage = "OK"
)

// ReviewProvider implements providers.ReviewProvider against the Open Build
// Service through the osc client.
type ReviewProvider struct {
	apiURL string
	runner runner.Runner
}

func NewReviewProvider(apiURL string, run runner.Runner) *ReviewProvider {
	return &ReviewProvider{apiURL: apiURL, runner: run}
}

type requestCollection struct {
	XMLName  xml.Name         `xml:"collection"`
	Requests []requestElement `xml:"request"`
}

type requestElement struct {
	ID    string `xml:"id,attr"`
	State struct {
		Name string `xml:"name,attr"`
	} `xml:"state"`
	Reviews []struct {
		ByGroup string `xml:"by_group,attr"`
		State   string `xml:"state,attr"`
	} `xml:"review"`
	Actions []struct {
		Type   string `xml:"type,attr"`
		Target struct {
			Project string `xml:"project,attr"`
			Package string `xml:"package,attr"`
		} `xml:"target"`
	} `xml:"action"`
}

func (r requestElement) hasNewReviewBy(group string) bool {
	for _, review := range r.Reviews {
		if review.ByGroup == group && review.State == "new" {
			return true
		}
	}
	return false
}

func (r requestElement) targetPackage() string {
	for _, action := range r.Actions {
		if action.Target.Package != "" {
			return action.Target.Package
		}
	}
	return ""
}

// ListRequests returns the requests in review state whose sub-review for the
// reviewing group is still new, in backend response order.
func (p *ReviewProvider) ListRequests(ctx context.Context, params providers.ListRequestsParams) ([]models.Request, error) {
	obsParams, ok := params.(providers.OBSListRequestsParams)
	if !ok {
		logger.Error(ctx, "invalid params variant for OBS ListRequests", nil, "got", string(params.Kind()))
		return nil, apperrors.NewInvalidArgument(
			fmt.Sprintf("OBS review provider cannot handle %s list params", params.Kind()))
	}

	var match string
	switch {
	case obsParams.Bugowner:
		match = fmt.Sprintf(
			"state/@name='review' and action/@type='set_bugowner' and action/target/@project='%s'",
			obsParams.Project)
	case obsParams.Staging != "":
		stagedProject := fmt.Sprintf("%s:Staging:%s", obsParams.Project, obsParams.Staging)
		match = fmt.Sprintf(
			"state/@name='review' and review/@state='new' and review/@by_project='%s'",
			stagedProject)
	default:
		match = fmt.Sprintf(
			"state/@name='review' and review/@state='new' and target/@project='%s'",
			obsParams.Project)
	}

	args := []string{
		"osc", "-A", p.apiURL, "api",
		"/search/request?match=" + match + "&withhistory=0&withfullhistory=0",
	}

	out, err := p.runner.Run(ctx, args)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out) == "" {
		logger.Info(ctx, "no requests found, command returned empty output")
		return nil, nil
	}

	var collection requestCollection
	if err := xml.Unmarshal([]byte(out), &collection); err != nil {
		return nil, apperrors.NewBackend("could not parse request search response", err)
	}

	var requests []models.Request
	for _, element := range collection.Requests {
		if element.State.Name != "review" || !element.hasNewReviewBy(ReviewingGroup) {
			continue
		}
		pkg := element.targetPackage()
		if element.ID == "" || pkg == "" {
			continue
		}
		request := models.Request{ID: element.ID, Name: pkg, Kind: models.KindOBS}
		logger.Debug(ctx, "accepted request", "id", request.ID, "package", request.Name)
		requests = append(requests, request)
	}
	return requests, nil
}

// GetRequestDiff returns the raw diff of a request.
func (p *ReviewProvider) GetRequestDiff(ctx context.Context, params providers.DiffParams) (string, error) {
	obsParams, ok := params.(providers.OBSDiffParams)
	if !ok {
		logger.Error(ctx, "invalid params variant for OBS GetRequestDiff", nil, "got", string(params.Kind()))
		return "", apperrors.NewInvalidArgument(
			fmt.Sprintf("OBS review provider cannot handle %s diff params", params.Kind()))
	}

	args := []string{"osc", "-A", p.apiURL, "review", "show", "-d", obsParams.RequestID}
	return p.runner.Run(ctx, args)
}

// ApproveRequest accepts the sub-review once per group in a fixed order:
// the reviewing group always, the staging managers only for bugowner
// requests. One output line per group is returned, prefixed with its name.
func (p *ReviewProvider) ApproveRequest(ctx context.Context, params providers.ApproveParams) ([]string, error) {
	obsParams, ok := params.(providers.OBSApproveParams)
	if !ok {
		logger.Error(ctx, "invalid params variant for OBS ApproveRequest", nil, "got", string(params.Kind()))
		return nil, apperrors.NewInvalidArgument(
			fmt.Sprintf("OBS review provider cannot handle %s approve params", params.Kind()))
	}

	groups := []string{ReviewingGroup}
	if obsParams.Bugowner {
		groups = append(groups, StagingManagersGroup)
	}

	var lines []string
	for _, group := range groups {
		args := []string{
			"osc", "-A", p.apiURL,
			"review", "accept",
			"-m", acceptMessage,
			"-G", group,
			obsParams.RequestID,
		}
		out, err := p.runner.Run(ctx, args)
		if err != nil {
			return lines, err
		}
		lines = append(lines, fmt.Sprintf("%s: %s", group, out))
	}
	return lines, nil
}
