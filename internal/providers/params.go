package providers

import "github.com/thomas-vilte/relx/internal/models"

// The review operations take one parameter variant per backend. The marker
// methods close the sets: a provider receiving the wrong variant rejects it
// instead of coercing.

// ListRequestsParams is the parameter variant for ReviewProvider.ListRequests.
type ListRequestsParams interface {
	Kind() models.ProviderKind
	isListRequestsParams()
}

// OBSListRequestsParams scopes a build-service request search. Staging and
// Bugowner are mutually exclusive; the CLI layer enforces that.
type OBSListRequestsParams struct {
	Project  string
	Staging  string
	Bugowner bool
}

func (OBSListRequestsParams) Kind() models.ProviderKind { return models.KindOBS }
func (OBSListRequestsParams) isListRequestsParams()     {}

// GiteaListRequestsParams scopes a forge pull-request search.
type GiteaListRequestsParams struct {
	Reviewer   string
	Branch     string
	Repository string
}

func (GiteaListRequestsParams) Kind() models.ProviderKind { return models.KindGitea }
func (GiteaListRequestsParams) isListRequestsParams()     {}

// DiffParams is the parameter variant for ReviewProvider.GetRequestDiff.
type DiffParams interface {
	Kind() models.ProviderKind
	isDiffParams()
}

type OBSDiffParams struct {
	RequestID string
}

func (OBSDiffParams) Kind() models.ProviderKind { return models.KindOBS }
func (OBSDiffParams) isDiffParams()             {}

type GiteaDiffParams struct {
	RequestID  string
	Repository string
}

func (GiteaDiffParams) Kind() models.ProviderKind { return models.KindGitea }
func (GiteaDiffParams) isDiffParams()             {}

// ApproveParams is the parameter variant for ReviewProvider.ApproveRequest.
type ApproveParams interface {
	Kind() models.ProviderKind
	isApproveParams()
}

type OBSApproveParams struct {
	RequestID string
	Bugowner  bool
}

func (OBSApproveParams) Kind() models.ProviderKind { return models.KindOBS }
func (OBSApproveParams) isApproveParams()          {}

type GiteaApproveParams struct {
	RequestID  string
	Repository string
	Reviewer   string
}

func (GiteaApproveParams) Kind() models.ProviderKind { return models.KindGitea }
func (GiteaApproveParams) isApproveParams()          {}
