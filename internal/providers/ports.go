package providers

import (
	"context"
	"iter"

	"github.com/thomas-vilte/relx/internal/models"
)

// SearchBy selects which user attribute a search matches against.
// Login and email are exact matches, realname is a contains match.
type SearchBy string

const (
	SearchByLogin    SearchBy = "login"
	SearchByEmail    SearchBy = "email"
	SearchByRealname SearchBy = "realname"
)

// ArtifactProvider lists source packages and the artifact files built for
// them.
type ArtifactProvider interface {
	// ListPackages returns all source package names of a project, in
	// backend order.
	ListPackages(ctx context.Context, project string) ([]string, error)

	// ListArtifacts lazily yields artifact paths for every package matching
	// the repository filter pattern. onProgress, when non-nil, is called
	// once per package processed (matched or not) and must be safe to call
	// from concurrent ListArtifacts invocations.
	ListArtifacts(ctx context.Context, project string, packages []string, repo models.RepoFilter, onProgress func()) iter.Seq2[string, error]
}

// UserProvider looks up users and groups.
type UserProvider interface {
	// GetUser lazily yields the users matching the search. An unknown
	// SearchBy value fails on first pull, before any backend call.
	GetUser(ctx context.Context, searchText string, searchBy SearchBy) iter.Seq2[models.User, error]

	// GetGroup returns a group's info; the member list is only populated
	// when includeMembers is set.
	GetGroup(ctx context.Context, name string, includeMembers bool) (*models.Group, error)

	// GetEntityInfo resolves a name as either a user or a group and fails
	// with a NOT_FOUND error when nothing matches.
	GetEntityInfo(ctx context.Context, name string, isGroup bool) (models.Entity, error)
}

// PackageProvider answers source-package, shipping and ownership questions
// about binary packages.
type PackageProvider interface {
	GetSourcePackage(ctx context.Context, project, binary string) (string, error)

	// IsShipped reports whether the package appears (whole word) in the
	// given product-composer manifest. It stops reading on the first match.
	IsShipped(ctx context.Context, pkg, productComposer string) (bool, error)

	// GetBugowner returns the bugowner names for a source package and
	// whether they are groups. No owner yields an empty list, not an error.
	GetBugowner(ctx context.Context, pkg string) ([]string, bool, error)
}

// ReviewProvider drives the review-request lifecycle of one backend. Params
// are closed sum types; a variant not matching the provider's backend is
// rejected with an INVALID_ARGUMENT error before any backend call.
type ReviewProvider interface {
	ListRequests(ctx context.Context, params ListRequestsParams) ([]models.Request, error)
	GetRequestDiff(ctx context.Context, params DiffParams) (string, error)
	ApproveRequest(ctx context.Context, params ApproveParams) ([]string, error)
}
