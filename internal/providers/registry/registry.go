package registry

import (
	"fmt"

	"github.com/thomas-vilte/relx/internal/config"
	apperrors "github.com/thomas-vilte/relx/internal/errors"
	"github.com/thomas-vilte/relx/internal/models"
	"github.com/thomas-vilte/relx/internal/providers"
	"github.com/thomas-vilte/relx/internal/providers/gitea"
	"github.com/thomas-vilte/relx/internal/providers/obs"
	"github.com/thomas-vilte/relx/internal/runner"
)

// NewReviewProvider builds the review provider for the given backend kind.
// The kind is computed once at command entry, never inferred per call.
func NewReviewProvider(kind models.ProviderKind, apiURL string, run runner.Runner) (providers.ReviewProvider, error) {
	switch kind {
	case models.KindOBS:
		return obs.NewReviewProvider(apiURL, run), nil
	case models.KindGitea:
		return gitea.NewReviewProvider(run), nil
	default:
		return nil, apperrors.NewInvalidArgument(fmt.Sprintf("unknown review provider: %s", kind))
	}
}

func NewArtifactProvider(apiURL string, artifacts config.ArtifactsConfig, run runner.Runner) providers.ArtifactProvider {
	return obs.NewArtifactProvider(apiURL, artifacts.InvalidStart, artifacts.InvalidExtensions, run)
}

func NewUserProvider(apiURL string, run runner.Runner) providers.UserProvider {
	return obs.NewUserProvider(apiURL, run)
}

func NewPackageProvider(apiURL string, run runner.Runner) providers.PackageProvider {
	return obs.NewPackageProvider(apiURL, run)
}
