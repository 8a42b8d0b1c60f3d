package obs

import (
	"context"
	"iter"
	"regexp"
	"strings"

	apperrors "github.com/thomas-vilte/relx/internal/errors"
	"github.com/thomas-vilte/relx/internal/logger"
	"github.com/thomas-vilte/relx/internal/models"
	"github.com/thomas-vilte/relx/internal/runner"
)

// ArtifactProvider implements providers.ArtifactProvider against the Open
// Build Service through the osc client.
type ArtifactProvider struct {
	apiURL            string
	invalidStart      []string
	invalidExtensions []string
	runner            runner.Runner
}

func NewArtifactProvider(apiURL string, invalidStart, invalidExtensions []string, run runner.Runner) *ArtifactProvider {
	return &ArtifactProvider{
		apiURL:            apiURL,
		invalidStart:      invalidStart,
		invalidExtensions: invalidExtensions,
		runner:            run,
	}
}

// ListPackages returns all source packages of a project in backend order.
func (p *ArtifactProvider) ListPackages(ctx context.Context, project string) ([]string, error) {
	logger.Debug(ctx, "listing packages", "project", project)

	out, err := p.runner.Run(ctx, []string{"osc", "-A", p.apiURL, "ls", project})
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

// ListArtifacts lazily yields the built artifact paths of every package
// matching the repository pattern. onProgress fires once per package,
// matched or not, and may be called from concurrent invocations.
func (p *ArtifactProvider) ListArtifacts(ctx context.Context, project string, packages []string, repo models.RepoFilter, onProgress func()) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		pattern, err := regexp.Compile(repo.Pattern)
		if err != nil {
			yield("", apperrors.NewInvalidArgument("invalid repository pattern: "+repo.Pattern))
			return
		}
		logger.Debug(ctx, "listing artifacts", "repository", repo.Name, "pattern", repo.Pattern)

		for _, pkg := range packages {
			if pattern.MatchString(pkg) {
				args := []string{"osc", "-A", p.apiURL, "ls", project, pkg, "-b", "-r", repo.Name}
				for line, err := range p.runner.Stream(ctx, args) {
					if err != nil {
						yield("", err)
						return
					}
					artifact := strings.TrimSpace(line)
					if p.isNoise(artifact, repo.Name) {
						continue
					}
					if !yield(artifact, nil) {
						return
					}
				}
			}
			if onProgress != nil {
				onProgress()
			}
		}
	}
}

func (p *ArtifactProvider) isNoise(line, repoName string) bool {
	if line == "" || strings.HasPrefix(line, repoName+"/") {
		return true
	}
	for _, prefix := range p.invalidStart {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	for _, ext := range p.invalidExtensions {
		if strings.HasSuffix(line, ext) {
			return true
		}
	}
	return false
}
