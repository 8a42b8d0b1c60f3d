package artifacts

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"sync/atomic"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/thomas-vilte/relx/internal/config"
	apperrors "github.com/thomas-vilte/relx/internal/errors"
	"github.com/thomas-vilte/relx/internal/i18n"
	"github.com/thomas-vilte/relx/internal/logger"
	"github.com/thomas-vilte/relx/internal/models"
	"github.com/thomas-vilte/relx/internal/ui"
)

// maxConcurrentRepos bounds how many repositories are searched at once.
const maxConcurrentRepos = 4

// artifactProvider is a minimal interface for testing purposes
type artifactProvider interface {
	ListPackages(ctx context.Context, project string) ([]string, error)
	ListArtifacts(ctx context.Context, project string, packages []string, repo models.RepoFilter, onProgress func()) iter.Seq2[string, error]
}

type ArtifactsCommandFactory struct {
	provider artifactProvider
	out      io.Writer
}

func NewArtifactsCommandFactory(provider artifactProvider) *ArtifactsCommandFactory {
	return &ArtifactsCommandFactory{
		provider: provider,
		out:      os.Stdout,
	}
}

func (f *ArtifactsCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:   "artifacts",
		Usage:  t.GetMessage("artifacts_command_usage", 0, nil),
		Flags:  f.createFlags(cfg, t),
		Action: f.createAction(cfg, t),
	}
}

func (f *ArtifactsCommandFactory) createFlags(cfg *config.Config, t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "project",
			Aliases: []string{"p"},
			Value:   cfg.DefaultProject,
			Usage:   t.GetMessage("artifacts_project_flag_usage", 0, nil),
		},
	}
}

func (f *ArtifactsCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		project := command.String("project")
		if project == "" {
			return apperrors.NewInvalidArgument("--project is required")
		}

		logger.Info(ctx, "executing artifacts command", "project", project)

		spinner := ui.NewSmartSpinner(t.GetMessage("artifacts_listing_packages", 0, nil))
		spinner.Start()

		packages, err := f.provider.ListPackages(ctx, project)
		if err != nil {
			spinner.Stop()
			return err
		}

		repos := cfg.Artifacts.RepoInfo
		results := f.searchRepos(ctx, t, spinner, project, packages, repos)
		spinner.Stop()

		return f.report(t, repos, results)
	}
}

type repoResult struct {
	artifacts []string
	err       error
}

// searchRepos collects the artifacts of every configured repository with a
// bounded worker pool. A failing repository records its error and does not
// stop the others.
func (f *ArtifactsCommandFactory) searchRepos(ctx context.Context, t *i18n.Translations, spinner *ui.SmartSpinner, project string, packages []string, repos []config.RepoInfo) []repoResult {
	total := len(packages) * len(repos)
	var done atomic.Int64
	onProgress := func() {
		spinner.UpdateMessage(t.GetMessage("artifacts_progress", 0, map[string]interface{}{
			"Done":  done.Add(1),
			"Total": total,
		}))
	}

	results := make([]repoResult, len(repos))

	var group errgroup.Group
	group.SetLimit(maxConcurrentRepos)
	for i, repo := range repos {
		group.Go(func() error {
			filter := models.RepoFilter{Name: repo.Name, Pattern: repo.Pattern}
			for artifact, err := range f.provider.ListArtifacts(ctx, project, packages, filter, onProgress) {
				if err != nil {
					results[i].err = err
					return nil
				}
				results[i].artifacts = append(results[i].artifacts, artifact)
			}
			return nil
		})
	}
	_ = group.Wait()

	return results
}

func (f *ArtifactsCommandFactory) report(t *i18n.Translations, repos []config.RepoInfo, results []repoResult) error {
	var failed bool
	for i, result := range results {
		if result.err != nil {
			failed = true
			ui.PrintWarning(f.out, t.GetMessage("artifacts_repo_failed", 0, map[string]interface{}{
				"Repo":  repos[i].Name,
				"Error": result.err.Error(),
			}))
			continue
		}
		for _, artifact := range result.artifacts {
			_, _ = fmt.Fprintln(f.out, artifact)
		}
	}

	if failed {
		return apperrors.NewBackend("some repositories could not be searched", nil)
	}
	return nil
}
