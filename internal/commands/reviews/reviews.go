package reviews

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/urfave/cli/v3"

	"github.com/thomas-vilte/relx/internal/config"
	apperrors "github.com/thomas-vilte/relx/internal/errors"
	"github.com/thomas-vilte/relx/internal/i18n"
	"github.com/thomas-vilte/relx/internal/logger"
	"github.com/thomas-vilte/relx/internal/models"
	"github.com/thomas-vilte/relx/internal/providers"
	"github.com/thomas-vilte/relx/internal/ui"
)

// providerFunc builds the review provider once the backend kind is known.
type providerFunc func(kind models.ProviderKind) (providers.ReviewProvider, error)

type ReviewsCommandFactory struct {
	newProvider providerFunc
	prompter    ui.Prompter
	pager       func(ctx context.Context, w io.Writer, body string) error
	out         io.Writer
}

func NewReviewsCommandFactory(newProvider providerFunc) *ReviewsCommandFactory {
	return &ReviewsCommandFactory{
		newProvider: newProvider,
		prompter:    ui.NewStdinPrompter(os.Stdin, os.Stdout),
		pager: func(ctx context.Context, w io.Writer, body string) error {
			return ui.PageText(ctx, w, ui.DefaultPager, body)
		},
		out: os.Stdout,
	}
}

func (f *ReviewsCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:   "reviews",
		Usage:  t.GetMessage("reviews_command_usage", 0, nil),
		Flags:  f.createFlags(t),
		Action: f.createAction(t),
	}
}

func (f *ReviewsCommandFactory) createFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "project",
			Aliases: []string{"p"},
			Usage:   t.GetMessage("reviews_project_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    "staging",
			Aliases: []string{"s"},
			Usage:   t.GetMessage("reviews_staging_flag_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:    "bugowner",
			Aliases: []string{"b"},
			Usage:   t.GetMessage("reviews_bugowner_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:  "repository",
			Usage: t.GetMessage("reviews_repository_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:  "branch",
			Usage: t.GetMessage("reviews_branch_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:  "reviewer",
			Usage: t.GetMessage("reviews_reviewer_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:  "prs",
			Usage: t.GetMessage("reviews_prs_flag_usage", 0, nil),
		},
	}
}

func (f *ReviewsCommandFactory) createAction(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		opts := options{
			project:    command.String("project"),
			staging:    command.String("staging"),
			bugowner:   command.Bool("bugowner"),
			repository: command.String("repository"),
			branch:     command.String("branch"),
			reviewer:   command.String("reviewer"),
			prs:        command.String("prs"),
		}

		kind, prIDs, err := opts.validate()
		if err != nil {
			return err
		}

		logger.Info(ctx, "executing reviews command", "backend", string(kind))

		provider, err := f.newProvider(kind)
		if err != nil {
			return err
		}

		flow := &Flow{
			provider: provider,
			prompter: f.prompter,
			pager:    f.pager,
			out:      f.out,
		}
		return flow.Run(ctx, t, opts, kind, prIDs)
	}
}

// options carries the review flags of both backends; validate decides which
// backend they select.
type options struct {
	project  string
	staging  string
	bugowner bool

	repository string
	branch     string
	reviewer   string
	prs        string
}

// validate rejects mixed or incomplete backend selections and returns the
// selected backend plus the normalized request-ID filter.
func (o options) validate() (models.ProviderKind, []string, error) {
	isOBS := o.project != ""
	isGitea := o.repository != "" && o.branch != "" && o.reviewer != ""

	if isOBS && isGitea {
		return "", nil, apperrors.ErrBothBackendArgs
	}
	if (o.staging != "" || o.bugowner) && !isOBS {
		return "", nil, apperrors.ErrStagingRequiresProject
	}
	if o.staging != "" && !validStaging(o.staging) {
		return "", nil, apperrors.ErrInvalidStaging
	}
	if o.prs != "" && !isGitea {
		return "", nil, apperrors.ErrPrsRequireGitea
	}
	if !isOBS && !isGitea {
		return "", nil, apperrors.ErrNoBackendArgs
	}

	prIDs, err := parsePrList(o.prs)
	if err != nil {
		return "", nil, err
	}

	if isGitea {
		return models.KindGitea, prIDs, nil
	}
	return models.KindOBS, prIDs, nil
}

// validStaging accepts exactly one alphabetic character.
func validStaging(staging string) bool {
	runes := []rune(staging)
	return len(runes) == 1 && unicode.IsLetter(runes[0])
}

// parsePrList normalizes a comma-separated ID list, so "07" and "7" select
// the same request.
func parsePrList(prs string) ([]string, error) {
	if prs == "" {
		return nil, nil
	}

	var ids []string
	for _, part := range strings.Split(prs, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, apperrors.ErrInvalidPrList
		}
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	return ids, nil
}

func (o options) listParams(kind models.ProviderKind) providers.ListRequestsParams {
	if kind == models.KindGitea {
		return providers.GiteaListRequestsParams{
			Reviewer:   o.reviewer,
			Branch:     o.branch,
			Repository: o.repository,
		}
	}
	return providers.OBSListRequestsParams{
		Project:  o.project,
		Staging:  o.staging,
		Bugowner: o.bugowner,
	}
}

func (o options) diffParams(kind models.ProviderKind, requestID string) providers.DiffParams {
	if kind == models.KindGitea {
		return providers.GiteaDiffParams{
			RequestID:  requestID,
			Repository: o.repository,
		}
	}
	return providers.OBSDiffParams{RequestID: requestID}
}

func (o options) approveParams(kind models.ProviderKind, requestID string) providers.ApproveParams {
	if kind == models.KindGitea {
		return providers.GiteaApproveParams{
			RequestID:  requestID,
			Repository: o.repository,
			Reviewer:   o.reviewer,
		}
	}
	return providers.OBSApproveParams{
		RequestID: requestID,
		Bugowner:  o.bugowner,
	}
}
