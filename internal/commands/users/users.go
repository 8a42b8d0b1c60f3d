package users

import (
	"context"
	"io"
	"iter"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/thomas-vilte/relx/internal/config"
	apperrors "github.com/thomas-vilte/relx/internal/errors"
	"github.com/thomas-vilte/relx/internal/i18n"
	"github.com/thomas-vilte/relx/internal/logger"
	"github.com/thomas-vilte/relx/internal/models"
	"github.com/thomas-vilte/relx/internal/providers"
	"github.com/thomas-vilte/relx/internal/ui"
)

// userProvider is a minimal interface for testing purposes
type userProvider interface {
	GetUser(ctx context.Context, searchText string, searchBy providers.SearchBy) iter.Seq2[models.User, error]
	GetGroup(ctx context.Context, name string, includeMembers bool) (*models.Group, error)
}

type UsersCommandFactory struct {
	provider userProvider
	out      io.Writer
}

func NewUsersCommandFactory(provider userProvider) *UsersCommandFactory {
	return &UsersCommandFactory{
		provider: provider,
		out:      os.Stdout,
	}
}

func (f *UsersCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "users",
		Usage:     t.GetMessage("users_command_usage", 0, nil),
		ArgsUsage: "SEARCH_TEXT",
		Flags:     f.createFlags(t),
		Action:    f.createAction(t),
	}
}

func (f *UsersCommandFactory) createFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "group",
			Aliases: []string{"g"},
			Usage:   t.GetMessage("users_group_flag_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:    "login",
			Aliases: []string{"l"},
			Usage:   t.GetMessage("users_login_flag_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:    "email",
			Aliases: []string{"e"},
			Usage:   t.GetMessage("users_email_flag_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:    "name",
			Aliases: []string{"n"},
			Usage:   t.GetMessage("users_name_flag_usage", 0, nil),
		},
	}
}

func (f *UsersCommandFactory) createAction(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		searchText := command.Args().First()
		if searchText == "" {
			return apperrors.NewInvalidArgument("search text is required")
		}

		isGroup, searchBy, err := searchMode(t, command)
		if err != nil {
			return err
		}

		logger.Info(ctx, "executing users command",
			"search_text", searchText, "group", isGroup, "search_by", string(searchBy))

		spinner := ui.NewSmartSpinner(t.GetMessage("users_running", 0, nil))
		spinner.Start()

		if isGroup {
			group, err := f.provider.GetGroup(ctx, searchText, true)
			spinner.Stop()
			if err != nil {
				return apperrors.NewNotFound(t.GetMessage("users_group_not_found", 0, map[string]interface{}{
					"Text": searchText,
				}), err)
			}
			ui.PrintInfoTable(f.out, searchText, group.InfoRows())
			return nil
		}

		var found bool
		for user, err := range f.provider.GetUser(ctx, searchText, searchBy) {
			if err != nil {
				spinner.Stop()
				return err
			}
			if !found {
				spinner.Stop()
				found = true
			}
			ui.PrintInfoTable(f.out, user.Login, user.InfoRows())
		}
		if !found {
			spinner.Stop()
			return apperrors.NewNotFound(t.GetMessage("users_user_not_found", 0, map[string]interface{}{
				"Text": searchText,
			}), nil)
		}
		return nil
	}
}

// searchMode maps the mutually exclusive flags to a search mode. Exactly one
// must be set.
func searchMode(t *i18n.Translations, command *cli.Command) (bool, providers.SearchBy, error) {
	modes := 0
	for _, flag := range []string{"group", "login", "email", "name"} {
		if command.Bool(flag) {
			modes++
		}
	}
	if modes != 1 {
		return false, "", apperrors.NewInvalidArgument(
			t.GetMessage("users_search_mode_required", 0, nil))
	}

	switch {
	case command.Bool("group"):
		return true, "", nil
	case command.Bool("login"):
		return false, providers.SearchByLogin, nil
	case command.Bool("email"):
		return false, providers.SearchByEmail, nil
	default:
		return false, providers.SearchByRealname, nil
	}
}
