package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/thomas-vilte/relx/internal/commands/artifacts"
	"github.com/thomas-vilte/relx/internal/commands/packages"
	"github.com/thomas-vilte/relx/internal/commands/reviews"
	"github.com/thomas-vilte/relx/internal/commands/users"
	cfg "github.com/thomas-vilte/relx/internal/config"
	apperrors "github.com/thomas-vilte/relx/internal/errors"
	"github.com/thomas-vilte/relx/internal/i18n"
	"github.com/thomas-vilte/relx/internal/logger"
	"github.com/thomas-vilte/relx/internal/models"
	"github.com/thomas-vilte/relx/internal/providers"
	providerRegistry "github.com/thomas-vilte/relx/internal/providers/registry"
	"github.com/thomas-vilte/relx/internal/registry"
	"github.com/thomas-vilte/relx/internal/runner"
	"github.com/thomas-vilte/relx/internal/ui"
	"github.com/thomas-vilte/relx/internal/version"
)

func main() {
	app, translations, err := initializeApp(os.Args)
	if err != nil {
		log.Fatalf("Error starting the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, apperrors.ErrUserCancelled) {
			_, _ = fmt.Fprintln(os.Stderr, translations.GetMessage("operation_cancelled", 0, nil))
			os.Exit(0)
		}
		ui.HandleAppError(err, translations)
		os.Exit(1)
	}
}

func initializeApp(args []string) (*cli.Command, *i18n.Translations, error) {
	configPath, err := cfg.ConfigPath()
	if err != nil {
		return nil, nil, err
	}

	cfgApp, err := cfg.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading translations: %w", err)
	}

	// --apiurl and --debug shape the providers and the logger, both of which
	// exist before the command line is parsed, so they are read up front. The
	// flags are still declared on the root command for help and validation.
	apiURL, debug := bootstrapArgs(args, cfgApp)
	logger.Initialize(debug, false)

	run := runner.New()

	artifactProvider := providerRegistry.NewArtifactProvider(apiURL, cfgApp.Artifacts, run)
	packageProvider := providerRegistry.NewPackageProvider(apiURL, run)
	userProvider := providerRegistry.NewUserProvider(apiURL, run)
	reviewProviderFor := func(kind models.ProviderKind) (providers.ReviewProvider, error) {
		if kind == models.KindOBS && apiURL == "" {
			return nil, apperrors.ErrNoAPIURL
		}
		return providerRegistry.NewReviewProvider(kind, apiURL, run)
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("artifacts", artifacts.NewArtifactsCommandFactory(artifactProvider)); err != nil {
		return nil, nil, fmt.Errorf("error registering the 'artifacts' command: %w", err)
	}

	if err := registerCommand.Register("packages", packages.NewPackagesCommandFactory(packageProvider, userProvider)); err != nil {
		return nil, nil, fmt.Errorf("error registering the 'packages' command: %w", err)
	}

	if err := registerCommand.Register("reviews", reviews.NewReviewsCommandFactory(reviewProviderFor)); err != nil {
		return nil, nil, fmt.Errorf("error registering the 'reviews' command: %w", err)
	}

	if err := registerCommand.Register("users", users.NewUsersCommandFactory(userProvider)); err != nil {
		return nil, nil, fmt.Errorf("error registering the 'users' command: %w", err)
	}

	commands := registerCommand.CreateCommands()

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	app := &cli.Command{
		Name:        "relx",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.Version,
		Description: translations.GetMessage("app_description", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "apiurl",
				Aliases: []string{"A"},
				Value:   cfgApp.APIURL,
				Usage:   translations.GetMessage("apiurl_flag_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Value:   cfgApp.Debug,
				Usage:   translations.GetMessage("debug_flag_usage", 0, nil),
			},
		},
		Commands: commands,
	}
	return app, translations, nil
}

// bootstrapArgs resolves the API URL and debug switch from the raw arguments,
// falling back to the configuration file.
func bootstrapArgs(args []string, cfgApp *cfg.Config) (string, bool) {
	apiURL := cfgApp.APIURL
	debug := cfgApp.Debug

	for i, arg := range args {
		switch arg {
		case "--apiurl", "-A":
			if i+1 < len(args) {
				apiURL = args[i+1]
			}
		case "--debug", "-d":
			debug = true
		}
	}
	return apiURL, debug
}
