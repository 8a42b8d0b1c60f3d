package packages

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/thomas-vilte/relx/internal/config"
	apperrors "github.com/thomas-vilte/relx/internal/errors"
	"github.com/thomas-vilte/relx/internal/i18n"
	"github.com/thomas-vilte/relx/internal/logger"
	"github.com/thomas-vilte/relx/internal/models"
	"github.com/thomas-vilte/relx/internal/ui"
)

// packageProvider is a minimal interface for testing purposes
type packageProvider interface {
	GetSourcePackage(ctx context.Context, project, binary string) (string, error)
	IsShipped(ctx context.Context, pkg, productComposer string) (bool, error)
	GetBugowner(ctx context.Context, pkg string) ([]string, bool, error)
}

// userProvider is a minimal interface for testing purposes
type userProvider interface {
	GetEntityInfo(ctx context.Context, name string, isGroup bool) (models.Entity, error)
}

type PackagesCommandFactory struct {
	packages packageProvider
	users    userProvider
	out      io.Writer
}

func NewPackagesCommandFactory(packages packageProvider, users userProvider) *PackagesCommandFactory {
	return &PackagesCommandFactory{
		packages: packages,
		users:    users,
		out:      os.Stdout,
	}
}

func (f *PackagesCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "packages",
		Usage:     t.GetMessage("packages_command_usage", 0, nil),
		ArgsUsage: "BINARY...",
		Flags:     f.createFlags(cfg, t),
		Action:    f.createAction(cfg, t),
	}
}

func (f *PackagesCommandFactory) createFlags(cfg *config.Config, t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "project",
			Aliases: []string{"p"},
			Value:   cfg.DefaultProject,
			Usage:   t.GetMessage("packages_project_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    "product",
			Aliases: []string{"P"},
			Value:   cfg.DefaultProduct,
			Usage:   t.GetMessage("packages_product_flag_usage", 0, nil),
		},
	}
}

func (f *PackagesCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		binaries := command.Args().Slice()
		if len(binaries) == 0 {
			return apperrors.NewInvalidArgument("at least one binary name is required")
		}

		project := command.String("project")
		if project == "" {
			return apperrors.NewInvalidArgument("--project is required")
		}
		product := command.String("product")
		composer := cfg.DefaultProduct + cfg.DefaultProductComposer

		logger.Info(ctx, "executing packages command",
			"project", project, "product", product, "binaries", binaries)

		// One failing binary must not abort the rest.
		for _, binary := range binaries {
			if err := f.reportBinary(ctx, t, project, product, composer, binary); err != nil {
				logger.Error(ctx, "package lookup failed", err, "binary", binary)
				ui.PrintError(f.out, err.Error())
			}
		}
		return nil
	}
}

func (f *PackagesCommandFactory) reportBinary(ctx context.Context, t *i18n.Translations, project, product, composer, binary string) error {
	spinner := ui.NewSmartSpinner(t.GetMessage("packages_fetching", 0, map[string]interface{}{
		"Binary": binary,
	}))
	spinner.Start()

	source, err := f.packages.GetSourcePackage(ctx, project, binary)
	if err != nil {
		spinner.Stop()
		return err
	}

	shipped, err := f.packages.IsShipped(ctx, binary, composer)
	if err != nil {
		spinner.Stop()
		return err
	}

	bugowners, isGroup, err := f.packages.GetBugowner(ctx, source)
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.Stop()

	rows := []models.InfoRow{
		{Key: t.GetMessage("packages_source_package", 0, nil), Value: source},
		{Key: t.GetMessage("packages_shipped", 0, nil), Value: f.shippedValue(t, shipped, product)},
	}

	for _, bugowner := range bugowners {
		entity, err := f.users.GetEntityInfo(ctx, bugowner, isGroup)
		if err != nil {
			return err
		}
		rows = append(rows, entity.InfoRows()...)
	}

	ui.PrintInfoTable(f.out, binary, rows)
	return nil
}

func (f *PackagesCommandFactory) shippedValue(t *i18n.Translations, shipped bool, product string) string {
	if shipped {
		return t.GetMessage("packages_shipped_yes", 0, map[string]interface{}{
			"Product": product,
		})
	}
	return t.GetMessage("packages_shipped_no", 0, nil)
}
