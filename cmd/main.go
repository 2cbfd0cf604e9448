package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/rentec/pr-migrations/internal/cli/registry"
	configcmd "github.com/rentec/pr-migrations/internal/commands/config"
	"github.com/rentec/pr-migrations/internal/commands/pull_requests"
	cfg "github.com/rentec/pr-migrations/internal/config"
	"github.com/rentec/pr-migrations/internal/git"
	"github.com/rentec/pr-migrations/internal/i18n"
	"github.com/rentec/pr-migrations/internal/logger"
	"github.com/rentec/pr-migrations/internal/ui"
	"github.com/rentec/pr-migrations/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := cfg.LoadEnvFile(); err != nil {
		log.Printf("Warning: %v", err)
	}

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error initializing the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, error) {
	lang := os.Getenv("PR_MIGRATIONS_LANG")
	if !cfg.IsSupportedLanguage(lang) {
		lang = cfg.LangEN
	}

	translations, err := i18n.NewTranslations(lang, "")
	if err != nil {
		return nil, fmt.Errorf("error loading translations: %w", err)
	}

	// Commands hold this pointer; Before fills it once --config is parsed.
	cfgApp := cfg.Default()

	provider := pull_requests.NewGitHubServiceProvider(cfgApp, git.NewGitService())

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("sync", pull_requests.NewSyncCommand(provider)); err != nil {
		return nil, fmt.Errorf("error registering command 'sync': %w", err)
	}

	if err := registerCommand.Register("preview", pull_requests.NewPreviewCommand(provider)); err != nil {
		return nil, fmt.Errorf("error registering command 'preview': %w", err)
	}

	if err := registerCommand.Register("config", configcmd.NewConfigCommandFactory()); err != nil {
		return nil, fmt.Errorf("error registering command 'config': %w", err)
	}

	return &cli.Command{
		Name:        "pr-migrations",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.Version,
		Description: translations.GetMessage("app_description", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   cfg.DefaultPath,
				Usage:   translations.GetMessage("config_flag_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: translations.GetMessage("debug_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: translations.GetMessage("verbose_usage", 0, nil),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))

			loaded, err := cfg.LoadConfig(cmd.String("config"))
			if err != nil {
				ui.HandleAppError(err, translations)
				return ctx, err
			}
			*cfgApp = *loaded

			if err := translations.SetLanguage(cfgApp.Language); err != nil {
				logger.Warn(ctx, "language not available, keeping the default", "language", cfgApp.Language)
			}

			logger.Debug(ctx, "configuration loaded",
				"path", cfgApp.PathFile,
				"repository", cfgApp.Repository(),
				"summary_style", cfgApp.SummaryStyle)

			return ctx, nil
		},
		Commands:              registerCommand.CreateCommands(),
		EnableShellCompletion: true,
	}, nil
}
