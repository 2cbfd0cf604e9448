package pull_requests

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rentec/pr-migrations/internal/commands/completion_helper"
	cfg "github.com/rentec/pr-migrations/internal/config"
	"github.com/rentec/pr-migrations/internal/i18n"
	"github.com/rentec/pr-migrations/internal/logger"
	"github.com/rentec/pr-migrations/internal/models"
	"github.com/rentec/pr-migrations/internal/ui"
	"github.com/urfave/cli/v3"
)

type SyncCommand struct {
	provider MigrationServiceProvider
}

func NewSyncCommand(provider MigrationServiceProvider) *SyncCommand {
	return &SyncCommand{
		provider: provider,
	}
}

func (c *SyncCommand) CreateCommand(t *i18n.Translations, config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: t.GetMessage("sync.usage", 0, nil),
		Flags: append(commonFlags(t),
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: t.GetMessage("sync.dry_run_usage", 0, nil),
			},
		),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			start := time.Now()

			prNumber, err := cfg.ResolvePRNumber(cmd.Int("pr-number"))
			if err != nil {
				ui.HandleAppError(err, t)
				return err
			}

			dryRun := cmd.Bool("dry-run")
			log.Info("executing sync command",
				"pr_number", prNumber,
				"dry_run", dryRun)

			service, err := c.provider(ctx, ServiceOptions{
				Repo:   cmd.String("repo"),
				Style:  cmd.String("style"),
				DryRun: dryRun,
			})
			if err != nil {
				log.Error("failed to create migration service",
					"error", err,
					"duration_ms", time.Since(start).Milliseconds())
				ui.HandleAppError(err, t)
				return fmt.Errorf(t.GetMessage("error.service_creation", 0, nil)+": %w", err)
			}

			result, err := service.Sync(ctx, prNumber)
			if err != nil {
				log.Error("failed to sync pull request",
					"error", err,
					"pr_number", prNumber,
					"duration_ms", time.Since(start).Milliseconds())
				ui.HandleAppError(err, t)
				return fmt.Errorf(t.GetMessage("error.sync_failed", 0, nil)+": %w", err)
			}

			log.Info("pull request synced",
				"pr_number", prNumber,
				"migrations_count", len(result.Migrations),
				"duration_ms", time.Since(start).Milliseconds())

			printSyncResult(cmd.Root().Writer, t, config.Label.Name, result)
			return nil
		},
	}
}

func commonFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "pr-number",
			Aliases: []string{"n"},
			Usage:   t.GetMessage("sync.pr_number_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   t.GetMessage("sync.repo_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:  "style",
			Usage: t.GetMessage("sync.style_usage", 0, nil),
		},
	}
}

func printSyncResult(w io.Writer, t *i18n.Translations, label string, result models.SyncResult) {
	ui.PrintInfo(w, t.GetMessage("sync.detected", len(result.Migrations), struct {
		Number int
		Count  int
	}{result.PRNumber, len(result.Migrations)}))

	if result.BodyChanged {
		ui.PrintSuccess(w, t.GetMessage("sync.body_updated", 0, nil))
	} else {
		ui.PrintInfo(w, t.GetMessage("sync.body_unchanged", 0, nil))
	}

	data := struct{ Label string }{label}
	if result.LabelCreated {
		ui.PrintSuccess(w, t.GetMessage("sync.label_created", 0, data))
	}
	switch result.LabelAction {
	case models.LabelAdded:
		ui.PrintSuccess(w, t.GetMessage("sync.label_added", 0, data))
	case models.LabelRemoved:
		ui.PrintSuccess(w, t.GetMessage("sync.label_removed", 0, data))
	default:
		ui.PrintInfo(w, t.GetMessage("sync.label_unchanged", 0, data))
	}

	if result.DryRun {
		ui.PrintWarning(w, t.GetMessage("sync.dry_run_notice", 0, nil))
	}
}
