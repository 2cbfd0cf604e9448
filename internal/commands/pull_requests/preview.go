package pull_requests

import (
	"context"
	"fmt"

	"github.com/rentec/pr-migrations/internal/commands/completion_helper"
	cfg "github.com/rentec/pr-migrations/internal/config"
	"github.com/rentec/pr-migrations/internal/i18n"
	"github.com/rentec/pr-migrations/internal/logger"
	"github.com/rentec/pr-migrations/internal/ui"
	"github.com/urfave/cli/v3"
)

type PreviewCommand struct {
	provider MigrationServiceProvider
}

func NewPreviewCommand(provider MigrationServiceProvider) *PreviewCommand {
	return &PreviewCommand{
		provider: provider,
	}
}

// CreateCommand builds "preview", which prints the section markdown to stdout so
// it can be piped or diffed.
func (c *PreviewCommand) CreateCommand(t *i18n.Translations, _ *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:          "preview",
		Usage:         t.GetMessage("preview.usage", 0, nil),
		Flags:         commonFlags(t),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			prNumber, err := cfg.ResolvePRNumber(cmd.Int("pr-number"))
			if err != nil {
				ui.HandleAppError(err, t)
				return err
			}

			logger.Info(ctx, "executing preview command", "pr_number", prNumber)

			service, err := c.provider(ctx, ServiceOptions{
				Repo:   cmd.String("repo"),
				Style:  cmd.String("style"),
				DryRun: true,
			})
			if err != nil {
				ui.HandleAppError(err, t)
				return fmt.Errorf(t.GetMessage("error.service_creation", 0, nil)+": %w", err)
			}

			result, err := service.Preview(ctx, prNumber)
			if err != nil {
				ui.HandleAppError(err, t)
				return fmt.Errorf(t.GetMessage("error.preview_failed", 0, nil)+": %w", err)
			}

			w := cmd.Root().Writer
			if result.Section == "" {
				ui.PrintInfo(w, t.GetMessage("preview.no_section", 0, nil))
				return nil
			}

			_, _ = fmt.Fprintln(w, result.Section)
			return nil
		},
	}
}
