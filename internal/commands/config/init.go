package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rentec/pr-migrations/internal/config"
	"github.com/rentec/pr-migrations/internal/i18n"
	"github.com/rentec/pr-migrations/internal/logger"
	"github.com/rentec/pr-migrations/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newInitCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: t.GetMessage("config.init_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   t.GetMessage("config.force_usage", 0, nil),
			},
		},
		Action: initConfigAction(cfg, t),
	}
}

// initConfigAction writes the defaults only. Values taken from the environment
// are never written.
func initConfigAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		path := cfg.PathFile
		if path == "" {
			path = config.DefaultPath
		}
		data := struct{ Path string }{path}

		if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
			return errors.New(t.GetMessage("config.exists", 0, data))
		} else if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to check %s: %w", path, err)
		}

		defaults := config.Default()
		defaults.Language = cfg.Language
		defaults.PathFile = path

		if err := config.SaveConfig(defaults); err != nil {
			logger.Error(ctx, "failed to write configuration", err, "path", path)
			return err
		}

		ui.PrintSuccess(cmd.Root().Writer, t.GetMessage("config.saved", 0, data))
		return nil
	}
}
