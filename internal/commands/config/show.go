package config

import (
	"context"
	"strings"

	"github.com/rentec/pr-migrations/internal/config"
	"github.com/rentec/pr-migrations/internal/i18n"
	"github.com/rentec/pr-migrations/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config.show_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer

			token := t.GetMessage("config.token_unset", 0, nil)
			if cfg.Token != "" {
				token = t.GetMessage("config.token_set", 0, nil)
			}

			ui.PrintSectionBanner(w, cfg.PathFile)
			ui.PrintKeyValues(w, map[string]string{
				"repository":        orDash(cfg.Repository()),
				"server_url":        orDash(cfg.ServerURL),
				"api_url":           orDash(cfg.APIURL),
				"migrations_path":   cfg.MigrationsPath,
				"summary_style":     cfg.SummaryStyle,
				"language":          cfg.Language,
				"label.name":        cfg.Label.Name,
				"label.color":       cfg.Label.Color,
				"label.description": cfg.Label.Description,
				"token":             token,
			})
			return nil
		},
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
