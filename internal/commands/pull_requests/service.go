package pull_requests

import (
	"context"

	"github.com/rentec/pr-migrations/internal/config"
	"github.com/rentec/pr-migrations/internal/logger"
	"github.com/rentec/pr-migrations/internal/models"
	"github.com/rentec/pr-migrations/internal/services"
	"github.com/rentec/pr-migrations/internal/vcs/github"
)

// MigrationService is the part of services.MigrationService the commands use.
type MigrationService interface {
	Sync(ctx context.Context, prNumber int) (models.SyncResult, error)
	Preview(ctx context.Context, prNumber int) (models.SyncResult, error)
}

// ServiceOptions carries the per-run overrides taken from flags.
type ServiceOptions struct {
	Repo   string
	Style  string
	DryRun bool
}

// MigrationServiceProvider builds a MigrationService on demand, once flags are parsed.
type MigrationServiceProvider func(ctx context.Context, opts ServiceOptions) (MigrationService, error)

// RepoDetector finds the repository of the local clone.
type RepoDetector interface {
	GetRepoInfo(ctx context.Context) (string, string, error)
}

// NewGitHubServiceProvider returns a provider backed by the GitHub REST API.
// Overrides apply to a copy of cfg. When neither flags nor configuration name a
// repository, detector (optional) is asked for the origin remote.
func NewGitHubServiceProvider(cfg *config.Config, detector RepoDetector) MigrationServiceProvider {
	return func(ctx context.Context, opts ServiceOptions) (MigrationService, error) {
		runCfg := *cfg
		if opts.Repo != "" {
			if err := runCfg.SetRepository(opts.Repo); err != nil {
				return nil, err
			}
		}
		if runCfg.Repository() == "" && detector != nil {
			owner, repo, err := detector.GetRepoInfo(ctx)
			if err != nil {
				logger.Debug(ctx, "no repository from git remote", "error", err)
			} else {
				runCfg.Owner, runCfg.Repo = owner, repo
			}
		}
		if opts.Style != "" {
			runCfg.SummaryStyle = opts.Style
		}
		if err := runCfg.ValidateForSync(); err != nil {
			return nil, err
		}

		client, err := github.NewGitHubClient(runCfg.Owner, runCfg.Repo, runCfg.Token, runCfg.APIURL)
		if err != nil {
			return nil, err
		}

		return services.NewMigrationService(
			services.WithMigrationVCSClient(client),
			services.WithMigrationConfig(&runCfg),
			services.WithDryRun(opts.DryRun),
		), nil
	}
}
