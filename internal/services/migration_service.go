package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rentec/pr-migrations/internal/config"
	domainErrors "github.com/rentec/pr-migrations/internal/errors"
	"github.com/rentec/pr-migrations/internal/logger"
	"github.com/rentec/pr-migrations/internal/migrations"
	"github.com/rentec/pr-migrations/internal/models"
	"github.com/rentec/pr-migrations/internal/vcs"
)

// MigrationService reconciles a pull request description and label with the
// migrations it adds. Every run re-derives its state from the API, so running it
// again on the same pull request writes nothing.
type MigrationService struct {
	vcsClient vcs.PullRequestClient
	config    *config.Config
	dryRun    bool
}

type MigrationOption func(*MigrationService)

func WithMigrationVCSClient(client vcs.PullRequestClient) MigrationOption {
	return func(s *MigrationService) {
		s.vcsClient = client
	}
}

func WithMigrationConfig(cfg *config.Config) MigrationOption {
	return func(s *MigrationService) {
		s.config = cfg
	}
}

// WithDryRun makes Sync read from the API but skip every write.
func WithDryRun(dryRun bool) MigrationOption {
	return func(s *MigrationService) {
		s.dryRun = dryRun
	}
}

func NewMigrationService(opts ...MigrationOption) *MigrationService {
	s := &MigrationService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.config == nil {
		s.config = config.Default()
	}
	return s
}

// Sync updates the pull request body section and label.
func (s *MigrationService) Sync(ctx context.Context, prNumber int) (models.SyncResult, error) {
	return s.reconcile(ctx, prNumber, s.dryRun)
}

// Preview computes what Sync would do without writing anything.
func (s *MigrationService) Preview(ctx context.Context, prNumber int) (models.SyncResult, error) {
	return s.reconcile(ctx, prNumber, true)
}

func (s *MigrationService) reconcile(ctx context.Context, prNumber int, dryRun bool) (models.SyncResult, error) {
	ctx = logger.With(ctx, "pr_number", prNumber)
	log := logger.FromContext(ctx)

	if s.vcsClient == nil {
		return models.SyncResult{}, domainErrors.ErrVCSClientMissing
	}

	renderer, err := migrations.NewRenderer(migrations.Style(s.config.SummaryStyle))
	if err != nil {
		return models.SyncResult{}, domainErrors.ErrInvalidConfig.WithError(err)
	}

	pr, err := s.vcsClient.GetPR(ctx, prNumber)
	if err != nil {
		log.Error("failed to get pull request", "error", err)
		return models.SyncResult{}, fmt.Errorf("failed to get pull request #%d: %w", prNumber, err)
	}

	files, err := s.vcsClient.ListFiles(ctx, prNumber)
	if err != nil {
		log.Error("failed to list pull request files", "error", err)
		return models.SyncResult{}, fmt.Errorf("failed to list files of pull request #%d: %w", prNumber, err)
	}

	detected := migrations.Detect(files, s.config.MigrationsPath)

	log.Info("migrations detected",
		"files_count", len(files),
		"migrations_count", len(detected))

	linker := migrations.Linker{
		ServerURL: s.config.ServerURL,
		Owner:     s.config.Owner,
		Repo:      s.config.Repo,
		HeadSHA:   pr.HeadSHA,
	}
	content := renderer.Render(ctx, detected, linker)
	body := migrations.ReconcileBody(pr.Body, content)

	result := models.SyncResult{
		PRNumber:    prNumber,
		Migrations:  detected,
		Section:     migrations.BuildSection(content),
		Body:        body,
		BodyChanged: body != pr.Body,
		LabelAction: models.LabelUnchanged,
		DryRun:      dryRun,
	}

	if result.BodyChanged && !dryRun {
		if err := s.vcsClient.UpdatePRBody(ctx, prNumber, body); err != nil {
			log.Error("failed to update pull request body", "error", err)
			return result, fmt.Errorf("failed to update body of pull request #%d: %w", prNumber, err)
		}
		log.Info("pull request body updated")
	}

	action, created, err := s.reconcileLabel(ctx, pr, len(detected) > 0, dryRun)
	if err != nil {
		log.Error("failed to reconcile label", "error", err, "label", s.config.Label.Name)
		return result, err
	}
	result.LabelAction = action
	result.LabelCreated = created

	log.Info("pull request reconciled",
		"body_changed", result.BodyChanged,
		"label_action", string(action),
		"dry_run", dryRun)

	return result, nil
}

// reconcileLabel adds the label when migrations are detected and removes it
// otherwise. Nothing happens when the label is already in the wanted state.
func (s *MigrationService) reconcileLabel(ctx context.Context, pr models.PullRequest, detected, dryRun bool) (models.LabelAction, bool, error) {
	name := s.config.Label.Name
	present := pr.HasLabel(name)

	switch {
	case detected && !present:
		if dryRun {
			return models.LabelAdded, false, nil
		}
		created, err := s.ensureLabel(ctx)
		if err != nil {
			return models.LabelUnchanged, false, err
		}
		if err := s.vcsClient.AddLabelsToPR(ctx, pr.Number, []string{name}); err != nil {
			return models.LabelUnchanged, created, fmt.Errorf("failed to add label %q: %w", name, err)
		}
		return models.LabelAdded, created, nil

	case !detected && present:
		if dryRun {
			return models.LabelRemoved, false, nil
		}
		if err := s.vcsClient.RemoveLabelFromPR(ctx, pr.Number, name); err != nil {
			if errors.Is(err, domainErrors.ErrLabelNotFound) {
				logger.Debug(ctx, "label already gone from pull request", "label", name)
				return models.LabelUnchanged, false, nil
			}
			return models.LabelUnchanged, false, fmt.Errorf("failed to remove label %q: %w", name, err)
		}
		return models.LabelRemoved, false, nil

	default:
		return models.LabelUnchanged, false, nil
	}
}

// ensureLabel creates the repository label when it does not exist yet.
func (s *MigrationService) ensureLabel(ctx context.Context) (bool, error) {
	lc := s.config.Label

	_, err := s.vcsClient.GetLabel(ctx, lc.Name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domainErrors.ErrLabelNotFound) {
		return false, fmt.Errorf("failed to look up label %q: %w", lc.Name, err)
	}

	logger.Info(ctx, "creating repository label", "label", lc.Name, "color", lc.Color)

	if err := s.vcsClient.CreateLabel(ctx, models.Label{
		Name:        lc.Name,
		Color:       lc.Color,
		Description: lc.Description,
	}); err != nil {
		return false, fmt.Errorf("failed to create label %q: %w", lc.Name, err)
	}
	return true, nil
}
