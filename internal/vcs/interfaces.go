package vcs

import (
	"context"

	"github.com/rentec/pr-migrations/internal/models"
)

// PullRequestClient is everything the hook needs from the hosting platform. The
// pull request body and label set are remote state owned by the platform.
type PullRequestClient interface {
	// GetPR returns body, head commit and current labels of a pull request.
	GetPR(ctx context.Context, prNumber int) (models.PullRequest, error)
	// ListFiles returns every changed file, following pagination.
	ListFiles(ctx context.Context, prNumber int) ([]models.FileChange, error)
	// UpdatePRBody replaces the pull request description.
	UpdatePRBody(ctx context.Context, prNumber int, body string) error
	// AddLabelsToPR adds labels by name to a pull request.
	AddLabelsToPR(ctx context.Context, prNumber int, labels []string) error
	// RemoveLabelFromPR removes a label; a missing label yields errors.ErrLabelNotFound.
	RemoveLabelFromPR(ctx context.Context, prNumber int, label string) error
	// GetLabel looks a repository label up by name; a missing label yields errors.ErrLabelNotFound.
	GetLabel(ctx context.Context, name string) (models.Label, error)
	// CreateLabel creates a repository label.
	CreateLabel(ctx context.Context, label models.Label) error
}
