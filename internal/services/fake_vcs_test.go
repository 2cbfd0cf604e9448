package services

import (
	"context"

	domainErrors "github.com/rentec/pr-migrations/internal/errors"
	"github.com/rentec/pr-migrations/internal/models"
	"github.com/rentec/pr-migrations/internal/vcs"
)

var _ vcs.PullRequestClient = (*fakeVCS)(nil)

// fakeVCS keeps a pull request and the repository labels in memory so tests can
// run the service several times against the state its own writes left behind.
type fakeVCS struct {
	pr         models.PullRequest
	files      []models.FileChange
	repoLabels map[string]models.Label
	writes     []string
}

func newFakeVCS(pr models.PullRequest, files []models.FileChange) *fakeVCS {
	return &fakeVCS{pr: pr, files: files, repoLabels: map[string]models.Label{}}
}

func (f *fakeVCS) GetPR(_ context.Context, prNumber int) (models.PullRequest, error) {
	if prNumber != f.pr.Number {
		return models.PullRequest{}, domainErrors.ErrPullRequestNotFound
	}
	pr := f.pr
	pr.Labels = append([]string(nil), f.pr.Labels...)
	return pr, nil
}

func (f *fakeVCS) ListFiles(_ context.Context, _ int) ([]models.FileChange, error) {
	return f.files, nil
}

func (f *fakeVCS) UpdatePRBody(_ context.Context, _ int, body string) error {
	f.writes = append(f.writes, "UpdatePRBody")
	f.pr.Body = body
	return nil
}

func (f *fakeVCS) AddLabelsToPR(_ context.Context, _ int, labels []string) error {
	f.writes = append(f.writes, "AddLabelsToPR")
	for _, l := range labels {
		if !f.pr.HasLabel(l) {
			f.pr.Labels = append(f.pr.Labels, l)
		}
	}
	return nil
}

func (f *fakeVCS) RemoveLabelFromPR(_ context.Context, _ int, label string) error {
	f.writes = append(f.writes, "RemoveLabelFromPR")
	kept := f.pr.Labels[:0]
	found := false
	for _, l := range f.pr.Labels {
		if l == label {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	f.pr.Labels = kept
	if !found {
		return domainErrors.ErrLabelNotFound
	}
	return nil
}

func (f *fakeVCS) GetLabel(_ context.Context, name string) (models.Label, error) {
	l, ok := f.repoLabels[name]
	if !ok {
		return models.Label{}, domainErrors.ErrLabelNotFound
	}
	return l, nil
}

func (f *fakeVCS) CreateLabel(_ context.Context, label models.Label) error {
	f.writes = append(f.writes, "CreateLabel")
	f.repoLabels[label.Name] = label
	return nil
}
