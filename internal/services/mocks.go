package services

import (
	"context"

	"github.com/rentec/pr-migrations/internal/models"
	"github.com/rentec/pr-migrations/internal/vcs"
	"github.com/stretchr/testify/mock"
)

var _ vcs.PullRequestClient = (*MockVCSClient)(nil)

type MockVCSClient struct {
	mock.Mock
}

func (m *MockVCSClient) GetPR(ctx context.Context, prNumber int) (models.PullRequest, error) {
	args := m.Called(ctx, prNumber)
	return args.Get(0).(models.PullRequest), args.Error(1)
}

func (m *MockVCSClient) ListFiles(ctx context.Context, prNumber int) ([]models.FileChange, error) {
	args := m.Called(ctx, prNumber)
	files, _ := args.Get(0).([]models.FileChange)
	return files, args.Error(1)
}

func (m *MockVCSClient) UpdatePRBody(ctx context.Context, prNumber int, body string) error {
	args := m.Called(ctx, prNumber, body)
	return args.Error(0)
}

func (m *MockVCSClient) AddLabelsToPR(ctx context.Context, prNumber int, labels []string) error {
	args := m.Called(ctx, prNumber, labels)
	return args.Error(0)
}

func (m *MockVCSClient) RemoveLabelFromPR(ctx context.Context, prNumber int, label string) error {
	args := m.Called(ctx, prNumber, label)
	return args.Error(0)
}

func (m *MockVCSClient) GetLabel(ctx context.Context, name string) (models.Label, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.Label), args.Error(1)
}

func (m *MockVCSClient) CreateLabel(ctx context.Context, label models.Label) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}
