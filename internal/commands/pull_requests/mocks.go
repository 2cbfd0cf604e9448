package pull_requests

import (
	"context"

	"github.com/rentec/pr-migrations/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockMigrationService struct {
	mock.Mock
}

func (m *MockMigrationService) Sync(ctx context.Context, prNumber int) (models.SyncResult, error) {
	args := m.Called(ctx, prNumber)
	return args.Get(0).(models.SyncResult), args.Error(1)
}

func (m *MockMigrationService) Preview(ctx context.Context, prNumber int) (models.SyncResult, error) {
	args := m.Called(ctx, prNumber)
	return args.Get(0).(models.SyncResult), args.Error(1)
}
