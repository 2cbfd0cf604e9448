package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

func responseArg(args mock.Arguments, i int) *github.Response {
	if r, ok := args.Get(i).(*github.Response); ok {
		return r
	}
	return nil
}

type MockPRService struct {
	mock.Mock
}

func (m *MockPRService) Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number)
	pr, _ := args.Get(0).(*github.PullRequest)
	return pr, responseArg(args, 1), args.Error(2)
}

func (m *MockPRService) Edit(ctx context.Context, owner, repo string, number int, pr *github.PullRequest) (*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, pr)
	out, _ := args.Get(0).(*github.PullRequest)
	return out, responseArg(args, 1), args.Error(2)
}

func (m *MockPRService) ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	files, _ := args.Get(0).([]*github.CommitFile)
	return files, responseArg(args, 1), args.Error(2)
}

type MockIssuesService struct {
	mock.Mock
}

func (m *MockIssuesService) GetLabel(ctx context.Context, owner, repo, name string) (*github.Label, *github.Response, error) {
	args := m.Called(ctx, owner, repo, name)
	label, _ := args.Get(0).(*github.Label)
	return label, responseArg(args, 1), args.Error(2)
}

func (m *MockIssuesService) CreateLabel(ctx context.Context, owner, repo string, label *github.Label) (*github.Label, *github.Response, error) {
	args := m.Called(ctx, owner, repo, label)
	out, _ := args.Get(0).(*github.Label)
	return out, responseArg(args, 1), args.Error(2)
}

func (m *MockIssuesService) AddLabelsToIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, labels)
	out, _ := args.Get(0).([]*github.Label)
	return out, responseArg(args, 1), args.Error(2)
}

func (m *MockIssuesService) RemoveLabelForIssue(ctx context.Context, owner, repo string, number int, label string) (*github.Response, error) {
	args := m.Called(ctx, owner, repo, number, label)
	return responseArg(args, 0), args.Error(1)
}
