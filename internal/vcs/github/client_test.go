package github

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/rentec/pr-migrations/internal/errors"
	"github.com/rentec/pr-migrations/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestClient(pr *MockPRService, issues *MockIssuesService) *GitHubClient {
	return NewGitHubClientWithServices(pr, issues, "test-owner", "test-repo")
}

func statusResponse(code int) *github.Response {
	return &github.Response{Response: &http.Response{StatusCode: code, Header: http.Header{}}}
}

func TestNewGitHubClient(t *testing.T) {
	t.Run("should build a github.com client", func(t *testing.T) {
		client, err := NewGitHubClient("o", "r", "token", "")

		require.NoError(t, err)
		assert.NotNil(t, client.prService)
		assert.NotNil(t, client.issuesService)
	})

	t.Run("should accept an enterprise API URL", func(t *testing.T) {
		client, err := NewGitHubClient("o", "r", "token", "https://github.example.com/api/v3/")

		require.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestGitHubClient_GetPR(t *testing.T) {
	t.Run("should return body, head and labels", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, &MockIssuesService{})

		mockPR.On("Get", mock.Anything, "test-owner", "test-repo", 12).
			Return(&github.PullRequest{
				Body: github.Ptr("description"),
				Head: &github.PullRequestBranch{SHA: github.Ptr("abc123")},
				Labels: []*github.Label{
					{Name: github.Ptr("bug")},
					{Name: github.Ptr("Database changes")},
				},
			}, statusResponse(http.StatusOK), nil)

		pr, err := client.GetPR(context.Background(), 12)

		require.NoError(t, err)
		assert.Equal(t, models.PullRequest{
			Number:  12,
			Body:    "description",
			HeadSHA: "abc123",
			Labels:  []string{"bug", "Database changes"},
		}, pr)
		mockPR.AssertExpectations(t)
	})

	t.Run("should treat a missing body as empty", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, &MockIssuesService{})

		mockPR.On("Get", mock.Anything, "test-owner", "test-repo", 12).
			Return(&github.PullRequest{}, statusResponse(http.StatusOK), nil)

		pr, err := client.GetPR(context.Background(), 12)

		require.NoError(t, err)
		assert.Equal(t, "", pr.Body)
		assert.Empty(t, pr.Labels)
	})

	t.Run("should map 404 to pull request not found", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, &MockIssuesService{})

		mockPR.On("Get", mock.Anything, "test-owner", "test-repo", 12).
			Return(nil, statusResponse(http.StatusNotFound), errors.New("404 Not Found"))

		_, err := client.GetPR(context.Background(), 12)

		assert.ErrorIs(t, err, domainErrors.ErrPullRequestNotFound)
	})

	t.Run("should map 401 to invalid token", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, &MockIssuesService{})

		mockPR.On("Get", mock.Anything, "test-owner", "test-repo", 12).
			Return(nil, statusResponse(http.StatusUnauthorized), errors.New("401 Bad credentials"))

		_, err := client.GetPR(context.Background(), 12)

		assert.ErrorIs(t, err, domainErrors.ErrGitHubTokenInvalid)
	})
}

func TestGitHubClient_ListFiles(t *testing.T) {
	t.Run("should follow pagination", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, &MockIssuesService{})

		firstPage := statusResponse(http.StatusOK)
		firstPage.NextPage = 2

		mockPR.On("ListFiles", mock.Anything, "test-owner", "test-repo", 7, mock.MatchedBy(func(o *github.ListOptions) bool {
			return o.Page == 0 && o.PerPage == 100
		})).Return([]*github.CommitFile{
			{Filename: github.Ptr("a.sql"), Status: github.Ptr("added"), Patch: github.Ptr("+x")},
		}, firstPage, nil).Once()

		mockPR.On("ListFiles", mock.Anything, "test-owner", "test-repo", 7, mock.MatchedBy(func(o *github.ListOptions) bool {
			return o.Page == 2
		})).Return([]*github.CommitFile{
			{Filename: github.Ptr("b.go"), Status: github.Ptr("modified")},
		}, statusResponse(http.StatusOK), nil).Once()

		files, err := client.ListFiles(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, []models.FileChange{
			{Filename: "a.sql", Status: models.FileAdded, Patch: "+x"},
			{Filename: "b.go", Status: models.FileModified},
		}, files)
		mockPR.AssertNumberOfCalls(t, "ListFiles", 2)
	})

	t.Run("should propagate listing errors", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, &MockIssuesService{})

		mockPR.On("ListFiles", mock.Anything, "test-owner", "test-repo", 7, mock.Anything).
			Return(nil, statusResponse(http.StatusInternalServerError), errors.New("500"))

		_, err := client.ListFiles(context.Background(), 7)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "list pull request files")
	})
}

func TestGitHubClient_UpdatePRBody(t *testing.T) {
	t.Run("should send only the body", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, &MockIssuesService{})

		mockPR.On("Edit", mock.Anything, "test-owner", "test-repo", 3, mock.MatchedBy(func(pr *github.PullRequest) bool {
			return pr.GetBody() == "new body" && pr.Title == nil
		})).Return(&github.PullRequest{}, statusResponse(http.StatusOK), nil)

		err := client.UpdatePRBody(context.Background(), 3, "new body")

		assert.NoError(t, err)
		mockPR.AssertExpectations(t)
	})

	t.Run("should map 403 to insufficient permissions", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, &MockIssuesService{})

		mockPR.On("Edit", mock.Anything, "test-owner", "test-repo", 3, mock.Anything).
			Return(nil, statusResponse(http.StatusForbidden), errors.New("403"))

		err := client.UpdatePRBody(context.Background(), 3, "x")

		assert.ErrorIs(t, err, domainErrors.ErrGitHubInsufficientPerms)
	})
}

func TestGitHubClient_Labels(t *testing.T) {
	t.Run("should get a label", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(&MockPRService{}, mockIssues)

		mockIssues.On("GetLabel", mock.Anything, "test-owner", "test-repo", "Database changes").
			Return(&github.Label{
				Name:        github.Ptr("Database changes"),
				Color:       github.Ptr("1778d3"),
				Description: github.Ptr("desc"),
			}, statusResponse(http.StatusOK), nil)

		label, err := client.GetLabel(context.Background(), "Database changes")

		require.NoError(t, err)
		assert.Equal(t, models.Label{Name: "Database changes", Color: "1778d3", Description: "desc"}, label)
	})

	t.Run("should map a missing label to ErrLabelNotFound", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(&MockPRService{}, mockIssues)

		mockIssues.On("GetLabel", mock.Anything, "test-owner", "test-repo", "Database changes").
			Return(nil, statusResponse(http.StatusNotFound), errors.New("404 Not Found"))

		_, err := client.GetLabel(context.Background(), "Database changes")

		assert.ErrorIs(t, err, domainErrors.ErrLabelNotFound)
	})

	t.Run("should create a label with the given fields", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(&MockPRService{}, mockIssues)

		mockIssues.On("CreateLabel", mock.Anything, "test-owner", "test-repo", &github.Label{
			Name:        github.Ptr("Database changes"),
			Color:       github.Ptr("1778d3"),
			Description: github.Ptr("desc"),
		}).Return(&github.Label{}, statusResponse(http.StatusCreated), nil)

		err := client.CreateLabel(context.Background(), models.Label{Name: "Database changes", Color: "1778d3", Description: "desc"})

		assert.NoError(t, err)
		mockIssues.AssertExpectations(t)
	})

	t.Run("should add labels to the pull request", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(&MockPRService{}, mockIssues)

		mockIssues.On("AddLabelsToIssue", mock.Anything, "test-owner", "test-repo", 9, []string{"Database changes"}).
			Return([]*github.Label{}, statusResponse(http.StatusOK), nil)

		err := client.AddLabelsToPR(context.Background(), 9, []string{"Database changes"})

		assert.NoError(t, err)
		mockIssues.AssertExpectations(t)
	})

	t.Run("should skip the call when there is nothing to add", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(&MockPRService{}, mockIssues)

		assert.NoError(t, client.AddLabelsToPR(context.Background(), 9, nil))
		mockIssues.AssertNotCalled(t, "AddLabelsToIssue", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should map a 404 on removal to ErrLabelNotFound", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(&MockPRService{}, mockIssues)

		mockIssues.On("RemoveLabelForIssue", mock.Anything, "test-owner", "test-repo", 9, "Database changes").
			Return(statusResponse(http.StatusNotFound), errors.New("404 Label does not exist"))

		err := client.RemoveLabelFromPR(context.Background(), 9, "Database changes")

		assert.ErrorIs(t, err, domainErrors.ErrLabelNotFound)
	})

	t.Run("should map 429 to rate limit", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(&MockPRService{}, mockIssues)

		mockIssues.On("RemoveLabelForIssue", mock.Anything, "test-owner", "test-repo", 9, "Database changes").
			Return(statusResponse(http.StatusTooManyRequests), errors.New("429"))

		err := client.RemoveLabelFromPR(context.Background(), 9, "Database changes")

		assert.ErrorIs(t, err, domainErrors.ErrGitHubRateLimit)
	})

	t.Run("should not hide a 404 when creating a label", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(&MockPRService{}, mockIssues)

		mockIssues.On("CreateLabel", mock.Anything, "test-owner", "test-repo", mock.Anything).
			Return(nil, statusResponse(http.StatusNotFound), errors.New("404"))

		err := client.CreateLabel(context.Background(), models.Label{Name: "x", Color: "000000"})

		assert.Error(t, err)
		assert.NotErrorIs(t, err, domainErrors.ErrLabelNotFound)
	})
}
