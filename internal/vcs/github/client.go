package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/rentec/pr-migrations/internal/errors"
	"github.com/rentec/pr-migrations/internal/logger"
	"github.com/rentec/pr-migrations/internal/models"
	"github.com/rentec/pr-migrations/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.PullRequestClient = (*GitHubClient)(nil)

const filesPerPage = 100

type PullRequestsService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
	Edit(ctx context.Context, owner, repo string, number int, pr *github.PullRequest) (*github.PullRequest, *github.Response, error)
	ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error)
}

type IssuesService interface {
	GetLabel(ctx context.Context, owner, repo, name string) (*github.Label, *github.Response, error)
	CreateLabel(ctx context.Context, owner, repo string, label *github.Label) (*github.Label, *github.Response, error)
	AddLabelsToIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error)
	RemoveLabelForIssue(ctx context.Context, owner, repo string, number int, label string) (*github.Response, error)
}

type GitHubClient struct {
	prService     PullRequestsService
	issuesService IssuesService
	owner         string
	repo          string
}

// NewGitHubClient builds a client authenticated with token. apiURL points at a
// GitHub Enterprise REST endpoint and may be empty for github.com.
func NewGitHubClient(owner, repo, token, apiURL string) (*GitHubClient, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	if apiURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
		}
	}

	return NewGitHubClientWithServices(client.PullRequests, client.Issues, owner, repo), nil
}

func NewGitHubClientWithServices(prService PullRequestsService, issuesService IssuesService, owner, repo string) *GitHubClient {
	return &GitHubClient{
		prService:     prService,
		issuesService: issuesService,
		owner:         owner,
		repo:          repo,
	}
}

func (ghc *GitHubClient) GetPR(ctx context.Context, prNumber int) (models.PullRequest, error) {
	log := logger.FromContext(ctx)

	log.Debug("fetching github pull request",
		"owner", ghc.owner,
		"repo", ghc.repo,
		"pr_number", prNumber)

	pr, resp, err := ghc.prService.Get(ctx, ghc.owner, ghc.repo, prNumber)
	if err != nil {
		return models.PullRequest{}, ghc.mapError(resp, err, "get pull request", domainErrors.ErrPullRequestNotFound.
			WithContext("pr_number", prNumber))
	}

	labels := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		labels = append(labels, l.GetName())
	}

	return models.PullRequest{
		Number:  prNumber,
		Body:    pr.GetBody(),
		HeadSHA: pr.GetHead().GetSHA(),
		Labels:  labels,
	}, nil
}

func (ghc *GitHubClient) ListFiles(ctx context.Context, prNumber int) ([]models.FileChange, error) {
	log := logger.FromContext(ctx)

	var files []models.FileChange
	opts := &github.ListOptions{PerPage: filesPerPage}
	for {
		page, resp, err := ghc.prService.ListFiles(ctx, ghc.owner, ghc.repo, prNumber, opts)
		if err != nil {
			return nil, ghc.mapError(resp, err, "list pull request files", domainErrors.ErrPullRequestNotFound.
				WithContext("pr_number", prNumber))
		}

		for _, f := range page {
			files = append(files, models.FileChange{
				Filename: f.GetFilename(),
				Status:   models.FileStatus(f.GetStatus()),
				Patch:    f.GetPatch(),
			})
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	log.Debug("pull request files listed",
		"pr_number", prNumber,
		"files_count", len(files))

	return files, nil
}

func (ghc *GitHubClient) UpdatePRBody(ctx context.Context, prNumber int, body string) error {
	pr := &github.PullRequest{Body: github.Ptr(body)}

	_, resp, err := ghc.prService.Edit(ctx, ghc.owner, ghc.repo, prNumber, pr)
	if err != nil {
		return ghc.mapError(resp, err, "update pull request body", domainErrors.ErrPullRequestNotFound.
			WithContext("pr_number", prNumber))
	}
	return nil
}

func (ghc *GitHubClient) AddLabelsToPR(ctx context.Context, prNumber int, labels []string) error {
	if len(labels) == 0 {
		return nil
	}

	_, resp, err := ghc.issuesService.AddLabelsToIssue(ctx, ghc.owner, ghc.repo, prNumber, labels)
	if err != nil {
		return ghc.mapError(resp, err, "add labels to pull request", domainErrors.ErrPullRequestNotFound.
			WithContext("pr_number", prNumber))
	}
	return nil
}

func (ghc *GitHubClient) RemoveLabelFromPR(ctx context.Context, prNumber int, label string) error {
	resp, err := ghc.issuesService.RemoveLabelForIssue(ctx, ghc.owner, ghc.repo, prNumber, label)
	if err != nil {
		return ghc.mapError(resp, err, "remove label from pull request", domainErrors.ErrLabelNotFound.
			WithContext("label", label).
			WithContext("pr_number", prNumber))
	}
	return nil
}

func (ghc *GitHubClient) GetLabel(ctx context.Context, name string) (models.Label, error) {
	label, resp, err := ghc.issuesService.GetLabel(ctx, ghc.owner, ghc.repo, name)
	if err != nil {
		return models.Label{}, ghc.mapError(resp, err, "get label", domainErrors.ErrLabelNotFound.
			WithContext("label", name))
	}

	return models.Label{
		Name:        label.GetName(),
		Color:       label.GetColor(),
		Description: label.GetDescription(),
	}, nil
}

func (ghc *GitHubClient) CreateLabel(ctx context.Context, label models.Label) error {
	_, resp, err := ghc.issuesService.CreateLabel(ctx, ghc.owner, ghc.repo, &github.Label{
		Name:        github.Ptr(label.Name),
		Color:       github.Ptr(label.Color),
		Description: github.Ptr(label.Description),
	})
	if err != nil {
		return ghc.mapError(resp, err, "create label", nil)
	}
	return nil
}

// mapError turns API failures into domain errors. notFound is returned for 404
// responses; a nil notFound leaves 404s as plain wrapped errors.
func (ghc *GitHubClient) mapError(resp *github.Response, err error, operation string, notFound *domainErrors.AppError) error {
	repo := fmt.Sprintf("%s/%s", ghc.owner, ghc.repo)

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return domainErrors.ErrGitHubRateLimit.
			WithError(err).
			WithContext("operation", operation)
	}

	if resp != nil && resp.Response != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domainErrors.ErrGitHubTokenInvalid.
				WithError(err).
				WithContext("operation", operation)
		case http.StatusForbidden:
			return domainErrors.ErrGitHubInsufficientPerms.
				WithError(err).
				WithContext("operation", operation).
				WithContext("repo", repo)
		case http.StatusTooManyRequests:
			return domainErrors.ErrGitHubRateLimit.
				WithError(err).
				WithContext("retry_after", resp.Header.Get("Retry-After")).
				WithContext("operation", operation)
		case http.StatusNotFound:
			if notFound != nil {
				return notFound.
					WithError(err).
					WithContext("operation", operation).
					WithContext("repo", repo)
			}
		}
	}

	return fmt.Errorf("failed to %s in %s: %w", operation, repo, err)
}
