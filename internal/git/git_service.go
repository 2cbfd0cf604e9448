package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rentec/pr-migrations/internal/config"
	"github.com/rentec/pr-migrations/internal/errors"
)

// GitService reads repository facts from the local clone. It is only a fallback
// for local runs: in workflows GITHUB_REPOSITORY is always set.
type GitService struct {
	dir string
}

func NewGitService() *GitService {
	return &GitService{}
}

// NewGitServiceAt runs git inside dir instead of the working directory.
func NewGitServiceAt(dir string) *GitService {
	return &GitService{dir: dir}
}

func (s *GitService) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = s.dir
	return cmd
}

// GetRemoteURL returns the fetch URL of remote.
func (s *GitService) GetRemoteURL(ctx context.Context, remote string) (string, error) {
	output, err := s.command(ctx, "remote", "get-url", remote).Output()
	if err != nil {
		return "", errors.ErrGetRepoURL.WithError(err).WithContext("remote", remote)
	}
	return strings.TrimSpace(string(output)), nil
}

// GetRepoInfo returns the owner and name of the origin remote.
func (s *GitService) GetRepoInfo(ctx context.Context) (string, string, error) {
	url, err := s.GetRemoteURL(ctx, "origin")
	if err != nil {
		return "", "", err
	}

	owner, repo, err := config.ParseRepository(url)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse origin remote %q: %w", url, err)
	}
	return owner, repo, nil
}
