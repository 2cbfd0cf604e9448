package config

import (
	"encoding/json"
	"fmt"
	"os"

	domainErrors "github.com/rentec/pr-migrations/internal/errors"
)

// EventPathEnv names the variable GitHub Actions sets to the triggering event payload.
const EventPathEnv = "GITHUB_EVENT_PATH"

type pullRequestEvent struct {
	Number      int `json:"number"`
	PullRequest *struct {
		Number int `json:"number"`
	} `json:"pull_request"`
}

// PRNumberFromEvent reads the pull request number from the workflow event payload
// at path. pull_request.number wins over the top level number.
func PRNumberFromEvent(path string) (int, error) {
	if path == "" {
		return 0, domainErrors.ErrPRNumberMissing
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, domainErrors.ErrInvalidEventPayload.
			WithError(fmt.Errorf("failed to read event file: %w", err)).
			WithContext("path", path)
	}

	var event pullRequestEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return 0, domainErrors.ErrInvalidEventPayload.WithError(err).WithContext("path", path)
	}

	number := event.Number
	if event.PullRequest != nil && event.PullRequest.Number > 0 {
		number = event.PullRequest.Number
	}
	if number <= 0 {
		return 0, domainErrors.ErrInvalidEventPayload.WithContext("path", path)
	}
	return number, nil
}

// ResolvePRNumber returns flagValue when set, otherwise the number from the
// event payload named by GITHUB_EVENT_PATH.
func ResolvePRNumber(flagValue int) (int, error) {
	if flagValue > 0 {
		return flagValue, nil
	}
	return PRNumberFromEvent(os.Getenv(EventPathEnv))
}
