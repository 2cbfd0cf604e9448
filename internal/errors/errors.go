package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeVCS           ErrorType = "VCS"
	TypeGit           ErrorType = "GIT"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError of the same kind. Copies produced by
// WithError, WithContext or WithSuggestion still match the sentinel they came from.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{}, len(e.Context)+1)
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Configuration errors
var (
	ErrTokenMissing = NewAppError(TypeConfiguration, "GitHub token is missing", nil).
			WithSuggestion("Export GITHUB_TOKEN (in workflows: env: GITHUB_TOKEN: ${{ secrets.GITHUB_TOKEN }})")

	ErrRepositoryMissing = NewAppError(TypeConfiguration, "repository is not configured", nil).
				WithSuggestion("Pass --repo owner/name or export GITHUB_REPOSITORY")

	ErrInvalidRepository = NewAppError(TypeConfiguration, "repository must look like owner/name", nil).
				WithSuggestion("Examples: rentec/monorepo, https://github.com/rentec/monorepo.git")

	ErrPRNumberMissing = NewAppError(TypeConfiguration, "pull request number is missing", nil).
				WithSuggestion("Pass --pr-number or run from a pull_request workflow (GITHUB_EVENT_PATH)")

	ErrInvalidConfig = NewAppError(TypeConfiguration, "configuration is not valid", nil).
				WithSuggestion("Check the file with: pr-migrations config show")

	ErrInvalidEventPayload = NewAppError(TypeConfiguration, "event payload has no pull request number", nil).
				WithSuggestion("Trigger the workflow on pull_request or pull_request_target events")
)

// VCS errors
var (
	ErrPullRequestNotFound = NewAppError(TypeVCS, "pull request not found", nil).
				WithSuggestion("Check the pull request number and that the token can read the repository")

	ErrLabelNotFound = NewAppError(TypeVCS, "label not found", nil)

	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens")

	ErrGitHubInsufficientPerms = NewAppError(TypeVCS, "GitHub token has insufficient permissions", nil).
					WithSuggestion("The workflow needs 'pull-requests: write' and 'issues: write' permissions")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes and re-run the workflow")
)

// Git errors
var (
	ErrGetRepoURL = NewAppError(TypeGit, "could not read the origin remote", nil).
		WithSuggestion("Run inside a clone with an 'origin' remote or pass --repo owner/name")
)

// Internal errors
var (
	ErrVCSClientMissing = NewAppError(TypeInternal, "VCS client not configured", nil)
)
