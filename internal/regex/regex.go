package regex

import "regexp"

const (
	SectionStart = "<!-- DATABASE_CHANGES_START -->"
	SectionEnd   = "<!-- DATABASE_CHANGES_END -->"
)

var (
	// Migration file names: <timestamp>.<do|undo>.<suffix>.sql
	MigrationFileName = regexp.MustCompile(`^(\d+)\.(do|undo)\..*\.sql$`)

	// Pull request body section owned by the hook, all occurrences, across lines.
	DatabaseChangesSection = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(SectionStart) + `.*?` + regexp.QuoteMeta(SectionEnd))

	// Label colors as the GitHub API expects them, without '#'
	HexColor = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

	// Repository references. Owner and name never contain ':' or '@', so an
	// SSH remote is not mistaken for a slug.
	RepoSlug  = regexp.MustCompile(`^([^/\s:@]+)/([^/\s:@]+)$`)
	SSHRepo   = regexp.MustCompile(`git@([^:]+):([^/]+)/(.+?)(?:\.git)?$`)
	HTTPSRepo = regexp.MustCompile(`https?://([^/]+)/([^/]+)/(.+?)(?:\.git)?/?$`)
)
