package migrations

import (
	"strings"
	"unicode"

	"github.com/rentec/pr-migrations/internal/regex"
)

const Heading = "### Database changes"

// BuildSection wraps content in the section markers. Empty content yields no section.
func BuildSection(content string) string {
	if content == "" {
		return ""
	}
	return regex.SectionStart + "\n" + Heading + "\n\n" + content + "\n" + regex.SectionEnd
}

// ReconcileBody drops every existing section from body and appends a fresh one
// built from content. The markers are reserved: anything between them is
// replaced, so hand edits inside the section do not survive.
func ReconcileBody(body, content string) string {
	remainder := regex.DatabaseChangesSection.ReplaceAllString(body, "")
	remainder = strings.TrimRightFunc(remainder, unicode.IsSpace)

	parts := make([]string, 0, 2)
	if remainder != "" {
		parts = append(parts, remainder)
	}
	if section := BuildSection(content); section != "" {
		parts = append(parts, section)
	}
	return strings.Join(parts, "\n\n")
}
