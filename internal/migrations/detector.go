package migrations

import (
	"path"
	"strings"

	"github.com/rentec/pr-migrations/internal/models"
	"github.com/rentec/pr-migrations/internal/regex"
)

// DefaultPrefix is the directory new migrations are added under.
const DefaultPrefix = "database/rentec/schema/migrations/"

// Detect returns the files added under prefix, in input order. Matching is an
// exact string prefix: no separator or case normalization.
func Detect(files []models.FileChange, prefix string) []models.MigrationFile {
	var detected []models.MigrationFile
	for _, f := range files {
		if f.Status != models.FileAdded || !strings.HasPrefix(f.Filename, prefix) {
			continue
		}
		detected = append(detected, parseMigration(f))
	}
	return detected
}

func parseMigration(f models.FileChange) models.MigrationFile {
	m := models.MigrationFile{FileChange: f}
	if match := regex.MigrationFileName.FindStringSubmatch(path.Base(f.Filename)); match != nil {
		m.Timestamp = match[1]
		m.Role = models.MigrationRole(match[2])
	}
	return m
}

// CountAddedLines counts the lines of a unified diff that add content. The
// "+++" file header is not an added line.
func CountAddedLines(patch string) int {
	count := 0
	for _, line := range strings.Split(patch, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			count++
		}
	}
	return count
}
