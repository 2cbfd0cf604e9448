package migrations

import (
	"context"
	"fmt"
	"strings"

	"github.com/rentec/pr-migrations/internal/logger"
	"github.com/rentec/pr-migrations/internal/models"
)

// Style selects how detected migrations are summarized.
type Style string

const (
	StyleList   Style = "list"
	StylePaired Style = "paired"
)

const listPreamble = "This PR adds the following migration files:"

// Renderer turns detected migrations into the markdown placed under the section
// heading. An empty result means the pull request gets no section.
type Renderer interface {
	Render(ctx context.Context, files []models.MigrationFile, linker Linker) string
}

// NewRenderer returns the renderer for style.
func NewRenderer(style Style) (Renderer, error) {
	switch style {
	case StyleList:
		return ListRenderer{}, nil
	case StylePaired:
		return PairedRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown summary style %q (expected %q or %q)", style, StyleList, StylePaired)
	}
}

// ListRenderer renders one bullet link per migration file.
type ListRenderer struct{}

func (ListRenderer) Render(_ context.Context, files []models.MigrationFile, linker Linker) string {
	return renderList(files, linker)
}

// PairedRenderer renders a do/undo summary when the pull request adds a single
// timestamped migration, and a preambled list otherwise.
type PairedRenderer struct{}

func (PairedRenderer) Render(ctx context.Context, files []models.MigrationFile, linker Linker) string {
	if len(files) == 0 {
		return ""
	}

	groups := groupByTimestamp(ctx, files)
	if len(groups) == 1 {
		for _, g := range groups {
			return renderLone(g, linker)
		}
	}

	return listPreamble + "\n" + renderList(files, linker)
}

func renderList(files []models.MigrationFile, linker Linker) string {
	lines := make([]string, len(files))
	for i, f := range files {
		lines[i] = "- " + linker.MarkdownLink(f.Filename)
	}
	return strings.Join(lines, "\n")
}

type migrationGroup map[models.MigrationRole]models.MigrationFile

// groupByTimestamp keeps one file per timestamp and role. When two files share
// both, the later one replaces the earlier.
func groupByTimestamp(ctx context.Context, files []models.MigrationFile) map[string]migrationGroup {
	log := logger.FromContext(ctx)

	groups := make(map[string]migrationGroup)
	for _, f := range files {
		if !f.Paired() {
			continue
		}
		g, ok := groups[f.Timestamp]
		if !ok {
			g = make(migrationGroup)
			groups[f.Timestamp] = g
		}
		if prev, dup := g[f.Role]; dup {
			log.Warn("several migrations share timestamp and role, keeping the last one",
				"timestamp", f.Timestamp,
				"role", string(f.Role),
				"dropped", prev.Filename,
				"kept", f.Filename)
		}
		g[f.Role] = f
	}
	return groups
}

func renderLone(g migrationGroup, linker Linker) string {
	var b strings.Builder
	b.WriteString("Do 👇")

	if undo, ok := g[models.RoleUndo]; ok {
		b.WriteString(" Undo 👉 ")
		b.WriteString(linker.MarkdownLink(undo.Filename))
	}

	// GitHub expands a line-range permalink on its own line into a code snippet.
	if do, ok := g[models.RoleDo]; ok {
		b.WriteString("\n")
		b.WriteString(linker.LineRangeURL(do.Filename, 1, CountAddedLines(do.Patch)+1))
	}

	return b.String()
}
