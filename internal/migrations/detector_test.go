package migrations

import (
	"testing"

	"github.com/rentec/pr-migrations/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	t.Run("should keep only added files under the prefix", func(t *testing.T) {
		files := []models.FileChange{
			{Filename: DefaultPrefix + "0001.do.create_x.sql", Status: models.FileAdded},
			{Filename: DefaultPrefix + "0001.do.create_x.sql", Status: models.FileModified},
			{Filename: "other/path/0001.do.sql", Status: models.FileAdded},
			{Filename: DefaultPrefix + "0001.undo.create_x.sql", Status: models.FileRemoved},
			{Filename: DefaultPrefix + "README.md", Status: models.FileAdded},
		}

		detected := Detect(files, DefaultPrefix)

		require.Len(t, detected, 2)
		assert.Equal(t, DefaultPrefix+"0001.do.create_x.sql", detected[0].Filename)
		assert.Equal(t, "0001", detected[0].Timestamp)
		assert.Equal(t, models.RoleDo, detected[0].Role)
		assert.Equal(t, DefaultPrefix+"README.md", detected[1].Filename)
		assert.False(t, detected[1].Paired())
	})

	t.Run("should not normalize case or separators", func(t *testing.T) {
		files := []models.FileChange{
			{Filename: "Database/rentec/schema/migrations/0001.do.x.sql", Status: models.FileAdded},
			{Filename: `database\rentec\schema\migrations\0001.do.x.sql`, Status: models.FileAdded},
			{Filename: "./database/rentec/schema/migrations/0001.do.x.sql", Status: models.FileAdded},
		}

		assert.Empty(t, Detect(files, DefaultPrefix))
	})

	t.Run("should return nothing for empty input", func(t *testing.T) {
		assert.Empty(t, Detect(nil, DefaultPrefix))
	})

	t.Run("should ignore renamed files even when the target is under the prefix", func(t *testing.T) {
		files := []models.FileChange{
			{Filename: DefaultPrefix + "0002.do.y.sql", Status: models.FileRenamed},
		}

		assert.Empty(t, Detect(files, DefaultPrefix))
	})
}

func TestCountAddedLines(t *testing.T) {
	tests := []struct {
		name  string
		patch string
		want  int
	}{
		{"empty patch", "", 0},
		{"github style hunk", "@@ -0,0 +1,3 @@\n+ALTER TABLE a\n+ADD COLUMN b int;\n+", 3},
		{"header excluded", "--- /dev/null\n+++ b/x.sql\n@@ -0,0 +1,2 @@\n+a\n+b", 2},
		{"context and removals ignored", "@@ -1,2 +1,2 @@\n a\n-b\n+c", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountAddedLines(tt.patch))
		})
	}
}
