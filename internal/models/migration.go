package models

// MigrationRole tells whether a migration file applies or reverts a change.
type MigrationRole string

const (
	RoleDo   MigrationRole = "do"
	RoleUndo MigrationRole = "undo"
)

// MigrationFile is an added file under the migrations directory.
type MigrationFile struct {
	FileChange
	// Timestamp and Role are empty when the basename does not follow
	// <timestamp>.<do|undo>.<suffix>.sql.
	Timestamp string
	Role      MigrationRole
}

// Paired reports whether the file name follows the do/undo naming convention.
func (m MigrationFile) Paired() bool {
	return m.Timestamp != "" && m.Role != ""
}
