package models

// LabelAction is what a run did (or would do, in dry-run) to the pull request label.
type LabelAction string

const (
	LabelUnchanged LabelAction = "none"
	LabelAdded     LabelAction = "added"
	LabelRemoved   LabelAction = "removed"
)

// SyncResult describes the outcome of one reconciliation run.
type SyncResult struct {
	PRNumber     int
	Migrations   []MigrationFile
	Section      string
	Body         string
	BodyChanged  bool
	LabelAction  LabelAction
	LabelCreated bool
	DryRun       bool
}
