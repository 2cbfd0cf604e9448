package models

// FileStatus is the change status GitHub reports for a file in a pull request.
type FileStatus string

const (
	FileAdded     FileStatus = "added"
	FileModified  FileStatus = "modified"
	FileRemoved   FileStatus = "removed"
	FileRenamed   FileStatus = "renamed"
	FileCopied    FileStatus = "copied"
	FileChanged   FileStatus = "changed"
	FileUnchanged FileStatus = "unchanged"
)

type (
	// PullRequest holds the parts of a pull request the hook reads or rewrites.
	PullRequest struct {
		Number  int
		Body    string
		HeadSHA string
		Labels  []string
	}

	// FileChange is one entry of the pull request file listing.
	FileChange struct {
		Filename string
		Status   FileStatus
		// Patch is the unified diff GitHub returns for the file. Empty for binary or very large files.
		Patch string
	}
)

// HasLabel reports whether the pull request carries a label with exactly this name.
func (pr PullRequest) HasLabel(name string) bool {
	for _, l := range pr.Labels {
		if l == name {
			return true
		}
	}
	return false
}
