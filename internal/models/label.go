package models

// Label is a repository label definition.
type Label struct {
	Name        string
	Color       string
	Description string
}
