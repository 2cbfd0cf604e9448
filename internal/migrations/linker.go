package migrations

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

const DefaultServerURL = "https://github.com"

// Linker builds links to files at the pull request head commit.
type Linker struct {
	ServerURL string
	Owner     string
	Repo      string
	HeadSHA   string
}

func (l Linker) BlobURL(filename string) string {
	server := strings.TrimRight(l.ServerURL, "/")
	if server == "" {
		server = DefaultServerURL
	}
	return fmt.Sprintf("%s/%s/%s/blob/%s/%s", server, l.Owner, l.Repo, l.HeadSHA, escapePath(filename))
}

// LineRangeURL links to lines from..to (one-based, inclusive) of filename.
func (l Linker) LineRangeURL(filename string, from, to int) string {
	return fmt.Sprintf("%s#L%d-L%d", l.BlobURL(filename), from, to)
}

// MarkdownLink renders [basename](blob-url).
func (l Linker) MarkdownLink(filename string) string {
	return fmt.Sprintf("[%s](%s)", path.Base(filename), l.BlobURL(filename))
}

func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
