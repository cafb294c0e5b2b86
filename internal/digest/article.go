package digest

import "strings"

// Article is one news item flowing through the pipeline. Region and Topic
// come from the feed configuration, not from the article itself.
type Article struct {
	Title     string
	URL       string
	Source    string
	Region    string
	Topic     string
	Published string // ISO-8601 when known, empty otherwise
	Text      string // full extracted text, optional
	FetchedAt string
}

// Valid reports whether the article carries the minimum identity fields.
// Items failing this check never enter the pipeline.
func (a Article) Valid() bool {
	return strings.TrimSpace(a.Title) != "" && strings.TrimSpace(a.URL) != ""
}
