// Package storage persists fetched articles and generated reports.
// Articles are keyed by unique URL; inserting an existing URL is a
// no-op so repeated runs accumulate only new items.
package storage

import "github.com/conowcast/nowcast/internal/digest"

// SavedReport is one archived report row.
type SavedReport struct {
	AsOf      string
	Model     string
	Score     float64
	JSON      string
	CreatedAt string
}

// Store is the persistence boundary of the pipeline. Postgres backs it
// in production; a JSON file store covers local runs without a
// DATABASE_URL.
type Store interface {
	// UpsertArticles inserts articles that are new by URL and reports
	// how many were actually stored.
	UpsertArticles(articles []digest.Article) (int, error)

	// LatestArticles returns up to limit articles ordered by published
	// (falling back to fetched_at) descending.
	LatestArticles(limit int) ([]digest.Article, error)

	// ArticlesForDay returns articles whose published/fetched date
	// (YYYY-MM-DD prefix) equals day, newest first.
	ArticlesForDay(day string, limit int) ([]digest.Article, error)

	// SaveReport archives one generated report.
	SaveReport(r SavedReport) error

	Close() error
}
