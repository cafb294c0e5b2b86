package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/conowcast/nowcast/internal/digest"
	"github.com/conowcast/nowcast/internal/logger"
)

// PostgresStore keeps articles and reports in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects, pings and initializes the schema.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("PostgreSQL store connected")
	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		id SERIAL PRIMARY KEY,
		url TEXT UNIQUE NOT NULL,
		source TEXT,
		region TEXT,
		topic TEXT,
		title TEXT NOT NULL,
		published TEXT,
		fetched_at TEXT,
		text TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published);

	CREATE TABLE IF NOT EXISTS reports (
		id SERIAL PRIMARY KEY,
		as_of TEXT NOT NULL,
		model TEXT,
		score REAL,
		json TEXT,
		created_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_reports_as_of ON reports(as_of);
	`

	if _, err := ps.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// UpsertArticles stores articles one by one so a single bad row never
// aborts the batch.
func (ps *PostgresStore) UpsertArticles(articles []digest.Article) (int, error) {
	inserted := 0
	for _, a := range articles {
		res, err := ps.db.Exec(`
			INSERT INTO articles (url, source, region, topic, title, published, fetched_at, text)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (url) DO NOTHING
		`, a.URL, a.Source, a.Region, a.Topic, a.Title, a.Published, a.FetchedAt, a.Text)
		if err != nil {
			logger.Warn("failed to store article", "url", a.URL, "error", err)
			continue
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	return inserted, nil
}

const articleColumns = `url, source, region, topic, title, published, fetched_at, text`

func (ps *PostgresStore) LatestArticles(limit int) ([]digest.Article, error) {
	rows, err := ps.db.Query(`
		SELECT `+articleColumns+`
		FROM articles
		ORDER BY COALESCE(NULLIF(published, ''), fetched_at) DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest articles: %w", err)
	}
	return scanArticles(rows)
}

func (ps *PostgresStore) ArticlesForDay(day string, limit int) ([]digest.Article, error) {
	rows, err := ps.db.Query(`
		SELECT `+articleColumns+`
		FROM articles
		WHERE substr(COALESCE(NULLIF(published, ''), fetched_at), 1, 10) = $1
		ORDER BY COALESCE(NULLIF(published, ''), fetched_at) DESC
		LIMIT $2
	`, day, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles for day: %w", err)
	}
	return scanArticles(rows)
}

func scanArticles(rows *sql.Rows) ([]digest.Article, error) {
	defer rows.Close()

	var articles []digest.Article
	for rows.Next() {
		var a digest.Article
		if err := rows.Scan(&a.URL, &a.Source, &a.Region, &a.Topic, &a.Title, &a.Published, &a.FetchedAt, &a.Text); err != nil {
			logger.Warn("failed to scan article row", "error", err)
			continue
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func (ps *PostgresStore) SaveReport(r SavedReport) error {
	_, err := ps.db.Exec(`
		INSERT INTO reports (as_of, model, score, json, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.AsOf, r.Model, r.Score, r.JSON, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func (ps *PostgresStore) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}
