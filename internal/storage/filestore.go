package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/conowcast/nowcast/internal/digest"
)

// FileStore keeps articles and reports in JSON files. It is the
// fallback store when no DATABASE_URL is configured.
type FileStore struct {
	articlesPath string
	reportsPath  string
	articles     map[string]digest.Article // keyed by URL
	mu           sync.RWMutex
}

// NewFileStore loads existing content from dir (created if absent).
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store dir: %w", err)
	}

	fs := &FileStore{
		articlesPath: filepath.Join(dir, "articles.json"),
		reportsPath:  filepath.Join(dir, "reports.json"),
		articles:     make(map[string]digest.Article),
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) load() error {
	data, err := os.ReadFile(fs.articlesPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read article store: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var items []digest.Article
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to unmarshal article store: %w", err)
	}
	for _, a := range items {
		fs.articles[a.URL] = a
	}
	return nil
}

func (fs *FileStore) save() error {
	items := fs.sortedArticles()

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal article store: %w", err)
	}
	if err := os.WriteFile(fs.articlesPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write article store: %w", err)
	}
	return nil
}

// sortedArticles returns all articles newest first. Callers must hold
// at least a read lock.
func (fs *FileStore) sortedArticles() []digest.Article {
	items := make([]digest.Article, 0, len(fs.articles))
	for _, a := range fs.articles {
		items = append(items, a)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return orderKey(items[i]) > orderKey(items[j])
	})
	return items
}

func orderKey(a digest.Article) string {
	if a.Published != "" {
		return a.Published
	}
	return a.FetchedAt
}

func (fs *FileStore) UpsertArticles(articles []digest.Article) (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	inserted := 0
	for _, a := range articles {
		if _, exists := fs.articles[a.URL]; exists {
			continue
		}
		fs.articles[a.URL] = a
		inserted++
	}
	if inserted > 0 {
		if err := fs.save(); err != nil {
			return inserted, err
		}
	}
	return inserted, nil
}

func (fs *FileStore) LatestArticles(limit int) ([]digest.Article, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	items := fs.sortedArticles()
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (fs *FileStore) ArticlesForDay(day string, limit int) ([]digest.Article, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	var items []digest.Article
	for _, a := range fs.sortedArticles() {
		if !strings.HasPrefix(orderKey(a), day) {
			continue
		}
		items = append(items, a)
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (fs *FileStore) SaveReport(r SavedReport) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	var reports []SavedReport
	if data, err := os.ReadFile(fs.reportsPath); err == nil && len(data) > 0 {
		if err := json.Unmarshal(data, &reports); err != nil {
			return fmt.Errorf("failed to unmarshal report store: %w", err)
		}
	}
	reports = append(reports, r)

	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report store: %w", err)
	}
	if err := os.WriteFile(fs.reportsPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report store: %w", err)
	}
	return nil
}

func (fs *FileStore) Close() error {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.save()
}
