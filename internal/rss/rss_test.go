package rss

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestLoadFeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	content := `feeds:
  - name: Portafolio
    url: https://www.portafolio.co/rss
    region: CO
    topic: markets
  - name: Reuters Business
    url: https://example.com/reuters.xml
    region: GLOBAL
    topic: macro
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	feeds, err := LoadFeeds(path)
	if err != nil {
		t.Fatalf("LoadFeeds: %v", err)
	}
	if len(feeds) != 2 {
		t.Fatalf("got %d feeds, want 2", len(feeds))
	}
	if feeds[0].Region != "CO" || feeds[0].Topic != "markets" {
		t.Errorf("first feed tags wrong: %+v", feeds[0])
	}
	if feeds[1].Name != "Reuters Business" {
		t.Errorf("second feed name wrong: %+v", feeds[1])
	}
}

func TestFromItemRules(t *testing.T) {
	feed := Feed{Name: "src", Region: "CO", Topic: "markets"}
	cutoff := time.Now().Add(-MaxItemAge)

	fresh := time.Now().Add(-2 * time.Hour)
	stale := time.Now().Add(-48 * time.Hour)

	tests := []struct {
		name string
		item *gofeed.Item
		keep bool
	}{
		{"ok", &gofeed.Item{Title: "t", Link: "https://x.com/a", PublishedParsed: &fresh}, true},
		{"missing title", &gofeed.Item{Link: "https://x.com/a", PublishedParsed: &fresh}, false},
		{"missing link", &gofeed.Item{Title: "t", PublishedParsed: &fresh}, false},
		{"stale", &gofeed.Item{Title: "t", Link: "https://x.com/a", PublishedParsed: &stale}, false},
		{"no timestamp", &gofeed.Item{Title: "t", Link: "https://x.com/a"}, false},
	}
	for _, tt := range tests {
		if _, ok := fromItem(tt.item, feed, cutoff); ok != tt.keep {
			t.Errorf("%s: keep = %v, want %v", tt.name, ok, tt.keep)
		}
	}
}

func TestFromItemCleansTrackingURL(t *testing.T) {
	fresh := time.Now().Add(-time.Hour)
	item := &gofeed.Item{
		Title:           "Fed hikes",
		Link:            "https://x.com/a?utm_source=rss&id=9",
		PublishedParsed: &fresh,
	}
	a, ok := fromItem(item, Feed{Name: "src"}, time.Now().Add(-MaxItemAge))
	if !ok {
		t.Fatal("item dropped unexpectedly")
	}
	if a.URL != "https://x.com/a" {
		t.Errorf("URL = %q, want tracking params stripped", a.URL)
	}
}
