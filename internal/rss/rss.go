package rss

import (
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/conowcast/nowcast/internal/digest"
	"github.com/conowcast/nowcast/internal/logger"
)

// Feed is one configured RSS source. Region and topic tag every article
// the feed yields.
type Feed struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	Region string `yaml:"region"`
	Topic  string `yaml:"topic"`
}

// FeedsConfig is the YAML config structure
// feeds:
//   - name: ...
//     url: https://...
//     region: CO
//     topic: markets
type FeedsConfig struct {
	Feeds []Feed `yaml:"feeds"`
}

// LoadFeeds reads the RSS feed list from a YAML file.
func LoadFeeds(path string) ([]Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Feeds, nil
}

// MaxItemAge bounds how old a feed entry may be before it is ignored.
const MaxItemAge = 24 * time.Hour

// FetchAll downloads and parses every feed, returning the surviving
// items as pipeline articles. Per-feed failures are logged and skipped;
// items missing title or link, or older than MaxItemAge, never enter
// the result.
func FetchAll(feeds []Feed) []digest.Article {
	parser := gofeed.NewParser()
	cutoff := time.Now().Add(-MaxItemAge)

	var articles []digest.Article
	successCount := 0

	for _, feed := range feeds {
		if feed.URL == "" {
			continue
		}

		parsed, err := parser.ParseURL(feed.URL)
		if err != nil {
			logger.Warn("RSS fetch failed", "feed", feed.Name, "url", feed.URL, "error", err)
			continue
		}
		successCount++

		kept := 0
		for _, item := range parsed.Items {
			a, ok := fromItem(item, feed, cutoff)
			if !ok {
				continue
			}
			articles = append(articles, a)
			kept++
		}
		logger.Info("RSS feed loaded", "feed", feed.Name, "items", len(parsed.Items), "kept", kept)
	}

	logger.Info("RSS feeds processed", "ok", successCount, "total", len(feeds))
	return articles
}

// fromItem converts one feed entry, enforcing the identity and
// freshness rules.
func fromItem(item *gofeed.Item, feed Feed, cutoff time.Time) (digest.Article, bool) {
	a := digest.Article{
		Title:     item.Title,
		URL:       digest.CleanURL(item.Link),
		Source:    feed.Name,
		Region:    feed.Region,
		Topic:     feed.Topic,
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if !a.Valid() {
		return digest.Article{}, false
	}

	published := item.PublishedParsed
	if published == nil {
		published = item.UpdatedParsed
	}
	if published == nil || published.Before(cutoff) {
		return digest.Article{}, false
	}
	a.Published = published.UTC().Format(time.RFC3339)

	return a, true
}
