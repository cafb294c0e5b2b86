// Package extract pulls article body text for prompt grounding. It is
// strictly best-effort: any failure leaves the article with its feed
// summary only.
package extract

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/conowcast/nowcast/internal/logger"
)

// maxTextRunes bounds extracted text so prompts stay affordable.
const maxTextRunes = 12000

var paragraphSelectors = []string{
	"article p",
	".article-body p",
	".article-content p",
	".story-body p",
	".content p",
	"main p",
}

// Extractor fetches pages and extracts paragraph text with a bounded
// worker pool.
type Extractor struct {
	httpClient  *http.Client
	concurrency int
}

func New(concurrency int) *Extractor {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Extractor{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		concurrency: concurrency,
	}
}

// Texts extracts body text for every URL concurrently. The result maps
// URL to extracted text; URLs that failed or produced too little text
// are simply absent.
func (e *Extractor) Texts(urls []string) map[string]string {
	results := make(map[string]string, len(urls))

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, e.concurrency)

	for _, url := range urls {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			text, err := e.Text(url)
			if err != nil {
				logger.Debug("extraction failed", "url", url, "error", err)
				return
			}
			if utf8.RuneCountInString(text) < 200 {
				return
			}
			mu.Lock()
			results[url] = text
			mu.Unlock()
		}(url)
	}
	wg.Wait()

	logger.Info("full-text extraction done", "requested", len(urls), "extracted", len(results))
	return results
}

// Text fetches one page and joins its article paragraphs.
func (e *Extractor) Text(url string) (string, error) {
	resp, err := e.httpClient.Get(url)
	if err != nil {
		return "", fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error parsing HTML: %w", err)
	}

	text := paragraphText(doc)
	if text == "" {
		return "", fmt.Errorf("no article text found")
	}
	return bound(text), nil
}

// paragraphText tries each selector until one yields paragraphs.
func paragraphText(doc *goquery.Document) string {
	for _, selector := range paragraphSelectors {
		var paragraphs []string
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			t := strings.TrimSpace(s.Text())
			if len(t) > 10 {
				paragraphs = append(paragraphs, t)
			}
		})
		if len(paragraphs) > 0 {
			return strings.Join(paragraphs, "\n\n")
		}
	}
	return ""
}

// bound trims text to maxTextRunes on a rune boundary, preferring a
// sentence end.
func bound(text string) string {
	if utf8.RuneCountInString(text) <= maxTextRunes {
		return text
	}
	runes := []rune(text)
	trimmed := string(runes[:maxTextRunes])
	if idx := strings.LastIndex(trimmed, ". "); idx > maxTextRunes/2 {
		trimmed = trimmed[:idx+1]
	}
	return trimmed
}
