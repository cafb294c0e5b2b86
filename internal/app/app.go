// Package app wires the daily pipeline: collect feeds, filter and store
// articles, snapshot market moves, score the pressure regime, generate
// the model report and deliver the result.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/conowcast/nowcast/internal/config"
	"github.com/conowcast/nowcast/internal/digest"
	"github.com/conowcast/nowcast/internal/extract"
	"github.com/conowcast/nowcast/internal/gemini"
	"github.com/conowcast/nowcast/internal/logger"
	"github.com/conowcast/nowcast/internal/metrics"
	"github.com/conowcast/nowcast/internal/moves"
	"github.com/conowcast/nowcast/internal/notify"
	"github.com/conowcast/nowcast/internal/prompt"
	"github.com/conowcast/nowcast/internal/rss"
	"github.com/conowcast/nowcast/internal/scoring"
	"github.com/conowcast/nowcast/internal/storage"
)

// Run executes one full pipeline pass. Collection and storage failures
// abort the run; report generation and delivery are best-effort so a
// model or SMTP outage still leaves the digest on disk.
func Run(ctx context.Context, cfg *config.Config) error {
	started := time.Now()
	now := time.Now().UTC()
	asOf := now.Format("2006-01-02")

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close storage", "error", err)
		}
	}()

	articles, err := collect(cfg)
	if err != nil {
		return err
	}

	stored, err := store.UpsertArticles(articles)
	if err != nil {
		return fmt.Errorf("failed to store articles: %w", err)
	}
	metrics.Global.AddArticlesStored(stored)
	logger.Info("articles stored", "new", stored, "collected", len(articles))

	pool, err := digestPool(store, asOf, cfg.MaxArticles)
	if err != nil {
		return err
	}
	selected := digest.Dedupe(pool, cfg.MaxArticles)
	metrics.Global.AddDuplicatesFiltered(len(pool) - len(selected))

	digestText := digest.Render(asOf, digest.Group(selected), cfg.MaxPerBucket)

	snapshot := moves.NewFetcher().Snapshot(now)
	if err := snapshot.Save(filepath.Join(cfg.DataDir, "moves_latest.json")); err != nil {
		logger.Warn("failed to save moves snapshot", "error", err)
	}

	score, contributions := scoring.Score(snapshot.Moves)
	regime := scoring.RegimeFromScore(score)
	logger.Info("pressure score computed", "score", score, "regime", regime)

	enrich(selected, cfg)

	promptText := prompt.Build(prompt.Input{
		AsOf:          asOf,
		Score:         score,
		Regime:        regime,
		Contributions: contributions,
		Moves:         snapshot.Moves,
		Articles:      selected,
		DigestText:    digestText,
		MaxArticles:   cfg.MaxArticles,
	})

	reportMD, model, reportJSON := generate(ctx, cfg, promptText, asOf, score, regime)

	if err := writeArtifacts(cfg.ReportsDir, asOf, digestText, promptText, reportMD); err != nil {
		return err
	}

	if reportJSON != "" {
		saved := storage.SavedReport{
			AsOf:      asOf,
			Model:     model,
			Score:     score,
			JSON:      reportJSON,
			CreatedAt: now.Format(time.RFC3339),
		}
		if err := store.SaveReport(saved); err != nil {
			logger.Warn("failed to save report", "error", err)
		}
	}

	deliver(ctx, cfg, asOf, reportMD, digestText)

	metrics.Global.RecordRunDuration(time.Since(started))
	metrics.Global.SetLastRun()
	logger.Info("pipeline finished", "duration", time.Since(started).Round(time.Millisecond))
	return nil
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.DatabaseURL != "" {
		return storage.NewPostgresStore(cfg.DatabaseURL)
	}
	return storage.NewFileStore(cfg.DataDir)
}

// digestPool gathers the articles the digest draws from: today's
// articles first, topped up from recent storage when the day is thin,
// so dedupe keeps the freshest coverage while still filling the digest.
func digestPool(store storage.Store, asOf string, maxArticles int) ([]digest.Article, error) {
	pool, err := store.ArticlesForDay(asOf, maxArticles*5)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's articles: %w", err)
	}
	if len(pool) < maxArticles {
		recent, err := store.LatestArticles(maxArticles * 5)
		if err != nil {
			return nil, fmt.Errorf("failed to load article pool: %w", err)
		}
		pool = append(pool, recent...)
	}
	return pool, nil
}

// collect fetches all feeds and drops off-topic items.
func collect(cfg *config.Config) ([]digest.Article, error) {
	feeds, err := rss.LoadFeeds(cfg.FeedsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load feeds config: %w", err)
	}
	metrics.Global.AddFeedsFetched(len(feeds))

	fetched := rss.FetchAll(feeds)
	metrics.Global.AddArticlesCollected(len(fetched))

	var kept []digest.Article
	for _, a := range fetched {
		if digest.IsNoise(a) {
			metrics.Global.AddNoiseFiltered(1)
			continue
		}
		kept = append(kept, a)
	}
	logger.Info("articles collected", "fetched", len(fetched), "kept", len(kept))
	return kept, nil
}

// enrich pulls full article text for the first few selected items so
// the prompt is not limited to headlines.
func enrich(selected []digest.Article, cfg *config.Config) {
	n := cfg.ScrapeMaxArticles
	if n > len(selected) {
		n = len(selected)
	}
	if n <= 0 {
		return
	}
	urls := make([]string, 0, n)
	for _, a := range selected[:n] {
		urls = append(urls, a.URL)
	}
	texts := extract.New(cfg.ScrapeConcurrency).Texts(urls)
	metrics.Global.AddTextsExtracted(len(texts))
	for i := range selected[:n] {
		if text, ok := texts[selected[i].URL]; ok {
			selected[i].Text = text
		}
	}
}

// generate calls the model and renders the report. On failure it falls
// back to a stub section so the day's digest still ships.
func generate(ctx context.Context, cfg *config.Config, promptText, asOf string, score float64, regime string) (md, model, rawJSON string) {
	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		logger.Error("failed to create model client", "error", err)
		metrics.Global.IncrementReportFailures()
		return fallbackReport(asOf, score, regime), "", ""
	}
	defer client.Close()

	rep, err := client.GenerateReport(ctx, promptText)
	if err != nil {
		logger.Error("report generation failed", "error", err)
		metrics.Global.SetError(err.Error())
		metrics.Global.IncrementReportFailures()
		return fallbackReport(asOf, score, regime), "", ""
	}
	metrics.Global.IncrementReportsGenerated()

	raw, err := rep.JSON()
	if err != nil {
		logger.Warn("failed to serialize report", "error", err)
	}
	return rep.ToMarkdown(asOf, score), client.ModelName(), raw
}

func fallbackReport(asOf string, score float64, regime string) string {
	return fmt.Sprintf("# Colombia Market Nowcast — %s\n\n"+
		"Model report unavailable for this run.\n\n"+
		"Quant score: %.1f (%s)\n", asOf, score, regime)
}

// writeArtifacts persists the digest, prompt and report, both as
// "latest" files and as dated copies.
func writeArtifacts(dir, asOf, digestText, promptText, reportMD string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create reports dir: %w", err)
	}
	artifacts := []struct {
		name    string
		content string
	}{
		{"latest_digest.md", digestText},
		{"latest_prompt.txt", promptText},
		{"latest_report.md", reportMD},
		{asOf + "_digest.md", digestText},
		{asOf + "_report.md", reportMD},
	}
	for _, a := range artifacts {
		path := filepath.Join(dir, a.name)
		if err := os.WriteFile(path, []byte(a.content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", a.name, err)
		}
	}
	logger.Info("artifacts written", "dir", dir, "as_of", asOf)
	return nil
}

// deliver sends the report over every configured channel.
func deliver(ctx context.Context, cfg *config.Config, asOf, reportMD, digestText string) {
	body := reportMD + "\n\n---\n\n" + digestText

	if cfg.EmailEnabled() {
		sender := notify.NewEmailSender(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.EmailFrom,
			To:       cfg.EmailTo,
		})
		subject := fmt.Sprintf("Colombia Market Nowcast — %s", asOf)
		if err := sender.Send(ctx, subject, body); err != nil {
			logger.Error("email delivery failed", "error", err)
		} else {
			metrics.Global.IncrementEmailsSent()
		}
	}

	if cfg.TelegramEnabled() {
		sender := notify.NewTelegramSender(cfg.TelegramToken, cfg.TelegramChatID)
		if err := sender.Send(ctx, reportMD); err != nil {
			logger.Error("telegram delivery failed", "error", err)
		} else {
			metrics.Global.IncrementTelegramSent()
		}
	}
}
