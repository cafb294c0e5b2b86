package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched       int64
	ArticlesCollected  int64
	NoiseFiltered      int64
	DuplicatesFiltered int64
	ArticlesStored     int64
	TextsExtracted     int64
	ReportsGenerated   int64
	ReportFailures     int64
	EmailsSent         int64
	TelegramSent       int64

	// Timings
	LastRunDuration    time.Duration
	AverageRunDuration time.Duration
	TotalRunDuration   time.Duration
	RunCount           int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddFeedsFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched += int64(n)
}

func (m *Metrics) AddArticlesCollected(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesCollected += int64(n)
}

func (m *Metrics) AddNoiseFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NoiseFiltered += int64(n)
}

func (m *Metrics) AddDuplicatesFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += int64(n)
}

func (m *Metrics) AddArticlesStored(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesStored += int64(n)
}

func (m *Metrics) AddTextsExtracted(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TextsExtracted += int64(n)
}

func (m *Metrics) IncrementReportsGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportsGenerated++
}

func (m *Metrics) IncrementReportFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportFailures++
}

func (m *Metrics) IncrementEmailsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmailsSent++
}

func (m *Metrics) IncrementTelegramSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TelegramSent++
}

func (m *Metrics) RecordRunDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++

	if m.RunCount > 0 {
		m.AverageRunDuration = m.TotalRunDuration / time.Duration(m.RunCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feeds_fetched":           m.FeedsFetched,
		"articles_collected":      m.ArticlesCollected,
		"noise_filtered":          m.NoiseFiltered,
		"duplicates_filtered":     m.DuplicatesFiltered,
		"articles_stored":         m.ArticlesStored,
		"texts_extracted":         m.TextsExtracted,
		"reports_generated":       m.ReportsGenerated,
		"report_failures":         m.ReportFailures,
		"emails_sent":             m.EmailsSent,
		"telegram_sent":           m.TelegramSent,
		"last_run_duration_ms":    m.LastRunDuration.Milliseconds(),
		"average_run_duration_ms": m.AverageRunDuration.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
