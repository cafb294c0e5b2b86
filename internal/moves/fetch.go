package moves

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/conowcast/nowcast/internal/logger"
	"github.com/conowcast/nowcast/internal/retry"
)

// Stooq daily-history symbols, no auth required.
var stooqSymbols = map[string]string{
	BrentPct:  "cb.f",   // ICE Brent futures
	USDCOPPct: "usdcop", // USD/COP spot
	DXYPct:    "usd_i",  // US Dollar Index
	VIXPct:    "vi.f",   // VIX futures proxy
	EEMPct:    "eem.us", // iShares MSCI Emerging Markets ETF
}

const (
	defaultStooqBase = "https://stooq.com"
	defaultFredURL   = "https://fred.stlouisfed.org/graph/fredgraph.csv?id=DGS10"

	userAgent = "Mozilla/5.0 (compatible; DailyOutlookBot/1.0)"
)

// Fetcher pulls daily closes from Stooq and the 10-year Treasury yield
// from FRED, and turns them into percent / basis-point changes.
type Fetcher struct {
	httpClient *http.Client
	stooqBase  string
	fredURL    string
	retry      retry.Config
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		stooqBase:  defaultStooqBase,
		fredURL:    defaultFredURL,
		retry:      retry.Config{MaxAttempts: 3, Delay: 2 * time.Second},
	}
}

// Snapshot fetches every indicator best-effort. Individual failures are
// logged and leave that indicator absent; the snapshot itself always
// comes back usable.
func (f *Fetcher) Snapshot(now time.Time) Snapshot {
	m := Moves{}

	for name, symbol := range stooqSymbols {
		last, prev, err := f.stooqLastTwoCloses(symbol)
		if err != nil {
			logger.Warn("market move unavailable", "indicator", name, "symbol", symbol, "error", err)
			continue
		}
		if pct, ok := PctChange(last, prev); ok {
			m[name] = pct
		}
	}

	if bp, err := f.us10yBpChange(); err != nil {
		logger.Warn("market move unavailable", "indicator", US10YBp, "error", err)
	} else {
		m[US10YBp] = bp
	}

	return Snapshot{
		AsOf:        now.Format("2006-01-02"),
		Moves:       m,
		Source:      "stooq+fred",
		GeneratedAt: now.Format(time.RFC3339),
	}
}

// PctChange computes the percent change between two closes. The second
// return is false when prev is zero and no change can be derived.
func PctChange(last, prev float64) (float64, bool) {
	if prev == 0 {
		return 0, false
	}
	return (last/prev - 1.0) * 100.0, true
}

// BpChange converts a yield delta in percent to basis points.
func BpChange(last, prev float64) float64 {
	return (last - prev) * 100.0
}

// get fetches one URL with bounded retries; the free endpoints drop
// requests often enough that a single attempt loses indicators.
func (f *Fetcher) get(url string) ([]byte, error) {
	cfg := f.retry
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	var body []byte
	err := retry.Do(context.Background(), cfg, func() error {
		b, err := f.getOnce(url)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	return body, err
}

func (f *Fetcher) getOnce(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// stooqLastTwoCloses reads the daily-history CSV and returns the two
// most recent closes.
func (f *Fetcher) stooqLastTwoCloses(symbol string) (last, prev float64, err error) {
	url := fmt.Sprintf("%s/q/d/l/?s=%s&i=d", f.stooqBase, symbol)
	body, err := f.get(url)
	if err != nil {
		return 0, 0, err
	}

	closes, err := parseCloses(string(body), "Close")
	if err != nil {
		return 0, 0, err
	}
	if len(closes) < 2 {
		return 0, 0, fmt.Errorf("not enough history for %s", symbol)
	}
	return closes[len(closes)-1], closes[len(closes)-2], nil
}

// us10yBpChange reads the FRED DGS10 CSV (daily yield in percent) and
// returns the latest daily change in basis points.
func (f *Fetcher) us10yBpChange() (float64, error) {
	body, err := f.get(f.fredURL)
	if err != nil {
		return 0, err
	}

	vals, err := parseCloses(string(body), "DGS10")
	if err != nil {
		return 0, err
	}
	if len(vals) < 2 {
		return 0, fmt.Errorf("not enough DGS10 history")
	}
	return BpChange(vals[len(vals)-1], vals[len(vals)-2]), nil
}

// parseCloses extracts a numeric column from a CSV document, skipping
// blank and placeholder values ("N/A", ".").
func parseCloses(text, column string) ([]float64, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimSpace(text)))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("bad CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("empty CSV")
	}

	col := -1
	for i, name := range records[0] {
		if strings.EqualFold(strings.TrimSpace(name), column) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("column %q not found", column)
	}

	var vals []float64
	for _, row := range records[1:] {
		if col >= len(row) {
			continue
		}
		if v, ok := safeFloat(row[col]); ok {
			vals = append(vals, v)
		}
	}
	return vals, nil
}

func safeFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "", "N/A", "NA", "NULL", ".":
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
