package moves

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/conowcast/nowcast/internal/retry"
)

func TestFetcherSnapshot(t *testing.T) {
	stooq := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sym := r.URL.Query().Get("s")
		if sym == "vi.f" {
			// Simulate an outage for one indicator.
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "Date,Open,High,Low,Close,Volume\n"+
			"2026-08-28,100,101,99,100,10\n"+
			"2026-08-29,100,103,99,102,10\n")
	}))
	defer stooq.Close()

	fred := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "DATE,DGS10\n2026-08-28,4.20\n2026-08-29,.\n2026-08-30,4.35\n")
	}))
	defer fred.Close()

	f := &Fetcher{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		stooqBase:  stooq.URL,
		fredURL:    fred.URL,
		retry:      retry.Config{MaxAttempts: 2, Delay: time.Millisecond},
	}

	now := time.Date(2026, 8, 31, 7, 0, 0, 0, time.UTC)
	snap := f.Snapshot(now)

	if snap.AsOf != "2026-08-31" {
		t.Errorf("AsOf = %q", snap.AsOf)
	}
	for _, name := range []string{BrentPct, USDCOPPct, DXYPct, EEMPct} {
		v, ok := snap.Moves[name]
		if !ok {
			t.Errorf("%s missing from snapshot", name)
			continue
		}
		if v < 1.9 || v > 2.1 {
			t.Errorf("%s = %v, want ~2.0", name, v)
		}
	}
	if snap.Moves.Has(VIXPct) {
		t.Errorf("failed indicator must stay absent, got %v", snap.Moves[VIXPct])
	}
	bp, ok := snap.Moves[US10YBp]
	if !ok || bp < 14.9 || bp > 15.1 {
		t.Errorf("US10Y_bp = %v,%v, want ~15bp", bp, ok)
	}
}

func TestFetcherRetriesTransientFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "Date,Open,High,Low,Close,Volume\n"+
			"2026-08-28,100,101,99,100,10\n"+
			"2026-08-29,100,103,99,102,10\n")
	}))
	defer srv.Close()

	f := &Fetcher{
		httpClient: srv.Client(),
		stooqBase:  srv.URL,
		fredURL:    srv.URL,
		retry:      retry.Config{MaxAttempts: 3, Delay: time.Millisecond},
	}

	last, prev, err := f.stooqLastTwoCloses("cb.f")
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if last != 102 || prev != 100 {
		t.Errorf("closes = %v, %v, want 102, 100", last, prev)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("expected 2 requests, got %d", got)
	}
}

func TestFetcherStooqBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "No data")
	}))
	defer srv.Close()

	f := &Fetcher{
		httpClient: srv.Client(),
		stooqBase:  srv.URL,
		fredURL:    srv.URL,
	}
	if _, _, err := f.stooqLastTwoCloses("cb.f"); err == nil {
		t.Errorf("expected error for empty history")
	}
}
