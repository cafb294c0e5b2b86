// Package moves holds the market-move indicator snapshot feeding the
// pressure score and the report prompt. Indicators can be absent; an
// absent value is never substituted with a number for display.
package moves

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Indicator names. Percent-change indicators carry the _pct suffix,
// basis-point changes carry _bp.
const (
	BrentPct  = "BRENT_pct"
	USDCOPPct = "USD_COP_pct"
	US10YBp   = "US10Y_bp"
	DXYPct    = "DXY_pct"
	VIXPct    = "VIX_pct"
	EEMPct    = "EEM_pct"
)

// Indicators lists every indicator in display order.
var Indicators = []string{BrentPct, USDCOPPct, US10YBp, DXYPct, VIXPct, EEMPct}

// Moves maps indicator name to its change value. A missing key means
// the indicator was unavailable this run.
type Moves map[string]float64

// Has reports whether the indicator was captured.
func (m Moves) Has(name string) bool {
	_, ok := m[name]
	return ok
}

// Value returns the captured value, or 0.0 when absent. Zero
// substitution is scoring policy only; use Display for output.
func (m Moves) Value(name string) float64 {
	return m[name]
}

// Display formats the indicator for human output, with an explicit
// marker when unavailable.
func (m Moves) Display(name string) string {
	v, ok := m[name]
	if !ok {
		return "N/D"
	}
	return fmt.Sprintf("%.2f", v)
}

// Snapshot is the persisted market-moves document for one run.
type Snapshot struct {
	AsOf        string `json:"as_of"`
	Moves       Moves  `json:"moves"`
	Source      string `json:"source"`
	GeneratedAt string `json:"generated_at"`
}

// Save writes the snapshot as indented JSON, creating parent
// directories as needed.
func (s Snapshot) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a previously saved snapshot. A missing file is not
// an error; it yields an empty snapshot.
func LoadSnapshot(path string) (Snapshot, error) {
	var s Snapshot
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Snapshot{Moves: Moves{}}, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if s.Moves == nil {
		s.Moves = Moves{}
	}
	return s, nil
}
