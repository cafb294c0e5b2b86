package report

import (
	"strings"
	"testing"
)

const validJSON = `{
  "regime": "neutral/mixed",
  "bias_24h": "neutral",
  "bias_1w": "bearish",
  "top_drivers": [
    {"driver": "Brent", "impact": "positive", "why": "oil up", "citations": ["https://x.com/1"]}
  ],
  "scenarios": [
    {"name": "base", "probability": 0.6, "narrative": "range-bound", "invalidated_by": "oil crash", "citations": []}
  ],
  "watch_next": ["USD/COP open"],
  "limitations": "stale data"
}`

func TestParsePlainJSON(t *testing.T) {
	r, err := Parse(validJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Regime != "neutral/mixed" || r.Bias1w != "bearish" {
		t.Errorf("parsed wrong: %+v", r)
	}
	if len(r.TopDrivers) != 1 || r.TopDrivers[0].Driver != "Brent" {
		t.Errorf("drivers wrong: %+v", r.TopDrivers)
	}
}

func TestParseFencedJSON(t *testing.T) {
	raw := "Here is the report:\n```json\n" + validJSON + "\n```\nLet me know if you need anything else."
	r, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse fenced: %v", err)
	}
	if r.Scenarios[0].Name != "base" {
		t.Errorf("scenario wrong: %+v", r.Scenarios)
	}
}

func TestParseMissingFields(t *testing.T) {
	_, err := Parse(`{"regime": "neutral/mixed"}`)
	if err == nil {
		t.Fatal("expected error for missing fields")
	}
	for _, want := range []string{"bias_24h", "top_drivers", "scenarios"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should name %s: %v", want, err)
		}
	}
}

func TestParseGarbage(t *testing.T) {
	if _, err := Parse("I could not produce a report today."); err == nil {
		t.Errorf("expected error for non-JSON output")
	}
}

func TestToMarkdown(t *testing.T) {
	r, err := Parse(validJSON)
	if err != nil {
		t.Fatal(err)
	}
	md := r.ToMarkdown("2026-08-31", -1.25)

	for _, want := range []string{
		"# Colombia Market Nowcast — 2026-08-31",
		"**Quant score:** `-1.25`",
		"- **Brent** (positive): oil up",
		"  - Sources: https://x.com/1",
		"### BASE — p=0.60",
		"**Invalidated by:** oil crash",
		"- USD/COP open",
		"Not financial advice",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}
