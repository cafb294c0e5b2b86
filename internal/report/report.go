// Package report defines the structured outlook produced by the LLM and
// its markdown rendering.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Driver is one ranked market driver with its cited evidence.
type Driver struct {
	Driver    string   `json:"driver"`
	Impact    string   `json:"impact"` // positive | negative | mixed
	Why       string   `json:"why"`
	Citations []string `json:"citations"`
}

// Scenario is one of the bull/base/bear paths.
type Scenario struct {
	Name          string   `json:"name"`
	Probability   float64  `json:"probability"`
	Narrative     string   `json:"narrative"`
	InvalidatedBy string   `json:"invalidated_by"`
	Citations     []string `json:"citations"`
}

// Report is the structured outlook for the local market.
type Report struct {
	Regime      string     `json:"regime"`
	Bias24h     string     `json:"bias_24h"`
	Bias1w      string     `json:"bias_1w"`
	TopDrivers  []Driver   `json:"top_drivers"`
	Scenarios   []Scenario `json:"scenarios"`
	WatchNext   []string   `json:"watch_next"`
	Limitations string     `json:"limitations"`
}

// Parse extracts a Report from raw model output. The output is
// sanitized first since models like to wrap JSON in markdown fences or
// prepend commentary.
func Parse(raw string) (*Report, error) {
	cleaned := SanitizeModelJSON(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty report payload")
	}

	var r Report
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		return nil, fmt.Errorf("failed to parse report JSON: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// JSON returns the canonical serialized form used for persistence.
func (r *Report) JSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(b), nil
}

// Validate checks the fields the downstream renderer depends on.
func (r *Report) Validate() error {
	var missing []string
	if r.Regime == "" {
		missing = append(missing, "regime")
	}
	if r.Bias24h == "" {
		missing = append(missing, "bias_24h")
	}
	if r.Bias1w == "" {
		missing = append(missing, "bias_1w")
	}
	if len(r.TopDrivers) == 0 {
		missing = append(missing, "top_drivers")
	}
	if len(r.Scenarios) == 0 {
		missing = append(missing, "scenarios")
	}
	if len(missing) > 0 {
		return fmt.Errorf("report missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// SanitizeModelJSON isolates the JSON object in a model response:
// markdown code fences and any text before the first brace or after the
// last one are dropped.
func SanitizeModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return ""
	}
	return s[start : end+1]
}

// ToMarkdown renders the report for email and archive.
func (r *Report) ToMarkdown(asOf string, score float64) string {
	var md []string
	md = append(md, fmt.Sprintf("# Colombia Market Nowcast — %s", asOf))
	md = append(md, "")
	md = append(md, fmt.Sprintf("**Quant score:** `%.2f`", score))
	md = append(md, fmt.Sprintf("**Regime:** %s", r.Regime))
	md = append(md, fmt.Sprintf("**Bias (24h / 1w):** %s / %s", r.Bias24h, r.Bias1w))
	md = append(md, "")

	md = append(md, "## Top drivers")
	for _, d := range r.TopDrivers {
		md = append(md, fmt.Sprintf("- **%s** (%s): %s", d.Driver, d.Impact, d.Why))
		if len(d.Citations) > 0 {
			md = append(md, "  - Sources: "+strings.Join(d.Citations, " | "))
		}
	}
	md = append(md, "")

	md = append(md, "## Scenarios")
	for _, s := range r.Scenarios {
		md = append(md, fmt.Sprintf("### %s — p=%.2f", strings.ToUpper(s.Name), s.Probability))
		md = append(md, s.Narrative)
		md = append(md, fmt.Sprintf("**Invalidated by:** %s", s.InvalidatedBy))
		if len(s.Citations) > 0 {
			md = append(md, "**Sources:** "+strings.Join(s.Citations, " | "))
		}
		md = append(md, "")
	}

	md = append(md, "## Watch next")
	for _, w := range r.WatchNext {
		md = append(md, fmt.Sprintf("- %s", w))
	}
	md = append(md, "")

	md = append(md, "## Limitations")
	md = append(md, r.Limitations)
	md = append(md, "")
	md = append(md, "---")
	md = append(md, "_Educational/research project only. Not financial advice._")

	return strings.Join(md, "\n")
}
