// Package scoring turns a market-move snapshot into a bounded pressure
// score for Colombian equities, with per-indicator contributions kept
// for explainability.
package scoring

import "github.com/conowcast/nowcast/internal/moves"

// Weights per indicator. Positive score means supportive conditions for
// local equities, negative means headwinds. US10Y moves come in basis
// points, hence the smaller weight.
var Weights = map[string]float64{
	moves.BrentPct:  2.0,  // oil up supports Colombia
	moves.USDCOPPct: -2.0, // weaker peso is usually risk-off locally
	moves.US10YBp:   -0.15,
	moves.DXYPct:    -1.0,
	moves.VIXPct:    -1.5,
	moves.EEMPct:    1.0,
}

const (
	scoreMin = -10.0
	scoreMax = 10.0

	regimeThreshold = 3.5
)

// Regime labels derived from the score.
const (
	RegimeRiskOn  = "risk-on/supportive"
	RegimeRiskOff = "risk-off/headwinds"
	RegimeNeutral = "neutral/mixed"
)

// Score computes the clamped weighted sum over the snapshot. Absent
// indicators contribute zero; they are neutral for scoring but stay
// absent for display. The returned map holds every weighted
// contribution, including zeros.
func Score(m moves.Moves) (float64, map[string]float64) {
	contrib := make(map[string]float64, len(Weights))
	s := 0.0
	for k, w := range Weights {
		v := m.Value(k) // 0.0 when absent
		c := w * v
		contrib[k] = c
		s += c
	}
	if s < scoreMin {
		s = scoreMin
	}
	if s > scoreMax {
		s = scoreMax
	}
	return s, contrib
}

// RegimeFromScore maps a final score onto the coarse three-way label.
func RegimeFromScore(s float64) string {
	if s >= regimeThreshold {
		return RegimeRiskOn
	}
	if s <= -regimeThreshold {
		return RegimeRiskOff
	}
	return RegimeNeutral
}
