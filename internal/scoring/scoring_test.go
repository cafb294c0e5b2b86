package scoring

import (
	"math"
	"testing"

	"github.com/conowcast/nowcast/internal/moves"
)

func TestScoreEmptyMoves(t *testing.T) {
	s, contrib := Score(moves.Moves{})
	if s != 0.0 {
		t.Errorf("Score(empty) = %v, want 0.0", s)
	}
	if RegimeFromScore(s) != RegimeNeutral {
		t.Errorf("regime = %q, want %q", RegimeFromScore(s), RegimeNeutral)
	}
	for k, c := range contrib {
		if c != 0.0 {
			t.Errorf("contribution %s = %v, want 0", k, c)
		}
	}
}

func TestScoreClampsAndContributes(t *testing.T) {
	m := moves.Moves{
		moves.BrentPct: 5.0,
		moves.VIXPct:   -10.0,
	}
	s, contrib := Score(m)

	if got := contrib[moves.BrentPct]; math.Abs(got-10.0) > 1e-9 {
		t.Errorf("Brent contribution = %v, want 10.0", got)
	}
	if got := contrib[moves.VIXPct]; math.Abs(got-15.0) > 1e-9 {
		t.Errorf("VIX contribution = %v, want 15.0", got)
	}
	// Raw sum 25.0 clamps to the upper bound.
	if s != 10.0 {
		t.Errorf("final score = %v, want 10.0", s)
	}
	if RegimeFromScore(s) != RegimeRiskOn {
		t.Errorf("regime = %q, want %q", RegimeFromScore(s), RegimeRiskOn)
	}
}

func TestScoreNegativeClamp(t *testing.T) {
	m := moves.Moves{
		moves.VIXPct: 40.0, // -1.5 * 40 = -60 before clamping
	}
	s, _ := Score(m)
	if s != -10.0 {
		t.Errorf("final score = %v, want -10.0", s)
	}
	if RegimeFromScore(s) != RegimeRiskOff {
		t.Errorf("regime = %q, want %q", RegimeFromScore(s), RegimeRiskOff)
	}
}

func TestRegimeThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{3.5, RegimeRiskOn},
		{3.49, RegimeNeutral},
		{-3.49, RegimeNeutral},
		{-3.5, RegimeRiskOff},
		{0, RegimeNeutral},
	}
	for _, tt := range tests {
		if got := RegimeFromScore(tt.score); got != tt.want {
			t.Errorf("RegimeFromScore(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestScoreBasisPointWeight(t *testing.T) {
	m := moves.Moves{moves.US10YBp: 10.0}
	s, contrib := Score(m)
	if got := contrib[moves.US10YBp]; math.Abs(got-(-1.5)) > 1e-9 {
		t.Errorf("US10Y contribution = %v, want -1.5", got)
	}
	if math.Abs(s-(-1.5)) > 1e-9 {
		t.Errorf("score = %v, want -1.5", s)
	}
}
