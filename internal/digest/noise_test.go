package digest

import "testing"

func TestIsNoiseKeepsMarketNews(t *testing.T) {
	keep := []Article{
		{Title: "Fed raises rates amid inflation concerns"},
		{Title: "Ecopetrol reports record earnings"},
		{Title: "Brent crude falls 3% on demand worries"},
		{Title: "Banco de la República holds rates steady"},
		{Title: "Peso colombiano se debilita frente al dólar"},
	}
	for _, a := range keep {
		if IsNoise(a) {
			t.Errorf("IsNoise(%q) = true, want false", a.Title)
		}
	}
}

func TestIsNoiseDropsOffTopic(t *testing.T) {
	drop := []Article{
		{Title: "Celebrity wedding shocks Hollywood"},
		{Title: "Local weather update"},
		{Title: "Champions League final preview"},
		{Title: "Horóscopo de hoy para todos los signos"},
	}
	for _, a := range drop {
		if !IsNoise(a) {
			t.Errorf("IsNoise(%q) = false, want true", a.Title)
		}
	}
}

func TestIsNoisePositiveBeatsNegative(t *testing.T) {
	// Off-topic words appear, but the market term must win.
	a := Article{Title: "Football club IPO: shares soar on market debut"}
	if IsNoise(a) {
		t.Errorf("positive match should override negative, got noise for %q", a.Title)
	}
}

func TestIsNoiseAmbiguousKept(t *testing.T) {
	// Neither pattern set matches: conservative default keeps the item.
	a := Article{Title: "Government announces new infrastructure plan"}
	if IsNoise(a) {
		t.Errorf("ambiguous article should be kept: %q", a.Title)
	}
}
