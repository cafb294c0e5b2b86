// Package prompt assembles the grounding context handed to the report
// generator. Output is deterministic for a given input so report runs
// are reproducible.
package prompt

import (
	"fmt"
	"strings"

	"github.com/conowcast/nowcast/internal/digest"
	"github.com/conowcast/nowcast/internal/moves"
)

// Input carries everything the report generator is allowed to see.
type Input struct {
	AsOf          string
	Score         float64
	Regime        string
	Contributions map[string]float64
	Moves         moves.Moves
	Articles      []digest.Article
	DigestText    string
	MaxArticles   int
}

// Build renders the prompt. The model is kept grounded with explicit
// inputs and URLs; indicators render "N/D" when absent so the model
// cannot mistake missing data for zero.
func Build(in Input) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("As-of date: %s", in.AsOf))
	lines = append(lines, fmt.Sprintf("Quant score: %.2f (regime: %s)", in.Score, in.Regime))

	lines = append(lines, "Contributions:")
	for _, name := range moves.Indicators {
		lines = append(lines, fmt.Sprintf("- %s: %.2f", name, in.Contributions[name]))
	}

	lines = append(lines, "Market moves:")
	for _, name := range moves.Indicators {
		unit := "%"
		if strings.HasSuffix(name, "_bp") {
			unit = " bp"
		}
		v := in.Moves.Display(name)
		if v == "N/D" {
			unit = ""
		}
		lines = append(lines, fmt.Sprintf("- %s: %s%s", name, v, unit))
	}

	lines = append(lines, "")
	lines = append(lines, "Articles (most recent first):")
	max := in.MaxArticles
	if max <= 0 || max > len(in.Articles) {
		max = len(in.Articles)
	}
	for _, a := range in.Articles[:max] {
		lines = append(lines, fmt.Sprintf("- [%s] (%s/%s) %s | %s",
			a.Source, a.Region, a.Topic, a.Title, a.URL))
	}

	lines = append(lines, "")
	lines = append(lines, "News digest:")
	lines = append(lines, in.DigestText)

	lines = append(lines, "")
	lines = append(lines, "Task: Produce a Colombia (COLCAP) outlook based ONLY on the inputs above.")
	lines = append(lines, "Rules:")
	lines = append(lines, "- Not financial advice. Educational/research only.")
	lines = append(lines, "- Be explicit about uncertainty; use scenarios.")
	lines = append(lines, "- Cite evidence by referencing the article URLs in `citations` fields.")
	lines = append(lines, "- Treat N/D indicators as unavailable, never as zero.")

	return strings.Join(lines, "\n")
}
