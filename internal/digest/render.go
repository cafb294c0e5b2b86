package digest

import (
	"fmt"
	"sort"
	"strings"
)

// Spanish labels shown in the digest.
var regionLabels = map[string]string{
	RegionAsia:   "Asia",
	RegionEU:     "Europa / Reino Unido",
	RegionUS:     "Estados Unidos",
	RegionLatam:  "Latinoamérica",
	RegionCO:     "Colombia",
	RegionGlobal: "Global",
	RegionOther:  "Otros",
}

var topicLabels = map[string]string{
	"markets":     "Mercados",
	"macro":       "Macro",
	"policy":      "Política monetaria / Gobierno",
	"fx":          "Divisas (FX)",
	"rates":       "Tasas / Bonos",
	"commodities": "Materias primas",
	"stocks":      "Acciones",
	"companies":   "Empresas",
	"banks":       "Bancos",
	"market_data": "Datos de mercado",
	"general":     "General",
}

// preferredTopics fixes the topic order inside a region section; topics
// outside this list follow in lexicographic order.
var preferredTopics = []string{
	"markets", "macro", "policy", "fx", "rates", "commodities",
	"stocks", "companies", "banks", "market_data", "general",
}

// topicOrder returns the render order for the topics present in one
// region bucket.
func topicOrder(topics map[string][]Article) []string {
	order := make([]string, 0, len(topics))
	for _, t := range preferredTopics {
		if _, ok := topics[t]; ok {
			order = append(order, t)
		}
	}

	var rest []string
	for t := range topics {
		if !isPreferred(t) {
			rest = append(rest, t)
		}
	}
	sort.Strings(rest)

	return append(order, rest...)
}

func isPreferred(topic string) bool {
	for _, t := range preferredTopics {
		if t == topic {
			return true
		}
	}
	return false
}

// Render serializes the grouped structure into the markdown digest.
// Regions appear in the canonical order, empty regions are skipped, and
// each topic shows at most maxPerBucket items in insertion order.
func Render(asOf string, grouped Grouped, maxPerBucket int) string {
	var md []string
	md = append(md, fmt.Sprintf("# Digest Diario de Mercados Globales — %s", asOf))
	md = append(md, "")
	md = append(md, "_Generado automáticamente desde fuentes RSS. Proyecto educativo._")
	md = append(md, "")

	for _, region := range RegionOrder {
		topics, ok := grouped[region]
		if !ok {
			continue
		}

		md = append(md, fmt.Sprintf("## %s", label(regionLabels, region)))

		for _, topic := range topicOrder(topics) {
			md = append(md, fmt.Sprintf("### %s", label(topicLabels, topic)))

			articles := topics[topic]
			if maxPerBucket > 0 && len(articles) > maxPerBucket {
				articles = articles[:maxPerBucket]
			}
			for _, a := range articles {
				title := strings.TrimSpace(a.Title)
				url := strings.TrimSpace(a.URL)
				source := strings.TrimSpace(a.Source)
				published := strings.TrimSpace(a.Published)

				pubTxt := ""
				if published != "" {
					pubTxt = " — " + published
				}

				md = append(md, fmt.Sprintf("- **%s** (%s)%s", title, source, pubTxt))
				if url != "" {
					md = append(md, fmt.Sprintf("  - %s", url))
				}
			}
			md = append(md, "")
		}

		md = append(md, "")
	}
	return strings.Join(md, "\n")
}

func label(labels map[string]string, key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return key
}
