package digest

import (
	"regexp"
	"strings"
)

// Keyword pattern sets for the relevance filter. Kept as versioned
// constants so regression tests can pin exact behavior; widen with care.
//
// Positive terms win over negative ones: dropping a relevant story costs
// more than letting some noise through.
var marketRelevantPattern = regexp.MustCompile(strings.Join([]string{
	// equities / indices
	`stocks?`, `equit`, `shares?`, `bolsa`, `colcap`, `msci`, `s&p`, `nasdaq`, `dow jones`,
	`ftse`, `dax`, `nikkei`, `hang seng`, `ibex`,
	// macro releases
	`inflation`, `inflaci.n`, `cpi`, `gdp`, `pib`, `unemployment`, `desempleo`,
	`recession`, `recesi.n`, `growth`, `trade deficit`, `exports?`,
	// central banks and policy
	`\bfed\b`, `federal reserve`, `ecb`, `banco de la rep.blica`, `banrep`, `rate hike`,
	`rate cut`, `interest rates?`, `tasas? de inter.s`, `monetary policy`, `quantitative`,
	`treasur`, `bonds?`, `yields?`, `\btes\b`,
	// fx / commodities
	`dollar`, `d.lar`, `peso`, `usd`, `\bcop\b`, `euro`, `yuan`, `\bfx\b`, `divisas?`,
	`oil`, `petr.leo`, `brent`, `wti`, `crude`, `\bgas\b`, `coal`, `carb.n`, `gold`, `\boro\b`,
	`copper`, `cobre`, `coffee`, `caf.\b`, `commodit`,
	// regional corporates
	`ecopetrol`, `bancolombia`, `grupo aval`, `grupo sura`, `grupo argos`, `\bisa\b`,
	`avianca`, `cementos argos`, `davivienda`, `nutresa`, `canacol`, `terpel`,
	// risk sentiment
	`risk[- ]on`, `risk[- ]off`, `volatilit`, `\bvix\b`, `sell[- ]?off`, `rally`,
	`earnings`, `ipo\b`, `default`, `downgrade`, `upgrade`, `tariffs?`, `aranceles`,
	`sanctions?`, `emerging markets?`, `mercados emergentes`,
}, "|"))

var offTopicPattern = regexp.MustCompile(strings.Join([]string{
	// entertainment / lifestyle
	`celebrity`, `celebrit`, `hollywood`, `netflix series`, `drama`, `farándula`,
	`gossip`, `reality show`, `horoscope`, `hor.scopo`, `recipes?`, `recetas?`,
	`fashion week`, `lifestyle`, `royal family`, `concert`, `festival de`,
	// sports
	`football`, `f.tbol`, `soccer`, `champions league`, `world cup`, `mundial de`,
	`olympics`, `tennis`, `cycling`, `ciclismo`, `beisbol`, `\bnba\b`, `\bnfl\b`,
	// crime / local incidents
	`murder`, `homicid`, `robbery`, `asesinato`, `capturado`, `accidente de tr.nsito`,
	// weather
	`weather`, `\bclima\b`, `forecast`, `lluvias`, `hurac.n`, `heatwave`,
	// opinion / audio formats
	`opini.n`, `op[- ]ed`, `podcast`, `editorial\b`, `horoscopos`,
}, "|"))

// IsNoise decides whether an article is worth keeping in a market digest.
// A positive (market) match always keeps the item, a negative match alone
// drops it, and items matching neither set are kept.
func IsNoise(a Article) bool {
	hay := strings.ToLower(a.Title + " " + a.URL + " " + a.Source)
	if marketRelevantPattern.MatchString(hay) {
		return false
	}
	return offTopicPattern.MatchString(hay)
}
