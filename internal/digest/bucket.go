package digest

import "strings"

// Canonical region buckets shown in the digest, in display order.
const (
	RegionAsia   = "ASIA"
	RegionEU     = "EU"
	RegionUS     = "US"
	RegionLatam  = "LATAM"
	RegionCO     = "CO"
	RegionGlobal = "GLOBAL"
	RegionOther  = "OTHER"
)

var RegionOrder = []string{RegionAsia, RegionEU, RegionUS, RegionLatam, RegionCO, RegionGlobal, RegionOther}

// regionAliases maps the many spellings used in feed configs onto the
// closed bucket set. Keys are upper-case with whitespace removed.
var regionAliases = map[string]string{
	// Europe / UK
	"EU": RegionEU,
	"GB": RegionEU,
	"UK": RegionEU,

	// US
	"US":  RegionUS,
	"USA": RegionUS,

	// LatAm
	"LATAM": RegionLatam,

	// Colombia
	"CO":       RegionCO,
	"COL":      RegionCO,
	"COLOMBIA": RegionCO,

	// Asia
	"ASIA":     RegionAsia,
	"CN":       RegionAsia,
	"CHINA":    RegionAsia,
	"HK":       RegionAsia,
	"HONGKONG": RegionAsia,
	"JP":       RegionAsia,
	"JAPAN":    RegionAsia,
	"KR":       RegionAsia,
	"KOREA":    RegionAsia,
	"TW":       RegionAsia,
	"TAIWAN":   RegionAsia,

	// Global catch-all
	"GLOBAL": RegionGlobal,
	"WORLD":  RegionGlobal,
}

// BucketRegion resolves a free-form region string to its canonical
// bucket. Unknown values land in OTHER; the lookup never fails.
func BucketRegion(raw string) string {
	r := strings.ToUpper(strings.TrimSpace(raw))
	r = strings.Join(strings.Fields(r), "") // "Hong Kong" -> "HONGKONG"
	if bucket, ok := regionAliases[r]; ok {
		return bucket
	}
	return RegionOther
}

// NormalizeTopic lowercases and trims a topic, defaulting to "general".
func NormalizeTopic(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	if t == "" {
		return "general"
	}
	return t
}

// Grouped is the two-level digest structure: region bucket -> topic ->
// articles in insertion order.
type Grouped map[string]map[string][]Article

// Group buckets articles by canonical region and normalized topic,
// preserving the input order inside each leaf.
func Group(articles []Article) Grouped {
	grouped := make(Grouped)
	for _, a := range articles {
		region := BucketRegion(a.Region)
		topic := NormalizeTopic(a.Topic)

		if grouped[region] == nil {
			grouped[region] = make(map[string][]Article)
		}
		grouped[region][topic] = append(grouped[region][topic], a)
	}
	return grouped
}
