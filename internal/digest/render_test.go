package digest

import (
	"strings"
	"testing"
)

func TestRenderRegionOrderAndSkipsEmpty(t *testing.T) {
	grouped := Group([]Article{
		{Title: "col", URL: "u1", Source: "s", Region: "CO", Topic: "markets"},
		{Title: "asia", URL: "u2", Source: "s", Region: "JP", Topic: "macro"},
	})
	out := Render("2026-08-31", grouped, 8)

	asiaIdx := strings.Index(out, "## Asia")
	coIdx := strings.Index(out, "## Colombia")
	if asiaIdx < 0 || coIdx < 0 {
		t.Fatalf("missing region sections:\n%s", out)
	}
	if asiaIdx > coIdx {
		t.Errorf("ASIA must render before CO")
	}
	for _, absent := range []string{"## Estados Unidos", "## Europa", "## Global", "## Otros"} {
		if strings.Contains(out, absent) {
			t.Errorf("empty region section rendered: %s", absent)
		}
	}
}

func TestRenderTopicOrder(t *testing.T) {
	grouped := Group([]Article{
		{Title: "z", URL: "u1", Source: "s", Region: "US", Topic: "zzz-custom"},
		{Title: "m", URL: "u2", Source: "s", Region: "US", Topic: "macro"},
		{Title: "k", URL: "u3", Source: "s", Region: "US", Topic: "markets"},
		{Title: "a", URL: "u4", Source: "s", Region: "US", Topic: "aaa-custom"},
	})
	out := Render("2026-08-31", grouped, 8)

	iMarkets := strings.Index(out, "### Mercados")
	iMacro := strings.Index(out, "### Macro")
	iAAA := strings.Index(out, "### aaa-custom")
	iZZZ := strings.Index(out, "### zzz-custom")
	if !(iMarkets < iMacro && iMacro < iAAA && iAAA < iZZZ) {
		t.Errorf("topic order wrong: markets=%d macro=%d aaa=%d zzz=%d\n%s",
			iMarkets, iMacro, iAAA, iZZZ, out)
	}
}

func TestRenderPerBucketCap(t *testing.T) {
	var articles []Article
	for i := 0; i < 5; i++ {
		articles = append(articles, Article{
			Title: "story", URL: "https://x.com/" + string(rune('a'+i)),
			Source: "src", Region: "CO", Topic: "markets",
		})
	}
	out := Render("2026-08-31", Group(articles), 2)
	if got := strings.Count(out, "- **story**"); got != 2 {
		t.Errorf("rendered %d items, want 2", got)
	}
}

func TestRenderOptionalFields(t *testing.T) {
	grouped := Group([]Article{
		{Title: "with pub", URL: "https://x.com/1", Source: "src", Region: "CO", Published: "2026-08-31T07:00:00Z"},
		{Title: "bare", Region: "CO", URL: "https://x.com/2"},
	})
	out := Render("2026-08-31", grouped, 8)

	if !strings.Contains(out, "**with pub** (src) — 2026-08-31T07:00:00Z") {
		t.Errorf("published suffix missing:\n%s", out)
	}
	if !strings.Contains(out, "**bare** ()") {
		t.Errorf("missing optional fields must render empty, not fail:\n%s", out)
	}
	if !strings.Contains(out, "# Digest Diario de Mercados Globales — 2026-08-31") {
		t.Errorf("title line missing")
	}
}
