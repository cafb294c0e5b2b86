package digest

// Dedupe removes repeated articles, keeping the first occurrence of each
// composite key in input order. The key joins the normalized title with
// the verbatim URL (URLs are already canonicalized upstream). Output is
// capped at maxItems; the input tail past the cap is never inspected.
func Dedupe(articles []Article, maxItems int) []Article {
	if maxItems <= 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(articles))
	out := make([]Article, 0, maxItems)

	for _, a := range articles {
		if len(out) >= maxItems {
			break
		}
		key := Normalize(a.Title) + "|" + a.URL
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
