package digest

import (
	"regexp"
	"strings"
)

var (
	reSpaces    = regexp.MustCompile(`\s+`)
	reNormChars = regexp.MustCompile(`[^a-z0-9\s\-:/().]`)
)

// Normalize canonicalizes text for comparison: lowercase, strip
// everything outside a small allowed set, then collapse whitespace runs
// and trim. Stripping happens before the collapse so a removed character
// between spaces cannot leave a double space behind.
// Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = reNormChars.ReplaceAllString(s, "")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Tracking markers that make a query string disposable.
var trackingMarkers = []string{
	"utm_source=",
	"utm_medium=",
	"utm_campaign=",
	"utm_term=",
	"utm_content=",
}

// CleanURL drops the whole query string when the URL carries tracking
// parameters, so the same story shared through different channels keeps
// one identity. Anything else is returned untouched.
func CleanURL(rawURL string) string {
	for _, marker := range trackingMarkers {
		if strings.Contains(rawURL, marker) {
			if idx := strings.Index(rawURL, "?"); idx >= 0 {
				return rawURL[:idx]
			}
			return rawURL
		}
	}
	return rawURL
}
