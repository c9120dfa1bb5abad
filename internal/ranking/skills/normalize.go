package skills

import (
	"regexp"
	"strings"
)

var (
	disallowedChars = regexp.MustCompile(`[^a-z0-9+#.]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a raw skill token for comparison. Punctuation that
// carries meaning in technology names ("c++", "c#", "node.js") survives;
// everything else becomes a single space.
func Normalize(token string) string {
	s := strings.TrimSpace(strings.ToLower(token))
	s = disallowedChars.ReplaceAllString(s, " ")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
