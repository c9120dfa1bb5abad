package skills

import "strings"

// Match is the breakdown of a candidate's skills against a requirement list.
type Match struct {
	MatchScore    float64  `json:"matchScore"`
	Matched       []string `json:"matchedSkills"`
	Missing       []string `json:"missingSkills"`
	Extra         []string `json:"extraSkills"`
	TotalRequired int      `json:"totalRequired"`
	TotalMatched  int      `json:"totalMatched"`
}

// Matcher resolves free-text skill lists against required skills using
// exact, substring and synonym matching.
type Matcher struct {
	synonyms *SynonymTable
}

// NewMatcher creates a Matcher over the given table. A nil table falls back
// to the built-in vocabulary.
func NewMatcher(synonyms *SynonymTable) *Matcher {
	if synonyms == nil {
		synonyms = DefaultSynonymTable()
	}
	return &Matcher{synonyms: synonyms}
}

// ParseSkills splits comma-separated text into trimmed, lowercased, unique
// tokens. First occurrence order is kept.
func ParseSkills(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		s := strings.ToLower(strings.TrimSpace(p))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// HasMatch reports whether any candidate skill satisfies required: equal
// after normalization, one containing the other, or linked through the
// synonym table in either direction.
func (m *Matcher) HasMatch(candidateSkills []string, required string) bool {
	req := Normalize(required)
	if req == "" {
		return false
	}

	normalized := make([]string, 0, len(candidateSkills))
	for _, c := range candidateSkills {
		if n := Normalize(c); n != "" {
			normalized = append(normalized, n)
		}
	}

	for _, c := range normalized {
		if c == req || strings.Contains(c, req) || strings.Contains(req, c) {
			return true
		}
	}

	if m.synonyms.HasSynonyms(req) {
		for _, c := range normalized {
			if m.synonyms.IsAlternate(req, c) {
				return true
			}
		}
	}

	for _, canonical := range m.synonyms.CanonicalsOf(req) {
		for _, c := range normalized {
			if c == canonical {
				return true
			}
		}
	}

	return false
}

// MatchScore returns the fraction of required skills the candidate covers.
// An empty requirement is a full match; an empty candidate list against a
// non-empty requirement scores zero.
func (m *Matcher) MatchScore(candidateText, requiredText string) float64 {
	if strings.TrimSpace(requiredText) == "" {
		return 1.0
	}
	if strings.TrimSpace(candidateText) == "" {
		return 0.0
	}

	candidate := ParseSkills(candidateText)
	required := ParseSkills(requiredText)
	if len(required) == 0 {
		return 1.0
	}

	matched := 0
	for _, r := range required {
		if m.HasMatch(candidate, r) {
			matched++
		}
	}
	return float64(matched) / float64(len(required))
}

// DetailedMatch splits the requirement into matched and missing skills and
// lists candidate skills no requirement accounts for.
//
// Extra skills are decided one candidate skill at a time: c is extra when
// HasMatch([c], r) is false for every required r.
func (m *Matcher) DetailedMatch(candidateText, requiredText string) Match {
	candidate := ParseSkills(candidateText)
	required := ParseSkills(requiredText)

	result := Match{
		Matched: []string{},
		Missing: []string{},
		Extra:   []string{},
	}

	for _, r := range required {
		if m.HasMatch(candidate, r) {
			result.Matched = append(result.Matched, r)
		} else {
			result.Missing = append(result.Missing, r)
		}
	}

	for _, c := range candidate {
		isRequired := false
		single := []string{c}
		for _, r := range required {
			if m.HasMatch(single, r) {
				isRequired = true
				break
			}
		}
		if !isRequired {
			result.Extra = append(result.Extra, c)
		}
	}

	result.TotalRequired = len(required)
	result.TotalMatched = len(result.Matched)
	if len(required) == 0 {
		result.MatchScore = 1.0
	} else {
		result.MatchScore = float64(len(result.Matched)) / float64(len(required))
	}
	return result
}

// JaccardSimilarity is |A∩B| / |A∪B| over the parsed skill sets, without
// synonym expansion. Two empty lists are identical.
func JaccardSimilarity(a, b string) float64 {
	setA := ParseSkills(a)
	setB := ParseSkills(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}

	inA := make(map[string]struct{}, len(setA))
	for _, s := range setA {
		inA[s] = struct{}{}
	}

	intersection := 0
	union := len(setA)
	for _, s := range setB {
		if _, ok := inA[s]; ok {
			intersection++
		} else {
			union++
		}
	}

	// union > 0 here: at least one set is non-empty.
	return float64(intersection) / float64(union)
}
