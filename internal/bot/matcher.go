package bot

import (
	"strings"

	"golang.org/x/text/cases"
)

// normalize lowercases an utterance with full Unicode case folding, so that
// Cyrillic input compares correctly, and trims surrounding whitespace.
func normalize(s string) string {
	return strings.TrimSpace(cases.Fold().String(s))
}

// MatchType reports whether the utterance names one of the known place types.
// Types are tried in vocabulary order and the first hit wins, so the
// vocabulary's stable ordering is an observable tie-break.
//
// Matching is a best-effort heuristic: exact, substring, then a simple
// plural-suffix check (кафе/музеи/пиццы). Substring containment means a type
// like "бар" also matches inside "барабан"; that looseness is accepted.
func MatchType(utterance string, knownTypes []string) (string, bool) {
	u := normalize(utterance)
	if u == "" {
		return "", false
	}
	for _, knownType := range knownTypes {
		t := normalize(knownType)
		if t == "" {
			continue
		}
		if u == t || strings.Contains(u, t) {
			return knownType, true
		}
		if stem, ok := strings.CutSuffix(t, "а"); ok && strings.Contains(u, stem+"ы") {
			return knownType, true
		}
		if stem, ok := strings.CutSuffix(t, "й"); ok && strings.Contains(u, stem+"и") {
			return knownType, true
		}
	}
	return "", false
}
