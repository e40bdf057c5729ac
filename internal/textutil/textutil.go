package textutil

import (
	"strings"
)

// The helpers here deliberately avoid regexp. Everything downstream
// (extraction, ranking, categorization) is built on these primitives.

func isAlphaNum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// SplitWords segments text into lower-cased runs of ASCII letters and digits.
// Tokens of length 2 or less are dropped, so "Q2" and "18" never survive.
func SplitWords(text string) []string {
	var out []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 2 {
			out = append(out, strings.ToLower(current.String()))
		}
		current.Reset()
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		if isAlphaNum(c) {
			current.WriteByte(c)
		} else {
			flush()
		}
	}
	flush()

	return out
}

// SplitIntoSentences collapses all whitespace to single spaces and closes a
// sentence at '.', '!' or '?'. A trailing non-terminated remainder is emitted
// as a final sentence. There is no abbreviation handling: a period inside
// "Inc." ends a sentence. That is an accepted limitation of the heuristic.
func SplitIntoSentences(text string) []string {
	cleaned := strings.Join(strings.Fields(text), " ")

	var out []string
	var current strings.Builder
	for i := 0; i < len(cleaned); i++ {
		ch := cleaned[i]
		current.WriteByte(ch)
		if ch == '.' || ch == '!' || ch == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				out = append(out, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		out = append(out, s)
	}
	return out
}

// Jaccard computes |intersection| / max(|union|, 1) over the whitespace-split
// lower-cased token sets of a and b. It is the set-similarity half of the
// ranking toolkit; the request handlers currently rank on token overlap only.
func Jaccard(a, b string) float64 {
	ta := map[string]bool{}
	for _, t := range strings.Fields(strings.ToLower(a)) {
		ta[t] = true
	}
	tb := map[string]bool{}
	for _, t := range strings.Fields(strings.ToLower(b)) {
		tb[t] = true
	}

	inter := 0
	union := len(tb)
	for t := range ta {
		if tb[t] {
			inter++
		} else {
			union++
		}
	}
	if union < 1 {
		union = 1
	}
	return float64(inter) / float64(union)
}

// ScoreByTokenOverlap counts how many distinct query tokens appear in the
// candidate's token set. Repetition does not count twice.
func ScoreByTokenOverlap(query, candidate string) int {
	q := map[string]bool{}
	for _, t := range SplitWords(query) {
		q[t] = true
	}
	c := map[string]bool{}
	for _, t := range SplitWords(candidate) {
		c[t] = true
	}

	hits := 0
	for t := range q {
		if c[t] {
			hits++
		}
	}
	return hits
}

// UniquePush appends line unless a case-insensitive exact match already
// exists. Empty lines are ignored. This is the only dedup mechanism in the
// pipeline; O(n) per insert is fine for per-document fact counts.
func UniquePush(list []string, line string) []string {
	if line == "" {
		return list
	}
	lc := strings.ToLower(line)
	for _, x := range list {
		if strings.ToLower(x) == lc {
			return list
		}
	}
	return append(list, line)
}

// IncludesAny reports whether the lower-cased haystack contains any needle.
func IncludesAny(haystack string, needles []string) bool {
	lc := strings.ToLower(haystack)
	for _, n := range needles {
		if strings.Contains(lc, n) {
			return true
		}
	}
	return false
}

// ContainsDigit reports whether s contains an ASCII digit.
func ContainsDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}

// Truncate cuts s to max bytes and marks the cut with "...".
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
