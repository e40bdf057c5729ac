package rank

import (
	"sort"
	"strings"

	"github.com/bme3412/q2-software/internal/textutil"
)

// FocusTerms are domain keywords that bias ranking toward financially dense
// lines when they appear in the query.
var FocusTerms = []string{
	"rpo", "crpo", "dbnr", "revenue", "arr", "eps",
	"margin", "guidance", "billings", "fcf", "cash", "customers",
}

// DefaultSentenceLimit caps the length of a sentence picked out of a chunk.
const DefaultSentenceLimit = 260

// PickBestSentence selects the sentence of chunkText with the most
// case-insensitive substring hits against queryTokens. The first
// highest-scoring sentence wins ties. The result is truncated to charLimit
// with an ellipsis; if no sentences are found the raw text is truncated.
// It is the chunk-level selection primitive of the ranker; the request
// handlers work on whole summary lines and do not call it.
func PickBestSentence(chunkText string, queryTokens []string, charLimit int) string {
	sentences := textutil.SplitIntoSentences(chunkText)
	if len(sentences) == 0 {
		if len(chunkText) > charLimit {
			return chunkText[:charLimit]
		}
		return chunkText
	}

	best := sentences[0]
	bestScore := 0
	for _, s := range sentences {
		lc := strings.ToLower(s)
		score := 0
		for _, qt := range queryTokens {
			if strings.Contains(lc, qt) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = s
		}
	}

	if len(best) > charLimit {
		return best[:charLimit] + "…"
	}
	return best
}

// ActiveFocusTerms returns the focus terms present in the query.
func ActiveFocusTerms(query string, terms []string) []string {
	q := strings.ToLower(query)
	var active []string
	for _, t := range terms {
		if strings.Contains(q, t) {
			active = append(active, t)
		}
	}
	return active
}

type scoredLine struct {
	text    string
	overlap int
	focus   int
}

// TopLines ranks lines against the query by token overlap, dropping lines
// with no overlap at all. When any focus term intersects the query, lines are
// re-ranked by focus-term hit count first, token overlap as tie-break, and
// lines without a focus hit are dropped. The result is capped at max. Sorting
// is stable: equal scores keep input order.
func TopLines(query string, lines []string, focusTerms []string, max int) []string {
	var candidates []scoredLine
	for _, l := range lines {
		s := textutil.ScoreByTokenOverlap(query, l)
		if s == 0 {
			continue
		}
		candidates = append(candidates, scoredLine{text: l, overlap: s})
	}

	active := ActiveFocusTerms(query, focusTerms)
	if len(active) > 0 {
		var focused []scoredLine
		for _, c := range candidates {
			lc := strings.ToLower(c.text)
			for _, t := range active {
				if strings.Contains(lc, t) {
					c.focus++
				}
			}
			if c.focus > 0 {
				focused = append(focused, c)
			}
		}
		candidates = focused
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].focus != candidates[j].focus {
				return candidates[i].focus > candidates[j].focus
			}
			return candidates[i].overlap > candidates[j].overlap
		})
	} else {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].overlap > candidates[j].overlap
		})
	}

	if len(candidates) > max {
		candidates = candidates[:max]
	}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.text)
	}
	return out
}
