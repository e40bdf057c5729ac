package extract

import (
	"strings"
	"testing"

	"github.com/bme3412/q2-software/internal/model"
	"github.com/go-playground/assert/v2"
)

const sampleParsed = `{
	"cfo_prepared_remarks": {
		"sections": [
			{"section": "Results", "facts": [
				{"raw": "Revenue grew 18% year over year"},
				{"raw": "Revenue grew 18% year over year"}
			]},
			{"section": "Q3 Guidance", "facts": [
				{"raw": "Q3 revenue guidance of $160M"}
			]}
		]
	},
	"ceo_prepared_remarks": {
		"sections": [
			{"section": "Opening", "facts": [{"raw": "Customer momentum continued"}]}
		]
	},
	"key_quotes": [
		{"quote": "We are seeing strong AI-driven demand", "speaker": "CEO"}
	],
	"ad_tech_kpis": {
		"customers_total": 1200,
		"dbnr_overall_pct": 111,
		"geo_mix": {"us_pct": 60, "intl_pct": 40},
		"top_verticals": ["retail", "media"]
	},
	"risks": ["FX headwinds", "Macro uncertainty"],
	"product_agent_roadmap": {
		"ai_features": ["Project Catalyst", "Sage AI"],
		"composable_intelligence": true,
		"offerfit": {"status": "integration on track"}
	}
}`

func parseSample(t *testing.T) map[string]any {
	t.Helper()
	parsed, err := Parse(sampleParsed)
	if err != nil {
		t.Fatalf("parse sample: %v", err)
	}
	return parsed
}

func TestSectionFacts(t *testing.T) {
	parsed := parseSample(t)
	facts := SectionFacts(parsed, "cfo_prepared_remarks")
	assert.Equal(t, 3, len(facts))
	assert.Equal(t, "Revenue grew 18% year over year", facts[0])
}

func TestFactsDeduplicatesCaseInsensitively(t *testing.T) {
	parsed := parseSample(t)
	facts := Facts(parsed)

	count := 0
	for _, f := range facts {
		if strings.EqualFold(f, "Revenue grew 18% year over year") {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestFactsIncludeQuotesAndKPIs(t *testing.T) {
	parsed := parseSample(t)
	facts := Facts(parsed)

	joined := strings.Join(facts, "\n")
	assert.Equal(t, true, strings.Contains(joined, "We are seeing strong AI-driven demand"))
	assert.Equal(t, true, strings.Contains(joined, "customers total: 1200"))
}

func TestFlattenKPIs(t *testing.T) {
	parsed := parseSample(t)
	lines := FlattenKPIs(KPIs(parsed), "")

	joined := strings.Join(lines, "\n")
	assert.Equal(t, true, strings.Contains(joined, "customers total: 1200"))
	// Nested objects recurse with dot-joined paths, underscores render as spaces.
	assert.Equal(t, true, strings.Contains(joined, "geo mix.us pct: 60"))
	// Arrays join with an en dash.
	assert.Equal(t, true, strings.Contains(joined, "top verticals: retail – media"))
}

func TestGuidanceFacts(t *testing.T) {
	parsed := parseSample(t)
	facts := GuidanceFacts(parsed)
	assert.Equal(t, []string{"Q3 revenue guidance of $160M"}, facts)
}

func TestRisks(t *testing.T) {
	parsed := parseSample(t)
	assert.Equal(t, []string{"FX headwinds", "Macro uncertainty"}, Risks(parsed))
}

func TestRoadmapLines(t *testing.T) {
	parsed := parseSample(t)
	lines := RoadmapLines(parsed)
	assert.Equal(t, 3, len(lines))
	assert.Equal(t, "AI roadmap: Project Catalyst, Sage AI", lines[0])
	assert.Equal(t, "OfferFit integration status: integration on track", lines[2])
}

func TestFromDocumentStructured(t *testing.T) {
	ref := model.DocumentRef{Ticker: "BRZE", Path: "brze-parsed.json", Kind: model.KindStructured}
	chunks := FromDocument(ref, sampleParsed)

	assert.NotEqual(t, 0, len(chunks))
	assert.Equal(t, "BRZE", chunks[0].Ticker)
	assert.Equal(t, "Revenue grew 18% year over year", chunks[0].Text)
}

func TestFromDocumentBadJSONFallsBackToParagraphs(t *testing.T) {
	ref := model.DocumentRef{Ticker: "SHOP", Path: "shop-parsed.json", Kind: model.KindStructured}
	chunks := FromDocument(ref, "not json at all\n\nsecond paragraph")

	assert.Equal(t, 2, len(chunks))
	assert.Equal(t, "not json at all", chunks[0].Text)
}

func TestFromDocumentEmptyExtractionFallsBack(t *testing.T) {
	ref := model.DocumentRef{Ticker: "SHOP", Path: "shop-parsed.json", Kind: model.KindStructured}
	chunks := FromDocument(ref, `{"unrelated": {"nothing": []}}`)

	assert.Equal(t, 1, len(chunks))
}

func TestFromDocumentRawText(t *testing.T) {
	ref := model.DocumentRef{Ticker: "TTD", Path: "ttd.txt", Kind: model.KindRawText}
	chunks := FromDocument(ref, "First paragraph.\n\n   \nSecond paragraph.")

	assert.Equal(t, 2, len(chunks))
	assert.Equal(t, "Second paragraph.", chunks[1].Text)
}

func TestFromDocumentEmptyContent(t *testing.T) {
	ref := model.DocumentRef{Ticker: "TTD", Path: "ttd.txt", Kind: model.KindRawText}
	assert.Equal(t, 0, len(FromDocument(ref, "")))
}

func TestSplitParagraphs(t *testing.T) {
	got := SplitParagraphs("a\nb\n\nc\n \nd")
	assert.Equal(t, []string{"a\nb", "c", "d"}, got)
}
