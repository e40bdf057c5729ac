package summary

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bme3412/q2-software/internal/extract"
	"github.com/go-playground/assert/v2"
)

func mustParse(t *testing.T, content string) map[string]any {
	t.Helper()
	parsed, err := extract.Parse(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return parsed
}

func TestFromParsedRendersKPILine(t *testing.T) {
	parsed := mustParse(t, `{"ad_tech_kpis": {"customers_total": 1200}}`)
	got := NewBuilder().FromParsed("BRZE", parsed)

	assert.Equal(t, true, strings.Contains(got, "Customers: 1200"))
	assert.Equal(t, true, strings.HasPrefix(got, "BRZE — earnings summary"))
}

func TestFromParsedCategoryPriorityIsDeterministic(t *testing.T) {
	// A fact matching both Results ("revenue") and KPIs ("dbnr") lands in
	// Results and only Results: categories are tested in fixed order.
	parsed := mustParse(t, `{
		"cfo_prepared_remarks": {"sections": [
			{"section": "Results", "facts": [{"raw": "Revenue up 20% with DBNR at 115%"}]}
		]}
	}`)
	got := NewBuilder().FromParsed("BRZE", parsed)

	assert.Equal(t, true, strings.Contains(got, "Results:"))
	assert.Equal(t, false, strings.Contains(got, "KPIs & Customers:"))
	assert.Equal(t, 1, strings.Count(got, "Revenue up 20% with DBNR at 115%"))
}

func TestFromParsedCategoryCapDropsOverflow(t *testing.T) {
	var facts []string
	for i := 1; i <= 5; i++ {
		facts = append(facts, fmt.Sprintf(`{"raw": "Revenue stream %d grew"}`, i))
	}
	parsed := mustParse(t, fmt.Sprintf(`{
		"cfo_prepared_remarks": {"sections": [
			{"section": "Results", "facts": [%s]}
		]}
	}`, strings.Join(facts, ",")))

	got := NewBuilder().FromParsed("BRZE", parsed)

	// Results caps at 4: the 5th unique matching fact is dropped silently.
	assert.Equal(t, 4, strings.Count(got, "- Revenue stream"))
	assert.Equal(t, false, strings.Contains(got, "Revenue stream 5"))
}

func TestFromParsedSkipWordsFilterFacts(t *testing.T) {
	parsed := mustParse(t, `{
		"cfo_prepared_remarks": {"sections": [
			{"section": "Results", "facts": [
				{"raw": "This contains forward-looking revenue statements"},
				{"raw": "Revenue grew 18%"}
			]}
		]}
	}`)
	got := NewBuilder().FromParsed("BRZE", parsed)

	assert.Equal(t, false, strings.Contains(got, "forward-looking"))
	assert.Equal(t, true, strings.Contains(got, "Revenue grew 18%"))
}

func TestFromParsedRisksComeFromStructuredList(t *testing.T) {
	parsed := mustParse(t, `{"risks": ["FX headwinds", "Macro softness", "Churn", "A fourth risk"]}`)
	got := NewBuilder().FromParsed("BRZE", parsed)

	assert.Equal(t, true, strings.Contains(got, "Risks:"))
	assert.Equal(t, true, strings.Contains(got, "- FX headwinds"))
	// Risks cap at 3.
	assert.Equal(t, false, strings.Contains(got, "A fourth risk"))
}

func TestFromParsedRenderFormat(t *testing.T) {
	parsed := mustParse(t, `{
		"cfo_prepared_remarks": {"sections": [
			{"section": "Results", "facts": [{"raw": "Revenue grew 18%"}]}
		]},
		"risks": ["FX headwinds"]
	}`)
	got := NewBuilder().FromParsed("BRZE", parsed)

	want := strings.Join([]string{
		"BRZE — earnings summary",
		"Results:",
		"- Revenue grew 18%",
		"",
		"Risks:",
		"- FX headwinds",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFromParsedEmptyDocument(t *testing.T) {
	got := NewBuilder().FromParsed("BRZE", map[string]any{})
	assert.Equal(t, "BRZE — earnings summary", got)
}

func TestFromTranscriptFiltersBoilerplate(t *testing.T) {
	content := strings.Join([]string{
		"Operator: please begin Q&A",
		"",
		"Revenue grew 12% year over year",
		"",
		"We thanked the team for their passion",
	}, "\n")

	got := NewBuilder().FromTranscript("TTD", content)

	assert.Equal(t, true, strings.HasPrefix(got, "TTD — earnings summary:"))
	assert.Equal(t, true, strings.Contains(got, "- Revenue grew 12% year over year"))
	// Ignore-list paragraph excluded.
	assert.Equal(t, false, strings.Contains(got, "Operator"))
	// No digit and no finance keyword: excluded.
	assert.Equal(t, false, strings.Contains(got, "passion"))
}

func TestFromTranscriptStopsAtCap(t *testing.T) {
	var paragraphs []string
	for i := 0; i < 15; i++ {
		paragraphs = append(paragraphs, fmt.Sprintf("Metric %d improved this quarter", i))
	}
	got := NewBuilder().FromTranscript("TTD", strings.Join(paragraphs, "\n\n"))

	assert.Equal(t, 10, strings.Count(got, "- Metric"))
}
