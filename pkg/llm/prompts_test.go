package llm

import (
	"strings"
	"testing"
)

func TestRagSystemPromptLevels(t *testing.T) {
	tests := []struct {
		detail string
		want   string
	}{
		{"brief", "BRIEF RESPONSE GUIDELINES"},
		{"comprehensive", "COMPREHENSIVE RESPONSE GUIDELINES"},
		{"detailed", "DETAILED RESPONSE GUIDELINES"},
		{"", "DETAILED RESPONSE GUIDELINES"},
		{"unknown", "DETAILED RESPONSE GUIDELINES"},
	}

	for _, tt := range tests {
		t.Run(tt.detail, func(t *testing.T) {
			got := RagSystemPrompt(tt.detail)
			if !strings.Contains(got, tt.want) {
				t.Errorf("detail %q: missing %q", tt.detail, tt.want)
			}
			if !strings.Contains(got, "ONLY plain text") {
				t.Errorf("detail %q: base formatting rules missing", tt.detail)
			}
		})
	}
}

func TestEarningsRewritePromptEmbedsSummaries(t *testing.T) {
	got := EarningsRewritePrompt("BRZE — earnings summary")
	if !strings.Contains(got, "BRZE — earnings summary") {
		t.Error("summaries not embedded")
	}
	if !strings.Contains(got, "do not invent numbers") {
		t.Error("grounding instruction missing")
	}
}

func TestSuggestSystemPromptListsUniverse(t *testing.T) {
	got := SuggestSystemPrompt([]string{"Braze Inc", "Shopify Inc"}, []string{"ad-tech"})
	if !strings.Contains(got, "Braze Inc, Shopify Inc") {
		t.Error("companies missing")
	}
	if !strings.Contains(got, "ad-tech") {
		t.Error("categories missing")
	}
}
