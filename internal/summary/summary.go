package summary

import (
	"strconv"
	"strings"

	"github.com/bme3412/q2-software/internal/extract"
	"github.com/bme3412/q2-software/internal/textutil"
)

// Category is one topical bucket of the rendered report. Membership is a
// keyword-substring test against the lower-cased fact; categories are
// evaluated in table order and the first non-full match wins.
type Category struct {
	Title    string
	Keywords []string
	Limit    int
}

// riskLimit bounds the Risks section, which is sourced from the structured
// risks list rather than keyword matching.
const riskLimit = 3

// DefaultCategories returns the fixed category table in priority order.
func DefaultCategories() []Category {
	return []Category{
		{Title: "Results", Limit: 4, Keywords: []string{
			"revenue", "net income", "operating income", "fcf", "arr",
		}},
		{Title: "KPIs & Customers", Limit: 4, Keywords: []string{
			"dbnr", "rpo", "crpo", "customers", "$500k", "subscription",
		}},
		{Title: "Margins & Cash", Limit: 4, Keywords: []string{
			"margin", "s&m", "r&d", "g&a", "cash", "cash flow",
		}},
		{Title: "Guidance", Limit: 4, Keywords: []string{
			"q3", "fy26", "fiscal year", "guidance", "eps",
		}},
		{Title: "Strategy & AI", Limit: 4, Keywords: []string{
			"offerfit", "ai", "legacy", "replacement", "vendor consolidation",
			"forge", "first-party", "credits", "rcs", "whatsapp",
		}},
	}
}

// kpiLabel maps a KPI field to the label it renders under.
type kpiLabel struct {
	Label string
	Key   string
}

func defaultKPILabels() []kpiLabel {
	return []kpiLabel{
		{"Customers", "customers_total"},
		{"$500k+ ARR customers", "$500k_plus_customers"},
		{"DBNR (overall)", "dbnr_overall_pct"},
		{"DBNR (large customers)", "dbnr_large_pct"},
		{"RPO", "rpo_usd_m"},
		{"CRPO", "crpo_usd_m"},
		{"Subscription revenue mix", "subscription_revenue_mix_pct"},
	}
}

// Builder assembles deterministic per-ticker reports. All policy tables are
// injected so behavior is testable without a runtime environment.
type Builder struct {
	Categories       []Category
	KPILabels        []kpiLabel
	SkipWords        []string
	IgnorePhrases    []string
	FinanceKeywords  []string
	MaxFallbackLines int
}

func NewBuilder() *Builder {
	return &Builder{
		Categories: DefaultCategories(),
		KPILabels:  defaultKPILabels(),
		SkipWords: []string{
			"forward-looking", "safe harbor", "reconciliation", "sec filing",
		},
		IgnorePhrases: []string{
			"operator", "q&a", "listen-only", "welcome to the",
		},
		FinanceKeywords: []string{
			"revenue", "guidance", "margin", "arr", "rpo", "crpo", "customers",
		},
		MaxFallbackLines: 10,
	}
}

type bucket struct {
	category Category
	lines    []string
}

func (b *bucket) push(fact string) {
	b.lines = textutil.UniquePush(b.lines, "- "+fact)
}

// FromParsed renders the categorized earnings summary for one structured
// document.
func (b *Builder) FromParsed(ticker string, parsed map[string]any) string {
	facts := b.collectFacts(parsed)

	buckets := make([]*bucket, 0, len(b.Categories))
	for _, c := range b.Categories {
		buckets = append(buckets, &bucket{category: c})
	}

	for _, fact := range facts {
		lc := strings.ToLower(fact)
		for _, bk := range buckets {
			if len(bk.lines) >= bk.category.Limit {
				continue
			}
			if textutil.IncludesAny(lc, bk.category.Keywords) {
				bk.push(fact)
				break
			}
		}
	}

	risks := &bucket{category: Category{Title: "Risks", Limit: riskLimit}}
	for i, r := range extract.Risks(parsed) {
		if i >= riskLimit {
			break
		}
		risks.push(r)
	}
	buckets = append(buckets, risks)

	var out []string
	out = append(out, ticker+" — earnings summary")
	for _, bk := range buckets {
		if len(bk.lines) == 0 {
			continue
		}
		out = append(out, bk.category.Title+":")
		out = append(out, bk.lines...)
		out = append(out, "")
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// collectFacts gathers prepared-remarks facts, labeled KPI lines, guidance
// facts, and roadmap signals in a fixed order, filtered by the skip list.
func (b *Builder) collectFacts(parsed map[string]any) []string {
	var facts []string

	addRaw := func(raws []string) {
		for _, raw := range raws {
			raw = strings.TrimSpace(raw)
			if raw == "" || textutil.IncludesAny(raw, b.SkipWords) {
				continue
			}
			facts = textutil.UniquePush(facts, raw)
		}
	}

	addRaw(extract.SectionFacts(parsed, "cfo_prepared_remarks"))
	addRaw(extract.SectionFacts(parsed, "ceo_prepared_remarks"))

	kpis := extract.KPIs(parsed)
	for _, kl := range b.KPILabels {
		if v, ok := kpis[kl.Key]; ok {
			if s, ok := formatKPIValue(v); ok {
				facts = textutil.UniquePush(facts, kl.Label+": "+s)
			}
		}
	}

	addRaw(extract.GuidanceFacts(parsed))

	for _, line := range extract.RoadmapLines(parsed) {
		facts = textutil.UniquePush(facts, line)
	}

	return facts
}

// FromTranscript renders the fallback summary for a raw transcript: keep
// paragraphs that carry a digit or a finance keyword, skip boilerplate, stop
// after MaxFallbackLines picks.
func (b *Builder) FromTranscript(ticker, content string) string {
	var picked []string
	for _, p := range extract.SplitParagraphs(content) {
		if textutil.IncludesAny(p, b.IgnorePhrases) {
			continue
		}
		if textutil.ContainsDigit(p) || textutil.IncludesAny(p, b.FinanceKeywords) {
			picked = textutil.UniquePush(picked, p)
		}
		if len(picked) >= b.MaxFallbackLines {
			break
		}
	}

	lines := []string{ticker + " — earnings summary:"}
	for _, p := range picked {
		lines = append(lines, "- "+p)
	}
	return strings.Join(lines, "\n")
}

func formatKPIValue(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}
