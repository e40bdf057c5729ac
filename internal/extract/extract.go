package extract

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/bme3412/q2-software/internal/model"
	"github.com/bme3412/q2-software/internal/textutil"
)

// Known top-level keys of a parsed earnings call.
const (
	cfoRemarksKey = "cfo_prepared_remarks"
	ceoRemarksKey = "ceo_prepared_remarks"
	keyQuotesKey  = "key_quotes"
	kpisKey       = "ad_tech_kpis"
	risksKey      = "risks"
	roadmapKey    = "product_agent_roadmap"
)

// When structured extraction yields nothing, only the head of the raw
// document is chunked.
const rawTextFallbackLimit = 4000

// Parse decodes a structured document body.
func Parse(content string) (map[string]any, error) {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

// FromDocument turns one document into candidate chunks. Structured documents
// yield single-line fact chunks; a JSON parse failure or an extraction that
// finds nothing falls back to paragraph chunks of the raw text. Raw documents
// are paragraph-chunked directly. Never returns an error: a bad document just
// contributes nothing.
func FromDocument(ref model.DocumentRef, content string) []model.Chunk {
	if content == "" {
		return nil
	}

	if ref.Kind == model.KindStructured {
		parsed, err := Parse(content)
		if err != nil {
			return ParagraphChunks(head(content, rawTextFallbackLimit), ref.Ticker, ref.Path)
		}
		facts := Facts(parsed)
		if len(facts) == 0 {
			return ParagraphChunks(head(content, rawTextFallbackLimit), ref.Ticker, ref.Path)
		}
		return LineChunks(facts, ref.Ticker, ref.Path)
	}

	return ParagraphChunks(content, ref.Ticker, ref.Path)
}

// Facts pulls every candidate fact string out of a parsed document: prepared
// remarks, key quotes, and flattened KPI fields, deduplicated in order.
func Facts(parsed map[string]any) []string {
	var facts []string
	for _, raw := range SectionFacts(parsed, cfoRemarksKey) {
		facts = textutil.UniquePush(facts, raw)
	}
	for _, raw := range SectionFacts(parsed, ceoRemarksKey) {
		facts = textutil.UniquePush(facts, raw)
	}
	for _, quote := range KeyQuotes(parsed) {
		facts = textutil.UniquePush(facts, quote)
	}
	for _, line := range FlattenKPIs(KPIs(parsed), "") {
		facts = textutil.UniquePush(facts, line)
	}
	return facts
}

// SectionFacts returns the "raw" field of every fact in every section under
// the given prepared-remarks key.
func SectionFacts(parsed map[string]any, remarksKey string) []string {
	var out []string
	remarks := asMap(parsed[remarksKey])
	for _, s := range asSlice(remarks["sections"]) {
		section := asMap(s)
		for _, f := range asSlice(section["facts"]) {
			fact := asMap(f)
			if raw, ok := formatScalar(fact["raw"]); ok {
				out = append(out, strings.TrimSpace(raw))
			}
		}
	}
	return out
}

// GuidanceFacts returns facts of CFO sections whose name contains "guidance".
func GuidanceFacts(parsed map[string]any) []string {
	var out []string
	remarks := asMap(parsed[cfoRemarksKey])
	for _, s := range asSlice(remarks["sections"]) {
		section := asMap(s)
		name, _ := section["section"].(string)
		if !strings.Contains(strings.ToLower(name), "guidance") {
			continue
		}
		for _, f := range asSlice(section["facts"]) {
			fact := asMap(f)
			if raw, ok := fact["raw"].(string); ok {
				out = append(out, strings.TrimSpace(raw))
			}
		}
	}
	return out
}

// KeyQuotes returns the "quote" field of every key_quotes item.
func KeyQuotes(parsed map[string]any) []string {
	var out []string
	for _, q := range asSlice(parsed[keyQuotesKey]) {
		item := asMap(q)
		if quote, ok := formatScalar(item["quote"]); ok {
			out = append(out, quote)
		}
	}
	return out
}

// KPIs returns the nested KPI object, or nil.
func KPIs(parsed map[string]any) map[string]any {
	return asMap(parsed[kpisKey])
}

// Risks returns the structured risks list as strings.
func Risks(parsed map[string]any) []string {
	var out []string
	for _, r := range asSlice(parsed[risksKey]) {
		if s, ok := formatScalar(r); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// RoadmapLines renders product/AI roadmap signals as fact lines.
func RoadmapLines(parsed map[string]any) []string {
	roadmap := asMap(parsed[roadmapKey])
	if roadmap == nil {
		return nil
	}

	var out []string
	var features []string
	for _, f := range asSlice(roadmap["ai_features"]) {
		if s, ok := formatScalar(f); ok {
			features = append(features, s)
		}
	}
	if len(features) > 0 {
		out = append(out, "AI roadmap: "+strings.Join(features, ", "))
	}
	if truthy(roadmap["composable_intelligence"]) {
		out = append(out, "Composable intelligence & Canvas orchestration advancing")
	}
	if offerfit := asMap(roadmap["offerfit"]); offerfit != nil {
		if status, ok := offerfit["status"].(string); ok && status != "" {
			out = append(out, "OfferFit integration status: "+status)
		}
	}
	return out
}

// FlattenKPIs renders a nested KPI object into "key path: value" strings.
// Nested objects recurse with dot-joined paths, arrays join their scalar
// values with an en dash, and underscores in key paths render as spaces.
// Keys are visited in sorted order so output is deterministic.
func FlattenKPIs(obj map[string]any, prefix string) []string {
	if obj == nil {
		return nil
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []string
	for _, k := range keys {
		v := obj[k]
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		label := strings.ReplaceAll(key, "_", " ")

		switch val := v.(type) {
		case map[string]any:
			out = append(out, FlattenKPIs(val, key)...)
		case []any:
			var vals []string
			for _, item := range val {
				if s, ok := formatScalar(item); ok {
					vals = append(vals, s)
				}
			}
			if len(vals) > 0 {
				out = textutil.UniquePush(out, label+": "+strings.Join(vals, " – "))
			}
		default:
			if s, ok := formatScalar(v); ok {
				out = textutil.UniquePush(out, label+": "+s)
			}
		}
	}
	return out
}

// ParagraphChunks splits content on blank-line boundaries.
func ParagraphChunks(content, ticker, filePath string) []model.Chunk {
	var chunks []model.Chunk
	for _, p := range SplitParagraphs(content) {
		chunks = append(chunks, model.Chunk{Text: p, Ticker: ticker, FilePath: filePath})
	}
	return chunks
}

// LineChunks builds one chunk per non-empty line, for line-per-record content.
func LineChunks(lines []string, ticker, filePath string) []model.Chunk {
	var chunks []model.Chunk
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		chunks = append(chunks, model.Chunk{Text: l, Ticker: ticker, FilePath: filePath})
	}
	return chunks
}

// SplitParagraphs splits text into trimmed, non-empty paragraphs separated by
// lines that are empty or whitespace-only.
func SplitParagraphs(content string) []string {
	var paragraphs []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			p := strings.TrimSpace(strings.Join(current, "\n"))
			if p != "" {
				paragraphs = append(paragraphs, p)
			}
			current = current[:0]
		}
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			current = append(current, line)
		}
	}
	flush()
	return paragraphs
}

func head(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// formatScalar renders a JSON scalar as text. Integral floats render without
// a fractional part, so a KPI of 1200 reads "1200".
func formatScalar(v any) (string, bool) {
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

func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	case nil:
		return false
	default:
		return true
	}
}
