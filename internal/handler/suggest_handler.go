package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/bme3412/q2-software/internal/textutil"
	"github.com/bme3412/q2-software/pkg/llm"
	"github.com/bme3412/q2-software/pkg/vector"

	"github.com/gin-gonic/gin"
)

type SuggestionCache interface {
	Get(key string) (string, bool)
	Set(key string, value string)
}

// sampleQueries probe the index from several thematic angles to understand
// what the selected companies talked about.
var sampleQueries = []string{
	"artificial intelligence AI revenue growth investment",
	"revenue growth margin guidance outlook",
	"customers customer acquisition retention expansion",
	"product platform new features innovation",
	"competition competitive advantage market share",
	"international global expansion geographic",
}

const (
	probeTopK      = 12
	probeThreshold = 0.7
	probeWorkers   = 3
	sampleCap      = 30
	excerptLen     = 300
	minParsed      = 5
	suggestionCap  = 8
	suggestTokens  = 800
	suggestTemp    = 0.3
)

type SuggestHandler struct {
	embedder  Embedder
	retriever Retriever
	generator llm.Generator
	cache     SuggestionCache
}

// NewSuggestHandler wires POST /api/suggest. cache may be nil.
func NewSuggestHandler(embedder Embedder, retriever Retriever, generator llm.Generator, cache SuggestionCache) *SuggestHandler {
	return &SuggestHandler{embedder: embedder, retriever: retriever, generator: generator, cache: cache}
}

func (h *SuggestHandler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if len(req.Tickers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No sources selected"})
		return
	}

	if h.embedder == nil || h.retriever == nil || h.generator == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Missing API keys"})
		return
	}

	var tickers []string
	for _, t := range req.Tickers {
		tickers = append(tickers, strings.ToUpper(strings.TrimSpace(t)))
	}

	cacheKey := suggestCacheKey(tickers)
	if cached, ok := h.cacheGet(cacheKey); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	contexts := h.sampleContexts(tickers)

	if len(contexts) == 0 {
		c.JSON(http.StatusOK, SuggestResponse{Suggestions: llm.MinimalSuggestions})
		return
	}

	companies := uniqueCompanies(contexts)
	categories := uniqueCategories(contexts)

	sample := contexts
	if len(sample) > sampleCap {
		sample = sample[:sampleCap]
	}
	var excerpts []string
	for _, ctx := range sample {
		excerpts = append(excerpts, ctx.Company+": "+textutil.Truncate(ctx.Text, excerptLen))
	}

	questions := h.generateQuestions(companies, categories, strings.Join(excerpts, "\n\n"))

	if len(questions) < minParsed {
		for _, q := range llm.FallbackSuggestions {
			if len(questions) >= suggestionCap {
				break
			}
			questions = textutil.UniquePush(questions, q)
		}
	}
	if len(questions) > suggestionCap {
		questions = questions[:suggestionCap]
	}

	res := SuggestResponse{
		Suggestions: questions,
		Metadata: SuggestMetadata{
			CompaniesAnalyzed: len(companies),
			CategoriesFound:   categories,
			ContextChunks:     len(contexts),
		},
	}
	h.cacheSet(cacheKey, res)
	c.JSON(http.StatusOK, res)
}

// sampleContexts runs the probe queries with bounded concurrency, keeping
// high-confidence matches only. Probe failures are logged and skipped.
func (h *SuggestHandler) sampleContexts(tickers []string) []vector.Match {
	results := make([][]vector.Match, len(sampleQueries))

	var wg sync.WaitGroup
	sem := make(chan struct{}, probeWorkers)
	for i, q := range sampleQueries {
		wg.Add(1)
		go func(i int, query string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			vec, err := h.embedder.Embed(query)
			if err != nil {
				slog.Warn("probe embedding failed", "query", query, "error", err)
				return
			}
			matches, err := h.retriever.Search(vec, probeTopK, tickers)
			if err != nil {
				slog.Warn("probe search failed", "query", query, "error", err)
				return
			}
			var kept []vector.Match
			for _, m := range matches {
				if m.Score > probeThreshold {
					kept = append(kept, m)
				}
			}
			results[i] = kept
		}(i, q)
	}
	wg.Wait()

	var all []vector.Match
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

func (h *SuggestHandler) generateQuestions(companies, categories []string, sample string) []string {
	raw, err := h.generator.Generate(
		llm.SuggestSystemPrompt(companies, categories),
		llm.SuggestUserPrompt(len(companies), sample),
		suggestTokens, suggestTemp)
	if err != nil {
		slog.Error("question generation failed, using fallback list", "error", err)
		return nil
	}
	return parseNumberedLines(raw)
}

// parseNumberedLines extracts "1. question" style lines from model output.
func parseNumberedLines(text string) []string {
	var questions []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		i := 0
		for i < len(line) && line[i] >= '0' && line[i] <= '9' {
			i++
		}
		if i == 0 || i >= len(line) || line[i] != '.' {
			continue
		}
		q := strings.TrimLeftFunc(line[i+1:], unicode.IsSpace)
		if q != "" {
			questions = append(questions, q)
		}
	}
	return questions
}

func suggestCacheKey(tickers []string) string {
	sorted := append([]string(nil), tickers...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

func (h *SuggestHandler) cacheGet(key string) (SuggestResponse, bool) {
	if h.cache == nil {
		return SuggestResponse{}, false
	}
	raw, ok := h.cache.Get(key)
	if !ok {
		return SuggestResponse{}, false
	}
	var res SuggestResponse
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return SuggestResponse{}, false
	}
	return res, true
}

func (h *SuggestHandler) cacheSet(key string, res SuggestResponse) {
	if h.cache == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	h.cache.Set(key, string(raw))
}

func uniqueCompanies(contexts []vector.Match) []string {
	var out []string
	for _, ctx := range contexts {
		if ctx.Company != "" {
			out = textutil.UniquePush(out, ctx.Company)
		}
	}
	return out
}

func uniqueCategories(contexts []vector.Match) []string {
	var out []string
	for _, ctx := range contexts {
		if ctx.Category != "" {
			out = textutil.UniquePush(out, ctx.Category)
		}
	}
	return out
}
