package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/bme3412/q2-software/internal/docstore"
	"github.com/bme3412/q2-software/internal/extract"
	"github.com/bme3412/q2-software/internal/model"
	"github.com/bme3412/q2-software/internal/rank"
	"github.com/bme3412/q2-software/internal/summary"
	"github.com/bme3412/q2-software/internal/textutil"
	"github.com/bme3412/q2-software/pkg/llm"

	"github.com/gin-gonic/gin"
)

type DocumentStore interface {
	FindDocuments(ticker string, maxFiles int) []model.DocumentRef
	ReadTextFile(path string) string
}

const noContentHint = "No content found for selected sources. Please select tickers present in software/output or software/transcripts."

// earningsIntentTerms flag a query as a summary request; anything else is
// treated as general Q&A over the same documents.
var earningsIntentTerms = []string{"earnings", "summary", "summarize", "guidance", "results"}

const (
	contextLineCap   = 80
	minRankedContext = 6
	answerLineCap    = 6
	rewriteMaxTokens = 1100
	rewriteTemp      = 0.2
)

type ChatHandler struct {
	store      DocumentStore
	normalizer *docstore.Normalizer
	builder    *summary.Builder
	generator  llm.Generator
}

// NewChatHandler wires the extraction pipeline behind POST /api/chat.
// generator may be nil; the handler then always answers deterministically.
func NewChatHandler(store DocumentStore, generator llm.Generator) *ChatHandler {
	return &ChatHandler{
		store:      store,
		normalizer: docstore.NewNormalizer(nil),
		builder:    summary.NewBuilder(),
		generator:  generator,
	}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing message"})
		return
	}
	if len(req.Tickers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No sources selected"})
		return
	}

	tickers := h.normalizer.NormalizeAll(req.Tickers)
	sections := h.buildSections(tickers)

	if len(sections) == 0 {
		c.JSON(http.StatusOK, AnswerResponse{Answer: noContentHint})
		return
	}

	nonEarnings := !textutil.IncludesAny(strings.ToLower(message), earningsIntentTerms)

	if h.generator != nil {
		answer, err := h.generate(message, sections, nonEarnings)
		if err == nil && answer != "" {
			c.JSON(http.StatusOK, AnswerResponse{Answer: answer})
			return
		}
		if err != nil {
			slog.Error("generation failed, using deterministic answer", "error", err)
		}
	}

	c.JSON(http.StatusOK, AnswerResponse{Answer: h.deterministicAnswer(message, tickers, sections, nonEarnings)})
}

// buildSections loads and summarizes each ticker concurrently. The indexed
// slice keeps sections in request order; tickers with no usable documents
// leave a gap that is dropped afterwards.
func (h *ChatHandler) buildSections(tickers []string) []string {
	results := make([]string, len(tickers))

	var wg sync.WaitGroup
	for i, t := range tickers {
		wg.Add(1)
		go func(i int, ticker string) {
			defer wg.Done()
			results[i] = h.summarizeTicker(ticker)
		}(i, t)
	}
	wg.Wait()

	var sections []string
	for _, s := range results {
		if s != "" {
			sections = append(sections, s)
		}
	}
	return sections
}

// summarizeTicker prefers a parsed-JSON document; a missing or unparseable
// one falls through to the raw transcript. Every failure mode yields "".
func (h *ChatHandler) summarizeTicker(ticker string) string {
	refs := h.store.FindDocuments(ticker, 2)
	for _, ref := range refs {
		content := h.store.ReadTextFile(ref.Path)
		if content == "" {
			continue
		}
		switch ref.Kind {
		case model.KindStructured:
			parsed, err := extract.Parse(content)
			if err != nil {
				slog.Warn("skipping unparseable document", "ticker", ticker, "path", ref.Path, "error", err)
				continue
			}
			return h.builder.FromParsed(ticker, parsed)
		case model.KindRawText:
			return h.builder.FromTranscript(ticker, content)
		}
	}
	return ""
}

func (h *ChatHandler) generate(message string, sections []string, nonEarnings bool) (string, error) {
	base := strings.Join(sections, "\n\n")

	if !nonEarnings {
		return h.generator.Generate(llm.GroundedSystemPrompt, llm.EarningsRewritePrompt(base), rewriteMaxTokens, rewriteTemp)
	}

	contextForPrompt := base
	var lines []string
	for _, l := range strings.Split(base, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	ranked := rank.TopLines(message, lines, nil, contextLineCap)
	if len(ranked) >= minRankedContext {
		contextForPrompt = strings.Join(ranked, "\n")
	}
	return h.generator.Generate(llm.GroundedSystemPrompt, llm.GroundedAnswerPrompt(message, contextForPrompt), rewriteMaxTokens, rewriteTemp)
}

// deterministicAnswer is the always-available path: for general questions the
// most relevant summary lines, otherwise the summaries themselves.
func (h *ChatHandler) deterministicAnswer(message string, tickers, sections []string, nonEarnings bool) string {
	if nonEarnings {
		var lines []string
		for _, l := range strings.Split(strings.Join(sections, "\n"), "\n") {
			l = strings.TrimSpace(l)
			if l == "" || strings.HasSuffix(l, ":") || strings.Contains(l, " — earnings summary") {
				continue
			}
			lines = append(lines, l)
		}

		top := rank.TopLines(message, lines, rank.FocusTerms, answerLineCap)
		if len(top) > 0 {
			out := []string{strings.Join(tickers, ", ") + " — answer"}
			for _, l := range top {
				out = append(out, "- "+l)
			}
			return strings.Join(out, "\n")
		}
	}

	return strings.Join(sections, "\n\n")
}
