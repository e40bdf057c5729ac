package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bme3412/q2-software/internal/textutil"
	"github.com/bme3412/q2-software/pkg/llm"
	"github.com/bme3412/q2-software/pkg/vector"

	"github.com/gin-gonic/gin"
)

type Embedder interface {
	Embed(text string) ([]float64, error)
}

type Retriever interface {
	Search(vec []float64, topK int, tickers []string) ([]vector.Match, error)
}

const (
	defaultTopK       = 25
	ragScoreThreshold = 0.55
	ragContextCap     = 12
	ragMaxTokens      = 3000
	ragTemp           = 0.1
)

type RagHandler struct {
	embedder  Embedder
	retriever Retriever
	generator llm.Generator
}

func NewRagHandler(embedder Embedder, retriever Retriever, generator llm.Generator) *RagHandler {
	return &RagHandler{embedder: embedder, retriever: retriever, generator: generator}
}

func (h *RagHandler) Query(c *gin.Context) {
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

	if h.embedder == nil || h.retriever == nil || h.generator == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Missing API keys. Please set PINECONE_API_KEY and OPENAI_API_KEY environment variables.",
		})
		return
	}

	var tickers []string
	for _, t := range req.Tickers {
		tickers = append(tickers, strings.ToUpper(t))
	}

	topK := req.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	vec, err := h.embedder.Embed(message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("RAG query failed: %s", err)})
		return
	}

	matches, err := h.retriever.Search(vec, topK, tickers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("RAG query failed: %s", err)})
		return
	}

	if len(matches) == 0 {
		c.JSON(http.StatusOK, AnswerResponse{Answer: "No relevant information found in the selected sources."})
		return
	}

	var contexts []vector.Match
	for _, m := range matches {
		if m.Score > ragScoreThreshold {
			contexts = append(contexts, m)
		}
		if len(contexts) >= ragContextCap {
			break
		}
	}

	if len(contexts) == 0 {
		c.JSON(http.StatusOK, AnswerResponse{Answer: "No high-confidence matches found for your query."})
		return
	}

	contextText := buildContextText(contexts)

	raw, err := h.generator.Generate(llm.RagSystemPrompt(req.Detail), llm.RagUserPrompt(message, contextText), ragMaxTokens, ragTemp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("RAG query failed: %s", err)})
		return
	}
	if raw == "" {
		raw = "Unable to generate response."
	}

	answer := textutil.StripMarkdown(raw)

	sources := uniqueTickers(contexts)
	if len(sources) > 0 {
		answer += "\n\nSources: " + strings.Join(sources, ", ")
	}

	c.JSON(http.StatusOK, RagResponse{
		Answer: answer,
		Metadata: RagMetadata{
			Sources:  sources,
			Matches:  len(contexts),
			TopScore: contexts[0].Score,
		},
	})
}

func buildContextText(contexts []vector.Match) string {
	blocks := make([]string, 0, len(contexts))
	for _, ctx := range contexts {
		company := ctx.Company
		if company == "" {
			company = "Unknown"
		}
		ticker := ctx.Ticker
		if ticker == "" {
			ticker = "Unknown"
		}
		section := ctx.Section
		if section == "" {
			section = "earnings"
		}

		header := fmt.Sprintf("%s (%s) - %s", company, ticker, section)
		if ctx.CallDate != "" {
			header += fmt.Sprintf(" [%s]", ctx.CallDate)
		}
		if ctx.Category != "" {
			header += fmt.Sprintf(" (%s)", ctx.Category)
		}
		blocks = append(blocks, header+":\n"+ctx.Text)
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

func uniqueTickers(contexts []vector.Match) []string {
	var out []string
	seen := make(map[string]bool)
	for _, ctx := range contexts {
		if ctx.Ticker == "" || seen[ctx.Ticker] {
			continue
		}
		seen[ctx.Ticker] = true
		out = append(out, ctx.Ticker)
	}
	return out
}
