package llm

import (
	"fmt"
	"strings"
)

// GroundedSystemPrompt anchors every rewrite/answer call: the model may only
// use the deterministic context it is handed.
const GroundedSystemPrompt = "You write accurate, relevant answers grounded in provided context only. Never fabricate data."

// EarningsRewritePrompt asks the model to expand and polish per-ticker
// deterministic summaries without inventing numbers.
func EarningsRewritePrompt(summaries string) string {
	return "You are an expert equity research assistant. Expand and polish the following per-ticker earnings summaries. " +
		"Keep them factual and grounded; do not invent numbers. Use 8-15 bullets per ticker covering: results, KPIs, margins, cash, " +
		"geo mix, customer metrics, AI/product themes, go-to-market/competitive dynamics, and guidance. No citations.\n\n" +
		summaries
}

// GroundedAnswerPrompt asks the model to answer a non-summary question from
// the supplied context only.
func GroundedAnswerPrompt(question, context string) string {
	return "You are a precise research assistant. Answer the user's question using ONLY the provided context. " +
		"Include only information directly relevant to the question; omit unrelated facts. If multiple tickers are relevant, " +
		"organize by ticker (3-8 concise bullets each). If the answer is not present in the context, say: " +
		"\"No explicit information in selected sources.\" No citations.\n\nQuestion:\n" + question + "\n\nContext:\n" + context
}

const ragBasePrompt = `You are an expert financial analyst assistant. Answer the user's question using ONLY the provided earnings call context.

CORE ANALYSIS PRINCIPLES:
- Extract and synthesize ALL relevant information from the provided context
- Use specific quotes, metrics, and evidence from the earnings calls
- For strategic questions: cover approaches, competitive positioning, and implications
- For financial questions: cover metrics with context and comparisons
- Organize responses with clear structure and supporting detail

FORMATTING REQUIREMENTS:
- Use ONLY plain text - NO markdown, NO asterisks, NO bold/italic formatting
- Use simple bullet points with "•" character only
- Use clear paragraph breaks for organization
- Use simple section headers without # symbols
- NO special formatting characters whatsoever`

// RagSystemPrompt returns the system prompt for the retrieval path at the
// requested detail level (brief, detailed, comprehensive).
func RagSystemPrompt(detail string) string {
	switch detail {
	case "brief":
		return ragBasePrompt + `

BRIEF RESPONSE GUIDELINES:
- Provide a concise, high-level summary (3-5 key points)
- Include only the most significant numbers and metrics
- Focus on main business impacts and direct answers`
	case "comprehensive":
		return ragBasePrompt + `

COMPREHENSIVE RESPONSE GUIDELINES:
- Organize your response to directly address what the question is asking
- Include ALL relevant numbers, percentages, financial metrics, and growth rates
- Quote specific management statements for evidence
- Compare companies and identify key differentiators
- Include forward-looking guidance and strategic commentary
- Call out gaps, red flags, or concerning omissions
- End with actionable insights relevant to the specific question asked`
	default:
		return ragBasePrompt + `

DETAILED RESPONSE GUIDELINES:
- Provide thorough analysis that goes deep into the subject matter
- Include all relevant numbers, percentages, metrics, and specific quotes
- Compare and contrast companies with supporting evidence
- Include complete forward-looking statements, guidance, and strategic commentary
- End with actionable insights based on the analysis`
	}
}

// RagUserPrompt pairs the question with the retrieved context blocks.
func RagUserPrompt(question, context string) string {
	return fmt.Sprintf("Question: %s\n\nContext from earnings calls:\n%s", question, context)
}

// SuggestSystemPrompt frames cross-sectional question generation over the
// selected universe.
func SuggestSystemPrompt(companies, categories []string) string {
	return fmt.Sprintf(`You are an expert thematic analyst who generates cross-sectional questions that reveal strategic themes, competitive dynamics, and industry insights from earnings calls.

Generate 8 thematic analytical questions that focus on:
- Cross-company themes and strategic patterns
- Competitive positioning shifts and market dynamics
- Technology adoption trends and implementation strategies
- Insights that require connecting information across multiple companies

AVOID BASIC FINANCIAL METRICS:
- NO questions about revenue growth, ARR, operating margins, or basic KPIs
- Focus on strategic, thematic, and qualitative insights instead

Selected Companies: %s
Business Categories: %s

Return only the questions, numbered 1-8.`,
		strings.Join(companies, ", "), strings.Join(categories, ", "))
}

// SuggestUserPrompt carries the sampled earnings excerpts.
func SuggestUserPrompt(companyCount int, sample string) string {
	return fmt.Sprintf(`Based on this earnings content sample from %d companies, generate 8 broad analytical questions.

Sample Content:
%s

Questions must work across ALL selected companies, focus on themes and strategic insights rather than basic metrics, and enable cross-sectional analysis. Return only the questions, numbered 1-8.`,
		companyCount, sample)
}

// MinimalSuggestions is returned when retrieval sampling finds nothing.
var MinimalSuggestions = []string{
	"What are the key revenue drivers across selected companies?",
	"How are companies positioning for future growth?",
	"What are the main competitive advantages mentioned?",
}

// FallbackSuggestions pads the response when question generation comes back
// short or fails outright.
var FallbackSuggestions = []string{
	"What fundamentally different strategic approaches to market positioning emerged across the selected companies, and what do these philosophical differences reveal about competitive dynamics?",
	"How are companies positioning themselves differently for future market evolution, and what strategic themes separate early adopters from followers?",
	"What divergent competitive philosophies and strategic moats emerged across earnings discussions, and how do these approaches reflect different views of market evolution?",
	"Which strategic partnership and ecosystem positioning themes emerged across companies, and what do these choices reveal about competitive positioning?",
	"What fundamentally different approaches to technology integration and innovation emerged across companies, and what strategic themes separate the leaders?",
	"How are product strategy evolution and platform positioning varying across the selected universe, and what does this reveal about competitive philosophy?",
	"What emerging competitive threats and market disruption themes were discussed across multiple companies, and how are strategic responses differing?",
	"What management confidence patterns and strategic messaging themes emerged across earnings calls, and what do tone differences reveal about competitive positioning?",
}
