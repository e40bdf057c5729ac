package llm

// Generator is the generation oracle: a black box given a system and a user
// prompt, returning free text. Failures are never fatal to a request; the
// caller always has a deterministic fallback.
type Generator interface {
	Generate(systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error)
	ModelName() string
}
