package vector

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIEmbedder produces query embeddings with text-embedding-ada-002.
type OpenAIEmbedder struct {
	client *openai.Client
}

func NewOpenAIEmbedder(apiKey string) *OpenAIEmbedder {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIEmbedder{client: &client}
}

func (e *OpenAIEmbedder) Embed(text string) ([]float64, error) {
	resp, err := e.client.Embeddings.New(context.Background(), openai.EmbeddingNewParams{
		Model: openai.EmbeddingModelTextEmbeddingAda002,
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("openai embedding error: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding in openai response")
	}

	return resp.Data[0].Embedding, nil
}
