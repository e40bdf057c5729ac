package vector

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// PineconeClient queries a Pinecone index over its REST API.
type PineconeClient struct {
	host       string
	apiKey     string
	httpClient *http.Client
}

// NewPineconeClient takes the index host (e.g.
// https://earnings-q2-2025-xxxx.svc.us-east-1.pinecone.io) and an API key.
func NewPineconeClient(host, apiKey string) *PineconeClient {
	return &PineconeClient{
		host:       strings.TrimRight(host, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *PineconeClient) Search(vector []float64, topK int, tickers []string) ([]Match, error) {
	reqBody := pineconeQuery{
		Vector:          vector,
		TopK:            topK,
		IncludeMetadata: true,
	}
	if len(tickers) > 0 {
		reqBody.Filter = map[string]any{
			"ticker": map[string]any{"$in": tickers},
		}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("pinecone encode: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.host+"/query", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("pinecone request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pinecone query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pinecone query: unexpected status %d", resp.StatusCode)
	}

	var raw pineconeResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("pinecone decode: %w", err)
	}

	matches := make([]Match, 0, len(raw.Matches))
	for _, m := range raw.Matches {
		matches = append(matches, Match{
			Score:    m.Score,
			Ticker:   m.Metadata.Ticker,
			Company:  m.Metadata.Company,
			Section:  m.Metadata.Section,
			Text:     m.Metadata.Text,
			Category: m.Metadata.Category,
			CallDate: m.Metadata.CallDate,
		})
	}
	return matches, nil
}

type pineconeQuery struct {
	Vector          []float64      `json:"vector"`
	TopK            int            `json:"topK"`
	IncludeMetadata bool           `json:"includeMetadata"`
	Filter          map[string]any `json:"filter,omitempty"`
}

type pineconeResponse struct {
	Matches []pineconeMatch `json:"matches"`
}

type pineconeMatch struct {
	Score    float64          `json:"score"`
	Metadata pineconeMetadata `json:"metadata"`
}

type pineconeMetadata struct {
	Ticker   string `json:"ticker"`
	Company  string `json:"company"`
	Section  string `json:"section"`
	Text     string `json:"text"`
	Category string `json:"category"`
	CallDate string `json:"call_date"`
}
