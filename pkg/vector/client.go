package vector

// Match is one scored retrieval result with its metadata.
type Match struct {
	Score    float64
	Ticker   string
	Company  string
	Section  string
	Text     string
	Category string
	CallDate string
}

// Retriever is the retrieval oracle: ranked matches for a query embedding,
// optionally filtered to a set of tickers. The raw result set is not assumed
// pre-filtered; callers apply their own score threshold and cap.
type Retriever interface {
	Search(vector []float64, topK int, tickers []string) ([]Match, error)
}

// Embedder turns text into a query embedding.
type Embedder interface {
	Embed(text string) ([]float64, error)
}
