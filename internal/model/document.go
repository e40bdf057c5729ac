package model

// DocumentKind distinguishes the two extraction strategies.
type DocumentKind string

const (
	KindStructured DocumentKind = "structured"
	KindRawText    DocumentKind = "raw"
)

// DocumentRef points at a single source document for a ticker. Refs are
// created per request and discarded after extraction; nothing is persisted.
type DocumentRef struct {
	Ticker string
	Path   string
	Kind   DocumentKind
}

// Chunk is one candidate text unit: a paragraph, a single extracted fact
// line, or a flattened key-value string. Text is non-empty and trimmed.
type Chunk struct {
	Text     string
	Ticker   string
	FilePath string
}
