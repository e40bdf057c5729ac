package repository

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/bme3412/q2-software/pkg/vector"
	"github.com/lib/pq"
)

// MatchRepository is the local retrieval backend: cosine search over a
// pgvector table of embedded earnings-call chunks. It satisfies the same
// Retriever contract as the Pinecone client.
type MatchRepository struct {
	db *sql.DB
}

func NewMatchRepository(db *sql.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// EnsureSchema creates the chunk table and its vector index. Embeddings are
// 1536-dimensional (text-embedding-ada-002).
func (r *MatchRepository) EnsureSchema() error {
	_, err := r.db.Exec(`
		CREATE EXTENSION IF NOT EXISTS vector;
		CREATE TABLE IF NOT EXISTS call_chunks (
			id SERIAL PRIMARY KEY,
			ticker TEXT NOT NULL,
			company TEXT NOT NULL DEFAULT '',
			section TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			call_date TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			embedding vector(1536) NOT NULL
		);
		CREATE INDEX IF NOT EXISTS call_chunks_ticker_idx ON call_chunks (ticker);
	`)
	if err != nil {
		return fmt.Errorf("ensure call_chunks schema: %w", err)
	}
	return nil
}

func (r *MatchRepository) Search(vec []float64, topK int, tickers []string) ([]vector.Match, error) {
	var rows *sql.Rows
	var err error

	if len(tickers) > 0 {
		rows, err = r.db.Query(`
			SELECT ticker, company, section, category, call_date, content,
			       1 - (embedding <=> $1::vector) AS score
			FROM call_chunks
			WHERE ticker = ANY($2)
			ORDER BY embedding <=> $1::vector
			LIMIT $3
		`, vectorLiteral(vec), pq.Array(tickers), topK)
	} else {
		rows, err = r.db.Query(`
			SELECT ticker, company, section, category, call_date, content,
			       1 - (embedding <=> $1::vector) AS score
			FROM call_chunks
			ORDER BY embedding <=> $1::vector
			LIMIT $2
		`, vectorLiteral(vec), topK)
	}
	if err != nil {
		return nil, fmt.Errorf("search call_chunks: %w", err)
	}
	defer rows.Close()

	var matches []vector.Match
	for rows.Next() {
		var m vector.Match
		err := rows.Scan(&m.Ticker, &m.Company, &m.Section, &m.Category, &m.CallDate, &m.Text, &m.Score)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return matches, nil
}

// InsertChunk stores one embedded chunk; used by the indexer.
func (r *MatchRepository) InsertChunk(m vector.Match, embedding []float64) error {
	_, err := r.db.Exec(`
		INSERT INTO call_chunks (ticker, company, section, category, call_date, content, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7::vector)
	`, m.Ticker, m.Company, m.Section, m.Category, m.CallDate, m.Text, vectorLiteral(embedding))
	return err
}

// DeleteTicker clears previously indexed chunks for a ticker before reindexing.
func (r *MatchRepository) DeleteTicker(ticker string) error {
	_, err := r.db.Exec(`DELETE FROM call_chunks WHERE ticker = $1`, ticker)
	return err
}

func vectorLiteral(vec []float64) string {
	parts := make([]string, len(vec))
	for i, v := range vec {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
