package main

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bme3412/q2-software/db"
	"github.com/bme3412/q2-software/internal/company"
	"github.com/bme3412/q2-software/internal/docstore"
	"github.com/bme3412/q2-software/internal/extract"
	"github.com/bme3412/q2-software/internal/model"
	"github.com/bme3412/q2-software/internal/repository"
	"github.com/bme3412/q2-software/pkg/vector"

	"github.com/joho/godotenv"
)

const embedWorkers = 3

// maxIndexFiles bounds one indexer run.
const maxIndexFiles = 500

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY is required for embedding")
	}
	embedder := vector.NewOpenAIEmbedder(apiKey)

	repo := repository.NewMatchRepository(db.DB)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatalf("error preparing schema: %v", err)
	}

	transcriptsDir := envOr("TRANSCRIPTS_DIR", "software/transcripts")
	parsedDir := envOr("PARSED_DIR", "software/output")
	store := docstore.NewFileStore(transcriptsDir, parsedDir)

	files := store.WalkFiles(parsedDir, func(p string) bool {
		return strings.HasSuffix(strings.ToLower(p), "-parsed.json")
	}, maxIndexFiles)

	if len(files) == 0 {
		slog.Info("no parsed documents to index, exiting")
		return
	}

	slog.Info("indexing parsed documents", "count", len(files))

	indexed := 0
	for _, f := range files {
		ticker := tickerFromFilename(f)
		if ticker == "" {
			slog.Warn("skipping file with no ticker prefix", "path", f)
			continue
		}

		content := store.ReadTextFile(f)
		if content == "" {
			slog.Warn("skipping unreadable file", "path", f)
			continue
		}

		ref := model.DocumentRef{Ticker: ticker, Path: f, Kind: model.KindStructured}
		chunks := extract.FromDocument(ref, content)
		if len(chunks) == 0 {
			slog.Warn("no chunks extracted", "ticker", ticker, "path", f)
			continue
		}

		if err := repo.DeleteTicker(ticker); err != nil {
			log.Fatalf("error clearing previous chunks for %s: %v", ticker, err)
		}

		n := indexTicker(repo, embedder, ticker, chunks)
		indexed += n
		slog.Info("indexed ticker", "ticker", ticker, "chunks", n)
	}

	slog.Info("indexing complete", "files", len(files), "chunks", indexed)
}

// indexTicker embeds and stores the chunks for one ticker with bounded
// concurrency on the embedding calls. Failed chunks are logged and skipped.
func indexTicker(repo *repository.MatchRepository, embedder *vector.OpenAIEmbedder, ticker string, chunks []model.Chunk) int {
	companyName := ticker
	category := ""
	if c, ok := company.Lookup(ticker); ok {
		companyName = c.Name
		category = c.Category
	}

	embeddings := make([][]float64, len(chunks))

	var wg sync.WaitGroup
	sem := make(chan struct{}, embedWorkers)
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			vec, err := embedder.Embed(text)
			if err != nil {
				slog.Warn("embedding failed, skipping chunk", "ticker", ticker, "error", err)
				return
			}
			embeddings[i] = vec
		}(i, chunk.Text)
	}
	wg.Wait()

	stored := 0
	for i, chunk := range chunks {
		if embeddings[i] == nil {
			continue
		}
		m := vector.Match{
			Ticker:   ticker,
			Company:  companyName,
			Section:  "earnings",
			Category: category,
			Text:     chunk.Text,
		}
		if err := repo.InsertChunk(m, embeddings[i]); err != nil {
			slog.Warn("insert failed, skipping chunk", "ticker", ticker, "error", err)
			continue
		}
		stored++
	}
	return stored
}

// tickerFromFilename extracts BRZE from ".../brze-parsed.json".
func tickerFromFilename(path string) string {
	base := strings.ToLower(filepath.Base(path))
	name, found := strings.CutSuffix(base, "-parsed.json")
	if !found || name == "" {
		return ""
	}
	return strings.ToUpper(name)
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
