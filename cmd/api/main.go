package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/bme3412/q2-software/db"
	"github.com/bme3412/q2-software/internal/docstore"
	"github.com/bme3412/q2-software/internal/handler"
	"github.com/bme3412/q2-software/internal/repository"
	"github.com/bme3412/q2-software/pkg/llm"
	"github.com/bme3412/q2-software/pkg/market"
	"github.com/bme3412/q2-software/pkg/vector"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	transcriptsDir := envOr("TRANSCRIPTS_DIR", "software/transcripts")
	parsedDir := envOr("PARSED_DIR", "software/output")
	store := docstore.NewFileStore(transcriptsDir, parsedDir)

	generator := buildGenerator()
	embedder, retriever := buildRetrieval()
	cache := buildSuggestionCache()
	profiles := buildProfileClient()

	chatHandler := handler.NewChatHandler(store, generator)
	ragHandler := handler.NewRagHandler(embedder, retriever, generator)
	suggestHandler := handler.NewSuggestHandler(embedder, retriever, generator, cache)
	companyHandler := handler.NewCompanyHandler(profiles)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/api/chat", chatHandler.Chat)
	r.POST("/api/rag", ragHandler.Query)
	r.POST("/api/suggest", suggestHandler.Suggest)
	r.GET("/api/companies", companyHandler.GetCompanies)
	r.GET("/api/companies/:ticker/profile", companyHandler.GetProfile)
	r.GET("/health", companyHandler.GetHealth)

	port := envOr("PORT", "8080")
	err := r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

// buildGenerator returns nil when no provider key is configured; handlers
// then answer deterministically.
func buildGenerator() llm.Generator {
	provider := envOr("LLM_PROVIDER", "openai")

	switch provider {
	case "anthropic":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			slog.Warn("ANTHROPIC_API_KEY not set, LLM rewrite disabled")
			return nil
		}
		return llm.NewAnthropicClient(key)
	default:
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			slog.Warn("OPENAI_API_KEY not set, LLM rewrite disabled")
			return nil
		}
		return llm.NewOpenAIClient(key)
	}
}

// buildRetrieval wires the vector search backend: Pinecone by default, the
// local pgvector store when VECTOR_BACKEND=pgvector. Either side may come
// back nil; the rag and suggest handlers report the misconfiguration.
func buildRetrieval() (handler.Embedder, handler.Retriever) {
	var embedder handler.Embedder
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		embedder = vector.NewOpenAIEmbedder(key)
	}

	if os.Getenv("VECTOR_BACKEND") == "pgvector" {
		if err := db.Connect(); err != nil {
			slog.Error("error connecting to DB, retrieval disabled", "error", err)
			return embedder, nil
		}
		return embedder, repository.NewMatchRepository(db.DB)
	}

	host := os.Getenv("PINECONE_HOST")
	key := os.Getenv("PINECONE_API_KEY")
	if host == "" || key == "" {
		slog.Warn("Pinecone not configured, retrieval disabled")
		return embedder, nil
	}
	return embedder, vector.NewPineconeClient(host, key)
}

func buildSuggestionCache() handler.SuggestionCache {
	if os.Getenv("REDIS_URL") == "" {
		return nil
	}
	if err := db.ConnectRedis(); err != nil {
		slog.Warn("error connecting to Redis, suggestion cache disabled", "error", err)
		return nil
	}
	return db.NewSuggestionCache(db.Redis)
}

func buildProfileClient() handler.ProfileClient {
	key := os.Getenv("FINNHUB_API_KEY")
	if key == "" {
		return nil
	}
	return market.NewFinnHubClient(key)
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
