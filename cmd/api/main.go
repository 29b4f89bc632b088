package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"answerdesk/internal/chunker"
	"answerdesk/internal/config"
	"answerdesk/internal/http"
	"answerdesk/internal/ingest"
	"answerdesk/internal/llm"
	"answerdesk/internal/query"
	"answerdesk/internal/storage"
	"answerdesk/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	tenantRepo := storage.NewTenantRepo(db)
	chunkRepo := storage.NewChunkRepo(db)
	jobRepo := storage.NewJobRepo(db)
	queryLogRepo := storage.NewQueryLogRepo(db)

	ctx := context.Background()

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantCollection)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.EmbeddingDims); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.EmbeddingDims)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingDims)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.EmbeddingDims {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.EmbeddingDims, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.EmbeddingDims)

	// Token counter: exact when the encoding is available, approximate
	// otherwise (first use can require a network fetch).
	var counter chunker.TokenCounter
	counter, err = chunker.NewTiktokenCounter()
	if err != nil {
		slog.Warn("Falling back to approximate token counting", "error", err)
		counter = chunker.ApproxCounter{}
	}

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	// Create query engine
	engineOpts := query.DefaultOptions()
	engineOpts.TopK = cfg.TopK
	engineOpts.ContextTokenBudget = cfg.ContextTokenBudget
	engineOpts.RetrievalTimeout = cfg.RetrievalTimeout
	engine := query.NewEngine(
		tenantRepo,
		chunkRepo,
		queryLogRepo,
		vectorStore,
		embedder,
		llmClient,
		counter,
		engineOpts,
	)
	slog.Info("Query engine initialized")

	// Create ingestion pipeline (admin surface)
	pipeline := ingest.NewPipeline(jobRepo, chunkRepo, vectorStore, embedder, chunker.New(counter))

	// Create router with dependencies
	deps := &http.Deps{
		Engine:      engine,
		Tenants:     tenantRepo,
		QueryLogs:   queryLogRepo,
		Ingest:      pipeline,
		DB:          db,
		AdminAPIKey: cfg.AdminAPIKey,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
