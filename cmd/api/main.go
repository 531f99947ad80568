package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"brainer/internal/config"
	"brainer/internal/enrich"
	"brainer/internal/http"
	"brainer/internal/llm"
	"brainer/internal/notes"
	"brainer/internal/objectstore"
	"brainer/internal/ocr"
	"brainer/internal/search"
	"brainer/internal/storage"
	"brainer/internal/transcribe"
	"brainer/internal/usage"
	"brainer/internal/vectorstore"
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
	noteRepo := storage.NewNoteRepo(db)
	tagRepo := storage.NewTagRepo(db)
	usageRepo := storage.NewUsageRepo(db)

	ctx := context.Background()

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.EmbeddingModel, cfg.QdrantVectorSize)
	if cfg.AIAPIKey != "" {
		testEmbedding, err := embedder.EmbedText(ctx, "test")
		if err != nil {
			log.Fatalf("Failed to validate embedding client: %v", err)
		}
		if len(testEmbedding.Vector) != cfg.QdrantVectorSize {
			log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(testEmbedding.Vector))
		}
		slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)
	} else {
		slog.Warn("OPENAI_API_KEY not set, AI enrichment endpoints will report not configured")
	}

	// Chat client for summaries and topic extraction
	chatClient := llm.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.ChatModel)

	// Usage ledger over the counters table
	ledger := usage.NewLedger(usageRepo)

	// Enrichment service (embeddings, summaries, topics)
	enricher := enrich.NewService(noteRepo, vectorStore, cfg.QdrantCollection, embedder, chatClient, ledger)

	// Transcription manager; requires both object storage and a job API.
	var transcriber notes.Transcriber
	jobAPI := transcribe.NewAPIClient(cfg.TranscribeBaseURL)
	if jobAPI.Available() {
		mediaStore, err := objectstore.NewMinioStore(ctx, objectstore.Options{
			Endpoint:  cfg.StorageEndpoint,
			AccessKey: cfg.StorageAccessKey,
			SecretKey: cfg.StorageSecretKey,
			Bucket:    cfg.StorageBucket,
			UseSSL:    cfg.StorageUseSSL,
		})
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		transcriber = transcribe.NewManager(jobAPI, mediaStore, cfg.TranscriptFetchRetries, cfg.TranscriptFetchDelay)
		slog.Info("Transcription enabled", "endpoint", cfg.TranscribeBaseURL, "bucket", cfg.StorageBucket)
	} else {
		slog.Warn("TRANSCRIBE_BASE_URL not set, voice uploads will not be transcribed")
	}

	// OCR client for screenshot uploads
	var extractor ocr.Extractor
	ocrClient := ocr.NewClient(cfg.OCRBaseURL)
	if ocrClient.Available() {
		extractor = ocrClient
		slog.Info("OCR enabled", "endpoint", cfg.OCRBaseURL)
	} else {
		slog.Warn("OCR_BASE_URL not set, screenshot uploads will use placeholder content")
	}

	// Note lifecycle orchestrator and search service
	noteService := notes.NewService(noteRepo, tagRepo, enricher, transcriber, extractor, ledger)
	searchService := search.NewService(embedder, vectorStore, noteRepo, cfg.QdrantCollection)

	// Create router with dependencies
	deps := &http.Deps{
		DB:             db,
		Notes:          noteService,
		Search:         searchService,
		Ledger:         ledger,
		VectorStore:    vectorStore,
		CollectionName: cfg.QdrantCollection,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("AI configuration", "base_url", cfg.AIBaseURL, "chat_model", cfg.ChatModel, "embedding_model", cfg.EmbeddingModel)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
