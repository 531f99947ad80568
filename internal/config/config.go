package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	DBPath    string
	LogLevel  slog.Level
	LogFormat string

	// OpenAI-compatible AI endpoints.
	AIBaseURL      string
	AIAPIKey       string
	ChatModel      string
	EmbeddingModel string

	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int

	// S3-compatible object storage for audio uploads and transcripts.
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageUseSSL    bool

	// Transcription and OCR collaborator endpoints. Empty base URL means
	// the capability is unavailable and the upload paths degrade.
	TranscribeBaseURL string
	OCRBaseURL        string

	// Bounded retry loop used when the transcript object lags behind the
	// job completion signal (storage eventual consistency).
	TranscriptFetchRetries int
	TranscriptFetchDelay   time.Duration
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:           getEnv("API_PORT", "9000"),
		DBPath:            getEnv("DB_PATH", "./data/brainer.db"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		AIBaseURL:         getEnv("AI_BASE_URL", "https://api.openai.com"),
		AIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		ChatModel:         getEnv("CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		QdrantURL:         getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:  getEnv("QDRANT_COLLECTION", "notes"),
		StorageEndpoint:   getEnv("STORAGE_ENDPOINT", "localhost:9090"),
		StorageAccessKey:  getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey:  getEnv("STORAGE_SECRET_KEY", ""),
		StorageBucket:     getEnv("STORAGE_BUCKET", "brainer-media"),
		TranscribeBaseURL: getEnv("TRANSCRIBE_BASE_URL", ""),
		OCRBaseURL:        getEnv("OCR_BASE_URL", ""),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	cfg.StorageUseSSL = getEnv("STORAGE_USE_SSL", "false") == "true"

	// Parse QDRANT_VECTOR_SIZE
	// Note: This must match the output vector size of the embeddings model
	// (1536 for text-embedding-3-small). If the vector size changes, the
	// Qdrant collection must be recreated.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "1536")
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	retries, err := strconv.Atoi(getEnv("TRANSCRIPT_FETCH_RETRIES", "3"))
	if err != nil || retries < 0 {
		return nil, fmt.Errorf("TRANSCRIPT_FETCH_RETRIES must be a non-negative integer")
	}
	cfg.TranscriptFetchRetries = retries

	delay, err := time.ParseDuration(getEnv("TRANSCRIPT_FETCH_DELAY", "2s"))
	if err != nil {
		return nil, fmt.Errorf("TRANSCRIPT_FETCH_DELAY must be a valid duration: %w", err)
	}
	cfg.TranscriptFetchDelay = delay

	// Create ./data directory if it doesn't exist (for future DB file)
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// parseLogLevel converts a level name into a slog.Level.
func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
