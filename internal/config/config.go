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
	LLMBaseURL         string
	LLMModelName       string
	LLMAPIKey          string
	EmbeddingBaseURL   string
	EmbeddingModelName string
	EmbeddingDims      int
	DBPath             string
	QdrantURL          string
	QdrantCollection   string
	APIPort            string
	AdminAPIKey        string
	LogLevel           slog.Level
	LogFormat          string

	// Query pipeline tuning.
	TopK               int
	ContextTokenBudget int
	RetrievalTimeout   time.Duration
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory it is loaded automatically;
// environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMModelName:       getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "https://api.openai.com"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "text-embedding-3-large"),
		DBPath:             getEnv("DB_PATH", "./data/answerdesk.db"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "chunks"),
		APIPort:            getEnv("API_PORT", "9000"),
		AdminAPIKey:        getEnv("API_SECRET_KEY", ""),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}
	if cfg.AdminAPIKey == "" {
		return nil, fmt.Errorf("API_SECRET_KEY is required")
	}

	var err error
	if cfg.EmbeddingDims, err = getEnvInt("EMBEDDING_DIMENSIONS", 3072); err != nil {
		return nil, err
	}
	if cfg.EmbeddingDims <= 0 {
		return nil, fmt.Errorf("EMBEDDING_DIMENSIONS must be greater than 0")
	}
	if cfg.TopK, err = getEnvInt("TOP_K_CHUNKS", 5); err != nil {
		return nil, err
	}
	if cfg.ContextTokenBudget, err = getEnvInt("CONTEXT_TOKEN_BUDGET", 4000); err != nil {
		return nil, err
	}
	retrievalMs, err := getEnvInt("RETRIEVAL_TIMEOUT_MS", 3000)
	if err != nil {
		return nil, err
	}
	cfg.RetrievalTimeout = time.Duration(retrievalMs) * time.Millisecond

	cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	// Create the data directory if it doesn't exist.
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", value)
	}
}
