package config

import (
	"log/slog"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("API_SECRET_KEY", "admin-secret")
	t.Setenv("DB_PATH", t.TempDir()+"/test.db")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LLMModelName != "gpt-4o-mini" {
		t.Errorf("LLMModelName = %q", cfg.LLMModelName)
	}
	if cfg.EmbeddingModelName != "text-embedding-3-large" {
		t.Errorf("EmbeddingModelName = %q", cfg.EmbeddingModelName)
	}
	if cfg.EmbeddingDims != 3072 {
		t.Errorf("EmbeddingDims = %d", cfg.EmbeddingDims)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d", cfg.TopK)
	}
	if cfg.ContextTokenBudget != 4000 {
		t.Errorf("ContextTokenBudget = %d", cfg.ContextTokenBudget)
	}
	if cfg.RetrievalTimeout != 3*time.Second {
		t.Errorf("RetrievalTimeout = %v", cfg.RetrievalTimeout)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.APIPort != "9000" {
		t.Errorf("APIPort = %q", cfg.APIPort)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("API_SECRET_KEY", "admin-secret")

	if _, err := Load(); err == nil {
		t.Error("Load() error = nil, want error for missing LLM_API_KEY")
	}
}

func TestLoad_MissingAdminKey(t *testing.T) {
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("API_SECRET_KEY", "")

	if _, err := Load(); err == nil {
		t.Error("Load() error = nil, want error for missing API_SECRET_KEY")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TOP_K_CHUNKS", "8")
	t.Setenv("CONTEXT_TOKEN_BUDGET", "2000")
	t.Setenv("RETRIEVAL_TIMEOUT_MS", "1500")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TopK != 8 {
		t.Errorf("TopK = %d, want 8", cfg.TopK)
	}
	if cfg.ContextTokenBudget != 2000 {
		t.Errorf("ContextTokenBudget = %d, want 2000", cfg.ContextTokenBudget)
	}
	if cfg.RetrievalTimeout != 1500*time.Millisecond {
		t.Errorf("RetrievalTimeout = %v", cfg.RetrievalTimeout)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-integer top k", key: "TOP_K_CHUNKS", value: "many"},
		{name: "bad log level", key: "LOG_LEVEL", value: "verbose"},
		{name: "zero embedding dims", key: "EMBEDDING_DIMENSIONS", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() error = nil, want error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
