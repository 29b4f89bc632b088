package query

import "context"

// Request carries one end-user question plus the caller metadata the
// pipeline needs for origin checks and auditing.
type Request struct {
	// SiteID is the tenant's external site identifier.
	SiteID string
	// Question is the user's question.
	Question string
	// Origin is the raw Origin header value, if any. Empty means no origin
	// constraint.
	Origin string
	// UserAgent is the caller's user agent, recorded in the audit log.
	UserAgent string
	// IPAddress is the caller's IP. Only a one-way hash is stored.
	IPAddress string
}

// Source points at the document a chunk came from.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Response is the answer to one query. Suggestions and Sources are empty
// when the tenant config disables them, independent of retrieval results.
type Response struct {
	Answer      string   `json:"answer"`
	Suggestions []string `json:"suggestions"`
	Sources     []Source `json:"sources"`
}

// Embedder converts text to a fixed-dimension vector.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Generator is the language-model capability: one bounded, temperature-
// controlled completion per call.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userMessage string, maxTokens int, temperature float32) (string, error)
}
