package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// TenantRecord represents an isolated customer account. Every downstream
// record carries its ID; all reads and writes filter by it.
type TenantRecord struct {
	ID        string // UUID
	SiteID    string // External site identifier, unique
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

// AllowedOriginRecord is a normalized domain permitted to call a tenant's
// widget. Domains are stored lowercase without a leading "www.".
type AllowedOriginRecord struct {
	ID       string // UUID
	TenantID string
	Domain   string
	IsActive bool
}

// WidgetConfigRecord carries per-tenant widget branding and behavior.
// A tenant without a config row gets system defaults.
type WidgetConfigRecord struct {
	ID                string // UUID
	TenantID          string
	BrandName         string
	Tone              string
	PlaceholderText   string
	WelcomeMessage    string
	FallbackMessage   string
	MaxResponseLength int
	ShowSources       bool
	ShowSuggestions   bool
	QuickActions      []string // stored as a JSON array
}

// IngestionJobRecord tracks the lifecycle of one ingestion operation.
type IngestionJobRecord struct {
	ID            string // UUID
	TenantID      string
	SourceType    string // "text" or "markdown"
	SourceURL     string
	Status        string // pending, processing, completed, failed
	ChunksCreated int
	ErrorMessage  string
	StartedAt     time.Time
	CompletedAt   time.Time
	CreatedAt     time.Time
}

// Job status values.
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// ChunkRecord is one bounded slice of ingested content. VectorID doubles as
// the vector index point ID and is unique across the whole system, because
// the index returns IDs without tenant context.
type ChunkRecord struct {
	VectorID    string // UUID, same as the vector index point ID
	TenantID    string
	JobID       string
	ChunkIndex  int
	Content     string
	SourceURL   string
	SourceTitle string
	TokenCount  int
}

// QueryLogRecord is an immutable audit row, one per query. IPHash is a
// one-way hash; the raw IP is never stored.
type QueryLogRecord struct {
	ID             string // UUID
	TenantID       string
	Question       string
	Answer         string
	ChunksUsed     int
	ResponseTimeMs int
	OriginDomain   string
	UserAgent      string
	IPHash         string
	CreatedAt      time.Time
}
