// Package ingest turns raw tenant content into chunk rows and vector index
// points, tracked by an ingestion job.
package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"answerdesk/internal/chunker"
	"answerdesk/internal/contextutil"
	"answerdesk/internal/storage"
	"answerdesk/internal/vectorstore"
)

// Source types accepted by Ingest.
const (
	SourceTypeText     = "text"
	SourceTypeMarkdown = "markdown"
)

// minContentLength guards against ingesting near-empty documents.
const minContentLength = 300

// embedBatchSize caps the number of texts per embeddings API call.
const embedBatchSize = 100

// Embedder generates one vector per input text.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Request describes one document to ingest.
type Request struct {
	TenantID    string
	SiteID      string // vector index namespace
	SourceType  string // SourceTypeText or SourceTypeMarkdown
	Content     string
	SourceURL   string
	SourceTitle string
}

// Pipeline runs ingestion jobs: chunk, embed, index, record.
type Pipeline struct {
	jobs     storage.JobStore
	chunks   storage.ChunkStore
	vectors  vectorstore.VectorStore
	embedder Embedder
	chunker  *chunker.Chunker
}

// NewPipeline wires the ingestion pipeline.
func NewPipeline(
	jobs storage.JobStore,
	chunks storage.ChunkStore,
	vectors vectorstore.VectorStore,
	embedder Embedder,
	ch *chunker.Chunker,
) *Pipeline {
	return &Pipeline{
		jobs:     jobs,
		chunks:   chunks,
		vectors:  vectors,
		embedder: embedder,
		chunker:  ch,
	}
}

// Ingest processes one document synchronously and returns the finished job
// record. The job row is created up front in the processing state, so a
// failure partway through still leaves a failed job behind for inspection.
func (p *Pipeline) Ingest(ctx context.Context, req Request) (*storage.IngestionJobRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.SourceType != SourceTypeText && req.SourceType != SourceTypeMarkdown {
		return nil, fmt.Errorf("unsupported source type %q", req.SourceType)
	}

	job := &storage.IngestionJobRecord{
		ID:         uuid.NewString(),
		TenantID:   req.TenantID,
		SourceType: req.SourceType,
		SourceURL:  req.SourceURL,
		Status:     storage.JobStatusProcessing,
		StartedAt:  time.Now().UTC(),
	}
	if err := p.jobs.Insert(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create ingestion job: %w", err)
	}

	count, err := p.process(ctx, job, req)
	if err != nil {
		if uerr := p.jobs.UpdateStatus(ctx, job.ID, storage.JobStatusFailed, 0, err.Error()); uerr != nil {
			logger.Error("failed to mark ingestion job failed", "job_id", job.ID, "error", uerr)
		}
		job.Status = storage.JobStatusFailed
		job.ErrorMessage = err.Error()
		return job, err
	}

	if err := p.jobs.UpdateStatus(ctx, job.ID, storage.JobStatusCompleted, count, ""); err != nil {
		logger.Error("failed to mark ingestion job completed", "job_id", job.ID, "error", err)
	}
	job.Status = storage.JobStatusCompleted
	job.ChunksCreated = count

	logger.Info("ingestion completed", "tenant_id", req.TenantID, "job_id", job.ID, "chunks", count)
	return job, nil
}

func (p *Pipeline) process(ctx context.Context, job *storage.IngestionJobRecord, req Request) (int, error) {
	content := req.Content
	if req.SourceType == SourceTypeMarkdown {
		content = flattenMarkdown([]byte(content))
	}

	if len(strings.TrimSpace(content)) < minContentLength {
		return 0, fmt.Errorf("insufficient content (%d chars, minimum %d)", len(strings.TrimSpace(content)), minContentLength)
	}

	pieces := p.chunker.Chunk(content, chunker.Options{})
	if len(pieces) == 0 {
		return 0, nil
	}

	texts := make([]string, len(pieces))
	for i, piece := range pieces {
		texts[i] = piece.Content
	}

	embeddings, err := p.embedBatched(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed chunks: %w", err)
	}

	points := make([]vectorstore.Point, len(pieces))
	records := make([]*storage.ChunkRecord, len(pieces))
	for i, piece := range pieces {
		vectorID := uuid.NewString()
		points[i] = vectorstore.Point{
			ID:        vectorID,
			Vec:       embeddings[i],
			Namespace: req.SiteID,
		}
		records[i] = &storage.ChunkRecord{
			VectorID:    vectorID,
			TenantID:    req.TenantID,
			JobID:       job.ID,
			ChunkIndex:  piece.Index,
			Content:     piece.Content,
			SourceURL:   req.SourceURL,
			SourceTitle: req.SourceTitle,
			TokenCount:  piece.TokenCount,
		}
	}

	// Index first, then record. A failure between the two leaves orphan
	// points that materialization filters out and DeleteNamespace can purge.
	if err := p.vectors.Upsert(ctx, points); err != nil {
		return 0, fmt.Errorf("failed to upsert vectors: %w", err)
	}
	if err := p.chunks.InsertBatch(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to insert chunks: %w", err)
	}

	return len(pieces), nil
}

func (p *Pipeline) embedBatched(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := p.embedder.EmbedTexts(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		embeddings = append(embeddings, batch...)
	}
	return embeddings, nil
}

// DeleteJob removes one job's chunks from both stores.
func (p *Pipeline) DeleteJob(ctx context.Context, tenantID, siteID, jobID string) error {
	ids, err := p.chunks.DeleteByJob(ctx, tenantID, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete job chunks: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	if err := p.vectors.Delete(ctx, siteID, ids); err != nil {
		return fmt.Errorf("failed to delete job vectors: %w", err)
	}
	return nil
}

// PurgeTenant removes all of a tenant's content: every chunk row and the
// whole vector namespace.
func (p *Pipeline) PurgeTenant(ctx context.Context, tenantID, siteID string) error {
	if err := p.chunks.DeleteByTenant(ctx, tenantID); err != nil {
		return fmt.Errorf("failed to delete tenant chunks: %w", err)
	}
	if err := p.vectors.DeleteNamespace(ctx, siteID); err != nil {
		return fmt.Errorf("failed to delete tenant namespace: %w", err)
	}
	return nil
}
