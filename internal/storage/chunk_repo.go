package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chunk_store.go -package=mocks answerdesk/internal/storage ChunkStore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// ChunkStore defines the interface for chunk storage operations.
//
// Every read filters by tenant ID. GetByVectorIDs applies the filter even
// though callers hand it IDs that were already retrieved under a tenant
// scope: the vector index returns bare IDs, so this is the second isolation
// barrier and the only place tenant scoping is re-applied.
type ChunkStore interface {
	// InsertBatch inserts chunks in a single transaction.
	// Each chunk's VectorID must be set (UUID) before calling.
	InsertBatch(ctx context.Context, chunks []*ChunkRecord) error
	// GetByVectorIDs returns the tenant's chunks matching the given vector
	// IDs, in no particular order. IDs with no matching row are omitted.
	GetByVectorIDs(ctx context.Context, tenantID string, vectorIDs []string) ([]*ChunkRecord, error)
	// SearchKeyword runs a tenant-scoped lexical search over chunk content
	// and returns up to k vector IDs ordered by descending relevance.
	SearchKeyword(ctx context.Context, tenantID, query string, k int) ([]string, error)
	// DeleteByJob removes a job's chunks and returns their vector IDs so the
	// caller can delete the corresponding index points.
	DeleteByJob(ctx context.Context, tenantID, jobID string) ([]string, error)
	// DeleteByTenant removes all of a tenant's chunks.
	DeleteByTenant(ctx context.Context, tenantID string) error
}

// ChunkRepo provides methods for chunk operations.
// It implements the ChunkStore interface.
type ChunkRepo struct {
	db *sql.DB
}

// NewChunkRepo creates a new ChunkRepo.
func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

// InsertBatch inserts chunks in a single transaction.
func (r *ChunkRepo) InsertBatch(ctx context.Context, chunks []*ChunkRecord) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chunks (vector_id, tenant_id, job_id, chunk_index, content, source_url, source_title, token_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare chunk insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, chunk := range chunks {
		_, err := stmt.ExecContext(ctx,
			chunk.VectorID, chunk.TenantID, chunk.JobID, chunk.ChunkIndex,
			chunk.Content, nullable(chunk.SourceURL), nullable(chunk.SourceTitle), chunk.TokenCount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", chunk.VectorID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chunk batch: %w", err)
	}
	return nil
}

// GetByVectorIDs returns the tenant's chunks matching the given vector IDs.
func (r *ChunkRepo) GetByVectorIDs(ctx context.Context, tenantID string, vectorIDs []string) ([]*ChunkRecord, error) {
	if len(vectorIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(vectorIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(vectorIDs)+1)
	args = append(args, tenantID)
	for _, id := range vectorIDs {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT vector_id, tenant_id, job_id, chunk_index, content, source_url, source_title, token_count
		FROM chunks WHERE tenant_id = ? AND vector_id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var chunks []*ChunkRecord
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return chunks, nil
}

// DeleteByJob removes a job's chunks and returns their vector IDs.
func (r *ChunkRepo) DeleteByJob(ctx context.Context, tenantID, jobID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT vector_id FROM chunks WHERE tenant_id = ? AND job_id = ?",
		tenantID, jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query job chunk IDs: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan vector ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	_ = rows.Close()

	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM chunks WHERE tenant_id = ? AND job_id = ?",
		tenantID, jobID,
	); err != nil {
		return nil, fmt.Errorf("failed to delete job chunks: %w", err)
	}

	return ids, nil
}

// DeleteByTenant removes all of a tenant's chunks.
func (r *ChunkRepo) DeleteByTenant(ctx context.Context, tenantID string) error {
	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM chunks WHERE tenant_id = ?",
		tenantID,
	); err != nil {
		return fmt.Errorf("failed to delete tenant chunks: %w", err)
	}
	return nil
}

func scanChunk(rows *sql.Rows) (*ChunkRecord, error) {
	var chunk ChunkRecord
	var sourceURL, sourceTitle sql.NullString
	if err := rows.Scan(
		&chunk.VectorID, &chunk.TenantID, &chunk.JobID, &chunk.ChunkIndex,
		&chunk.Content, &sourceURL, &sourceTitle, &chunk.TokenCount,
	); err != nil {
		return nil, fmt.Errorf("failed to scan chunk: %w", err)
	}
	chunk.SourceURL = sourceURL.String
	chunk.SourceTitle = sourceTitle.String
	return &chunk, nil
}
