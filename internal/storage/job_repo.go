package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_job_store.go -package=mocks answerdesk/internal/storage JobStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// JobStore defines the interface for ingestion job tracking.
type JobStore interface {
	// Insert inserts a job. The ID must be set (UUID) before calling.
	Insert(ctx context.Context, job *IngestionJobRecord) error
	// UpdateStatus records a job's terminal or intermediate state.
	UpdateStatus(ctx context.Context, jobID, status string, chunksCreated int, errorMessage string) error
	// GetByID returns a tenant's job by ID, or ErrNotFound.
	GetByID(ctx context.Context, tenantID, jobID string) (*IngestionJobRecord, error)
}

// JobRepo provides methods for ingestion job operations.
// It implements the JobStore interface.
type JobRepo struct {
	db *sql.DB
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{db: db}
}

// Insert inserts a job. The ID must be set (UUID) before calling.
func (r *JobRepo) Insert(ctx context.Context, job *IngestionJobRecord) error {
	started := any(nil)
	if !job.StartedAt.IsZero() {
		started = job.StartedAt
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ingestion_jobs (id, tenant_id, source_type, source_url, status, chunks_created, error_message, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.TenantID, job.SourceType, nullable(job.SourceURL), job.Status,
		job.ChunksCreated, nullable(job.ErrorMessage), started,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ingestion job: %w", err)
	}
	return nil
}

// UpdateStatus records a job's terminal or intermediate state. Terminal
// states also stamp completed_at.
func (r *JobRepo) UpdateStatus(ctx context.Context, jobID, status string, chunksCreated int, errorMessage string) error {
	var completed any
	if status == JobStatusCompleted || status == JobStatusFailed {
		completed = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE ingestion_jobs SET status = ?, chunks_created = ?, error_message = ?, completed_at = ?
		WHERE id = ?`,
		status, chunksCreated, nullable(errorMessage), completed, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ingestion job: %w", err)
	}
	return nil
}

// GetByID returns a tenant's job by ID, or ErrNotFound.
func (r *JobRepo) GetByID(ctx context.Context, tenantID, jobID string) (*IngestionJobRecord, error) {
	var job IngestionJobRecord
	var sourceURL, errorMessage sql.NullString
	var startedAt, completedAt sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, source_type, source_url, status, chunks_created, error_message, started_at, completed_at, created_at
		FROM ingestion_jobs WHERE tenant_id = ? AND id = ?`,
		tenantID, jobID,
	).Scan(&job.ID, &job.TenantID, &job.SourceType, &sourceURL, &job.Status,
		&job.ChunksCreated, &errorMessage, &startedAt, &completedAt, &job.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ingestion job: %w", err)
	}

	job.SourceURL = sourceURL.String
	job.ErrorMessage = errorMessage.String
	job.StartedAt = startedAt.Time
	job.CompletedAt = completedAt.Time
	return &job, nil
}
