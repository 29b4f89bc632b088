package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_querylog_store.go -package=mocks answerdesk/internal/storage QueryLogStore

import (
	"context"
	"database/sql"
	"fmt"
)

// QueryLogStore persists the per-query audit record. Rows are written once
// and never mutated.
type QueryLogStore interface {
	// Insert writes one audit row. The ID must be set (UUID) before calling.
	Insert(ctx context.Context, rec *QueryLogRecord) error
	// CountByTenant returns the number of audit rows for a tenant.
	CountByTenant(ctx context.Context, tenantID string) (int, error)
}

// QueryLogRepo provides methods for query log operations.
// It implements the QueryLogStore interface.
type QueryLogRepo struct {
	db *sql.DB
}

// NewQueryLogRepo creates a new QueryLogRepo.
func NewQueryLogRepo(db *sql.DB) *QueryLogRepo {
	return &QueryLogRepo{db: db}
}

// Insert writes one audit row.
func (r *QueryLogRepo) Insert(ctx context.Context, rec *QueryLogRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO query_logs (id, tenant_id, question, answer, chunks_used, response_time_ms, origin_domain, user_agent, ip_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.TenantID, rec.Question, nullable(rec.Answer), rec.ChunksUsed,
		rec.ResponseTimeMs, nullable(rec.OriginDomain), nullable(rec.UserAgent), nullable(rec.IPHash),
	)
	if err != nil {
		return fmt.Errorf("failed to insert query log: %w", err)
	}
	return nil
}

// CountByTenant returns the number of audit rows for a tenant.
func (r *QueryLogRepo) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM query_logs WHERE tenant_id = ?",
		tenantID,
	).Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to count query logs: %w", err)
	}
	return count, nil
}
