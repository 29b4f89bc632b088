package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
)

// newTestDB opens a migrated database in a per-test temp dir.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

// seedTenant inserts an active tenant and returns it.
func seedTenant(t *testing.T, db *sql.DB, siteID, name string) *TenantRecord {
	t.Helper()

	tenant := &TenantRecord{
		ID:       uuid.NewString(),
		SiteID:   siteID,
		Name:     name,
		IsActive: true,
	}
	if err := NewTenantRepo(db).Create(context.Background(), tenant); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return tenant
}

// seedJob inserts a processing ingestion job for a tenant.
func seedJob(t *testing.T, db *sql.DB, tenantID string) *IngestionJobRecord {
	t.Helper()

	job := &IngestionJobRecord{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		SourceType: "text",
		Status:     JobStatusProcessing,
	}
	if err := NewJobRepo(db).Insert(context.Background(), job); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	return job
}

func TestNewAndMigrate(t *testing.T) {
	db := newTestDB(t)

	// Migrate is idempotent.
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("pragma query error = %v", err)
	}
	if enabled != 1 {
		t.Error("foreign keys not enabled")
	}
}
