package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"answerdesk/internal/contextutil"
	"answerdesk/internal/ingest"
	"answerdesk/internal/storage"
)

// IngestService is the content lifecycle surface the admin API drives.
type IngestService interface {
	Ingest(ctx context.Context, req ingest.Request) (*storage.IngestionJobRecord, error)
	DeleteJob(ctx context.Context, tenantID, siteID, jobID string) error
	PurgeTenant(ctx context.Context, tenantID, siteID string) error
}

// AdminHandler serves the operator API: content ingestion, job deletion,
// tenant reindexing and usage stats. Callers authenticate via the admin key
// middleware; nothing here is reachable from the widget.
type AdminHandler struct {
	tenants   storage.TenantStore
	queryLogs storage.QueryLogStore
	ingest    IngestService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(tenants storage.TenantStore, queryLogs storage.QueryLogStore, ingest IngestService) *AdminHandler {
	return &AdminHandler{tenants: tenants, queryLogs: queryLogs, ingest: ingest}
}

// IngestContentRequest represents the admin ingestion payload.
type IngestContentRequest struct {
	SiteID      string `json:"site_id"`
	SourceType  string `json:"source_type"`
	Content     string `json:"content"`
	SourceURL   string `json:"source_url"`
	SourceTitle string `json:"source_title"`
}

// IngestJobResponse reports the outcome of one ingestion job.
type IngestJobResponse struct {
	JobID         string `json:"job_id"`
	Status        string `json:"status"`
	ChunksCreated int    `json:"chunks_created"`
}

// TenantStatsResponse carries per-tenant usage counters.
type TenantStatsResponse struct {
	SiteID       string `json:"site_id"`
	TotalQueries int    `json:"total_queries"`
}

// IngestContent handles POST /admin/ingest/text.
func (h *AdminHandler) IngestContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req IngestContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SiteID == "" {
		writeError(w, http.StatusBadRequest, "site_id is required")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	if req.SourceType == "" {
		req.SourceType = ingest.SourceTypeText
	}

	tenant, ok := h.resolveTenant(w, r, req.SiteID)
	if !ok {
		return
	}

	job, err := h.ingest.Ingest(ctx, ingest.Request{
		TenantID:    tenant.ID,
		SiteID:      tenant.SiteID,
		SourceType:  req.SourceType,
		Content:     req.Content,
		SourceURL:   req.SourceURL,
		SourceTitle: req.SourceTitle,
	})
	if err != nil {
		logger.ErrorContext(ctx, "ingestion failed", "tenant_id", tenant.ID, "error", err)
		resp := IngestJobResponse{Status: storage.JobStatusFailed}
		if job != nil {
			resp.JobID = job.ID
		}
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	writeJSON(w, http.StatusOK, IngestJobResponse{
		JobID:         job.ID,
		Status:        job.Status,
		ChunksCreated: job.ChunksCreated,
	})
}

// DeleteJob handles DELETE /admin/jobs/{siteID}/{jobID}.
func (h *AdminHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	tenant, ok := h.resolveTenant(w, r, chi.URLParam(r, "siteID"))
	if !ok {
		return
	}

	jobID := chi.URLParam(r, "jobID")
	if err := h.ingest.DeleteJob(ctx, tenant.ID, tenant.SiteID, jobID); err != nil {
		logger.ErrorContext(ctx, "job deletion failed", "tenant_id", tenant.ID, "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "Job deletion failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reindex handles POST /admin/reindex/{siteID}: drop all of a tenant's
// content so it can be re-ingested from scratch.
func (h *AdminHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	tenant, ok := h.resolveTenant(w, r, chi.URLParam(r, "siteID"))
	if !ok {
		return
	}

	if err := h.ingest.PurgeTenant(ctx, tenant.ID, tenant.SiteID); err != nil {
		logger.ErrorContext(ctx, "tenant purge failed", "tenant_id", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Reindex failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TenantStats handles GET /admin/stats/{siteID}.
func (h *AdminHandler) TenantStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	tenant, ok := h.resolveTenant(w, r, chi.URLParam(r, "siteID"))
	if !ok {
		return
	}

	count, err := h.queryLogs.CountByTenant(ctx, tenant.ID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to count queries", "tenant_id", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, TenantStatsResponse{
		SiteID:       tenant.SiteID,
		TotalQueries: count,
	})
}

func (h *AdminHandler) resolveTenant(w http.ResponseWriter, r *http.Request, siteID string) (*storage.TenantRecord, bool) {
	tenant, err := h.tenants.GetBySiteID(r.Context(), siteID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Site not found")
			return nil, false
		}
		contextutil.LoggerFromContext(r.Context()).ErrorContext(r.Context(), "failed to resolve tenant", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return tenant, true
}
