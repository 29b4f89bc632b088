package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"answerdesk/internal/ingest"
	"answerdesk/internal/query"
	"answerdesk/internal/storage"
	storage_mocks "answerdesk/internal/storage/mocks"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeEngine struct{}

func (fakeEngine) Submit(_ context.Context, _ query.Request) (*query.Response, error) {
	return &query.Response{Answer: "ok"}, nil
}

type fakeIngestService struct{}

func (fakeIngestService) Ingest(_ context.Context, _ ingest.Request) (*storage.IngestionJobRecord, error) {
	return &storage.IngestionJobRecord{ID: "job-1", Status: storage.JobStatusCompleted}, nil
}

func (fakeIngestService) DeleteJob(context.Context, string, string, string) error { return nil }

func (fakeIngestService) PurgeTenant(context.Context, string, string) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctrl := gomock.NewController(t)
	tenants := storage_mocks.NewMockTenantStore(ctrl)
	tenants.EXPECT().GetBySiteID(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound).AnyTimes()
	queryLogs := storage_mocks.NewMockQueryLogStore(ctrl)

	return NewRouter(&Deps{
		Engine:      fakeEngine{},
		Tenants:     tenants,
		QueryLogs:   queryLogs,
		Ingest:      fakeIngestService{},
		DB:          db,
		AdminAPIKey: "router-test-key",
	})
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "query", method: http.MethodPost, path: "/api/query", body: `{"site_id":"s","question":"what are your hours"}`, wantStatus: http.StatusOK},
		{name: "widget config unknown site", method: http.MethodGet, path: "/api/widget/nope/config", wantStatus: http.StatusNotFound},
		{name: "health", method: http.MethodGet, path: "/healthz", wantStatus: http.StatusOK},
		{name: "unknown path", method: http.MethodGet, path: "/api/nope", wantStatus: http.StatusNotFound},
		{name: "wrong method on query", method: http.MethodGet, path: "/api/query", wantStatus: http.StatusMethodNotAllowed},
		{name: "admin without key", method: http.MethodPost, path: "/admin/reindex/site-abc", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s = %d, want %d: %s", tt.method, tt.path, rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestRouter_AdminRoutesRequireKey(t *testing.T) {
	router := newTestRouter(t)

	// With the right key the request gets past auth and hits tenant
	// resolution, which 404s for the unknown site.
	req := httptest.NewRequest(http.MethodGet, "/admin/stats/nope", nil)
	req.Header.Set("X-Admin-Key", "router-test-key")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 after successful auth", rec.Code)
	}
}

func TestRouter_CORSApplied(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/query", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
