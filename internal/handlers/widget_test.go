package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"answerdesk/internal/storage"
	storage_mocks "answerdesk/internal/storage/mocks"
)

func widgetRouter(tenants storage.TenantStore) http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/api/widget/{siteID}/config", NewWidgetConfigHandler(tenants))
	return r
}

func getWidgetConfig(t *testing.T, handler http.Handler, siteID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/widget/"+siteID+"/config", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestWidgetConfigHandler_UnknownSite(t *testing.T) {
	ctrl := gomock.NewController(t)
	tenants := storage_mocks.NewMockTenantStore(ctrl)
	tenants.EXPECT().GetBySiteID(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)

	rec := getWidgetConfig(t, widgetRouter(tenants), "missing")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestWidgetConfigHandler_DefaultsWithoutConfigRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	tenants := storage_mocks.NewMockTenantStore(ctrl)
	tenants.EXPECT().GetBySiteID(gomock.Any(), "site-abc").Return(&storage.TenantRecord{
		ID: "tenant-1", SiteID: "site-abc", Name: "Acme", IsActive: true,
	}, nil)
	tenants.EXPECT().GetWidgetConfig(gomock.Any(), "tenant-1").Return(nil, storage.ErrNotFound)

	rec := getWidgetConfig(t, widgetRouter(tenants), "site-abc")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp WidgetConfigResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.BrandName != "Acme" {
		t.Errorf("BrandName = %q, want tenant name", resp.BrandName)
	}
	if resp.Tone != "neutral" || resp.PlaceholderText != "Ask a question..." {
		t.Errorf("defaults = %+v", resp)
	}
	if !resp.ShowSources || !resp.ShowSuggestions {
		t.Errorf("visibility defaults = %+v", resp)
	}
	if len(resp.QuickActions) != 0 {
		t.Errorf("QuickActions = %v, want empty", resp.QuickActions)
	}
}

func TestWidgetConfigHandler_ConfiguredTenant(t *testing.T) {
	ctrl := gomock.NewController(t)
	tenants := storage_mocks.NewMockTenantStore(ctrl)
	tenants.EXPECT().GetBySiteID(gomock.Any(), "site-abc").Return(&storage.TenantRecord{
		ID: "tenant-1", SiteID: "site-abc", Name: "Acme", IsActive: true,
	}, nil)
	tenants.EXPECT().GetWidgetConfig(gomock.Any(), "tenant-1").Return(&storage.WidgetConfigRecord{
		TenantID:        "tenant-1",
		BrandName:       "Acme Support",
		Tone:            "friendly",
		PlaceholderText: "How can we help?",
		WelcomeMessage:  "Hi there!",
		ShowSources:     false,
		ShowSuggestions: true,
		QuickActions:    []string{"Track order", "Returns"},
	}, nil)

	rec := getWidgetConfig(t, widgetRouter(tenants), "site-abc")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp WidgetConfigResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.BrandName != "Acme Support" || resp.Tone != "friendly" {
		t.Errorf("branding = %+v", resp)
	}
	if resp.WelcomeMessage != "Hi there!" {
		t.Errorf("WelcomeMessage = %q", resp.WelcomeMessage)
	}
	if resp.ShowSources {
		t.Error("ShowSources = true, want false")
	}
	if want := []string{"Track order", "Returns"}; !reflect.DeepEqual(resp.QuickActions, want) {
		t.Errorf("QuickActions = %v, want %v", resp.QuickActions, want)
	}
}
