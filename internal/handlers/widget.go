package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"answerdesk/internal/contextutil"
	"answerdesk/internal/storage"
)

// WidgetConfigHandler serves the per-site widget configuration the embed
// script fetches on load.
type WidgetConfigHandler struct {
	tenants storage.TenantStore
}

// NewWidgetConfigHandler creates a new WidgetConfigHandler.
func NewWidgetConfigHandler(tenants storage.TenantStore) *WidgetConfigHandler {
	return &WidgetConfigHandler{tenants: tenants}
}

// WidgetConfigResponse represents the widget configuration payload.
type WidgetConfigResponse struct {
	BrandName       string   `json:"brand_name"`
	Tone            string   `json:"tone"`
	PlaceholderText string   `json:"placeholder_text"`
	WelcomeMessage  string   `json:"welcome_message,omitempty"`
	ShowSources     bool     `json:"show_sources"`
	ShowSuggestions bool     `json:"show_suggestions"`
	QuickActions    []string `json:"quick_actions"`
}

// ServeHTTP handles GET /api/widget/{siteID}/config.
func (h *WidgetConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	siteID := chi.URLParam(r, "siteID")
	tenant, err := h.tenants.GetBySiteID(ctx, siteID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Site not found")
			return
		}
		logger.ErrorContext(ctx, "failed to resolve tenant", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// A tenant without a config row gets system defaults.
	resp := WidgetConfigResponse{
		BrandName:       tenant.Name,
		Tone:            "neutral",
		PlaceholderText: "Ask a question...",
		ShowSources:     true,
		ShowSuggestions: true,
		QuickActions:    []string{},
	}

	cfg, err := h.tenants.GetWidgetConfig(ctx, tenant.ID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		logger.ErrorContext(ctx, "failed to load widget config", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if cfg != nil {
		if cfg.BrandName != "" {
			resp.BrandName = cfg.BrandName
		}
		if cfg.Tone != "" {
			resp.Tone = cfg.Tone
		}
		if cfg.PlaceholderText != "" {
			resp.PlaceholderText = cfg.PlaceholderText
		}
		resp.WelcomeMessage = cfg.WelcomeMessage
		resp.ShowSources = cfg.ShowSources
		resp.ShowSuggestions = cfg.ShowSuggestions
		if len(cfg.QuickActions) > 0 {
			resp.QuickActions = cfg.QuickActions
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
