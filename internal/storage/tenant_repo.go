package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_tenant_store.go -package=mocks answerdesk/internal/storage TenantStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// TenantStore defines tenant-rooted read/write operations: the tenant row
// itself plus its allowed origins and widget config.
type TenantStore interface {
	// Create inserts a tenant. The ID must be set (UUID) before calling.
	Create(ctx context.Context, tenant *TenantRecord) error
	// GetBySiteID returns the active tenant with the given external site
	// identifier. Inactive and unknown tenants both return ErrNotFound.
	GetBySiteID(ctx context.Context, siteID string) (*TenantRecord, error)
	// AddOrigin inserts an allowed origin for a tenant.
	AddOrigin(ctx context.Context, origin *AllowedOriginRecord) error
	// ListOriginDomains returns the active allowed-origin domains for a tenant.
	ListOriginDomains(ctx context.Context, tenantID string) ([]string, error)
	// GetWidgetConfig returns the tenant's widget config, or ErrNotFound
	// when none exists.
	GetWidgetConfig(ctx context.Context, tenantID string) (*WidgetConfigRecord, error)
	// UpsertWidgetConfig inserts or replaces the tenant's widget config.
	UpsertWidgetConfig(ctx context.Context, cfg *WidgetConfigRecord) error
}

// TenantRepo provides methods for tenant operations.
// It implements the TenantStore interface.
type TenantRepo struct {
	db *sql.DB
}

// NewTenantRepo creates a new TenantRepo.
func NewTenantRepo(db *sql.DB) *TenantRepo {
	return &TenantRepo{db: db}
}

// Create inserts a tenant. The ID must be set (UUID) before calling.
func (r *TenantRepo) Create(ctx context.Context, tenant *TenantRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tenants (id, site_id, name, is_active) VALUES (?, ?, ?, ?)",
		tenant.ID, tenant.SiteID, tenant.Name, tenant.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tenant: %w", err)
	}
	return nil
}

// GetBySiteID returns the active tenant for a site identifier.
func (r *TenantRepo) GetBySiteID(ctx context.Context, siteID string) (*TenantRecord, error) {
	var tenant TenantRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, site_id, name, is_active, created_at FROM tenants WHERE site_id = ? AND is_active = 1",
		siteID,
	).Scan(&tenant.ID, &tenant.SiteID, &tenant.Name, &tenant.IsActive, &tenant.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query tenant: %w", err)
	}

	return &tenant, nil
}

// AddOrigin inserts an allowed origin for a tenant.
func (r *TenantRepo) AddOrigin(ctx context.Context, origin *AllowedOriginRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO allowed_origins (id, tenant_id, domain, is_active) VALUES (?, ?, ?, ?)",
		origin.ID, origin.TenantID, origin.Domain, origin.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to insert allowed origin: %w", err)
	}
	return nil
}

// ListOriginDomains returns the active allowed-origin domains for a tenant.
// Returns an empty slice if no origins exist (not an error).
func (r *TenantRepo) ListOriginDomains(ctx context.Context, tenantID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT domain FROM allowed_origins WHERE tenant_id = ? AND is_active = 1",
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query allowed origins: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var domains []string
	for rows.Next() {
		var domain string
		if err := rows.Scan(&domain); err != nil {
			return nil, fmt.Errorf("failed to scan origin domain: %w", err)
		}
		domains = append(domains, domain)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return domains, nil
}

// GetWidgetConfig returns the tenant's widget config, or ErrNotFound when
// none exists.
func (r *TenantRepo) GetWidgetConfig(ctx context.Context, tenantID string) (*WidgetConfigRecord, error) {
	var cfg WidgetConfigRecord
	var welcome, quickActions sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, brand_name, tone, placeholder_text, welcome_message,
			fallback_message, max_response_length, show_sources, show_suggestions, quick_actions
		FROM widget_configs WHERE tenant_id = ?`,
		tenantID,
	).Scan(&cfg.ID, &cfg.TenantID, &cfg.BrandName, &cfg.Tone, &cfg.PlaceholderText, &welcome,
		&cfg.FallbackMessage, &cfg.MaxResponseLength, &cfg.ShowSources, &cfg.ShowSuggestions, &quickActions)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query widget config: %w", err)
	}

	cfg.WelcomeMessage = welcome.String
	if quickActions.Valid && quickActions.String != "" {
		// A corrupt quick_actions payload degrades to no quick actions.
		_ = json.Unmarshal([]byte(quickActions.String), &cfg.QuickActions)
	}

	return &cfg, nil
}

// UpsertWidgetConfig inserts or replaces the tenant's widget config.
func (r *TenantRepo) UpsertWidgetConfig(ctx context.Context, cfg *WidgetConfigRecord) error {
	var quickActions any
	if len(cfg.QuickActions) > 0 {
		encoded, err := json.Marshal(cfg.QuickActions)
		if err != nil {
			return fmt.Errorf("failed to encode quick actions: %w", err)
		}
		quickActions = string(encoded)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO widget_configs
			(id, tenant_id, brand_name, tone, placeholder_text, welcome_message,
			 fallback_message, max_response_length, show_sources, show_suggestions, quick_actions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(tenant_id) DO UPDATE SET
			brand_name = excluded.brand_name,
			tone = excluded.tone,
			placeholder_text = excluded.placeholder_text,
			welcome_message = excluded.welcome_message,
			fallback_message = excluded.fallback_message,
			max_response_length = excluded.max_response_length,
			show_sources = excluded.show_sources,
			show_suggestions = excluded.show_suggestions,
			quick_actions = excluded.quick_actions`,
		cfg.ID, cfg.TenantID, cfg.BrandName, cfg.Tone, cfg.PlaceholderText, nullable(cfg.WelcomeMessage),
		cfg.FallbackMessage, cfg.MaxResponseLength, cfg.ShowSources, cfg.ShowSuggestions, quickActions,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert widget config: %w", err)
	}
	return nil
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
