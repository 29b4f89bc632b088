package query

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"answerdesk/internal/chunker"
	"answerdesk/internal/contextutil"
	"answerdesk/internal/storage"
	"answerdesk/internal/vectorstore"
)

// Defaults applied when a tenant has no widget config row.
const (
	defaultTone            = "neutral"
	defaultFallbackMessage = "I don't have that information yet. Please contact us directly for help."
	defaultMaxAnswerTokens = 500
)

// Engine answers end-user questions against a tenant's ingested content.
type Engine interface {
	Submit(ctx context.Context, req Request) (*Response, error)
}

// Options tune the retrieval and synthesis pipeline.
type Options struct {
	// TopK is the number of results requested from each retrieval branch and
	// the cap on the fused list.
	TopK int
	// RRFK is the reciprocal rank fusion constant.
	RRFK int
	// ContextTokenBudget caps the assembled prompt context.
	ContextTokenBudget int
	// RetrievalTimeout bounds each retrieval branch independently.
	RetrievalTimeout time.Duration
	// AnswerTemperature is used for the primary synthesis call.
	AnswerTemperature float32
	// SuggestionTemperature is used for the follow-up suggestion call.
	SuggestionTemperature float32
	// SuggestionMaxTokens bounds the suggestion call output.
	SuggestionMaxTokens int
}

// DefaultOptions returns the production pipeline settings.
func DefaultOptions() Options {
	return Options{
		TopK:                  5,
		RRFK:                  60,
		ContextTokenBudget:    4000,
		RetrievalTimeout:      3 * time.Second,
		AnswerTemperature:     0.3,
		SuggestionTemperature: 0.7,
		SuggestionMaxTokens:   100,
	}
}

type engine struct {
	tenants   storage.TenantStore
	chunks    storage.ChunkStore
	queryLogs storage.QueryLogStore
	vectors   vectorstore.VectorStore
	embedder  Embedder
	generator Generator
	counter   chunker.TokenCounter
	opts      Options
}

// NewEngine wires the query pipeline. Zero-valued Options fields fall back
// to DefaultOptions.
func NewEngine(
	tenants storage.TenantStore,
	chunks storage.ChunkStore,
	queryLogs storage.QueryLogStore,
	vectors vectorstore.VectorStore,
	embedder Embedder,
	generator Generator,
	counter chunker.TokenCounter,
	opts Options,
) Engine {
	def := DefaultOptions()
	if opts.TopK <= 0 {
		opts.TopK = def.TopK
	}
	if opts.RRFK <= 0 {
		opts.RRFK = def.RRFK
	}
	if opts.ContextTokenBudget <= 0 {
		opts.ContextTokenBudget = def.ContextTokenBudget
	}
	if opts.RetrievalTimeout <= 0 {
		opts.RetrievalTimeout = def.RetrievalTimeout
	}
	if opts.AnswerTemperature == 0 {
		opts.AnswerTemperature = def.AnswerTemperature
	}
	if opts.SuggestionTemperature == 0 {
		opts.SuggestionTemperature = def.SuggestionTemperature
	}
	if opts.SuggestionMaxTokens <= 0 {
		opts.SuggestionMaxTokens = def.SuggestionMaxTokens
	}

	return &engine{
		tenants:   tenants,
		chunks:    chunks,
		queryLogs: queryLogs,
		vectors:   vectors,
		embedder:  embedder,
		generator: generator,
		counter:   counter,
		opts:      opts,
	}
}

// widgetSettings is the effective per-tenant config after defaults.
type widgetSettings struct {
	BrandName       string
	Tone            string
	WelcomeMessage  string
	FallbackMessage string
	MaxAnswerTokens int
	ShowSources     bool
	ShowSuggestions bool
	QuickActions    []string
}

// Submit runs the full pipeline for one question: tenant resolution, origin
// check, dual retrieval, fusion, context assembly, synthesis and auditing.
func (e *engine) Submit(ctx context.Context, req Request) (*Response, error) {
	logger := contextutil.LoggerFromContext(ctx)
	start := time.Now()

	tenant, err := e.tenants.GetBySiteID(ctx, req.SiteID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidTenant
		}
		return nil, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	settings, err := e.settingsFor(ctx, tenant)
	if err != nil {
		return nil, err
	}

	// An absent Origin header skips the check; a present one must normalize
	// and match. Malformed origins fail closed.
	originDomain := ""
	if req.Origin != "" {
		domain, ok := normalizeOrigin(req.Origin)
		if !ok {
			return nil, ErrOriginNotAllowed
		}
		allowed, err := e.tenants.ListOriginDomains(ctx, tenant.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list allowed origins: %w", err)
		}
		if !originAllowed(domain, allowed) {
			return nil, ErrOriginNotAllowed
		}
		originDomain = domain
	}

	if isGreeting(req.Question) {
		resp := e.greetingResponse(settings)
		e.audit(ctx, tenant.ID, req, resp.Answer, 0, originDomain, start)
		return resp, nil
	}

	vectorIDs, keywordIDs := e.retrieve(ctx, tenant, req.Question)
	fused := fuseRanked(vectorIDs, keywordIDs, e.opts.RRFK, e.opts.TopK)

	chunks := e.materialize(ctx, tenant.ID, fused)
	contextText, included := buildContext(chunks, e.opts.ContextTokenBudget, e.counter)

	if contextText == "" {
		// Nothing retrieved: the fallback answer is canned, no model call.
		resp := &Response{
			Answer:      settings.FallbackMessage,
			Suggestions: []string{},
			Sources:     []Source{},
		}
		e.audit(ctx, tenant.ID, req, resp.Answer, 0, originDomain, start)
		return resp, nil
	}

	system := systemPrompt(settings.BrandName, settings.Tone, settings.FallbackMessage, contextText)
	answer, err := e.generator.Generate(ctx, system, req.Question, settings.MaxAnswerTokens, e.opts.AnswerTemperature)
	if err != nil {
		logger.Error("answer synthesis failed", "tenant_id", tenant.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSynthesisFailed, err)
	}

	resp := &Response{
		Answer:      answer,
		Suggestions: []string{},
		Sources:     []Source{},
	}
	if settings.ShowSuggestions {
		resp.Suggestions = e.suggestions(ctx, settings.BrandName, req.Question, answer)
	}
	if settings.ShowSources {
		resp.Sources = collectSources(included)
	}

	e.audit(ctx, tenant.ID, req, answer, len(included), originDomain, start)
	return resp, nil
}

// settingsFor loads the tenant's widget config and fills system defaults.
func (e *engine) settingsFor(ctx context.Context, tenant *storage.TenantRecord) (widgetSettings, error) {
	settings := widgetSettings{
		BrandName:       tenant.Name,
		Tone:            defaultTone,
		FallbackMessage: defaultFallbackMessage,
		MaxAnswerTokens: defaultMaxAnswerTokens,
		ShowSources:     true,
		ShowSuggestions: true,
	}

	cfg, err := e.tenants.GetWidgetConfig(ctx, tenant.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("failed to load widget config: %w", err)
	}

	if cfg.BrandName != "" {
		settings.BrandName = cfg.BrandName
	}
	if cfg.Tone != "" {
		settings.Tone = cfg.Tone
	}
	if cfg.FallbackMessage != "" {
		settings.FallbackMessage = cfg.FallbackMessage
	}
	if cfg.MaxResponseLength > 0 {
		settings.MaxAnswerTokens = cfg.MaxResponseLength
	}
	settings.WelcomeMessage = cfg.WelcomeMessage
	settings.ShowSources = cfg.ShowSources
	settings.ShowSuggestions = cfg.ShowSuggestions
	settings.QuickActions = cfg.QuickActions
	return settings, nil
}

// greetingResponse builds the canned greeting reply. Quick actions double as
// suggestions when the tenant shows them.
func (e *engine) greetingResponse(settings widgetSettings) *Response {
	answer := settings.WelcomeMessage
	if answer == "" {
		answer = fmt.Sprintf("Hello! I'm the %s assistant. How can I help you today?", settings.BrandName)
	}

	// Quick actions are tenant-authored, so unlike model suggestions they
	// pass through uncapped.
	suggestions := []string{}
	if settings.ShowSuggestions && len(settings.QuickActions) > 0 {
		suggestions = settings.QuickActions
	}

	return &Response{
		Answer:      answer,
		Suggestions: suggestions,
		Sources:     []Source{},
	}
}

type branchResult struct {
	ids []string
	err error
}

// retrieve runs the vector and keyword branches concurrently, each under its
// own timeout. A failed branch degrades to an empty list; only both branches
// failing leaves the query with nothing, which downstream turns into the
// fallback answer.
func (e *engine) retrieve(ctx context.Context, tenant *storage.TenantRecord, question string) ([]string, []string) {
	logger := contextutil.LoggerFromContext(ctx)

	var (
		wg      sync.WaitGroup
		vector  branchResult
		keyword branchResult
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		branchCtx, cancel := context.WithTimeout(ctx, e.opts.RetrievalTimeout)
		defer cancel()
		vector = e.vectorBranch(branchCtx, tenant.SiteID, question)
	}()
	go func() {
		defer wg.Done()
		branchCtx, cancel := context.WithTimeout(ctx, e.opts.RetrievalTimeout)
		defer cancel()
		keyword.ids, keyword.err = e.chunks.SearchKeyword(branchCtx, tenant.ID, question, e.opts.TopK)
	}()
	wg.Wait()

	if vector.err != nil {
		logger.Warn("vector retrieval degraded", "tenant_id", tenant.ID, "error", vector.err)
		vector.ids = nil
	}
	if keyword.err != nil {
		logger.Warn("keyword retrieval degraded", "tenant_id", tenant.ID, "error", keyword.err)
		keyword.ids = nil
	}

	return vector.ids, keyword.ids
}

func (e *engine) vectorBranch(ctx context.Context, siteID, question string) branchResult {
	vec, err := e.embedder.EmbedText(ctx, question)
	if err != nil {
		return branchResult{err: fmt.Errorf("failed to embed question: %w", err)}
	}

	matches, err := e.vectors.Query(ctx, siteID, vec, e.opts.TopK)
	if err != nil {
		return branchResult{err: fmt.Errorf("vector query failed: %w", err)}
	}

	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	return branchResult{ids: ids}
}

// materialize loads chunk content for fused IDs, preserving fusion order.
// IDs the store no longer has (or that belong to another tenant) are dropped
// and logged. A store failure degrades to no chunks rather than failing the
// query.
func (e *engine) materialize(ctx context.Context, tenantID string, ids []string) []storage.ChunkRecord {
	if len(ids) == 0 {
		return nil
	}
	logger := contextutil.LoggerFromContext(ctx)

	records, err := e.chunks.GetByVectorIDs(ctx, tenantID, ids)
	if err != nil {
		logger.Warn("chunk materialization failed", "tenant_id", tenantID, "error", err)
		return nil
	}

	byID := make(map[string]*storage.ChunkRecord, len(records))
	for _, rec := range records {
		byID[rec.VectorID] = rec
	}

	ordered := make([]storage.ChunkRecord, 0, len(ids))
	for _, id := range ids {
		rec, ok := byID[id]
		if !ok {
			logger.Warn("dropping stale vector ID", "tenant_id", tenantID, "vector_id", id)
			continue
		}
		ordered = append(ordered, *rec)
	}
	return ordered
}

// suggestions runs the follow-up call. Any failure degrades to no
// suggestions; the answer is already in hand.
func (e *engine) suggestions(ctx context.Context, brandName, question, answer string) []string {
	system, user := suggestionPrompts(brandName, question, answer)
	text, err := e.generator.Generate(ctx, system, user, e.opts.SuggestionMaxTokens, e.opts.SuggestionTemperature)
	if err != nil {
		contextutil.LoggerFromContext(ctx).Warn("suggestion generation failed", "error", err)
		return []string{}
	}
	parsed := parseSuggestions(text)
	if parsed == nil {
		return []string{}
	}
	return parsed
}

// collectSources dedupes included chunks by source URL, keeping rank order.
// Chunks without a URL carry no citable source and are skipped.
func collectSources(chunks []storage.ChunkRecord) []Source {
	seen := make(map[string]struct{}, len(chunks))
	sources := []Source{}
	for _, c := range chunks {
		if c.SourceURL == "" {
			continue
		}
		if _, dup := seen[c.SourceURL]; dup {
			continue
		}
		seen[c.SourceURL] = struct{}{}
		title := c.SourceTitle
		if title == "" {
			title = "Source"
		}
		sources = append(sources, Source{Title: title, URL: c.SourceURL})
	}
	return sources
}

// audit writes the query log row. Failures are logged and swallowed; an
// audit miss never fails a served answer.
func (e *engine) audit(ctx context.Context, tenantID string, req Request, answer string, chunksUsed int, originDomain string, start time.Time) {
	rec := &storage.QueryLogRecord{
		ID:             uuid.NewString(),
		TenantID:       tenantID,
		Question:       req.Question,
		Answer:         answer,
		ChunksUsed:     chunksUsed,
		ResponseTimeMs: int(time.Since(start).Milliseconds()),
		OriginDomain:   originDomain,
		UserAgent:      req.UserAgent,
		IPHash:         hashIP(req.IPAddress),
	}
	if err := e.queryLogs.Insert(ctx, rec); err != nil {
		contextutil.LoggerFromContext(ctx).Error("query audit failed", "tenant_id", tenantID, "error", err)
	}
}

// hashIP returns the hex SHA-256 of the IP, or empty for no IP. Only the
// hash is ever stored.
func hashIP(ip string) string {
	if ip == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])
}
