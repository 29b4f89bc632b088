package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"unicode/utf8"

	"answerdesk/internal/contextutil"
	"answerdesk/internal/query"
)

const (
	minQuestionLength = 3
	maxQuestionLength = 500
)

// QueryHandler handles widget question submissions.
type QueryHandler struct {
	engine query.Engine
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(engine query.Engine) *QueryHandler {
	return &QueryHandler{engine: engine}
}

// QueryRequest represents the HTTP request payload for widget queries.
type QueryRequest struct {
	SiteID   string `json:"site_id"`
	Question string `json:"question"`
}

// ServeHTTP handles POST /api/query.
func (h *QueryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Question = strings.TrimSpace(req.Question)
	if req.SiteID == "" {
		writeError(w, http.StatusBadRequest, "site_id is required")
		return
	}
	if utf8.RuneCountInString(req.Question) < minQuestionLength {
		writeError(w, http.StatusBadRequest, "Question is too short")
		return
	}
	if utf8.RuneCountInString(req.Question) > maxQuestionLength {
		writeError(w, http.StatusBadRequest, "Question is too long")
		return
	}

	resp, err := h.engine.Submit(ctx, query.Request{
		SiteID:    req.SiteID,
		Question:  req.Question,
		Origin:    r.Header.Get("Origin"),
		UserAgent: r.Header.Get("User-Agent"),
		IPAddress: clientIP(r),
	})
	if err != nil {
		switch {
		case errors.Is(err, query.ErrInvalidTenant):
			writeError(w, http.StatusUnauthorized, "Invalid site ID")
		case errors.Is(err, query.ErrOriginNotAllowed):
			writeError(w, http.StatusForbidden, "Origin not allowed")
		case errors.Is(err, query.ErrSynthesisFailed):
			writeError(w, http.StatusBadGateway, "Answer generation failed")
		default:
			logger.ErrorContext(ctx, "query failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// connection's remote address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
