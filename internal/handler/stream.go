package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/msomdec/interview-room/internal/domain"
	"github.com/msomdec/interview-room/internal/metrics"
	"github.com/msomdec/interview-room/internal/service"
)

// StreamHandler hands out video service tokens.
type StreamHandler struct {
	tokens  *service.StreamTokenIssuer
	limiter *service.TokenBucket
	metrics metrics.Recorder
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler(tokens *service.StreamTokenIssuer, limiter *service.TokenBucket, rec metrics.Recorder) *StreamHandler {
	return &StreamHandler{tokens: tokens, limiter: limiter, metrics: rec}
}

// HandleToken mints a token for the caller.
// POST /api/stream/token
// Response: {"token":"...","apiKey":"...","userId":"...","expiresAt":"..."} or 401
func (h *StreamHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	if identity := IdentityFromContext(r); identity != nil && !h.limiter.Allow(identity.ID) {
		h.metrics.RecordTokenFailure("rate_limited")
		writeServiceError(w, domain.ErrRateLimited, "issue stream token")
		return
	}

	tok, err := h.tokens.IssueToken(r.Context())
	if err != nil {
		h.metrics.RecordTokenFailure(tokenFailureReason(err))
		writeServiceError(w, err, "issue stream token")
		return
	}
	h.metrics.RecordTokenIssued()

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, map[string]string{
		"token":     tok.Token,
		"apiKey":    h.tokens.APIKey(),
		"userId":    tok.UserID,
		"expiresAt": tok.ExpiresAt.Format(time.RFC3339),
	})
}

func tokenFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domain.ErrMissingConfig):
		return "missing_config"
	default:
		return "error"
	}
}
