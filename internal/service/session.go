package service

import (
	"context"

	"github.com/msomdec/interview-room/internal/domain"
)

type sessionKey struct{}

// WithSession returns a context carrying the request session.
func WithSession(ctx context.Context, sess *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext returns the request session, or an anonymous one.
func SessionFromContext(ctx context.Context) *domain.Session {
	if sess, ok := ctx.Value(sessionKey{}).(*domain.Session); ok && sess != nil {
		return sess
	}
	return &domain.Session{}
}

// IdentityLookup resolves the current caller. It returns nil, nil when the
// caller is anonymous.
type IdentityLookup interface {
	CurrentUser(ctx context.Context) (*domain.Identity, error)
}

// ContextIdentity looks the caller up in the request session.
type ContextIdentity struct{}

func (ContextIdentity) CurrentUser(ctx context.Context) (*domain.Identity, error) {
	return SessionFromContext(ctx).Identity, nil
}

// ShouldShowDashboardAction reports whether the dashboard entry point is
// offered. It is hidden while the role loads and from candidates.
func ShouldShowDashboardAction(state domain.RoleState) bool {
	if state.Loading {
		return false
	}
	return state.Role != domain.RoleCandidate
}
