package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/unrolled/secure"

	"github.com/msomdec/interview-room/internal/domain"
	"github.com/msomdec/interview-room/internal/gate"
	"github.com/msomdec/interview-room/internal/service"
)

const authCookieName = "auth_token"

// Datastar evaluates data-* expressions, which needs unsafe-eval.
const contentSecurityPolicy = "default-src 'self'; script-src 'self' https://cdn.jsdelivr.net 'unsafe-eval'; img-src 'self' https: data:; connect-src 'self'"

// IdentityFromContext returns the authenticated caller of the request, or
// nil for anonymous requests.
func IdentityFromContext(r *http.Request) *domain.Identity {
	return service.SessionFromContext(r.Context()).Identity
}

// RequireAuth is middleware that protects routes requiring authentication.
// A session already resolved by an outer middleware is reused; otherwise the
// auth_token cookie is validated and the user loaded. Returns 401 for
// unauthenticated requests.
func RequireAuth(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if service.SessionFromContext(r.Context()).Authenticated() {
			next.ServeHTTP(w, r)
			return
		}

		sess, err := sessionFromRequest(r, auth)
		if err != nil && !isUnauthenticated(err) {
			slog.Error("load session", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if !sess.Authenticated() {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(service.WithSession(r.Context(), sess)))
	})
}

// OptionalAuth is middleware that attempts to authenticate but does not block
// unauthenticated requests. The resolved session, anonymous or not, is
// stored in the request context. When the user store fails, the session's
// role is marked as loading.
func OptionalAuth(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r, auth)
		if err != nil && !isUnauthenticated(err) {
			slog.Warn("load session", "error", err)
		}
		next.ServeHTTP(w, r.WithContext(service.WithSession(r.Context(), sess)))
	})
}

// Gate runs matched requests through provider and passes the rest straight
// to next.
func Gate(m *gate.Matcher, provider func(http.Handler) http.Handler, next http.Handler) http.Handler {
	gated := provider(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Match(r.URL.Path) {
			gated.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SecurityHeaders sets the browser security headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	sm := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: contentSecurityPolicy,
	})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := sm.Process(w, r); err != nil {
			slog.Warn("secure headers blocked request", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionFromRequest(r *http.Request, auth *service.AuthService) (*domain.Session, error) {
	cookie, err := r.Cookie(authCookieName)
	if err != nil {
		return &domain.Session{}, domain.ErrUnauthenticated
	}
	return auth.SessionForToken(r.Context(), cookie.Value)
}

func isUnauthenticated(err error) bool {
	return errors.Is(err, domain.ErrUnauthenticated) || errors.Is(err, domain.ErrUnauthorized)
}
