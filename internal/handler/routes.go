package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/msomdec/interview-room/internal/metrics"
	"github.com/msomdec/interview-room/internal/service"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	Auth         *service.AuthService
	Interviews   *service.InterviewService
	Comments     *service.CommentService
	Directory    *service.DirectoryService
	Tokens       *service.StreamTokenIssuer
	TokenLimiter *service.TokenBucket
	Metrics      metrics.Recorder
	DB           Pinger
	CookieSecure bool
}

// RegisterRoutes sets up all HTTP routes on the given mux. Callers put the
// request gate in front of the mux, so every route sees a session.
func RegisterRoutes(mux *http.ServeMux, svc Services) {
	if svc.Metrics == nil {
		svc.Metrics = metrics.Nop{}
	}

	authHandler := NewAuthHandler(svc.Auth, svc.CookieSecure)
	streamHandler := NewStreamHandler(svc.Tokens, svc.TokenLimiter, svc.Metrics)
	interviewHandler := NewInterviewHandler(svc.Interviews, svc.Directory)
	commentHandler := NewCommentHandler(svc.Comments, svc.Directory, svc.Interviews, svc.Metrics)
	dashboardHandler := NewDashboardHandler(svc.Interviews, svc.Directory)
	healthHandler := NewHealthHandler(svc.DB)

	protected := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(svc.Auth, h)
	}
	credentialLimit := httprate.LimitByIP(10, time.Minute)

	mux.HandleFunc("GET /healthz", healthHandler.HandleHealthz)

	// Accounts.
	mux.Handle("POST /api/auth/register", credentialLimit(http.HandlerFunc(authHandler.HandleRegister)))
	mux.Handle("POST /api/auth/login", credentialLimit(http.HandlerFunc(authHandler.HandleLogin)))
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.HandleFunc("GET /api/auth/me", authHandler.HandleMe)

	// The issuer itself rejects anonymous callers.
	mux.HandleFunc("POST /api/stream/token", streamHandler.HandleToken)

	mux.Handle("GET /api/users", protected(interviewHandler.HandleUsers))
	mux.Handle("GET /api/interviews", protected(interviewHandler.HandleList))
	mux.Handle("POST /api/interviews", protected(interviewHandler.HandleCreate))
	mux.Handle("GET /api/interviews/{id}", protected(interviewHandler.HandleGet))
	mux.Handle("GET /api/interviews/{id}/comments", protected(commentHandler.HandleList))
	mux.Handle("POST /api/interviews/{id}/comments", protected(commentHandler.HandleCreate))

	// Pages and datastar fragments.
	mux.Handle("GET /interviews/{id}", protected(interviewHandler.HandlePage))
	mux.Handle("GET /interviews/{id}/comments/dialog", protected(commentHandler.HandleOpenDialog))
	mux.Handle("POST /interviews/{id}/comments/dialog", protected(commentHandler.HandleSubmitDialog))
	mux.Handle("GET /interviews/{id}/comments/live", protected(commentHandler.HandleLive))
	mux.Handle("GET /dashboard", protected(dashboardHandler.HandleDashboard))
	mux.HandleFunc("GET /", HandleHome)
}
