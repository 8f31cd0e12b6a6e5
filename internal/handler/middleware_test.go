package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/msomdec/interview-room/internal/domain"
	"github.com/msomdec/interview-room/internal/gate"
	"github.com/msomdec/interview-room/internal/handler"
	"github.com/msomdec/interview-room/internal/service"
)

func loginToken(t *testing.T, auth *service.AuthService, email, name string, role domain.Role) string {
	t.Helper()
	ctx := context.Background()
	_, err := auth.Register(ctx, service.RegisterInput{
		Email: email, DisplayName: name, Role: role, Password: "password123", ConfirmPassword: "password123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := auth.Login(ctx, email, "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return token
}

func TestRequireAuth_ValidJWT(t *testing.T) {
	auth, _ := newTestAuthService(t)
	token := loginToken(t, auth, "valid@example.com", "Valid User", domain.RoleInterviewer)

	var got *domain.Session
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = service.SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()

	handler.RequireAuth(auth, inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !got.Authenticated() || got.Identity.Name != "Valid User" {
		t.Fatalf("expected session for 'Valid User', got %+v", got)
	}
	if got.Role.Role != domain.RoleInterviewer || got.Role.Loading {
		t.Fatalf("unexpected role state %+v", got.Role)
	}
}

func TestRequireAuth_Rejects(t *testing.T) {
	auth, _ := newTestAuthService(t)
	token := loginToken(t, auth, "tamper@example.com", "Tamper", domain.RoleCandidate)

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"missing cookie", nil},
		{"invalid token", &http.Cookie{Name: "auth_token", Value: "invalid-jwt-token"}},
		{"tampered token", &http.Cookie{Name: "auth_token", Value: token[:len(token)-5] + "XXXXX"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("inner handler should not be called")
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			w := httptest.NewRecorder()

			handler.RequireAuth(auth, inner).ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	auth, _ := newTestAuthService(t)
	token := loginToken(t, auth, "opt@example.com", "Optional", domain.RoleAdmin)

	var got *domain.Session
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = service.SessionFromContext(r.Context())
	})
	h := handler.OptionalAuth(auth, inner)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !got.Authenticated() || got.Role.Role != domain.RoleAdmin {
		t.Fatalf("expected admin session, got %+v", got)
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got.Authenticated() {
		t.Fatalf("expected anonymous session, got %+v", got)
	}
}

func TestOptionalAuth_StoreFailureMarksRoleLoading(t *testing.T) {
	auth, db := newTestAuthService(t)
	token := loginToken(t, auth, "gone@example.com", "Gone", domain.RoleInterviewer)
	db.Close()

	var got *domain.Session
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = service.SessionFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	handler.OptionalAuth(auth, inner).ServeHTTP(httptest.NewRecorder(), req)

	if !got.Role.Loading {
		t.Fatalf("expected role loading after store failure, got %+v", got.Role)
	}
	if service.ShouldShowDashboardAction(got.Role) {
		t.Fatal("expected dashboard action hidden while role is loading")
	}
}

func TestGate(t *testing.T) {
	var providerCalls []string
	provider := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			providerCalls = append(providerCalls, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
	reached := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { reached++ })

	h := handler.Gate(gate.Default(), provider, next)
	for _, p := range []string{"/dashboard", "/api/stream/token", "/favicon.ico", "/_next/static/app.js"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	if reached != 4 {
		t.Fatalf("expected every request to reach the app, got %d", reached)
	}
	if len(providerCalls) != 2 || providerCalls[0] != "/dashboard" || providerCalls[1] != "/api/stream/token" {
		t.Fatalf("unexpected gated paths %v", providerCalls)
	}
}
