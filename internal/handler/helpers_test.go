package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/msomdec/interview-room/internal/domain"
	"github.com/msomdec/interview-room/internal/gate"
	"github.com/msomdec/interview-room/internal/handler"
	"github.com/msomdec/interview-room/internal/live"
	"github.com/msomdec/interview-room/internal/metrics"
	"github.com/msomdec/interview-room/internal/repository/sqlite"
	"github.com/msomdec/interview-room/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

type testEnv struct {
	db         *sqlite.DB
	auth       *service.AuthService
	interviews *service.InterviewService
	comments   *service.CommentService
	registry   *prometheus.Registry
	srv        *httptest.Server
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return service.NewAuthService(db.Users(), testJWTSecret, 4), db
}

func newTestEnv(t *testing.T, streamKey, streamSecret string) *testEnv {
	t.Helper()
	auth, db := newTestAuthService(t)

	env := &testEnv{
		db:         db,
		auth:       auth,
		interviews: service.NewInterviewService(db.Interviews(), db.Users()),
		comments:   service.NewCommentService(db.Comments(), db.Interviews(), live.NewHub()),
		registry:   prometheus.NewRegistry(),
	}

	limiter := service.PerMinute(100)
	t.Cleanup(limiter.Close)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Services{
		Auth:         auth,
		Interviews:   env.interviews,
		Comments:     env.comments,
		Directory:    service.NewDirectoryService(db.Users()),
		Tokens:       service.NewStreamTokenIssuer(service.ContextIdentity{}, streamKey, streamSecret, time.Hour),
		TokenLimiter: limiter,
		Metrics:      metrics.NewCollector(env.registry),
		DB:           db,
	})

	app := handler.Gate(gate.Default(), func(next http.Handler) http.Handler {
		return handler.OptionalAuth(auth, next)
	}, mux)

	env.srv = httptest.NewServer(handler.SecurityHeaders(app))
	t.Cleanup(env.srv.Close)
	return env
}

func (e *testEnv) register(t *testing.T, email, name string, role domain.Role) *domain.User {
	t.Helper()
	user, err := e.auth.Register(context.Background(), service.RegisterInput{
		Email: email, DisplayName: name, Role: role, Password: "password123", ConfirmPassword: "password123",
	})
	if err != nil {
		t.Fatalf("Register %s: %v", email, err)
	}
	return user
}

// client returns an HTTP client logged in as email.
func (e *testEnv) client(t *testing.T, email string) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	c := &http.Client{Jar: jar}
	resp := postJSON(t, c, e.srv.URL+"/api/auth/login", map[string]string{"email": email, "password": "password123"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d", email, resp.StatusCode)
	}
	return c
}

func (e *testEnv) schedule(t *testing.T, interviewer, candidate *domain.User) *domain.Interview {
	t.Helper()
	iv, err := e.interviews.Schedule(context.Background(), interviewer.Identity(), "Pairing", "", candidate.ExternalID, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	return iv
}

func postJSON(t *testing.T, c *http.Client, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := c.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func get(t *testing.T, c *http.Client, url string) *http.Response {
	t.Helper()
	resp, err := c.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp
}

// counterValues returns the values of a counter vector keyed by the value of
// its label.
func (e *testEnv) counterValues(t *testing.T, name, label string) map[string]float64 {
	t.Helper()
	families, err := e.registry.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	got := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label {
					got[lp.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}
	return got
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func decodeJSON(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}
