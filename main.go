package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/msomdec/interview-room/internal/config"
	"github.com/msomdec/interview-room/internal/gate"
	"github.com/msomdec/interview-room/internal/handler"
	"github.com/msomdec/interview-room/internal/live"
	"github.com/msomdec/interview-room/internal/metrics"
	"github.com/msomdec/interview-room/internal/repository/sqlite"
	"github.com/msomdec/interview-room/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load configuration", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logOpts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	notifier, closeNotifier := newNotifier(cfg.RedisAddr)
	defer closeNotifier()

	if !cfg.StreamConfigured() {
		slog.Warn("STREAM_API_KEY or STREAM_API_SECRET not set; video tokens cannot be issued")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	authService := service.NewAuthService(db.Users(), cfg.JWTSecret, cfg.BcryptCost)
	interviewService := service.NewInterviewService(db.Interviews(), db.Users())
	commentService := service.NewCommentService(db.Comments(), db.Interviews(), notifier)
	directoryService := service.NewDirectoryService(db.Users())
	tokenIssuer := service.NewStreamTokenIssuer(service.ContextIdentity{}, cfg.StreamAPIKey, cfg.StreamAPISecret, cfg.StreamTokenTTL)
	tokenLimiter := service.PerMinute(cfg.TokenRatePerMinute)
	defer tokenLimiter.Close()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Services{
		Auth:         authService,
		Interviews:   interviewService,
		Comments:     commentService,
		Directory:    directoryService,
		Tokens:       tokenIssuer,
		TokenLimiter: tokenLimiter,
		Metrics:      collector,
		DB:           db,
		CookieSecure: cfg.CookieSecure,
	})

	identityProvider := func(next http.Handler) http.Handler {
		return handler.OptionalAuth(authService, next)
	}
	app := handler.Gate(gate.Default(), identityProvider, mux)

	root := http.NewServeMux()
	root.Handle("GET /metrics", metrics.Handler(reg))
	root.Handle("/", app)

	var h http.Handler = handler.SecurityHeaders(root)
	h = collector.Middleware(h)
	h = middleware.Recoverer(h)
	h = middleware.RealIP(h)
	h = middleware.RequestID(h)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// newNotifier uses Redis pub/sub when addr is set so live comment views
// update across instances; otherwise an in-process hub.
func newNotifier(addr string) (live.Notifier, func()) {
	if addr == "" {
		slog.Info("live notifications in process")
		return live.NewHub(), func() {}
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect to redis", "addr", addr, "error", err)
		os.Exit(1)
	}
	slog.Info("live notifications via redis", "addr", addr)
	return live.NewRedisNotifier(client), func() { client.Close() }
}
