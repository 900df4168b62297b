package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardcomposer/internal/address"
	"cardcomposer/internal/ai"
	"cardcomposer/internal/api/handlers"
	"cardcomposer/internal/api/middleware"
	"cardcomposer/internal/catalog"
	"cardcomposer/internal/config"
	"cardcomposer/internal/draft"
	"cardcomposer/internal/form"
	"cardcomposer/internal/health"
	"cardcomposer/internal/metrics"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Redis setup, backs the draft slots
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConnect.Host,
		Username: cfg.RedisConnect.Username,
		Password: cfg.RedisConnect.Password,
		DB:       cfg.RedisConnect.DB,
	})

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()

	var draftStore draft.Store

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		// Drafts are best-effort, so a missing redis degrades to in-process
		// slots instead of refusing to start.
		slog.Warn("⚠️ Redis unreachable, falling back to in-memory draft store", slog.String("error", err.Error()))
		draftStore = draft.NewMemoryStore()
	} else {
		draftStore = draft.NewRedisStore(redisClient, cfg.Draft.TTL)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	// Upstream clients share an instrumented transport
	newHTTPClient := func(timeout time.Duration) *http.Client {
		return &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		}
	}

	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Token, newHTTPClient(cfg.Catalog.Timeout))
	assistService := ai.NewService(ai.NewCompleter(cfg.AI.BaseURL, cfg.AI.APIKey, newHTTPClient(cfg.AI.Timeout)))
	addressClient := address.NewClient(cfg.Address.BaseURL, cfg.Address.UserAgent, newHTTPClient(cfg.Address.Timeout))

	manager := form.NewManager(draftStore, catalogClient, assistService, cfg.Draft.SaveDelay)

	sessionHandler := handlers.NewSessionHandler(manager)
	assistHandler := handlers.NewAssistHandler(manager)
	addressHandler := handlers.NewAddressHandler(addressClient)
	nomenclatureHandler := handlers.NewNomenclatureHandler(catalogClient)

	healthHandler, err := health.NewHealthHandler(cfg, newHTTPClient(5*time.Second))
	if err != nil {
		slog.Error("❌ Failed to set up health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("draft store initialized", slog.String("env", cfg.Env), slog.Duration("save_delay", cfg.Draft.SaveDelay))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/sessions", sessionHandler.OpenSession())
	routerMux.HandleFunc("GET /api/v1/sessions/{id}", sessionHandler.GetSession())
	routerMux.HandleFunc("PATCH /api/v1/sessions/{id}/fields", sessionHandler.UpdateFields())
	routerMux.HandleFunc("POST /api/v1/sessions/{id}/keywords", sessionHandler.AddKeyword())
	routerMux.HandleFunc("DELETE /api/v1/sessions/{id}/keywords/{keyword}", sessionHandler.RemoveKeyword())
	routerMux.HandleFunc("POST /api/v1/sessions/{id}/submit", sessionHandler.Submit())
	routerMux.HandleFunc("POST /api/v1/sessions/{id}/clear", sessionHandler.ClearSession())
	routerMux.HandleFunc("DELETE /api/v1/sessions/{id}", sessionHandler.CloseSession())
	routerMux.HandleFunc("POST /api/v1/sessions/{id}/assist/generate", assistHandler.GenerateAll())
	routerMux.HandleFunc("POST /api/v1/sessions/{id}/assist/seo", assistHandler.GenerateSEO())
	routerMux.HandleFunc("POST /api/v1/sessions/{id}/assist/prettify", assistHandler.Prettify())
	routerMux.HandleFunc("POST /api/v1/address", addressHandler.Search())
	routerMux.HandleFunc("POST /api/v1/nomenclature", nomenclatureHandler.Create())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Cancel pending autosaves before the listener goes away
	manager.CloseAll()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
