package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/actdex/internal/config"
	"github.com/kailas-cloud/actdex/internal/db"
	dbBolt "github.com/kailas-cloud/actdex/internal/db/bolt"
	dbRedis "github.com/kailas-cloud/actdex/internal/db/redis"
	"github.com/kailas-cloud/actdex/internal/domain"
	logpkg "github.com/kailas-cloud/actdex/internal/logger"
	"github.com/kailas-cloud/actdex/internal/metrics"
	budgetrepo "github.com/kailas-cloud/actdex/internal/repository/budget"
	corpusrepo "github.com/kailas-cloud/actdex/internal/repository/corpus"
	"github.com/kailas-cloud/actdex/internal/repository/explcache"
	chiTransport "github.com/kailas-cloud/actdex/internal/transport/chi"
	openaiExp "github.com/kailas-cloud/actdex/internal/transport/openai"
	templateExp "github.com/kailas-cloud/actdex/internal/transport/template"
	explainuc "github.com/kailas-cloud/actdex/internal/usecase/explain"
	healthuc "github.com/kailas-cloud/actdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/actdex/internal/usecase/search"
	usageuc "github.com/kailas-cloud/actdex/internal/usecase/usage"
	"github.com/kailas-cloud/actdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting actdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("explainer_provider", cfg.Explainer.Provider),
	)

	// Corpus keys carry the configured prefix everywhere.
	domain.KeyPrefix = cfg.Storage.KeyPrefix

	// Create database store based on driver
	var store db.Store
	switch cfg.Database.Driver {
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	case "bolt":
		store, err = dbBolt.NewStore(dbBolt.Config{
			Path: cfg.Database.Path,
		})
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register retrieval and explainer metrics explicitly (no init())
	metrics.RegisterSearchMetrics()
	metrics.RegisterExplainerMetrics()

	// Single BudgetTracker shared across the explainer chain and usage service.
	var budget *explainuc.BudgetTracker
	budgetCfg := cfg.Explainer.Budget
	if budgetCfg.DailyTokenLimit > 0 || budgetCfg.MonthlyTokenLimit > 0 {
		action := explainuc.BudgetActionWarn
		if budgetCfg.Action == "reject" {
			action = explainuc.BudgetActionReject
		}
		budget = explainuc.NewBudgetTracker(
			cfg.Explainer.Provider, budgetCfg.DailyTokenLimit, budgetCfg.MonthlyTokenLimit, action, logger,
		)
		// Connect the persistence store so current counters load from the DB.
		budgetStore := budgetrepo.New(store, 48*time.Hour, 62*24*time.Hour)
		budget.WithStore(ctx, budgetStore)
	}

	// Pass nil interface (not typed nil pointer!) if budget is not configured.
	// Go gotcha: (*BudgetTracker)(nil) wrapped in BudgetChecker != nil.
	var budgetChecker explainuc.BudgetChecker
	if budget != nil {
		budgetChecker = budget
	}

	explainer := buildExplainer(cfg.Explainer, store, budgetChecker, logger)
	logger.Info("Explainer created",
		zap.String("provider", cfg.Explainer.Provider),
		zap.String("model", cfg.Explainer.Model),
	)

	// Create repositories (domain-native, no adapters)
	corpusRepo := corpusrepo.New(store, cfg.Storage.Corpus)

	// Create use case services
	searchSvc := searchuc.New(corpusRepo, searchuc.Config{
		ScanBudget:   cfg.Search.ScanBudget,
		ResultBudget: cfg.Search.ResultBudget,
		SnippetChars: cfg.Search.SnippetChars,
	}, logger)
	explainSvc := explainuc.New(searchSvc, explainer, logger)

	// Usage service reads from the shared BudgetTracker
	var budgetReader usageuc.BudgetReader
	if budget != nil {
		budgetReader = budget
	}
	usageSvc := usageuc.New(budgetReader, cfg.Explainer.Provider, budgetCfg.CostPerMillionTokens)

	// Health service
	healthSvc := healthuc.New(store, newExplainerHealthChecker(explainer))

	// Create chi server
	server := chiTransport.NewServer(searchSvc, explainSvc, usageSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// explainerHealthChecker wraps domain.Explainer to implement health.ExplainerChecker.
type explainerHealthChecker struct {
	explainer domain.Explainer
}

func newExplainerHealthChecker(explainer domain.Explainer) *explainerHealthChecker {
	return &explainerHealthChecker{explainer: explainer}
}

func (h *explainerHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.explainer.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("explainer health check: %w", err)
		}
	}
	return nil
}

// buildExplainer assembles the decorator chain: provider -> Cached -> Instrumented
func buildExplainer(
	cfg config.ExplainerConfig,
	store db.Store,
	budget explainuc.BudgetChecker,
	logger *zap.Logger,
) domain.Explainer {
	// Base provider (with transport metrics built-in)
	var base domain.Explainer
	switch cfg.Provider {
	case "openai":
		base = openaiExp.NewExplainer(&openaiExp.Config{
			APIKey:   cfg.APIKey,
			BaseURL:  cfg.BaseURL,
			Model:    cfg.Model,
			Provider: cfg.Provider,
			Logger:   logger,
		})
	default:
		base = templateExp.NewExplainer()
	}

	// Cached
	explainer := base
	if store != nil {
		explainer = explcache.New(base, store, 24*time.Hour, metrics.ExplainerCacheTotal, logger)
	}

	// Instrumented (budget + metrics)
	return explainuc.NewInstrumentedExplainer(explainer, cfg.Provider, cfg.Model, budget, logger)
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
