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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/config"
	dbRedis "github.com/JaySanghaniKD/Product-recommendation-engine/internal/db/redis"
	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/domain"
	logpkg "github.com/JaySanghaniKD/Product-recommendation-engine/internal/logger"
	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/metrics"
	cartrepo "github.com/JaySanghaniKD/Product-recommendation-engine/internal/repository/cart"
	categoryrepo "github.com/JaySanghaniKD/Product-recommendation-engine/internal/repository/category"
	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/repository/embcache"
	historyrepo "github.com/JaySanghaniKD/Product-recommendation-engine/internal/repository/history"
	productrepo "github.com/JaySanghaniKD/Product-recommendation-engine/internal/repository/product"
	chiTransport "github.com/JaySanghaniKD/Product-recommendation-engine/internal/transport/chi"
	openaiTransport "github.com/JaySanghaniKD/Product-recommendation-engine/internal/transport/openai"
	activityuc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/activity"
	cartuc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/cart"
	cataloguc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/catalog"
	categoriesuc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/categories"
	healthuc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/health"
	interpretuc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/interpret"
	rankuc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/rank"
	retrieveuc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/retrieve"
	searchuc "github.com/JaySanghaniKD/Product-recommendation-engine/internal/usecase/search"
	"github.com/JaySanghaniKD/Product-recommendation-engine/internal/version"
)

func main() {
	// Local convenience: load .env if present before reading config.
	_ = godotenv.Load()

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

	logger.Info("Starting product search API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
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

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()

	// Embedder chain: OpenAI provider behind a Redis-backed cache.
	baseEmbedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Timeout:    time.Duration(cfg.Embedding.TimeoutSec) * time.Second,
		Logger:     logger,
	})
	var embedder domain.Embedder = embcache.New(baseEmbedder, store, metrics.EmbeddingCacheTotal, logger)
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	completer := openaiTransport.NewCompleter(&openaiTransport.CompleterConfig{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: time.Duration(cfg.LLM.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	// Create repositories
	productRepo := productrepo.New(store)
	categoryRepo := categoryrepo.New(store, categoryrepo.Config{
		Dimensions:  cfg.Embedding.Dimensions,
		HNSWM:       cfg.Index.HNSWM,
		EFConstruct: cfg.Index.HNSWEFConstruct,
	})
	historyRepo := historyrepo.New(store, cfg.Search.HistoryCap, logger)
	cartRepo := cartrepo.New(store, logger)

	if err := productRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure product index", zap.Error(err))
	}
	if err := categoryRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure category index", zap.Error(err))
	}

	// Create use case services
	interpreter := interpretuc.New(completer, logger)
	matcher := categoriesuc.New(categoryRepo, embedder, cfg.Search.SimilarityThreshold, logger)
	retriever := retrieveuc.New(productRepo, cfg.Search.CandidateLimit, logger)
	ranker := rankuc.New(completer, cfg.Search.MaxResults, logger)

	searchSvc := searchuc.New(
		interpreter, matcher, retriever, ranker,
		historyRepo, cartRepo, cfg.Search.RecentSearches, logger,
	)
	catalogSvc := cataloguc.New(productRepo, historyRepo, logger)
	cartSvc := cartuc.New(cartRepo, productRepo, historyRepo, logger)
	activitySvc := activityuc.New(historyRepo, cfg.Search.HistoryCap)
	healthSvc := healthuc.New(store, baseEmbedder)

	// Create chi server
	server := chiTransport.NewServer(
		searchSvc, catalogSvc, matcher, cartSvc, activitySvc, healthSvc, logger,
	)

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

	// Flush in-flight interaction writes before exit.
	searchSvc.Wait()
	catalogSvc.Wait()
	cartSvc.Wait()

	logger.Info("Server stopped gracefully")
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

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
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
