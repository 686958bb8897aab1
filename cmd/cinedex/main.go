package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/config"
	"github.com/kailas-cloud/cinedex/internal/db/memory"
	dbMongo "github.com/kailas-cloud/cinedex/internal/db/mongo"
	dbRedis "github.com/kailas-cloud/cinedex/internal/db/redis"
	"github.com/kailas-cloud/cinedex/internal/domain"
	logpkg "github.com/kailas-cloud/cinedex/internal/logger"
	"github.com/kailas-cloud/cinedex/internal/metrics"
	"github.com/kailas-cloud/cinedex/internal/repository/embcache"
	movierepo "github.com/kailas-cloud/cinedex/internal/repository/movie"
	reportrepo "github.com/kailas-cloud/cinedex/internal/repository/report"
	searchrepo "github.com/kailas-cloud/cinedex/internal/repository/search"
	chiTransport "github.com/kailas-cloud/cinedex/internal/transport/chi"
	"github.com/kailas-cloud/cinedex/internal/transport/voyage"
	embeddinguc "github.com/kailas-cloud/cinedex/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/cinedex/internal/usecase/health"
	movieuc "github.com/kailas-cloud/cinedex/internal/usecase/movie"
	reportuc "github.com/kailas-cloud/cinedex/internal/usecase/report"
	searchuc "github.com/kailas-cloud/cinedex/internal/usecase/search"
	"github.com/kailas-cloud/cinedex/internal/version"
)

const providerName = "voyage"

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level, version.Version)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting cinedex API server",
		zap.String("commit", version.Commit),
		zap.String("built", version.Date),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("database", cfg.Database.Name),
		zap.String("cache_driver", cfg.Cache.Driver),
	)

	metrics.RegisterHTTPMetrics()
	metrics.RegisterStoreMetrics()
	metrics.RegisterEmbeddingMetrics()

	ctx := context.Background()
	store, err := dbMongo.NewStore(ctx, dbMongo.Config{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Name,
		AppName:        "cinedex",
		ConnectTimeout: cfg.Database.ReadinessTimeout(),
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Warn("Error closing database", zap.Error(err))
		}
	}()

	if err := store.WaitForReady(ctx, cfg.Database.ReadinessTimeout()); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	cols := cfg.Database.Collections
	if cfg.Database.VerifyOnStartup {
		res := dbMongo.Verify(ctx, store,
			[]string{cols.Movies, cols.Comments, cols.EmbeddedMovies},
			dbMongo.CatalogueIndexes(dbMongo.Catalogue{
				Movies:           cols.Movies,
				Comments:         cols.Comments,
				EmbeddedMovies:   cols.EmbeddedMovies,
				SearchIndex:      cfg.Search.KeywordIndex,
				VectorIndex:      cfg.Search.VectorIndex,
				VectorPath:       cfg.Search.VectorPath,
				VectorDimensions: cfg.Embedding.Dimensions,
			}),
			logger,
		)
		logger.Info("Database verification finished",
			zap.Strings("existing", res.Existing),
			zap.Strings("created", res.Created),
			zap.Strings("failed", res.Failed),
		)
	}

	provider := voyage.NewEmbedder(&voyage.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		InputType:  cfg.Embedding.InputType,
		Timeout:    cfg.Embedding.Timeout(),
		Provider:   providerName,
		Logger:     logger,
	})

	// Pass a nil interface, not a typed nil, when vector search is unavailable.
	var queryEmbedder searchuc.Embedder
	if provider.Configured() {
		embedder, closeCache, err := buildEmbedder(ctx, cfg, provider, logger)
		if err != nil {
			logger.Fatal("Failed to build embedder", zap.Error(err))
		}
		defer closeCache()
		queryEmbedder = embedder
		logger.Info("Embedder created",
			zap.String("provider", providerName),
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", cfg.Embedding.Dimensions),
		)
	} else {
		logger.Warn("Embedding API key not configured; vector search is disabled")
	}

	movies := movierepo.New(store, cols.Movies)
	reports := reportrepo.New(store, cols.Movies, cols.Comments)
	search := searchrepo.New(store, searchrepo.Config{
		Movies:         cols.Movies,
		EmbeddedMovies: cols.EmbeddedMovies,
		SearchIndex:    cfg.Search.KeywordIndex,
		VectorIndex:    cfg.Search.VectorIndex,
		VectorPath:     cfg.Search.VectorPath,
		SimilarIndex:   cfg.Search.SimilarIndex,
		SimilarPath:    cfg.Search.SimilarPath,
	})

	server := chiTransport.NewServer(
		movieuc.New(movies),
		searchuc.New(search, queryEmbedder),
		reportuc.New(reports),
		healthuc.New(store, provider),
		logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.Use(chiMiddleware.Timeout(cfg.Database.OperationTimeout()))
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// buildEmbedder assembles the decorator chain: Voyage -> Cached -> Instrumented.
// The returned func releases the cache backend.
func buildEmbedder(
	ctx context.Context, cfg config.Config, provider *voyage.Embedder, logger *zap.Logger,
) (domain.Embedder, func(), error) {
	var embedder domain.Embedder = provider
	closeCache := func() {}

	switch cfg.Cache.Driver {
	case config.CacheRedis:
		kv, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.Cache.Addrs, Password: cfg.Cache.Password})
		if err != nil {
			return nil, nil, fmt.Errorf("create redis cache: %w", err)
		}
		if err := kv.WaitForReady(ctx, cfg.Database.ReadinessTimeout()); err != nil {
			kv.Close()
			return nil, nil, fmt.Errorf("redis cache: %w", err)
		}
		closeCache = kv.Close
		embedder = embcache.New(provider, kv, metrics.EmbeddingCacheTotal, logger).
			WithNamespace(cfg.Embedding.Model).
			WithTTL(cfg.Cache.TTL()).
			WithFlightTimeout(cfg.Embedding.Timeout())
	case config.CacheMemory:
		kv, err := memory.NewStore(cfg.Cache.Size)
		if err != nil {
			return nil, nil, fmt.Errorf("create memory cache: %w", err)
		}
		embedder = embcache.New(provider, kv, metrics.EmbeddingCacheTotal, logger).
			WithNamespace(cfg.Embedding.Model).
			WithTTL(cfg.Cache.TTL()).
			WithFlightTimeout(cfg.Embedding.Timeout())
	}

	embedder = embeddinguc.NewInstrumentedEmbedder(
		embedder, providerName, cfg.Embedding.Model, cfg.Embedding.Dimensions, logger,
	)
	return embedder, closeCache, nil
}
