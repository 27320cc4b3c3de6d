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
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/contentd/internal/config"
	dbRedis "github.com/kailas-cloud/contentd/internal/db/redis"
	"github.com/kailas-cloud/contentd/internal/domain"
	domarticle "github.com/kailas-cloud/contentd/internal/domain/article"
	logpkg "github.com/kailas-cloud/contentd/internal/logger"
	"github.com/kailas-cloud/contentd/internal/metrics"
	articlerepo "github.com/kailas-cloud/contentd/internal/repository/article"
	chiTransport "github.com/kailas-cloud/contentd/internal/transport/chi"
	"github.com/kailas-cloud/contentd/internal/transport/solr"
	articleuc "github.com/kailas-cloud/contentd/internal/usecase/article"
	healthuc "github.com/kailas-cloud/contentd/internal/usecase/health"
	searchuc "github.com/kailas-cloud/contentd/internal/usecase/search"
	"github.com/kailas-cloud/contentd/internal/version"
)

func main() {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic("failed to load .env: " + err.Error())
	}

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

	logger.Info("Starting contentd API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("search_url", cfg.Search.BaseURL),
		zap.Duration("search_timeout", cfg.Search.Timeout()),
	)

	domain.SetKeyPrefix(cfg.Storage.KeyPrefix)

	// Redis and Valkey speak the same protocol; one rueidis store serves both drivers.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	articleSvc := articleuc.New(articlerepo.New(store), logger)
	if err := seedArticles(ctx, articleSvc, cfg.Seed.Articles, logger); err != nil {
		logger.Fatal("Failed to seed articles", zap.Error(err))
	}

	solrClient := solr.NewClient(&solr.Config{
		BaseURL: cfg.Search.BaseURL,
		Logger:  logger,
	})
	searchSvc := searchuc.New(solrClient, cfg.Search.Timeout(), logger)

	healthSvc := healthuc.New(store, newSearchHealthChecker(solrClient, searchSvc.Budget()))

	server := chiTransport.NewServer(articleSvc, searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
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

// seedArticles saves the configured articles. Ids were validated by config.Validate.
func seedArticles(ctx context.Context, svc *articleuc.Service, seeds []config.SeedArticle, logger *zap.Logger) error {
	for _, s := range seeds {
		a, err := domarticle.New(uuid.MustParse(s.ID), map[string]string{
			domarticle.FieldTitle: s.Title,
			domarticle.FieldBody:  s.Body,
		})
		if err != nil {
			return fmt.Errorf("seed %s: %w", s.ID, err)
		}
		if err := svc.Save(ctx, a); err != nil {
			return fmt.Errorf("seed %s: %w", s.ID, err)
		}
	}
	if len(seeds) > 0 {
		logger.Info("Seeded articles", zap.Int("count", len(seeds)))
	}
	return nil
}

// searchHealthChecker bounds the index ping by the search budget.
type searchHealthChecker struct {
	client  *solr.Client
	timeout time.Duration
}

func newSearchHealthChecker(client *solr.Client, timeout time.Duration) *searchHealthChecker {
	return &searchHealthChecker{client: client, timeout: timeout}
}

func (h *searchHealthChecker) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return h.client.HealthCheck(ctx)
}
