package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/easycloudbook/cloudbook-api/internal/config"
	"github.com/easycloudbook/cloudbook-api/internal/handler"
	"github.com/easycloudbook/cloudbook-api/internal/infra/cache"
	"github.com/easycloudbook/cloudbook-api/internal/infra/cloudstore"
	"github.com/easycloudbook/cloudbook-api/internal/infra/events"
	"github.com/easycloudbook/cloudbook-api/internal/infra/observability"
	"github.com/easycloudbook/cloudbook-api/internal/infra/resilience"
	"github.com/easycloudbook/cloudbook-api/internal/infra/storage"
	"github.com/easycloudbook/cloudbook-api/internal/ledger"
	"github.com/easycloudbook/cloudbook-api/internal/port"
	"github.com/easycloudbook/cloudbook-api/internal/service"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("storage_backend", cfg.StorageBackend),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Strings("kafka_brokers", cfg.KafkaBrokers),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "cloudbook-api")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	reportCache := cache.New[[]ledger.Entry](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}

	// --- Collection store backend ---
	var kv port.KV
	switch cfg.StorageBackend {
	case config.BackendMemory:
		logger.Info("using in-memory collection store")
		kv = storage.NewMemory()
	case config.BackendPostgres:
		logger.Info("using postgres collection store")
		pg, err := storage.OpenPostgres(context.Background(), cfg.PostgresDSN)
		if err != nil {
			logger.Fatal("failed to open postgres", zap.Error(err))
		}
		defer pg.Close()
		kv = pg
	case config.BackendRemote:
		logger.Info("using remote collection store",
			zap.String("cloudstore_url", cfg.CloudStoreURL),
		)
		httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
		cb := resilience.NewCircuitBreaker("cloudstore")
		kv = cloudstore.NewClient(httpClient, cfg.CloudStoreURL, cfg.CloudStoreAPIKey, cb, resilienceCfg, logger)
	default:
		logger.Info("using file collection store", zap.String("data_dir", cfg.DataDir))
		f, err := storage.NewFile(cfg.DataDir)
		if err != nil {
			logger.Fatal("failed to open data directory", zap.Error(err))
		}
		kv = f
	}
	store := storage.NewStore(kv, cfg.StorageBackend, metrics, logger)

	// --- Event publisher ---
	var publisher port.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		logger.Info("publishing document events to kafka",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic),
		)
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	} else {
		logger.Info("no kafka brokers configured, document events disabled")
		publisher = events.NoopPublisher{}
	}
	defer publisher.Close()

	// --- Services ---
	accountsSvc := service.NewAccountsService(store, reportCache, metrics, logger)
	partiesSvc := service.NewPartiesService(store, reportCache, metrics, logger)
	productsSvc := service.NewProductsService(store, reportCache, metrics, logger)
	documentsSvc := service.NewDocumentsService(store, productsSvc, publisher, reportCache, metrics, logger)
	reportsSvc := service.NewReportsService(store, reportCache, metrics, logger)

	// --- Router ---
	router := handler.NewRouter(accountsSvc, partiesSvc, productsSvc, documentsSvc, reportsSvc, store, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
