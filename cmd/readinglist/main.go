package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ajanick3/readinglist/pkg/api"
	"github.com/ajanick3/readinglist/pkg/auth"
	"github.com/ajanick3/readinglist/pkg/config"
	"github.com/ajanick3/readinglist/pkg/observability"
	"github.com/ajanick3/readinglist/pkg/store"
)

func main() {
	startupLog := logrus.New()
	startupLog.SetLevel(logrus.InfoLevel)

	cfg, err := config.LoadConfig()
	if err != nil {
		startupLog.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewLogger(cfg.Observability.ParsedLogLevel(), os.Stdout)

	codec, err := auth.NewTokenCodec([]byte(cfg.Auth.TokenSecret))
	if err != nil {
		startupLog.Fatalf("Failed to initialize token codec: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown := observability.NewShutdownManager(cfg.Server.ShutdownTimeout, logger)

	// Stores.
	var (
		users       store.UserStore
		books       store.BookStore
		listItems   store.ListItemStore
		redisClient *redis.Client
	)
	switch cfg.Storage.Type {
	case "redis":
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			DB:       cfg.Storage.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			startupLog.Fatalf("Failed to connect to redis at %s: %v", cfg.Storage.RedisAddr, err)
		}
		shutdown.Register("redis client", func(ctx context.Context) error {
			return redisClient.Close()
		})

		users = store.NewRedisUsers(redisClient)
		books = store.NewRedisBooks(redisClient)
		listItems = store.NewRedisListItems(redisClient)
		startupLog.Infof("Using redis storage at %s", cfg.Storage.RedisAddr)
	default:
		users = store.NewMemoryUsers()
		memBooks := store.NewMemoryBooks()
		if err := store.SeedBooks(ctx, memBooks); err != nil {
			startupLog.Fatalf("Failed to seed book catalog: %v", err)
		}
		books = memBooks
		listItems = store.NewMemoryListItems()
		startupLog.Info("Using in-memory storage with the default catalog")
	}

	if cfg.Storage.CacheEnabled {
		cached, err := store.NewCachedBooks(books, cfg.Storage.CacheSize)
		if err != nil {
			startupLog.Fatalf("Failed to initialize book cache: %v", err)
		}
		books = cached
	}

	// Observability.
	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(nil)
	}

	if shutdownTracing, err := observability.InitTracing(ctx, cfg.Observability.OTel(), logger); err != nil {
		startupLog.Fatalf("Failed to initialize tracing: %v", err)
	} else if shutdownTracing != nil {
		shutdown.Register("tracer provider", shutdownTracing)
	}

	server := api.NewServer(api.Options{
		TokenCodec:     codec,
		Users:          users,
		Books:          books,
		ListItems:      listItems,
		Logger:         logger,
		Metrics:        metrics,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		TracingEnabled: cfg.Observability.OTelEnabled,
	})

	apiServer := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	shutdown.Register("api server", apiServer.Shutdown)

	// Separate listener for k8s probes and metrics scraping.
	opsMux := http.NewServeMux()
	health := observability.NewHealthChecker(redisClient)
	opsMux.HandleFunc("/health/live", health.Liveness)
	opsMux.HandleFunc("/health/ready", health.Readiness)
	if metrics != nil {
		opsMux.Handle("/metrics", metrics.Handler())
	}
	opsServer := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.HealthPort,
		Handler: opsMux,
	}
	shutdown.Register("ops server", opsServer.Shutdown)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("API server listening on %s", apiServer.Addr)
		if err := apiServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.Infof("Ops server listening on %s", opsServer.Addr)
		if err := opsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		return shutdown.Shutdown()
	})

	if err := g.Wait(); err != nil {
		startupLog.Fatalf("Server error: %v", err)
	}
	logger.Info("Shutdown complete")
}
