package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	athletehandler "workout/internal/athlete/handler"
	athleteservice "workout/internal/athlete/service"
	"workout/internal/audit"
	categoryhandler "workout/internal/category/handler"
	categoryservice "workout/internal/category/service"
	"workout/internal/health"
	"workout/internal/platform/config"
	"workout/internal/platform/httpserver"
	"workout/internal/platform/logger"
	"workout/internal/platform/metrics"
	"workout/internal/platform/middleware"
	platformredis "workout/internal/platform/redis"
	"workout/internal/storage"
	"workout/internal/storage/cache"
	"workout/internal/storage/memory"
	"workout/internal/storage/postgres"
	centerhandler "workout/internal/trainingcenter/handler"
	centerservice "workout/internal/trainingcenter/service"
	httptransport "workout/internal/transport/http"
	"workout/pkg/platform/circuit"
)

// runner is a long-lived component stopped by cancelling ctx.
type runner func(ctx context.Context) error

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	m := metrics.New(prometheus.DefaultRegisterer)
	var runners []runner
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	uow, healthOpts, storeClosers, err := buildStorage(ctx, cfg, log, m)
	closers = append(closers, storeClosers...)
	if err != nil {
		return err
	}

	publisher, auditRunners, auditClosers, err := buildAudit(ctx, cfg.Kafka, log)
	closers = append(closers, auditClosers...)
	if err != nil {
		return err
	}
	runners = append(runners, auditRunners...)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		runners = append(runners, limiter.Run)
		log.Info("rate limiting enabled", "rps", cfg.RateLimit.RPS, "burst", cfg.RateLimit.Burst)
	}

	categories := categoryservice.New(uow,
		categoryservice.WithLogger(log),
		categoryservice.WithMetrics(m),
		categoryservice.WithAuditPublisher(publisher),
	)
	centers := centerservice.New(uow,
		centerservice.WithLogger(log),
		centerservice.WithMetrics(m),
		centerservice.WithAuditPublisher(publisher),
	)
	athletes := athleteservice.New(uow,
		athleteservice.WithLogger(log),
		athleteservice.WithMetrics(m),
		athleteservice.WithAuditPublisher(publisher),
	)

	router := httptransport.NewRouter(httptransport.Config{
		Logger:         log,
		Metrics:        m,
		Gatherer:       prometheus.DefaultGatherer,
		Limiter:        limiter,
		RequestTimeout: cfg.Server.RequestTimeout,
	},
		health.New(log, healthOpts...),
		categoryhandler.New(categories, log),
		centerhandler.New(centers, log),
		athletehandler.New(athletes, log),
	)
	srv := httpserver.New(cfg.Server.Addr, router, cfg.Server.RequestTimeout)

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range runners {
		g.Go(func() error { return r(gctx) })
	}
	g.Go(func() error {
		log.Info("starting workout api", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// buildStorage selects Postgres when DATABASE_URL is set, else the in-memory
// store, and puts the Redis lookup cache in front when REDIS_URL is set.
func buildStorage(ctx context.Context, cfg config.Config, log *slog.Logger, m *metrics.Metrics) (storage.UnitOfWork, []health.Option, []func(), error) {
	var (
		uow     storage.UnitOfWork
		opts    []health.Option
		closers []func()
	)

	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, nil, closers, err
		}
		closers = append(closers, func() { _ = db.Close() })
		if err := postgres.Migrate(ctx, db); err != nil {
			return nil, nil, closers, err
		}
		store := postgres.New(db, cfg.Database.TxTimeout)
		uow = store
		opts = append(opts, health.WithChecker("postgres", store))
		log.Info("using postgres store")
	} else {
		uow = memory.New()
		log.Warn("DATABASE_URL not set, using in-memory store")
	}

	client, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, closers, err
	}
	if client != nil {
		closers = append(closers, func() { _ = client.Close() })
		uow = cache.New(uow, client,
			cache.WithLogger(log),
			cache.WithMetrics(m),
			cache.WithTTL(cfg.Redis.CacheTTL),
		)
		opts = append(opts, health.WithChecker("redis", client))
		log.Info("redis lookup cache enabled", "ttl", cfg.Redis.CacheTTL)
	}

	return uow, opts, closers, nil
}

// buildAudit returns the publisher handed to services. With brokers configured
// events go through an async queue to Kafka, falling back to the log while the
// breaker is open. Without brokers they are only logged.
func buildAudit(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) (audit.Publisher, []runner, []func(), error) {
	logPublisher := audit.NewLogPublisher(log)
	if len(cfg.Brokers) == 0 {
		return logPublisher, nil, nil, nil
	}

	client, err := audit.NewKafkaClient(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	closers := []func(){client.Close}
	if err := audit.EnsureTopic(ctx, audit.NewAdmin(client), cfg.AuditTopic); err != nil {
		return nil, nil, closers, err
	}

	kafka := audit.NewKafkaPublisher(client, cfg.AuditTopic)
	fallback := audit.NewFallbackPublisher(kafka, logPublisher, circuit.New("audit-kafka"), log)
	queue := audit.NewQueue(fallback, 0, log)
	log.Info("kafka audit publisher enabled", "topic", cfg.AuditTopic, "brokers", cfg.Brokers)

	return queue, []runner{queue.Run}, closers, nil
}

