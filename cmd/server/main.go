package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"notifygate/internal/audit"
	"notifygate/internal/message"
	"notifygate/internal/metrics"
	"notifygate/internal/platform/config"
	"notifygate/internal/platform/httpserver"
	"notifygate/internal/platform/logger"
	"notifygate/internal/platform/postgres"
	platformredis "notifygate/internal/platform/redis"
	"notifygate/internal/service"
	httptransport "notifygate/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var services service.Store = service.NewMemoryStore()
	if cfg.DatabaseURL != "" {
		pool, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to connect postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		store := service.NewPostgresStore(pool)
		if err := store.Migrate(ctx); err != nil {
			log.Error("failed to migrate services table", "error", err)
			os.Exit(1)
		}
		services = store
	}
	if cfg.RedisURL != "" {
		rdb, err := platformredis.New(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		services = service.NewCachedStore(services, rdb.Client, cfg.ServiceCacheTTL)
	}

	m := metrics.New()
	recorder := audit.NewRecorder(cfg.AuditBuffer, m.IncrementAuditDropped)

	var sink audit.Sink = audit.NewLogSink(log)
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(ctx, cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("failed to connect kafka", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
	}
	worker := audit.NewWorker(sink, recorder.Events(), log)

	router := httptransport.NewRouter(httptransport.Dependencies{
		Logger:   log,
		Services: services,
		Messages: message.NewMemoryStore(),
		Metrics:  m,
		Audit:    recorder,
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting notifygate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
