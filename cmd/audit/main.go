// The audit command runs the audit trail: it consumes patient events from
// the broker into MongoDB and serves the read-side /audit endpoint.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carebridge/patient-platform/internal/api"
	"github.com/carebridge/patient-platform/internal/core/service"
	"github.com/carebridge/patient-platform/internal/infrastructure/config"
	mongodb "github.com/carebridge/patient-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/carebridge/patient-platform/internal/infrastructure/db/redis"
	"github.com/carebridge/patient-platform/internal/infrastructure/queue"
	"github.com/carebridge/patient-platform/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	auditRepo := mongodb.NewAuditRepository(db)
	dedup := redisdb.NewDedupChecker(rdb)
	auditService := service.NewAuditService(auditRepo, dedup, log)

	dispatcher := queue.NewDispatcher(0, auditService, log)
	dispatcher.Start(ctx)

	consumer := queue.NewConsumer(cfg.Queue.URI, cfg.Queue.Queue, dispatcher, log)
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("consumer stopped")
		}
	}()

	e := api.NewAuditRouter(db, rdb, log)
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("audit server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("audit service started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
