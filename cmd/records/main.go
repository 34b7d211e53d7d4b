// The records command runs the patient records service. Authorization is the
// gateway's job; this service owns patient persistence, billing account
// creation, and domain-event publication.
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
	"github.com/carebridge/patient-platform/internal/infrastructure/billing"
	"github.com/carebridge/patient-platform/internal/infrastructure/config"
	mongodb "github.com/carebridge/patient-platform/internal/infrastructure/db/mongo"
	"github.com/carebridge/patient-platform/internal/infrastructure/queue"
	"github.com/carebridge/patient-platform/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	ctx := context.Background()
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	if err := mongodb.NewPatientRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("patient index creation failed")
	}

	publisher, err := queue.NewPublisher(cfg.Queue.URI, cfg.Queue.Queue, log)
	if err != nil {
		log.Fatal().Err(err).Msg("event publisher setup failed")
	}
	defer func() { _ = publisher.Close() }()

	billingClient := billing.NewClient(cfg.Billing.URL, 5*time.Second)

	e := api.NewRecordsRouter(db, billingClient, publisher, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("records server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("records service started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
