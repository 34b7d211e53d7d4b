// The gateway command runs the platform's edge proxy: every /api request is
// authenticated against the token authority and checked against the role
// matrix before being forwarded upstream.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carebridge/patient-platform/internal/authclient"
	"github.com/carebridge/patient-platform/internal/gateway"
	"github.com/carebridge/patient-platform/internal/infrastructure/config"
	"github.com/carebridge/patient-platform/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	validator := authclient.New(cfg.Gateway.AuthorityURL, cfg.Gateway.ValidateTimeout)

	e, err := gateway.NewRouter(validator, gateway.Upstreams{
		Authority: cfg.Gateway.AuthorityURL,
		Records:   cfg.Gateway.RecordsURL,
		Audit:     cfg.Gateway.AuditURL,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("gateway router construction failed")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("gateway server failed")
		}
	}()
	log.Info().
		Str("port", cfg.Port).
		Str("authority", cfg.Gateway.AuthorityURL).
		Msg("gateway started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
