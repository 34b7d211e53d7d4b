package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carebridge/patient-platform/internal/api/handler"
	"github.com/carebridge/patient-platform/internal/core/service"
	mongodb "github.com/carebridge/patient-platform/internal/infrastructure/db/mongo"
)

// NewAuthorityRouter builds the Echo instance for the token authority.
func NewAuthorityRouter(db *mongo.Database, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := newEcho(log, "authority")

	accountRepo := mongodb.NewAccountRepository(db)
	tokenService := service.NewTokenService(accountRepo, jwtSecret, tokenTTL)
	authHandler := handler.NewAuthHandler(tokenService)

	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.GET("/validate", authHandler.Validate)
	e.GET("/users", authHandler.ListUsers)
	e.PUT("/users/:id/role", authHandler.UpdateRole)

	registerHealth(e, handler.NewReadinessHandler(db, nil))
	return e
}

func newEcho(log zerolog.Logger, serviceName string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware(serviceName))

	e.GET("/metrics", echoprometheus.NewHandler())
	return e
}

func registerHealth(e *echo.Echo, ready *handler.ReadinessHandler) {
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", ready.Readiness)
}
