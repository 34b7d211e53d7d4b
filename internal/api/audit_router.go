package api

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carebridge/patient-platform/internal/api/handler"
	mongodb "github.com/carebridge/patient-platform/internal/infrastructure/db/mongo"
)

// NewAuditRouter builds the Echo instance for the audit trail's read side.
func NewAuditRouter(db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := newEcho(log, "audit")

	auditRepo := mongodb.NewAuditRepository(db)
	auditHandler := handler.NewAuditHandler(auditRepo)

	e.GET("/audit", auditHandler.List)

	registerHealth(e, handler.NewReadinessHandler(db, rdb))
	return e
}
