package api

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carebridge/patient-platform/internal/api/handler"
	"github.com/carebridge/patient-platform/internal/core/ports"
	"github.com/carebridge/patient-platform/internal/core/service"
	mongodb "github.com/carebridge/patient-platform/internal/infrastructure/db/mongo"
)

// NewRecordsRouter builds the Echo instance for the patient records service.
// Billing and event publishing are injected: both are collaborators the
// records service must not own.
func NewRecordsRouter(db *mongo.Database, billing ports.BillingClient, publisher ports.EventPublisher, log zerolog.Logger) *echo.Echo {
	e := newEcho(log, "records")

	patientRepo := mongodb.NewPatientRepository(db)
	patientService := service.NewPatientService(patientRepo, billing, publisher, log)
	patientHandler := handler.NewPatientHandler(patientService)

	e.GET("/patients", patientHandler.List)
	e.GET("/patients/:id", patientHandler.Get)
	e.POST("/patients", patientHandler.Create)
	e.PUT("/patients/:id", patientHandler.Update)
	e.DELETE("/patients/:id", patientHandler.Delete)
	e.PUT("/patients/:id/restore", patientHandler.Restore)

	registerHealth(e, handler.NewReadinessHandler(db, nil))
	return e
}
