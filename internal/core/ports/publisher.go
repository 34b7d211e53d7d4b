package ports

import (
	"context"

	"github.com/carebridge/patient-platform/internal/core/domain"
)

// EventPublisher emits patient domain events for the audit trail.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.PatientEvent) error
}
