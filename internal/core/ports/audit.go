package ports

import (
	"context"

	"github.com/carebridge/patient-platform/internal/core/domain"
)

// AuditRepository persists audit-trail entries.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	// ListRecent returns the newest entries first, capped at limit.
	ListRecent(ctx context.Context, limit int) ([]*domain.AuditEvent, error)
}

// AuditService consumes patient domain events into the audit trail.
type AuditService interface {
	// Process records a single patient event. Duplicate deliveries of the
	// same event are silently skipped.
	Process(ctx context.Context, event domain.PatientEvent) error
}
