package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/carebridge/patient-platform/internal/core/domain"
	"github.com/carebridge/patient-platform/internal/core/ports"
)

// sourceService is recorded on every audit entry written by this consumer.
const sourceService = "records-service"

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, patientID, eventType string, ts time.Time) (bool, error)
	Mark(ctx context.Context, patientID, eventType string, ts time.Time) error
}

type auditService struct {
	repo  ports.AuditRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, dedup DedupChecker, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and persists a single patient event.
func (s *auditService) Process(ctx context.Context, event domain.PatientEvent) error {
	isDup, err := s.dedup.IsDuplicate(ctx, event.PatientID, event.EventType, event.OccurredAt)
	if err != nil {
		s.log.Warn().Err(err).Str("patient_id", event.PatientID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().
			Str("patient_id", event.PatientID).
			Str("event_type", event.EventType).
			Msg("duplicate event skipped")
		return nil
	}

	// Mark before writing so a redelivery during the insert is not
	// processed twice.
	if markErr := s.dedup.Mark(ctx, event.PatientID, event.EventType, event.OccurredAt); markErr != nil {
		s.log.Warn().Err(markErr).Str("patient_id", event.PatientID).Msg("failed to set dedup key")
	}

	entry := &domain.AuditEvent{
		PatientID:     event.PatientID,
		PatientName:   event.Name,
		PatientEmail:  event.Email,
		EventType:     event.EventType,
		EventTime:     event.OccurredAt,
		SourceService: sourceService,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("process audit event: %w", err)
	}

	s.log.Info().
		Str("patient_id", event.PatientID).
		Str("event_type", event.EventType).
		Msg("audit event recorded")

	return nil
}
