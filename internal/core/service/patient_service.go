package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/carebridge/patient-platform/internal/core/domain"
	"github.com/carebridge/patient-platform/internal/core/ports"
)

type patientService struct {
	repo      ports.PatientRepository
	billing   ports.BillingClient
	publisher ports.EventPublisher
	log       zerolog.Logger
}

// NewPatientService returns a PatientService implementation.
func NewPatientService(
	repo ports.PatientRepository,
	billing ports.BillingClient,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) ports.PatientService {
	return &patientService{repo: repo, billing: billing, publisher: publisher, log: log}
}

func (s *patientService) ListPatients(ctx context.Context) ([]*domain.Patient, error) {
	return s.repo.List(ctx)
}

func (s *patientService) GetPatient(ctx context.Context, id string) (*domain.Patient, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *patientService) CreatePatient(ctx context.Context, in ports.PatientInput) (*domain.Patient, error) {
	taken, err := s.repo.ExistsByEmail(ctx, in.Email, "")
	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	if taken {
		return nil, domain.ErrPatientEmailTaken
	}

	patient := &domain.Patient{
		Name:           in.Name,
		Email:          in.Email,
		Address:        in.Address,
		DateOfBirth:    in.DateOfBirth,
		Gender:         in.Gender,
		BloodGroup:     in.BloodGroup,
		RegisteredDate: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, patient)
	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}

	// Billing account creation is a collaborator call: a failure is logged
	// but does not roll back the patient write.
	if err := s.billing.CreateBillingAccount(ctx, created.ID, created.Name, created.Email); err != nil {
		s.log.Warn().Err(err).Str("patient_id", created.ID).Msg("billing account creation failed")
	}

	s.publish(ctx, created, domain.EventPatientCreated)
	return created, nil
}

func (s *patientService) UpdatePatient(ctx context.Context, id string, in ports.PatientInput) (*domain.Patient, error) {
	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByEmail(ctx, in.Email, id)
	if err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}
	if taken {
		return nil, domain.ErrPatientEmailTaken
	}

	patient.Name = in.Name
	patient.Email = in.Email
	patient.Address = in.Address
	patient.DateOfBirth = in.DateOfBirth
	patient.Gender = in.Gender
	patient.BloodGroup = in.BloodGroup

	updated, err := s.repo.Update(ctx, patient)
	if err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}

	s.publish(ctx, updated, domain.EventPatientUpdated)
	return updated, nil
}

func (s *patientService) DeletePatient(ctx context.Context, id string) error {
	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if patient.Deleted {
		return domain.ErrPatientNotFound
	}

	now := time.Now().UTC()
	patient.Deleted = true
	patient.DeletedAt = &now

	deleted, err := s.repo.Update(ctx, patient)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}

	s.publish(ctx, deleted, domain.EventPatientDeleted)
	return nil
}

func (s *patientService) RestorePatient(ctx context.Context, id string) (*domain.Patient, error) {
	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !patient.Deleted {
		return nil, domain.ErrPatientNotDeleted
	}

	patient.Deleted = false
	patient.DeletedAt = nil

	restored, err := s.repo.Update(ctx, patient)
	if err != nil {
		return nil, fmt.Errorf("restore patient: %w", err)
	}

	s.publish(ctx, restored, domain.EventPatientRestored)
	return restored, nil
}

// publish emits a patient event; publish failures are logged, never fatal.
func (s *patientService) publish(ctx context.Context, p *domain.Patient, eventType string) {
	event := domain.PatientEvent{
		PatientID:  p.ID,
		Name:       p.Name,
		Email:      p.Email,
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).
			Str("patient_id", p.ID).
			Str("event_type", eventType).
			Msg("failed to publish patient event")
	}
}
