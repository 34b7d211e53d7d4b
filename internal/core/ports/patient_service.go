package ports

import (
	"context"

	"github.com/carebridge/patient-platform/internal/core/domain"
)

// PatientInput carries all fields needed to create or update a patient.
type PatientInput struct {
	Name        string
	Email       string
	Address     string
	DateOfBirth string
	Gender      string
	BloodGroup  string
}

// PatientService defines the use-case operations of the records service.
type PatientService interface {
	ListPatients(ctx context.Context) ([]*domain.Patient, error)
	GetPatient(ctx context.Context, id string) (*domain.Patient, error)
	CreatePatient(ctx context.Context, in PatientInput) (*domain.Patient, error)
	UpdatePatient(ctx context.Context, id string, in PatientInput) (*domain.Patient, error)
	// DeletePatient soft-deletes; the record stays in the store.
	DeletePatient(ctx context.Context, id string) error
	RestorePatient(ctx context.Context, id string) (*domain.Patient, error)
}
