package ports

import (
	"context"

	"github.com/carebridge/patient-platform/internal/core/domain"
)

// PatientRepository defines persistence operations for patient records.
type PatientRepository interface {
	Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error)
	FindByID(ctx context.Context, id string) (*domain.Patient, error)
	// List returns all non-deleted patients.
	List(ctx context.Context) ([]*domain.Patient, error)
	// ExistsByEmail reports whether a patient with the email exists,
	// excluding the record with excludeID when non-empty.
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Update(ctx context.Context, p *domain.Patient) (*domain.Patient, error)
}
