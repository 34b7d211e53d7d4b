package handler

import (
	"time"

	"github.com/carebridge/patient-platform/internal/core/domain"
)

type patientRequest struct {
	Name        string `json:"name"          validate:"required"`
	Email       string `json:"email"         validate:"required,email"`
	Address     string `json:"address"       validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
	Gender      string `json:"gender"        validate:"required,oneof=MALE FEMALE OTHER"`
	BloodGroup  string `json:"blood_group"   validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
}

type patientResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Address        string     `json:"address"`
	DateOfBirth    string     `json:"date_of_birth"`
	Gender         string     `json:"gender"`
	BloodGroup     string     `json:"blood_group,omitempty"`
	RegisteredDate time.Time  `json:"registered_date"`
	Deleted        bool       `json:"deleted"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

func toPatientResponse(p *domain.Patient) patientResponse {
	return patientResponse{
		ID:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		Address:        p.Address,
		DateOfBirth:    p.DateOfBirth,
		Gender:         p.Gender,
		BloodGroup:     p.BloodGroup,
		RegisteredDate: p.RegisteredDate,
		Deleted:        p.Deleted,
		DeletedAt:      p.DeletedAt,
	}
}
