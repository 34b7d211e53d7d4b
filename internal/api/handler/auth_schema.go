package handler

import "github.com/carebridge/patient-platform/internal/core/domain"

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN DOCTOR RECEPTIONIST"`
}

// accountView is the public projection of an account: never the hash.
type accountView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toAccountView(a *domain.Account) accountView {
	return accountView{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
		Role:  string(a.Role),
	}
}
