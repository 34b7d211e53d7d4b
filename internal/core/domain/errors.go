package domain

import "errors"

var (
	// ErrInvalidCredentials covers both "no such account" and "wrong
	// password". Callers must never distinguish the two cases.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailTaken      = errors.New("email already registered")
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidRole     = errors.New("invalid role")
	ErrForbidden       = errors.New("access forbidden")
	ErrInvalidToken    = errors.New("invalid token")

	ErrPatientNotFound   = errors.New("patient not found")
	ErrPatientEmailTaken = errors.New("patient email already registered")
	ErrPatientNotDeleted = errors.New("patient is not deleted")
)
