package ports

import (
	"context"

	"github.com/carebridge/patient-platform/internal/core/domain"
)

// ValidationResult is the contract returned by token validation. It is the
// only thing the gateway trusts per request: when Valid is false no other
// field is populated.
type ValidationResult struct {
	Email string      `json:"email,omitempty"`
	Role  domain.Role `json:"role,omitempty"`
	Valid bool        `json:"valid"`
}

// TokenService is the credential and token authority contract.
//
// Every failure is a typed domain error; implementations never panic past
// the operation boundary.
type TokenService interface {
	// Authenticate verifies email+password and mints a signed bearer token.
	// Failure is always domain.ErrInvalidCredentials regardless of whether
	// the account exists.
	Authenticate(ctx context.Context, email, password string) (string, error)

	// Register creates an account with the least-privileged role
	// (RECEPTIONIST). Returns domain.ErrEmailTaken on duplicate email.
	Register(ctx context.Context, name, email, password string) (*domain.Account, error)

	// ValidateToken verifies signature and expiry. It is side-effect free
	// and idempotent: an unverifiable token yields {Valid: false}, never an
	// error the caller could mistake for a transport problem.
	ValidateToken(ctx context.Context, token string) ValidationResult

	// UpdateRole changes an account's role. Only an ADMIN requester may call
	// it; the check lives here, not only at the gateway, as defense in depth.
	UpdateRole(ctx context.Context, requester domain.Role, accountID string, newRole domain.Role) (*domain.Account, error)

	// ListAccounts returns all accounts. ADMIN-only, same in-service check.
	ListAccounts(ctx context.Context, requester domain.Role) ([]*domain.Account, error)
}
