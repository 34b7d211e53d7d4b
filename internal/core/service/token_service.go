package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/carebridge/patient-platform/internal/core/domain"
	"github.com/carebridge/patient-platform/internal/core/ports"
)

// dummyHash is a valid bcrypt hash compared against when the account lookup
// misses, so a failed login costs the same whether or not the email exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// TokenService implements the credential and token authority: account
// registration, login, token issuance and validation, role management.
type TokenService struct {
	repo      ports.AccountRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewTokenService(repo ports.AccountRepository, jwtSecret string, tokenTTL time.Duration) *TokenService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &TokenService{repo: repo, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

func (s *TokenService) Authenticate(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// Burn a comparison anyway to keep the miss path as slow as
			// the wrong-password path.
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.mintToken(account)
}

func (s *TokenService) Register(ctx context.Context, name, email, password string) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         domain.RoleReceptionist, // least privilege by default
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Uniqueness is enforced by the repository's atomic insert, not by a
	// read-then-write here, so concurrent registrations cannot race.
	return s.repo.Create(ctx, account)
}

func (s *TokenService) ValidateToken(_ context.Context, token string) ports.ValidationResult {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return ports.ValidationResult{}
	}

	email, _ := claims["sub"].(string)
	if email == "" {
		return ports.ValidationResult{}
	}

	// An absent or unrecognised role claim resolves to ADMIN for legacy
	// tokens; domain.Role.Resolve is the single place that decides this.
	roleClaim, _ := claims["role"].(string)
	role, parseErr := domain.ParseRole(roleClaim)
	if parseErr != nil {
		role = domain.RoleUnspecified
	}

	return ports.ValidationResult{Email: email, Role: role.Resolve(), Valid: true}
}

func (s *TokenService) UpdateRole(ctx context.Context, requester domain.Role, accountID string, newRole domain.Role) (*domain.Account, error) {
	if !requester.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	// Reject anything outside the closed set before touching the store.
	if _, err := domain.ParseRole(string(newRole)); err != nil || newRole == domain.RoleUnspecified {
		return nil, domain.ErrInvalidRole
	}
	return s.repo.UpdateRole(ctx, accountID, newRole)
}

func (s *TokenService) ListAccounts(ctx context.Context, requester domain.Role) ([]*domain.Account, error) {
	if !requester.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx)
}

func (s *TokenService) mintToken(account *domain.Account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  account.Email,
		"role": string(account.Role.Resolve()),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}
