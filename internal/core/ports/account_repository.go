package ports

import (
	"context"

	"github.com/carebridge/patient-platform/internal/core/domain"
)

// AccountRepository defines persistence operations for identity accounts.
//
// Create must enforce email uniqueness atomically (check-and-insert under a
// single write), returning domain.ErrEmailTaken on a duplicate so two
// concurrent registrations of the same email cannot both succeed.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.Account, error)
}
