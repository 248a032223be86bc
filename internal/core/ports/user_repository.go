package ports

import (
	"context"

	"github.com/apiecommerce/catalog-api/internal/core/domain"
)

// UserRepository defines the persistence contract the account service
// requires of its credential store. Each call is an atomic unit of work;
// the store owns the unique index on the normalized username and is the
// authoritative guard against duplicate registrations.
type UserRepository interface {
	FindByNormalizedUsername(ctx context.Context, normalized string) (*domain.User, error)
	ExistsByNormalizedUsername(ctx context.Context, normalized string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// RoleRepository manages the role registry.
type RoleRepository interface {
	// EnsureRole is an idempotent get-or-create: concurrent first use of the
	// same name yields exactly one role document.
	EnsureRole(ctx context.Context, name string) (*domain.Role, error)
	// AssignRole links a user to a role; a no-op when already linked.
	AssignRole(ctx context.Context, userID, roleName string) error
}
