package ports

import (
	"context"

	"github.com/mongotech/users-api/internal/core/domain"
)

// CreateUserInput carries the fields accepted on user creation. Password
// arrives in plaintext and is hashed before the first write.
type CreateUserInput struct {
	ID        string
	FirstName string
	LastName  string
	Role      string
	Password  string
}

// UpdateUserInput is a partial record: nil fields are dropped before the
// write so absent values never clobber stored ones.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Role      *string
	IsActive  *bool
	LastLogin *string
}

// UserService owns the user record lifecycle. Update takes the resolved
// caller record for the capability gate and the audit actor; Delete takes
// the actor id directly (empty when the request was unauthenticated).
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	List(ctx context.Context, limit int64) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, partial UpdateUserInput, caller *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id, actor string) error
}
