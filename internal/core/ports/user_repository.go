package ports

import (
	"context"

	"github.com/mongotech/users-api/internal/core/domain"
)

// UserRepository abstracts single-document operations against the users
// collection. Absent records surface as domain.ErrUserNotFound; store
// connectivity failures surface as wrapped errors, never as not-found.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) (string, error)
	FindOne(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context, limit int64) ([]domain.User, error)
	UpdateOne(ctx context.Context, id string, fields map[string]any) (int64, error)
	DeleteOne(ctx context.Context, id string) (int64, error)
}
