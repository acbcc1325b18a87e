package ports

import (
	"context"

	"github.com/mongotech/users-api/internal/core/domain"
)

// AuthService validates credentials and drives the login and basic-auth flows.
type AuthService interface {
	// Authenticate returns the matching record, or nil when the user is
	// unknown or the password does not match. The two cases are not
	// distinguished.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	// Login authenticates, stamps last_login on the stored record and
	// issues a bearer token scoped to the user id. Fails with
	// domain.ErrInvalidCredentials on bad credentials.
	Login(ctx context.Context, username, password string) (string, error)
	// AuthenticateBasic decodes a base64 user:pass credential pair and
	// authenticates it. Fails with domain.ErrInvalidCredentials on any
	// decode or credential failure.
	AuthenticateBasic(ctx context.Context, credentials string) (*domain.User, error)
}
