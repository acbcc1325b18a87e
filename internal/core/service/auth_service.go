package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/mongotech/users-api/internal/core/domain"
	"github.com/mongotech/users-api/internal/core/ports"
)

// AuthService validates credentials against stored records and issues
// bearer tokens. The user id doubles as the username.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, audit ports.AuditRecorder, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, issuer: issuer, audit: audit, logger: logger}
}

// Authenticate looks the user up by id and verifies the password against
// the stored hash. Unknown user and wrong password both yield (nil, nil)
// so callers cannot enumerate usernames.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, nil
	}

	user, err := s.repo.FindOne(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.HashedPass) {
		return nil, nil
	}
	return user, nil
}

// Login authenticates, records the successful login on the stored record
// and returns a signed bearer token scoped to the user id.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrInvalidCredentials
	}

	now := time.Now().Format(domain.TimestampLayout)
	if _, err := s.repo.UpdateOne(ctx, user.ID, map[string]any{
		"last_login": now,
		"is_active":  true,
	}); err != nil {
		return "", err
	}

	token, err := s.issuer.Issue(user.ID, 0)
	if err != nil {
		return "", err
	}

	s.audit.Record(domain.AuditEvent{UserID: user.ID, Action: domain.AuditUserLogin, Actor: user.ID, Timestamp: time.Now().UTC()})
	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")

	return token, nil
}

// AuthenticateBasic decodes a base64 user:pass credential pair from a
// basic-auth header value and authenticates it. Bad base64, bad UTF-8 and
// a missing colon all fail the same way as bad credentials.
func (s *AuthService) AuthenticateBasic(ctx context.Context, credentials string) (*domain.User, error) {
	raw, err := base64.StdEncoding.DecodeString(credentials)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !utf8.Valid(raw) {
		return nil, domain.ErrInvalidCredentials
	}

	username, password, ok := strings.Cut(string(raw), ":")
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}
