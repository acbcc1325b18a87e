package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mongotech/users-api/internal/core/domain"
	"github.com/mongotech/users-api/internal/core/ports"
)

const defaultListLimit = 100

// UserService owns the user record lifecycle: creation, listing with the
// derived activity flag, role-gated partial update and deletion.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, audit ports.AuditRecorder, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, audit: audit, logger: logger}
}

// Create stamps created_at, hashes the password and persists the record.
// The hash goes straight into hashed_pass; a plaintext password field is
// never written to the store. Returns the freshly re-read stored record.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if !domain.ValidRole(input.Role) {
		return nil, &domain.ValidationError{Fields: map[string]string{"role": "unknown role"}}
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:         input.ID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Role:       input.Role,
		CreatedAt:  time.Now().Format(domain.TimestampLayout),
		HashedPass: hash,
	}

	id, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{UserID: id, Action: domain.AuditUserCreated, Actor: id, Timestamp: time.Now().UTC()})
	s.logger.Info().Str("user_id", id).Str("role", created.Role).Msg("user created")

	return created, nil
}

// List returns up to limit records with is_active derived from last_login.
// The derived flag overwrites whatever the store holds.
func (s *UserService) List(ctx context.Context, limit int64) ([]domain.User, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	users, err := s.repo.FindAll(ctx, limit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range users {
		users[i].IsActive = domain.ActiveAt(users[i].LastLogin, now)
	}
	return users, nil
}

// Get returns a single record by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindOne(ctx, id)
}

// Update applies a partial record. Only admin-capability callers may
// mutate; nil fields are dropped; an empty or no-op partial falls through
// to a plain re-read so the operation is idempotent. ErrUserNotFound is
// returned only when the record does not exist at all.
func (s *UserService) Update(ctx context.Context, id string, partial ports.UpdateUserInput, caller *domain.User) (*domain.User, error) {
	if caller == nil || !domain.RoleCan(caller.Role, domain.CapManageUsers) {
		return nil, domain.ErrForbidden
	}
	if partial.Role != nil && !domain.ValidRole(*partial.Role) {
		return nil, &domain.ValidationError{Fields: map[string]string{"role": "unknown role"}}
	}

	fields := map[string]any{}
	if partial.FirstName != nil {
		fields["first_name"] = *partial.FirstName
	}
	if partial.LastName != nil {
		fields["last_name"] = *partial.LastName
	}
	if partial.Role != nil {
		fields["role"] = *partial.Role
	}
	if partial.IsActive != nil {
		fields["is_active"] = *partial.IsActive
	}
	if partial.LastLogin != nil {
		fields["last_login"] = *partial.LastLogin
	}

	if len(fields) > 0 {
		if _, err := s.repo.UpdateOne(ctx, id, fields); err != nil {
			return nil, err
		}
		s.audit.Record(domain.AuditEvent{UserID: id, Action: domain.AuditUserUpdated, Actor: caller.ID, Timestamp: time.Now().UTC()})
	}

	// Zero modified still resolves to the current record; only a missing
	// record is an error.
	return s.repo.FindOne(ctx, id)
}

// Delete removes a record by id. Deleting an unknown or already-deleted id
// reports ErrUserNotFound. actor is the id of the basic-auth caller when
// the request carried credentials, empty otherwise.
func (s *UserService) Delete(ctx context.Context, id, actor string) error {
	deleted, err := s.repo.DeleteOne(ctx, id)
	if err != nil {
		return err
	}
	if deleted != 1 {
		return domain.ErrUserNotFound
	}

	s.audit.Record(domain.AuditEvent{UserID: id, Action: domain.AuditUserDeleted, Actor: actor, Timestamp: time.Now().UTC()})
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
