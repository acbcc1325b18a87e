package service

import (
	"context"
	"sync"

	"github.com/mongotech/users-api/internal/core/domain"
)

// stubUserRepo is an in-memory ports.UserRepository that records the
// partial-update payloads it receives.
type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]domain.User
	updates []map[string]any
	nextID  string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]domain.User), nextID: "generated-id"}
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := user.ID
	if id == "" {
		id = r.nextID
	}
	stored := *user
	stored.ID = id
	r.users[id] = stored
	return id, nil
}

func (r *stubUserRepo) FindOne(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := u
	return &clone, nil
}

func (r *stubUserRepo) FindAll(_ context.Context, limit int64) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		if int64(len(out)) >= limit {
			break
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *stubUserRepo) UpdateOne(_ context.Context, id string, fields map[string]any) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, fields)
	u, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	modified := int64(0)
	for k, v := range fields {
		switch k {
		case "first_name":
			if u.FirstName != v.(string) {
				u.FirstName = v.(string)
				modified = 1
			}
		case "last_name":
			if u.LastName != v.(string) {
				u.LastName = v.(string)
				modified = 1
			}
		case "role":
			if u.Role != v.(string) {
				u.Role = v.(string)
				modified = 1
			}
		case "is_active":
			if u.IsActive != v.(bool) {
				u.IsActive = v.(bool)
				modified = 1
			}
		case "last_login":
			if u.LastLogin != v.(string) {
				u.LastLogin = v.(string)
				modified = 1
			}
		}
	}
	r.users[id] = u
	return modified, nil
}

func (r *stubUserRepo) DeleteOne(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}

// stubAudit collects recorded events synchronously.
type stubAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *stubAudit) Record(event domain.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}

func (a *stubAudit) all() []domain.AuditEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuditEvent, len(a.events))
	copy(out, a.events)
	return out
}

func (a *stubAudit) actions() []domain.AuditAction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Action)
	}
	return out
}
