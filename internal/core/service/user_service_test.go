package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mongotech/users-api/internal/core/domain"
	"github.com/mongotech/users-api/internal/core/ports"
)

func newUserFixture(t *testing.T) (*UserService, *stubUserRepo, *stubAudit) {
	t.Helper()
	repo := newStubUserRepo()
	audit := &stubAudit{}
	svc := NewUserService(repo, NewBcryptHasher(4), audit, zerolog.Nop())
	return svc, repo, audit
}

func TestUserService_Create_NeverStoresPlaintext(t *testing.T) {
	svc, repo, audit := newUserFixture(t)

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		FirstName: "John",
		LastName:  "Doe",
		Role:      domain.RoleSimpleMortal,
		Password:  "fakehashedsecret",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.FirstName != "John" || created.LastName != "Doe" {
		t.Fatalf("unexpected record: %+v", created)
	}
	if created.HashedPass == "" || created.HashedPass == "fakehashedsecret" {
		t.Fatalf("expected a bcrypt hash, got %q", created.HashedPass)
	}
	if !NewBcryptHasher(4).Verify("fakehashedsecret", created.HashedPass) {
		t.Fatalf("stored hash does not verify against the original plaintext")
	}
	if created.CreatedAt == "" {
		t.Fatalf("expected created_at to be stamped")
	}
	if _, err := time.Parse(domain.TimestampLayout, created.CreatedAt); err != nil {
		t.Fatalf("created_at not in wire format: %v", err)
	}

	stored, err := repo.FindOne(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if stored.HashedPass != created.HashedPass {
		t.Fatalf("returned record does not match store")
	}

	actions := audit.actions()
	if len(actions) != 1 || actions[0] != domain.AuditUserCreated {
		t.Fatalf("expected a created audit event, got %v", actions)
	}
}

func TestUserService_Create_RejectsUnknownRole(t *testing.T) {
	svc, repo, _ := newUserFixture(t)

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		FirstName: "John",
		LastName:  "Doe",
		Role:      "demi-god",
		Password:  "pw",
	})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["role"]; !ok {
		t.Fatalf("expected role failure, got %v", ve.Fields)
	}
	if len(repo.users) != 0 {
		t.Fatalf("nothing must be stored for an unknown role")
	}
}

func TestUserService_Create_KeepsSuppliedID(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		ID:        "john",
		FirstName: "John",
		LastName:  "Doe",
		Role:      domain.RoleAdmin,
		Password:  "pw",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "john" {
		t.Fatalf("expected supplied id to be kept, got %q", created.ID)
	}
}

func TestUserService_List_DerivesActivity(t *testing.T) {
	svc, repo, _ := newUserFixture(t)
	now := time.Now()

	seed := []domain.User{
		{ID: "recent", LastLogin: now.Add(-time.Hour).Format(domain.TimestampLayout), IsActive: false},
		{ID: "stale", LastLogin: now.Add(-45 * 24 * time.Hour).Format(domain.TimestampLayout), IsActive: true},
		{ID: "never", IsActive: true},
		{ID: "garbage", LastLogin: "datetime", IsActive: true},
	}
	for i := range seed {
		if _, err := repo.Insert(context.Background(), &seed[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	users, err := svc.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 4 {
		t.Fatalf("expected 4 users, got %d", len(users))
	}

	want := map[string]bool{"recent": true, "stale": false, "never": false, "garbage": false}
	for _, u := range users {
		if u.IsActive != want[u.ID] {
			t.Fatalf("user %s: is_active = %v, want %v (stored value must be ignored)", u.ID, u.IsActive, want[u.ID])
		}
	}
}

func TestUserService_Update_ForbiddenForNonAdmin(t *testing.T) {
	svc, repo, _ := newUserFixture(t)
	if _, err := repo.Insert(context.Background(), &domain.User{ID: "john"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	name := "Jane"
	mortal := &domain.User{ID: "mortal-1", Role: domain.RoleSimpleMortal}
	_, err := svc.Update(context.Background(), "john", ports.UpdateUserInput{FirstName: &name}, mortal)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "john", ports.UpdateUserInput{FirstName: &name}, nil); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a nil caller, got %v", err)
	}
	if len(repo.updates) != 0 {
		t.Fatalf("store must not be touched on a forbidden update")
	}
}

func TestUserService_Update_RejectsUnknownRole(t *testing.T) {
	svc, repo, _ := newUserFixture(t)
	if _, err := repo.Insert(context.Background(), &domain.User{ID: "john"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	role := "demi-god"
	admin := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}
	_, err := svc.Update(context.Background(), "john", ports.UpdateUserInput{Role: &role}, admin)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(repo.updates) != 0 {
		t.Fatalf("store must not be touched for an unknown role")
	}
}

func TestUserService_Update_EmptyPartialIsNoOp(t *testing.T) {
	svc, repo, _ := newUserFixture(t)
	if _, err := repo.Insert(context.Background(), &domain.User{ID: "john", FirstName: "John"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	user, err := svc.Update(context.Background(), "john", ports.UpdateUserInput{}, &domain.User{ID: "admin-1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.FirstName != "John" {
		t.Fatalf("expected current record back, got %+v", user)
	}
	if len(repo.updates) != 0 {
		t.Fatalf("empty partial must skip the write, got %d writes", len(repo.updates))
	}
}

func TestUserService_Update_DropsNilFields(t *testing.T) {
	svc, repo, audit := newUserFixture(t)
	if _, err := repo.Insert(context.Background(), &domain.User{ID: "john", FirstName: "John", LastName: "Doe"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	name := "Jane"
	admin := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}
	user, err := svc.Update(context.Background(), "john", ports.UpdateUserInput{FirstName: &name}, admin)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.FirstName != "Jane" || user.LastName != "Doe" {
		t.Fatalf("unexpected record after partial update: %+v", user)
	}
	if len(repo.updates) != 1 {
		t.Fatalf("expected one write, got %d", len(repo.updates))
	}
	if _, present := repo.updates[0]["last_name"]; present {
		t.Fatalf("nil field must be dropped from the partial")
	}

	events := audit.all()
	if len(events) != 1 || events[0].Action != domain.AuditUserUpdated {
		t.Fatalf("expected an updated audit event, got %v", events)
	}
	if events[0].Actor != "admin-1" {
		t.Fatalf("expected the admin caller as actor, got %q", events[0].Actor)
	}
}

func TestUserService_Update_NoOpModificationReturnsCurrent(t *testing.T) {
	svc, repo, _ := newUserFixture(t)
	if _, err := repo.Insert(context.Background(), &domain.User{ID: "john", FirstName: "John"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	same := "John"
	user, err := svc.Update(context.Background(), "john", ports.UpdateUserInput{FirstName: &same}, &domain.User{ID: "admin-1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("expected fallthrough to current record, got %v", err)
	}
	if user.FirstName != "John" {
		t.Fatalf("unexpected record: %+v", user)
	}
}

func TestUserService_Update_UnknownID(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	name := "Jane"
	_, err := svc.Update(context.Background(), "ghost", ports.UpdateUserInput{FirstName: &name}, &domain.User{ID: "admin-1", Role: domain.RoleAdmin})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete_Idempotence(t *testing.T) {
	svc, repo, audit := newUserFixture(t)
	if _, err := repo.Insert(context.Background(), &domain.User{ID: "john"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.Delete(context.Background(), "john", "admin-1"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "john", "admin-1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("second delete: expected ErrUserNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "never-existed", ""); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown id, got %v", err)
	}

	events := audit.all()
	if len(events) != 1 || events[0].Actor != "admin-1" {
		t.Fatalf("expected one deleted event attributed to admin-1, got %v", events)
	}
}
