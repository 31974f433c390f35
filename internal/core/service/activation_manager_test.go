package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/premios/awards-api/internal/core/domain"
)

func createDisabledUser(t *testing.T, repo *stubUserRepo) *domain.User {
	t.Helper()
	user, err := repo.Create(context.Background(), &domain.User{
		Username:  "dani",
		Email:     "dani@x.com",
		Enabled:   false,
		Roles:     []domain.Role{domain.RoleUser},
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestActivationTokenManager_Issue(t *testing.T) {
	repo := newStubUserRepo()
	mgr := NewActivationTokenManager(repo, zerolog.Nop())
	user := createDisabledUser(t, repo)

	token, err := mgr.Issue(context.Background(), user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("empty activation token")
	}

	stored, err := repo.FindByActivationToken(context.Background(), token)
	if err != nil {
		t.Fatalf("token not persisted: %v", err)
	}
	if stored.Enabled {
		t.Fatalf("user must stay disabled until the token is consumed")
	}
}

func TestActivationTokenManager_ConsumeActivates(t *testing.T) {
	repo := newStubUserRepo()
	mgr := NewActivationTokenManager(repo, zerolog.Nop())
	user := createDisabledUser(t, repo)

	token, err := mgr.Issue(context.Background(), user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	outcome, err := mgr.Consume(context.Background(), token)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if outcome != Activated {
		t.Fatalf("expected Activated, got %v", outcome)
	}

	updated, err := repo.FindByUsername(context.Background(), "dani")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if !updated.Enabled {
		t.Fatalf("enabled flag not set")
	}
	if updated.ActivationToken != nil {
		t.Fatalf("activation token not cleared")
	}
}

func TestActivationTokenManager_ConsumeTwiceIsNoOp(t *testing.T) {
	repo := newStubUserRepo()
	mgr := NewActivationTokenManager(repo, zerolog.Nop())
	user := createDisabledUser(t, repo)

	token, err := mgr.Issue(context.Background(), user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := mgr.Consume(context.Background(), token); err != nil {
		t.Fatalf("first consume: %v", err)
	}

	// Second click on the same link: no error, no state change.
	outcome, err := mgr.Consume(context.Background(), token)
	if err != nil {
		t.Fatalf("second consume must not fail: %v", err)
	}
	if outcome != ActivationNoOp {
		t.Fatalf("expected ActivationNoOp, got %v", outcome)
	}
}

func TestActivationTokenManager_UnknownTokenIsNoOp(t *testing.T) {
	repo := newStubUserRepo()
	mgr := NewActivationTokenManager(repo, zerolog.Nop())

	outcome, err := mgr.Consume(context.Background(), "never-issued")
	if err != nil {
		t.Fatalf("unknown token must not fail: %v", err)
	}
	if outcome != ActivationNoOp {
		t.Fatalf("expected ActivationNoOp, got %v", outcome)
	}
}

func TestActivationTokenManager_AlreadyEnabledIsNoOp(t *testing.T) {
	repo := newStubUserRepo()
	mgr := NewActivationTokenManager(repo, zerolog.Nop())
	user := createDisabledUser(t, repo)

	token, err := mgr.Issue(context.Background(), user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Token survived an enablement that happened some other way.
	stored, _ := repo.FindByActivationToken(context.Background(), token)
	stored.Enabled = true
	if err := repo.Update(context.Background(), stored); err != nil {
		t.Fatalf("update: %v", err)
	}

	outcome, err := mgr.Consume(context.Background(), token)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if outcome != ActivationNoOp {
		t.Fatalf("expected ActivationNoOp, got %v", outcome)
	}
}
