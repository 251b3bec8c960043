package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/veridian/identity-service/internal/core/domain"
)

func seedUser(repo *stubUserRepo, uuid, username, email string) *domain.User {
	u := &domain.User{
		UUID:      uuid,
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	created, _ := repo.Create(context.Background(), u)
	return created
}

func TestCredentialValidator_Registration_PasswordMismatchWinsFirst(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "u1", "alice", "alice@example.com")
	v := NewCredentialValidator(repo, &stubCompromised{}, zerolog.Nop())

	// The username collides too, but the mismatch check runs first.
	err := v.ValidateForRegistration(context.Background(), "alice", "other@example.com", "Secr3t!A", "different")
	if !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestCredentialValidator_Registration_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "u1", "alice", "alice@example.com")
	v := NewCredentialValidator(repo, &stubCompromised{}, zerolog.Nop())

	err := v.ValidateForRegistration(context.Background(), "alice", "new@example.com", "Secr3t!A", "Secr3t!A")
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestCredentialValidator_Registration_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(repo, "u1", "alice", "alice@example.com")
	v := NewCredentialValidator(repo, &stubCompromised{}, zerolog.Nop())

	err := v.ValidateForRegistration(context.Background(), "bob", "alice@example.com", "Secr3t!A", "Secr3t!A")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestCredentialValidator_Registration_CompromisedPassword(t *testing.T) {
	repo := newStubUserRepo()
	checker := &stubCompromised{passwords: map[string]bool{"password123": true}}
	v := NewCredentialValidator(repo, checker, zerolog.Nop())

	err := v.ValidateForRegistration(context.Background(), "bob", "bob@example.com", "password123", "password123")
	if !errors.Is(err, domain.ErrCompromisedPassword) {
		t.Fatalf("expected ErrCompromisedPassword, got %v", err)
	}
}

func TestCredentialValidator_Registration_OracleFailureFailsOpen(t *testing.T) {
	repo := newStubUserRepo()
	checker := &stubCompromised{err: errors.New("redis down")}
	v := NewCredentialValidator(repo, checker, zerolog.Nop())

	if err := v.ValidateForRegistration(context.Background(), "bob", "bob@example.com", "Secr3t!A", "Secr3t!A"); err != nil {
		t.Fatalf("expected registration to proceed with broken oracle, got %v", err)
	}
}

func TestCredentialValidator_Update_SelfCollisionPermitted(t *testing.T) {
	repo := newStubUserRepo()
	alice := seedUser(repo, "u1", "alice", "alice@example.com")
	v := NewCredentialValidator(repo, &stubCompromised{}, zerolog.Nop())

	// Updating to her own username and email must pass.
	if err := v.ValidateForUpdate(context.Background(), alice, "alice", "alice@example.com"); err != nil {
		t.Fatalf("self-collision should be permitted, got %v", err)
	}
}

func TestCredentialValidator_Update_OtherUserCollisionRejected(t *testing.T) {
	repo := newStubUserRepo()
	alice := seedUser(repo, "u1", "alice", "alice@example.com")
	seedUser(repo, "u2", "bob", "bob@example.com")
	v := NewCredentialValidator(repo, &stubCompromised{}, zerolog.Nop())

	if err := v.ValidateForUpdate(context.Background(), alice, "bob", "alice@example.com"); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	if err := v.ValidateForUpdate(context.Background(), alice, "alice", "bob@example.com"); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}
