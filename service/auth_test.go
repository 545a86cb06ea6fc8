package service

import (
	"errors"
	"path/filepath"
	"testing"

	"cinebook/store"
)

func testAuth(t *testing.T) *Auth {
	t.Helper()
	return NewAuth(store.NewUsers(filepath.Join(t.TempDir(), "users.csv")))
}

func TestRegisterAndLogin(t *testing.T) {
	auth := testAuth(t)

	user, err := auth.Register("Jane", "jane@example.com", "hunter22")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if user.Name != "Jane" || user.RegisteredAt.IsZero() {
		t.Fatalf("unexpected user: %+v", user)
	}

	logged, err := auth.Login("JANE@example.com", "hunter22")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if logged.Name != "Jane" {
		t.Fatalf("unexpected user: %+v", logged)
	}

	if _, err := auth.Login("jane@example.com", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
	if _, err := auth.Login("nobody@example.com", "hunter22"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	auth := testAuth(t)

	if _, err := auth.Register("J", "jane@example.com", "hunter22"); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if _, err := auth.Register("Jane", "not-an-email", "hunter22"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := auth.Register("Jane", "jane@example", "hunter22"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, err := auth.Register("Jane", "jane@example.com", "pw"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	if _, err := auth.Register("Jane", "jane@example.com", "hunter22"); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.Register("Jane Two", "Jane@Example.com", "hunter23"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}
