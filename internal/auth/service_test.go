package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService(t *testing.T) (*Service, *InMemory) {
	t.Helper()
	tokens, err := NewTokens("test-secret", WithTokenTTL(time.Hour))
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	store := NewInMemory()
	return NewService(store, tokens), store
}

func register(t *testing.T, svc *Service) *Provider {
	t.Helper()
	p, err := svc.Register(context.Background(), RegisterParams{
		Name:     "Ana Souza",
		Email:    "Ana.Souza@Example.com",
		Password: "S3nh@forte",
		Service:  "property management",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return p
}

func TestRegisterNormalizesEmailAndHashesPassword(t *testing.T) {
	svc, _ := newTestService(t)
	p := register(t, svc)

	if p.Email != "ana.souza@example.com" {
		t.Fatalf("email not normalized: %s", p.Email)
	}
	if p.PasswordHash == "" || p.PasswordHash == "S3nh@forte" {
		t.Fatalf("password stored in the clear or missing")
	}
	if p.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc)
	_, err := svc.Register(context.Background(), RegisterParams{
		Name:     "Outra Ana",
		Email:    "ana.souza@example.com",
		Password: "S3nh@forte",
		Service:  "cleaning",
	})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	cases := []RegisterParams{
		{Name: "", Email: "a@b.com", Password: "longenough", Service: "x"},
		{Name: "A", Email: "not-an-email", Password: "longenough", Service: "x"},
		{Name: "A", Email: "a@b.com", Password: "short", Service: "x"},
		{Name: "A", Email: "a@b.com", Password: "longenough", Service: ""},
	}
	for i, params := range cases {
		if _, err := svc.Register(context.Background(), params); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _ := newTestService(t)
	p := register(t, svc)

	sess, err := svc.Login(context.Background(), "ana.souza@example.com", "S3nh@forte")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Provider.ID != p.ID {
		t.Fatalf("unexpected provider: %s", sess.Provider.ID)
	}
	if time.Until(sess.ExpiresAt) <= 0 {
		t.Fatalf("expected future expiry, got %v", sess.ExpiresAt)
	}

	got, err := svc.Authenticate(context.Background(), sess.Token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != p.ID {
		t.Fatalf("authenticated as %s, want %s", got.ID, p.ID)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc)

	_, errUnknown := svc.Login(context.Background(), "nobody@example.com", "S3nh@forte")
	_, errWrong := svc.Login(context.Background(), "ana.souza@example.com", "wrong-password")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Fatalf("failure messages differ: %q vs %q", errUnknown, errWrong)
	}
}

func TestAuthenticateRejectsInvalidToken(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Authenticate(context.Background(), "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthenticateDeletedAccount(t *testing.T) {
	svc, store := newTestService(t)
	p := register(t, svc)
	sess, err := svc.Login(context.Background(), "ana.souza@example.com", "S3nh@forte")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	store.Delete(context.Background(), p.ID)

	// The token still carries a valid signature, but the account is gone.
	// Externally this must be indistinguishable from an invalid token.
	if _, err := svc.Authenticate(context.Background(), sess.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
