package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

const minPasswordLength = 8

// Service wires credential storage and token issuance into the operations the
// HTTP layer consumes.
type Service struct {
	store  Store
	tokens *Tokens
}

// NewService constructs the credential and session manager.
func NewService(store Store, tokens *Tokens) *Service {
	return &Service{store: store, tokens: tokens}
}

// RegisterParams carries already shape-validated registration input.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Service  string
}

// Register hashes the password and persists a new provider. The email is
// normalized to lower case before the uniqueness check.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*Provider, error) {
	name := strings.TrimSpace(params.Name)
	email := strings.ToLower(strings.TrimSpace(params.Email))
	service := strings.TrimSpace(params.Service)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(params.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if service == "" {
		return nil, fmt.Errorf("%w: service is required", ErrInvalidInput)
	}

	hash, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}
	p := &Provider{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Service:      service,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Session is the result of a successful login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Provider  *Provider `json:"provider"`
}

// Login verifies the credentials and issues a session token. Unknown email
// and wrong password produce the same ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	p, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !VerifyPassword(password, p.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	token, expiresAt, err := s.tokens.Issue(p.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt, Provider: p}, nil
}

// Authenticate resolves a bearer token to a provider. An invalid or expired
// token and a valid token whose account no longer exists both surface as
// ErrInvalidToken; the caller must not leak which case occurred.
func (s *Service) Authenticate(ctx context.Context, token string) (*Provider, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	p, err := s.store.Find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return p, nil
}

// GetProvider loads a provider by ID.
func (s *Service) GetProvider(ctx context.Context, id string) (*Provider, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.store.Find(ctx, id)
}

// ListProviders returns all registered providers.
func (s *Service) ListProviders(ctx context.Context) ([]*Provider, error) {
	return s.store.List(ctx)
}
