package auth

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"imovia.org/internal/ids"
)

var _ Store = (*InMemory)(nil)

// InMemory implements Store with in-process concurrency safety. Used in tests
// and when the service runs without a database DSN.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[string]*Provider
	byEmail map[string]string
}

// NewInMemory creates an empty provider store.
func NewInMemory() *InMemory {
	return &InMemory{
		byID:    make(map[string]*Provider),
		byEmail: make(map[string]string),
	}
}

func (s *InMemory) Create(ctx context.Context, p *Provider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(p.Email))
	if _, ok := s.byEmail[email]; ok {
		return ErrAlreadyExists
	}
	if p.ID == "" {
		p.ID = ids.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	s.byID[p.ID] = &cp
	s.byEmail[email] = p.ID
	return nil
}

func (s *InMemory) Find(ctx context.Context, id string) (*Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *InMemory) FindByEmail(ctx context.Context, email string) (*Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s.byID[id]
	return &cp, nil
}

func (s *InMemory) List(ctx context.Context) ([]*Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]*Provider, 0, len(s.byID))
	for _, p := range s.byID {
		cp := *p
		res = append(res, &cp)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

// Delete removes a provider. Only used by tests exercising the
// valid-token-but-deleted-account path.
func (s *InMemory) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.byID[id]; ok {
		delete(s.byEmail, strings.ToLower(p.Email))
		delete(s.byID, id)
	}
}
