package estate

import (
	"context"
	"sort"
	"sync"
	"time"

	"imovia.org/internal/ids"
)

var _ Store = (*InMemory)(nil)

// InMemory implements Store with in-process concurrency safety. Used in tests
// and when the service runs without a database DSN.
type InMemory struct {
	mu         sync.RWMutex
	properties map[string]*Property
}

// NewInMemory creates an empty property store.
func NewInMemory() *InMemory {
	return &InMemory{properties: make(map[string]*Property)}
}

func (s *InMemory) CreateProperty(ctx context.Context, p *Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = ids.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := clone(p)
	s.properties[p.ID] = cp
	return nil
}

func (s *InMemory) UpdateProperty(ctx context.Context, p *Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.properties[p.ID]
	if !ok {
		return ErrNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	p.Units = existing.Units
	p.RegistryRecords = existing.RegistryRecords
	p.UtilityAccounts = existing.UtilityAccounts
	s.properties[p.ID] = clone(p)
	return nil
}

func (s *InMemory) FindProperty(ctx context.Context, id string) (*Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.properties[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(p), nil
}

func (s *InMemory) ListProperties(ctx context.Context, clientID string) ([]*Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []*Property
	for _, p := range s.properties {
		if clientID != "" && p.ClientID != clientID {
			continue
		}
		res = append(res, clone(p))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *InMemory) AddUnit(ctx context.Context, u *Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[u.PropertyID]
	if !ok {
		return ErrNotFound
	}
	if u.ID == "" {
		u.ID = ids.New()
	}
	u.CreatedAt = time.Now().UTC()
	p.Units = append(p.Units, *u)
	return nil
}

func (s *InMemory) AddRegistryRecord(ctx context.Context, rec *RegistryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[rec.PropertyID]
	if !ok {
		return ErrNotFound
	}
	if rec.ID == "" {
		rec.ID = ids.New()
	}
	if rec.RegisteredAt.IsZero() {
		rec.RegisteredAt = time.Now().UTC()
	}
	// A new current record demotes every other record of the property.
	if rec.Current {
		for i := range p.RegistryRecords {
			p.RegistryRecords[i].Current = false
		}
	}
	p.RegistryRecords = append(p.RegistryRecords, *rec)
	return nil
}

func (s *InMemory) AddUtilityAccount(ctx context.Context, acc *UtilityAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[acc.PropertyID]
	if !ok {
		return ErrNotFound
	}
	if acc.ID == "" {
		acc.ID = ids.New()
	}
	acc.CreatedAt = time.Now().UTC()
	p.UtilityAccounts = append(p.UtilityAccounts, *acc)
	return nil
}

func clone(p *Property) *Property {
	cp := *p
	cp.Units = append([]Unit(nil), p.Units...)
	cp.RegistryRecords = append([]RegistryRecord(nil), p.RegistryRecords...)
	cp.UtilityAccounts = append([]UtilityAccount(nil), p.UtilityAccounts...)
	return &cp
}
