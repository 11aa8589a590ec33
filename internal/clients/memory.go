package clients

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
	mu        sync.RWMutex
	clients   map[string]*Client
	byEmail   map[string]string
	partners  map[string]*Partner
	contracts map[string]*Contract
}

// NewInMemory creates empty client storage.
func NewInMemory() *InMemory {
	return &InMemory{
		clients:   make(map[string]*Client),
		byEmail:   make(map[string]string),
		partners:  make(map[string]*Partner),
		contracts: make(map[string]*Contract),
	}
}

func (s *InMemory) CreateClient(ctx context.Context, c *Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(strings.TrimSpace(c.Email))
	if _, ok := s.byEmail[email]; ok {
		return ErrAlreadyExists
	}
	if c.ID == "" {
		c.ID = ids.New()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	cp := cloneClient(c)
	s.clients[c.ID] = cp
	s.byEmail[email] = c.ID
	return nil
}

// UpdateClient replaces the shared fields and status; the kind, email and the
// kind-specific details are immutable.
func (s *InMemory) UpdateClient(ctx context.Context, c *Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.clients[c.ID]
	if !ok {
		return ErrNotFound
	}
	c.Kind = existing.Kind
	c.Email = existing.Email
	c.Person = existing.Person
	c.CompanyInfo = existing.CompanyInfo
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	s.clients[c.ID] = cloneClient(c)
	return nil
}

func (s *InMemory) FindClient(ctx context.Context, id string) (*Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneClient(c), nil
}

func (s *InMemory) ListClients(ctx context.Context, kind Kind) ([]*Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []*Client
	for _, c := range s.clients {
		if kind != "" && c.Kind != kind {
			continue
		}
		res = append(res, cloneClient(c))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *InMemory) CreatePartner(ctx context.Context, p *Partner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = ids.New()
	}
	p.CreatedAt = time.Now().UTC()
	cp := *p
	s.partners[p.ID] = &cp
	return nil
}

func (s *InMemory) ListPartners(ctx context.Context, companyID string) ([]*Partner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []*Partner
	for _, p := range s.partners {
		if p.CompanyID != companyID {
			continue
		}
		cp := *p
		res = append(res, &cp)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *InMemory) CreateContract(ctx context.Context, c *Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = ids.New()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	cp := *c
	s.contracts[c.ID] = &cp
	return nil
}

func (s *InMemory) UpdateContract(ctx context.Context, c *Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.contracts[c.ID]
	if !ok {
		return ErrNotFound
	}
	c.ClientID = existing.ClientID
	c.ProviderID = existing.ProviderID
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	cp := *c
	s.contracts[c.ID] = &cp
	return nil
}

func (s *InMemory) FindContract(ctx context.Context, id string) (*Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contracts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *InMemory) ListContracts(ctx context.Context, clientID, providerID string) ([]*Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []*Contract
	for _, c := range s.contracts {
		if clientID != "" && c.ClientID != clientID {
			continue
		}
		if providerID != "" && c.ProviderID != providerID {
			continue
		}
		cp := *c
		res = append(res, &cp)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func cloneClient(c *Client) *Client {
	cp := *c
	if c.Person != nil {
		person := *c.Person
		cp.Person = &person
	}
	if c.CompanyInfo != nil {
		company := *c.CompanyInfo
		cp.CompanyInfo = &company
	}
	return &cp
}
