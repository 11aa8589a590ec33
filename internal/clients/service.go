package clients

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Service provides client, partner and contract operations.
type Service struct {
	store Store
}

// NewService constructs the clients service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ClientParams carries the fields needed to create a client. Person is
// required for individual clients, CompanyInfo for company clients.
type ClientParams struct {
	Kind        Kind
	Name        string
	Email       string
	Phone       string
	Address     string
	Person      *PersonDetails
	CompanyInfo *CompanyDetails
}

// CreateClient validates the shared and kind-specific fields and persists a
// new client.
func (s *Service) CreateClient(ctx context.Context, params ClientParams) (*Client, error) {
	name := strings.TrimSpace(params.Name)
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if strings.TrimSpace(params.Phone) == "" || strings.TrimSpace(params.Address) == "" {
		return nil, fmt.Errorf("%w: phone and address are required", ErrInvalidInput)
	}

	c := &Client{
		Kind:    params.Kind,
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(params.Phone),
		Address: strings.TrimSpace(params.Address),
		Status:  Active,
	}
	switch params.Kind {
	case Individual:
		if params.Person == nil {
			return nil, fmt.Errorf("%w: person details are required for individual clients", ErrInvalidInput)
		}
		if !validCPF(params.Person.CPF) {
			return nil, fmt.Errorf("%w: cpf must be 11 digits", ErrInvalidInput)
		}
		if strings.TrimSpace(params.Person.RG) == "" {
			return nil, fmt.Errorf("%w: rg is required", ErrInvalidInput)
		}
		if params.Person.BirthDate.IsZero() {
			return nil, fmt.Errorf("%w: birth_date is required", ErrInvalidInput)
		}
		person := *params.Person
		person.RG = strings.TrimSpace(person.RG)
		c.Person = &person
	case Company:
		if params.CompanyInfo == nil {
			return nil, fmt.Errorf("%w: company details are required for company clients", ErrInvalidInput)
		}
		if !validCNPJ(params.CompanyInfo.CNPJ) {
			return nil, fmt.Errorf("%w: cnpj must be 14 digits", ErrInvalidInput)
		}
		if strings.TrimSpace(params.CompanyInfo.LegalName) == "" ||
			strings.TrimSpace(params.CompanyInfo.TradeName) == "" ||
			strings.TrimSpace(params.CompanyInfo.BusinessAddress) == "" {
			return nil, fmt.Errorf("%w: legal_name, trade_name and business_address are required", ErrInvalidInput)
		}
		company := *params.CompanyInfo
		c.CompanyInfo = &company
	default:
		return nil, fmt.Errorf("%w: unknown client kind %q", ErrInvalidInput, params.Kind)
	}

	if err := s.store.CreateClient(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateClientParams carries the mutable client fields. Kind, email and the
// kind-specific details are immutable after creation.
type UpdateClientParams struct {
	Name    string
	Phone   string
	Address string
	Status  Status
}

// UpdateClient replaces the shared fields and lifecycle status of a client.
func (s *Service) UpdateClient(ctx context.Context, id string, params UpdateClientParams) (*Client, error) {
	existing, err := s.store.FindClient(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(params.Phone) == "" || strings.TrimSpace(params.Address) == "" {
		return nil, fmt.Errorf("%w: phone and address are required", ErrInvalidInput)
	}
	status := params.Status
	if status == "" {
		status = existing.Status
	}
	if status != Active && status != Inactive {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, params.Status)
	}

	existing.Name = name
	existing.Phone = strings.TrimSpace(params.Phone)
	existing.Address = strings.TrimSpace(params.Address)
	existing.Status = status
	if err := s.store.UpdateClient(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// GetClient loads a client by ID.
func (s *Service) GetClient(ctx context.Context, id string) (*Client, error) {
	return s.store.FindClient(ctx, id)
}

// ListClients returns clients, optionally filtered by kind.
func (s *Service) ListClients(ctx context.Context, kind Kind) ([]*Client, error) {
	if kind != "" && kind != Individual && kind != Company {
		return nil, fmt.Errorf("%w: unknown client kind %q", ErrInvalidInput, kind)
	}
	return s.store.ListClients(ctx, kind)
}

// PartnerParams carries the fields needed to link a person to a company.
type PartnerParams struct {
	PersonID   string
	Role       PartnerRole
	AdmittedAt *time.Time
}

// AddPartner links an individual client to a company client. Both ends are
// checked against their expected kind.
func (s *Service) AddPartner(ctx context.Context, companyID string, params PartnerParams) (*Partner, error) {
	if !ValidRole(params.Role) {
		return nil, fmt.Errorf("%w: unknown partner role %q", ErrInvalidInput, params.Role)
	}
	company, err := s.store.FindClient(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.Kind != Company {
		return nil, fmt.Errorf("%w: client %s is not a company", ErrInvalidInput, companyID)
	}
	person, err := s.store.FindClient(ctx, params.PersonID)
	if err != nil {
		return nil, err
	}
	if person.Kind != Individual {
		return nil, fmt.Errorf("%w: client %s is not an individual", ErrInvalidInput, params.PersonID)
	}

	p := &Partner{
		CompanyID:  companyID,
		PersonID:   params.PersonID,
		Role:       params.Role,
		AdmittedAt: params.AdmittedAt,
	}
	if err := s.store.CreatePartner(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPartners returns the partners of a company client.
func (s *Service) ListPartners(ctx context.Context, companyID string) ([]*Partner, error) {
	if _, err := s.store.FindClient(ctx, companyID); err != nil {
		return nil, err
	}
	return s.store.ListPartners(ctx, companyID)
}

// CreateContract binds a client to a provider.
func (s *Service) CreateContract(ctx context.Context, clientID, providerID, details string) (*Contract, error) {
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(providerID) == "" {
		return nil, fmt.Errorf("%w: client_id and provider_id are required", ErrInvalidInput)
	}
	if strings.TrimSpace(details) == "" {
		return nil, fmt.Errorf("%w: details are required", ErrInvalidInput)
	}
	if _, err := s.store.FindClient(ctx, clientID); err != nil {
		return nil, err
	}
	c := &Contract{
		ClientID:   clientID,
		ProviderID: providerID,
		Details:    strings.TrimSpace(details),
	}
	if err := s.store.CreateContract(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateContract replaces the details text of a contract. The client and
// provider ends are immutable.
func (s *Service) UpdateContract(ctx context.Context, id, details string) (*Contract, error) {
	if strings.TrimSpace(details) == "" {
		return nil, fmt.Errorf("%w: details are required", ErrInvalidInput)
	}
	c, err := s.store.FindContract(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Details = strings.TrimSpace(details)
	if err := s.store.UpdateContract(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetContract loads a contract by ID.
func (s *Service) GetContract(ctx context.Context, id string) (*Contract, error) {
	return s.store.FindContract(ctx, id)
}

// ListContracts returns contracts, optionally filtered by client and provider.
func (s *Service) ListContracts(ctx context.Context, clientID, providerID string) ([]*Contract, error) {
	return s.store.ListContracts(ctx, clientID, providerID)
}

func validCPF(cpf string) bool { return digitsOnly(cpf, 11) }

func validCNPJ(cnpj string) bool { return digitsOnly(cnpj, 14) }

func digitsOnly(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
