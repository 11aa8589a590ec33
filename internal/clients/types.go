package clients

import (
	"errors"
	"time"
)

// Kind discriminates the two client variants. Code that needs kind-specific
// behavior switches on the tag; there is no dispatch hierarchy.
type Kind string

const (
	Individual Kind = "individual"
	Company    Kind = "company"
)

// Status is the client lifecycle state.
type Status string

const (
	Active   Status = "active"
	Inactive Status = "inactive"
)

// Client is an individual or company that owns properties and holds
// contracts. Exactly one of Person/CompanyInfo is set, matching Kind.
type Client struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Person      *PersonDetails  `json:"person,omitempty"`
	CompanyInfo *CompanyDetails `json:"company,omitempty"`
}

// PersonDetails are the individual-specific fields.
type PersonDetails struct {
	CPF       string    `json:"cpf"`
	RG        string    `json:"rg"`
	BirthDate time.Time `json:"birth_date"`
}

// CompanyDetails are the company-specific fields.
type CompanyDetails struct {
	CNPJ              string     `json:"cnpj"`
	LegalName         string     `json:"legal_name"`
	TradeName         string     `json:"trade_name"`
	StateRegistration string     `json:"state_registration,omitempty"`
	BusinessAddress   string     `json:"business_address"`
	FoundedAt         *time.Time `json:"founded_at,omitempty"`
}

// PartnerRole is the position an individual holds in a company.
type PartnerRole string

const (
	RolePartner         PartnerRole = "partner"
	RoleManagingPartner PartnerRole = "managing_partner"
	RoleAdministrator   PartnerRole = "administrator"
	RoleDirector        PartnerRole = "director"
	RolePresident       PartnerRole = "president"
)

// Partner links a company client to an individual client acting as its
// partner or representative.
type Partner struct {
	ID         string      `json:"id"`
	CompanyID  string      `json:"company_id"`
	PersonID   string      `json:"person_id"`
	Role       PartnerRole `json:"role"`
	AdmittedAt *time.Time  `json:"admitted_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Contract binds a client to a contracted provider.
type Contract struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"client_id"`
	ProviderID string    `json:"provider_id"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

var (
	ErrNotFound      = errors.New("clients: not found")
	ErrAlreadyExists = errors.New("clients: already exists")
	ErrInvalidInput  = errors.New("clients: invalid input")
)

// ValidRole reports whether r is a known partner role.
func ValidRole(r PartnerRole) bool {
	switch r {
	case RolePartner, RoleManagingPartner, RoleAdministrator, RoleDirector, RolePresident:
		return true
	}
	return false
}
