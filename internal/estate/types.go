package estate

import (
	"errors"
	"time"
)

// Occupancy is the occupation state of a property or one of its units.
type Occupancy string

const (
	Occupied Occupancy = "occupied"
	Vacant   Occupancy = "vacant"
)

// UtilityType classifies a utility account attached to a property.
type UtilityType string

const (
	UtilityEnergy    UtilityType = "energy"
	UtilityWater     UtilityType = "water"
	UtilityTelephony UtilityType = "telephony"
	UtilityOther     UtilityType = "other"
)

// UtilityStatus is the lifecycle state of a utility account.
type UtilityStatus string

const (
	UtilityActive    UtilityStatus = "active"
	UtilitySuspended UtilityStatus = "suspended"
	UtilityClosed    UtilityStatus = "closed"
)

// Property is a real-estate asset owned by exactly one client. Units, registry
// records and utility accounts hang off it.
type Property struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	Street      string    `json:"street"`
	Number      string    `json:"number,omitempty"`
	Complement  string    `json:"complement,omitempty"`
	District    string    `json:"district"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	PostalCode  string    `json:"postal_code"`
	TotalAreaM2 float64   `json:"total_area_m2"`
	Occupancy   Occupancy `json:"occupancy"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Units           []Unit           `json:"units,omitempty"`
	RegistryRecords []RegistryRecord `json:"registry_records,omitempty"`
	UtilityAccounts []UtilityAccount `json:"utility_accounts,omitempty"`
}

// Unit is a subdivision of a property with its own floor area. The area is
// the allocation basis for proportional IPTU.
type Unit struct {
	ID          string    `json:"id"`
	PropertyID  string    `json:"property_id"`
	Name        string    `json:"name"`
	AreaM2      float64   `json:"area_m2"`
	Description string    `json:"description,omitempty"`
	ContractID  string    `json:"contract_id,omitempty"`
	Occupancy   Occupancy `json:"occupancy"`
	CreatedAt   time.Time `json:"created_at"`
}

// RegistryRecord is a land-registry enrollment for a property. At most one
// record per property carries the current flag.
type RegistryRecord struct {
	ID                   string    `json:"id"`
	PropertyID           string    `json:"property_id"`
	Enrollment           string    `json:"enrollment"`
	RegistryOffice       string    `json:"registry_office"`
	CNM                  string    `json:"cnm,omitempty"`
	MunicipalInscription string    `json:"municipal_inscription,omitempty"`
	RegisteredAt         time.Time `json:"registered_at"`
	Current              bool      `json:"current"`
}

// UtilityAccount is a utility service account (energy, water, ...) attached
// to a property.
type UtilityAccount struct {
	ID            string        `json:"id"`
	PropertyID    string        `json:"property_id"`
	Type          UtilityType   `json:"type"`
	AccountNumber string        `json:"account_number"`
	Supplier      string        `json:"supplier,omitempty"`
	Status        UtilityStatus `json:"status"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

var (
	ErrNotFound      = errors.New("estate: not found")
	ErrInvalidInput  = errors.New("estate: invalid input")
	ErrInvalidAmount = errors.New("estate: invalid amount")
)

// ValidUtilityType reports whether t is one of the known utility types.
func ValidUtilityType(t UtilityType) bool {
	switch t {
	case UtilityEnergy, UtilityWater, UtilityTelephony, UtilityOther:
		return true
	}
	return false
}

// ValidUtilityStatus reports whether s is a known utility account status.
func ValidUtilityStatus(s UtilityStatus) bool {
	switch s {
	case UtilityActive, UtilitySuspended, UtilityClosed:
		return true
	}
	return false
}

// ValidOccupancy reports whether o is a known occupancy state.
func ValidOccupancy(o Occupancy) bool {
	return o == Occupied || o == Vacant
}
