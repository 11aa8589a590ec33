package estate

import (
	"context"
	"fmt"
	"strings"
)

// Service provides property management operations and the IPTU allocation
// entry point used by the HTTP layer.
type Service struct {
	store Store
}

// NewService constructs the estate service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// PropertyParams carries the fields needed to create a property.
type PropertyParams struct {
	ClientID    string
	Street      string
	Number      string
	Complement  string
	District    string
	City        string
	State       string
	PostalCode  string
	TotalAreaM2 float64
	Occupancy   Occupancy
}

// CreateProperty validates and persists a new property.
func (s *Service) CreateProperty(ctx context.Context, params PropertyParams) (*Property, error) {
	p, err := s.validateProperty(params)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateProperty(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) validateProperty(params PropertyParams) (*Property, error) {
	state := strings.ToUpper(strings.TrimSpace(params.State))
	if strings.TrimSpace(params.ClientID) == "" {
		return nil, fmt.Errorf("%w: client_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(params.Street) == "" || strings.TrimSpace(params.District) == "" ||
		strings.TrimSpace(params.City) == "" || strings.TrimSpace(params.PostalCode) == "" {
		return nil, fmt.Errorf("%w: street, district, city and postal_code are required", ErrInvalidInput)
	}
	if len(state) != 2 {
		return nil, fmt.Errorf("%w: state must be a 2-letter code", ErrInvalidInput)
	}
	if params.TotalAreaM2 <= 0 {
		return nil, fmt.Errorf("%w: total_area_m2 must be > 0", ErrInvalidInput)
	}
	occupancy := params.Occupancy
	if occupancy == "" {
		occupancy = Vacant
	}
	if !ValidOccupancy(occupancy) {
		return nil, fmt.Errorf("%w: unknown occupancy %q", ErrInvalidInput, params.Occupancy)
	}

	return &Property{
		ClientID:    params.ClientID,
		Street:      strings.TrimSpace(params.Street),
		Number:      strings.TrimSpace(params.Number),
		Complement:  strings.TrimSpace(params.Complement),
		District:    strings.TrimSpace(params.District),
		City:        strings.TrimSpace(params.City),
		State:       state,
		PostalCode:  strings.TrimSpace(params.PostalCode),
		TotalAreaM2: params.TotalAreaM2,
		Occupancy:   occupancy,
	}, nil
}

// UpdateProperty replaces the mutable fields of an existing property. The
// owning client and the attachments are not touched.
func (s *Service) UpdateProperty(ctx context.Context, id string, params PropertyParams) (*Property, error) {
	existing, err := s.store.FindProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	params.ClientID = existing.ClientID
	validated, err := s.validateProperty(params)
	if err != nil {
		return nil, err
	}
	validated.ID = id
	if err := s.store.UpdateProperty(ctx, validated); err != nil {
		return nil, err
	}
	return s.store.FindProperty(ctx, id)
}

// GetProperty loads a property with its units, registry records and utility
// accounts.
func (s *Service) GetProperty(ctx context.Context, id string) (*Property, error) {
	return s.store.FindProperty(ctx, id)
}

// ListProperties returns properties, optionally filtered by owning client.
func (s *Service) ListProperties(ctx context.Context, clientID string) ([]*Property, error) {
	return s.store.ListProperties(ctx, clientID)
}

// UnitParams carries the fields needed to attach a unit to a property.
type UnitParams struct {
	Name        string
	AreaM2      float64
	Description string
	ContractID  string
	Occupancy   Occupancy
}

// AddUnit attaches a sub-unit to an existing property. A zero area is
// allowed (the unit is simply never eligible for allocation); a negative
// area is not.
func (s *Service) AddUnit(ctx context.Context, propertyID string, params UnitParams) (*Unit, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, fmt.Errorf("%w: unit name is required", ErrInvalidInput)
	}
	if params.AreaM2 < 0 {
		return nil, fmt.Errorf("%w: area_m2 must be >= 0", ErrInvalidInput)
	}
	occupancy := params.Occupancy
	if occupancy == "" {
		occupancy = Vacant
	}
	if !ValidOccupancy(occupancy) {
		return nil, fmt.Errorf("%w: unknown occupancy %q", ErrInvalidInput, params.Occupancy)
	}
	u := &Unit{
		PropertyID:  propertyID,
		Name:        strings.TrimSpace(params.Name),
		AreaM2:      params.AreaM2,
		Description: strings.TrimSpace(params.Description),
		ContractID:  strings.TrimSpace(params.ContractID),
		Occupancy:   occupancy,
	}
	if err := s.store.AddUnit(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ListUnits returns the units of a property.
func (s *Service) ListUnits(ctx context.Context, propertyID string) ([]Unit, error) {
	p, err := s.store.FindProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return p.Units, nil
}

// RegistryRecordParams carries the fields for a new registry record.
type RegistryRecordParams struct {
	Enrollment           string
	RegistryOffice       string
	CNM                  string
	MunicipalInscription string
	Current              bool
}

// AddRegistryRecord attaches a registry record. Marking the new record as
// current clears the flag on every other record of the property.
func (s *Service) AddRegistryRecord(ctx context.Context, propertyID string, params RegistryRecordParams) (*RegistryRecord, error) {
	if strings.TrimSpace(params.Enrollment) == "" || strings.TrimSpace(params.RegistryOffice) == "" {
		return nil, fmt.Errorf("%w: enrollment and registry_office are required", ErrInvalidInput)
	}
	rec := &RegistryRecord{
		PropertyID:           propertyID,
		Enrollment:           strings.TrimSpace(params.Enrollment),
		RegistryOffice:       strings.TrimSpace(params.RegistryOffice),
		CNM:                  strings.TrimSpace(params.CNM),
		MunicipalInscription: strings.TrimSpace(params.MunicipalInscription),
		Current:              params.Current,
	}
	if err := s.store.AddRegistryRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// UtilityAccountParams carries the fields for a new utility account.
type UtilityAccountParams struct {
	Type          UtilityType
	AccountNumber string
	Supplier      string
	Status        UtilityStatus
	Notes         string
}

// AddUtilityAccount attaches a utility account to a property.
func (s *Service) AddUtilityAccount(ctx context.Context, propertyID string, params UtilityAccountParams) (*UtilityAccount, error) {
	if !ValidUtilityType(params.Type) {
		return nil, fmt.Errorf("%w: unknown utility type %q", ErrInvalidInput, params.Type)
	}
	if strings.TrimSpace(params.AccountNumber) == "" {
		return nil, fmt.Errorf("%w: account_number is required", ErrInvalidInput)
	}
	status := params.Status
	if status == "" {
		status = UtilityActive
	}
	if !ValidUtilityStatus(status) {
		return nil, fmt.Errorf("%w: unknown utility status %q", ErrInvalidInput, params.Status)
	}
	acc := &UtilityAccount{
		PropertyID:    propertyID,
		Type:          params.Type,
		AccountNumber: strings.TrimSpace(params.AccountNumber),
		Supplier:      strings.TrimSpace(params.Supplier),
		Status:        status,
		Notes:         strings.TrimSpace(params.Notes),
	}
	if err := s.store.AddUtilityAccount(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// ComputeAllocation loads the property's units and runs the proportional
// allocation. The result is derived on every call and never cached.
func (s *Service) ComputeAllocation(ctx context.Context, propertyID string, totalAmount, discount float64) ([]UnitAllocation, error) {
	p, err := s.store.FindProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return AllocateIPTU(p.Units, totalAmount, discount)
}
