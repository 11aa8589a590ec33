package clients

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService() *Service {
	return NewService(NewInMemory())
}

func createIndividual(t *testing.T, svc *Service, email string) *Client {
	t.Helper()
	c, err := svc.CreateClient(context.Background(), ClientParams{
		Kind:    Individual,
		Name:    "João Lima",
		Email:   email,
		Phone:   "+55 19 99999-0001",
		Address: "Rua A, 10",
		Person: &PersonDetails{
			CPF:       "12345678901",
			RG:        "MG-12.345",
			BirthDate: time.Date(1985, 3, 14, 0, 0, 0, 0, time.UTC),
		},
	})
	if err != nil {
		t.Fatalf("CreateClient(individual): %v", err)
	}
	return c
}

func createCompany(t *testing.T, svc *Service, email string) *Client {
	t.Helper()
	c, err := svc.CreateClient(context.Background(), ClientParams{
		Kind:    Company,
		Name:    "Imobiliária Horizonte",
		Email:   email,
		Phone:   "+55 19 3333-0001",
		Address: "Av. Central, 500",
		CompanyInfo: &CompanyDetails{
			CNPJ:            "12345678000190",
			LegalName:       "Horizonte Empreendimentos Ltda",
			TradeName:       "Horizonte",
			BusinessAddress: "Av. Central, 500",
		},
	})
	if err != nil {
		t.Fatalf("CreateClient(company): %v", err)
	}
	return c
}

func TestCreateClientKindSpecificValidation(t *testing.T) {
	svc := newTestService()

	// Individual without person details.
	_, err := svc.CreateClient(context.Background(), ClientParams{
		Kind: Individual, Name: "X", Email: "x@example.com", Phone: "1", Address: "a",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	// Company with a malformed CNPJ.
	_, err = svc.CreateClient(context.Background(), ClientParams{
		Kind: Company, Name: "Y", Email: "y@example.com", Phone: "1", Address: "a",
		CompanyInfo: &CompanyDetails{CNPJ: "123", LegalName: "L", TradeName: "T", BusinessAddress: "B"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad cnpj, got %v", err)
	}

	// Unknown kind.
	_, err = svc.CreateClient(context.Background(), ClientParams{
		Kind: "trust", Name: "Z", Email: "z@example.com", Phone: "1", Address: "a",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown kind, got %v", err)
	}
}

func TestCreateClientTaggedVariant(t *testing.T) {
	svc := newTestService()
	person := createIndividual(t, svc, "joao@example.com")
	company := createCompany(t, svc, "contato@horizonte.com")

	if person.Kind != Individual || person.Person == nil || person.CompanyInfo != nil {
		t.Fatalf("individual variant malformed: %#v", person)
	}
	if company.Kind != Company || company.CompanyInfo == nil || company.Person != nil {
		t.Fatalf("company variant malformed: %#v", company)
	}
	if company.Status != Active {
		t.Fatalf("expected active status, got %s", company.Status)
	}
}

func TestListClientsByKind(t *testing.T) {
	svc := newTestService()
	createIndividual(t, svc, "a@example.com")
	createCompany(t, svc, "b@example.com")

	people, err := svc.ListClients(context.Background(), Individual)
	if err != nil {
		t.Fatalf("ListClients: %v", err)
	}
	if len(people) != 1 || people[0].Kind != Individual {
		t.Fatalf("unexpected individual list: %#v", people)
	}
	if _, err := svc.ListClients(context.Background(), "trust"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown kind filter, got %v", err)
	}
}

func TestAddPartnerEnforcesKinds(t *testing.T) {
	svc := newTestService()
	person := createIndividual(t, svc, "p@example.com")
	company := createCompany(t, svc, "c@example.com")

	// Swapped sides must be rejected.
	if _, err := svc.AddPartner(context.Background(), person.ID, PartnerParams{
		PersonID: company.ID, Role: RolePartner,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for swapped kinds, got %v", err)
	}

	p, err := svc.AddPartner(context.Background(), company.ID, PartnerParams{
		PersonID: person.ID, Role: RoleManagingPartner,
	})
	if err != nil {
		t.Fatalf("AddPartner: %v", err)
	}
	if p.CompanyID != company.ID || p.PersonID != person.ID {
		t.Fatalf("partner links wrong clients: %#v", p)
	}

	listed, err := svc.ListPartners(context.Background(), company.ID)
	if err != nil {
		t.Fatalf("ListPartners: %v", err)
	}
	if len(listed) != 1 || listed[0].Role != RoleManagingPartner {
		t.Fatalf("unexpected partners: %#v", listed)
	}
}

func TestAddPartnerUnknownRole(t *testing.T) {
	svc := newTestService()
	company := createCompany(t, svc, "c@example.com")
	if _, err := svc.AddPartner(context.Background(), company.ID, PartnerParams{
		PersonID: "whatever", Role: "intern",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestContracts(t *testing.T) {
	svc := newTestService()
	client := createIndividual(t, svc, "cli@example.com")

	c, err := svc.CreateContract(context.Background(), client.ID, "provider-1", "Administração do imóvel da Rua A")
	if err != nil {
		t.Fatalf("CreateContract: %v", err)
	}

	got, err := svc.GetContract(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("GetContract: %v", err)
	}
	if got.ClientID != client.ID || got.ProviderID != "provider-1" {
		t.Fatalf("unexpected contract: %#v", got)
	}

	byProvider, err := svc.ListContracts(context.Background(), "", "provider-1")
	if err != nil {
		t.Fatalf("ListContracts: %v", err)
	}
	if len(byProvider) != 1 {
		t.Fatalf("expected 1 contract, got %d", len(byProvider))
	}

	if _, err := svc.CreateContract(context.Background(), "missing", "provider-1", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown client, got %v", err)
	}
}

func TestUpdateClient(t *testing.T) {
	svc := newTestService()
	c := createIndividual(t, svc, "joao@example.com")

	updated, err := svc.UpdateClient(context.Background(), c.ID, UpdateClientParams{
		Name: "João de Lima", Phone: "+55 19 99999-0002", Address: "Rua B, 20", Status: Inactive,
	})
	if err != nil {
		t.Fatalf("UpdateClient: %v", err)
	}
	if updated.Name != "João de Lima" || updated.Status != Inactive {
		t.Fatalf("update not applied: %#v", updated)
	}
	if updated.Kind != Individual || updated.Email != c.Email || updated.Person == nil {
		t.Fatalf("immutable fields changed: %#v", updated)
	}

	// Omitted status keeps the stored one.
	kept, err := svc.UpdateClient(context.Background(), c.ID, UpdateClientParams{
		Name: "João de Lima", Phone: "+55 19 99999-0002", Address: "Rua B, 20",
	})
	if err != nil {
		t.Fatalf("UpdateClient: %v", err)
	}
	if kept.Status != Inactive {
		t.Fatalf("status not preserved: %s", kept.Status)
	}

	if _, err := svc.UpdateClient(context.Background(), c.ID, UpdateClientParams{
		Name: "X", Phone: "1", Address: "a", Status: "suspended",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
	if _, err := svc.UpdateClient(context.Background(), "missing", UpdateClientParams{
		Name: "X", Phone: "1", Address: "a",
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateContract(t *testing.T) {
	svc := newTestService()
	client := createIndividual(t, svc, "cli@example.com")
	c, err := svc.CreateContract(context.Background(), client.ID, "provider-1", "Administração do imóvel")
	if err != nil {
		t.Fatalf("CreateContract: %v", err)
	}

	updated, err := svc.UpdateContract(context.Background(), c.ID, "Administração e cobrança")
	if err != nil {
		t.Fatalf("UpdateContract: %v", err)
	}
	if updated.Details != "Administração e cobrança" {
		t.Fatalf("details not updated: %#v", updated)
	}
	if updated.ClientID != client.ID || updated.ProviderID != "provider-1" {
		t.Fatalf("contract parties changed: %#v", updated)
	}

	if _, err := svc.UpdateContract(context.Background(), c.ID, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank details, got %v", err)
	}
	if _, err := svc.UpdateContract(context.Background(), "missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDuplicateClientEmail(t *testing.T) {
	svc := newTestService()
	createIndividual(t, svc, "dup@example.com")
	_, err := svc.CreateClient(context.Background(), ClientParams{
		Kind: Individual, Name: "Outro", Email: "dup@example.com", Phone: "1", Address: "a",
		Person: &PersonDetails{CPF: "10987654321", RG: "SP-1", BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)},
	})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}
