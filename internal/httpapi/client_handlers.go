package httpapi

import (
	"net/http"
	"strings"
	"time"

	"imovia.org/internal/clients"
)

type personPayload struct {
	CPF       string    `json:"cpf"`
	RG        string    `json:"rg"`
	BirthDate time.Time `json:"birth_date"`
}

type companyPayload struct {
	CNPJ              string     `json:"cnpj"`
	LegalName         string     `json:"legal_name"`
	TradeName         string     `json:"trade_name"`
	StateRegistration string     `json:"state_registration"`
	BusinessAddress   string     `json:"business_address"`
	FoundedAt         *time.Time `json:"founded_at"`
}

type createClientRequest struct {
	Kind    string          `json:"kind"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone"`
	Address string          `json:"address"`
	Person  *personPayload  `json:"person"`
	Company *companyPayload `json:"company"`
}

type addPartnerRequest struct {
	PersonID   string     `json:"person_id"`
	Role       string     `json:"role"`
	AdmittedAt *time.Time `json:"admitted_at"`
}

type createContractRequest struct {
	ClientID   string `json:"client_id"`
	ProviderID string `json:"provider_id"`
	Details    string `json:"details"`
}

func (a *API) handleClientsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.createClient(w, r)
	case http.MethodGet:
		a.listClients(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleClientResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/clients/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	if rest, ok := strings.CutSuffix(path, "/partners"); ok {
		id := strings.TrimSuffix(rest, "/")
		if id == "" || strings.Contains(id, "/") {
			writeError(w, r, http.StatusNotFound, "resource not found")
			return
		}
		switch r.Method {
		case http.MethodPost:
			a.addPartner(w, r, id)
		case http.MethodGet:
			a.listPartners(w, r, id)
		default:
			methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
		}
		return
	}

	if strings.Contains(path, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		client, err := a.clients.GetClient(r.Context(), path)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, client)
	case http.MethodPut:
		a.updateClient(w, r, path)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
	}
}

type updateClientRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Status  string `json:"status"`
}

func (a *API) updateClient(w http.ResponseWriter, r *http.Request, id string) {
	var req updateClientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	client, err := a.clients.UpdateClient(r.Context(), id, clients.UpdateClientParams{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Status:  clients.Status(strings.TrimSpace(req.Status)),
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.audit(r.Context(), "client.updated", "client", client.ID, nil)
	writeJSON(w, http.StatusOK, client)
}

func (a *API) createClient(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	params := clients.ClientParams{
		Kind:    clients.Kind(strings.TrimSpace(req.Kind)),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if req.Person != nil {
		params.Person = &clients.PersonDetails{
			CPF:       strings.TrimSpace(req.Person.CPF),
			RG:        req.Person.RG,
			BirthDate: req.Person.BirthDate,
		}
	}
	if req.Company != nil {
		params.CompanyInfo = &clients.CompanyDetails{
			CNPJ:              strings.TrimSpace(req.Company.CNPJ),
			LegalName:         strings.TrimSpace(req.Company.LegalName),
			TradeName:         strings.TrimSpace(req.Company.TradeName),
			StateRegistration: strings.TrimSpace(req.Company.StateRegistration),
			BusinessAddress:   strings.TrimSpace(req.Company.BusinessAddress),
			FoundedAt:         req.Company.FoundedAt,
		}
	}

	client, err := a.clients.CreateClient(r.Context(), params)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.audit(r.Context(), "client.created", "client", client.ID, map[string]string{
		"kind": string(client.Kind),
	})

	w.Header().Set("Location", "/v1/clients/"+client.ID)
	writeJSON(w, http.StatusCreated, client)
}

func (a *API) listClients(w http.ResponseWriter, r *http.Request) {
	kind := clients.Kind(strings.TrimSpace(r.URL.Query().Get("kind")))
	list, err := a.clients.ListClients(r.Context(), kind)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if list == nil {
		list = []*clients.Client{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list})
}

func (a *API) addPartner(w http.ResponseWriter, r *http.Request, companyID string) {
	var req addPartnerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	partner, err := a.clients.AddPartner(r.Context(), companyID, clients.PartnerParams{
		PersonID:   strings.TrimSpace(req.PersonID),
		Role:       clients.PartnerRole(strings.TrimSpace(req.Role)),
		AdmittedAt: req.AdmittedAt,
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.audit(r.Context(), "client.partner.added", "partner", partner.ID, map[string]string{
		"company_id": companyID,
		"person_id":  partner.PersonID,
		"role":       string(partner.Role),
	})

	writeJSON(w, http.StatusCreated, partner)
}

func (a *API) listPartners(w http.ResponseWriter, r *http.Request, companyID string) {
	list, err := a.clients.ListPartners(r.Context(), companyID)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if list == nil {
		list = []*clients.Partner{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list})
}

func (a *API) handleContractsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.createContract(w, r)
	case http.MethodGet:
		a.listContracts(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleContractResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/contracts/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		contract, err := a.clients.GetContract(r.Context(), id)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, contract)
	case http.MethodPut:
		a.updateContract(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
	}
}

func (a *API) updateContract(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Details string `json:"details"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	contract, err := a.clients.UpdateContract(r.Context(), id, req.Details)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.audit(r.Context(), "contract.updated", "contract", contract.ID, nil)
	writeJSON(w, http.StatusOK, contract)
}

func (a *API) createContract(w http.ResponseWriter, r *http.Request) {
	var req createContractRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	contract, err := a.clients.CreateContract(r.Context(),
		strings.TrimSpace(req.ClientID),
		strings.TrimSpace(req.ProviderID),
		req.Details,
	)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.audit(r.Context(), "contract.created", "contract", contract.ID, map[string]string{
		"client_id":   contract.ClientID,
		"provider_id": contract.ProviderID,
	})

	w.Header().Set("Location", "/v1/contracts/"+contract.ID)
	writeJSON(w, http.StatusCreated, contract)
}

func (a *API) listContracts(w http.ResponseWriter, r *http.Request) {
	clientID := strings.TrimSpace(r.URL.Query().Get("client_id"))
	providerID := strings.TrimSpace(r.URL.Query().Get("provider_id"))
	list, err := a.clients.ListContracts(r.Context(), clientID, providerID)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if list == nil {
		list = []*clients.Contract{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list})
}
