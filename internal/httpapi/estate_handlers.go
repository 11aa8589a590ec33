package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"imovia.org/internal/estate"
)

type createPropertyRequest struct {
	ClientID    string  `json:"client_id"`
	Street      string  `json:"street"`
	Number      string  `json:"number"`
	Complement  string  `json:"complement"`
	District    string  `json:"district"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	PostalCode  string  `json:"postal_code"`
	TotalAreaM2 float64 `json:"total_area_m2"`
	Occupancy   string  `json:"occupancy"`
}

type addUnitRequest struct {
	Name        string  `json:"name"`
	AreaM2      float64 `json:"area_m2"`
	Description string  `json:"description"`
	ContractID  string  `json:"contract_id"`
	Occupancy   string  `json:"occupancy"`
}

type addRegistryRecordRequest struct {
	Enrollment           string `json:"enrollment"`
	RegistryOffice       string `json:"registry_office"`
	CNM                  string `json:"cnm"`
	MunicipalInscription string `json:"municipal_inscription"`
	Current              bool   `json:"current"`
}

type addUtilityAccountRequest struct {
	Type          string `json:"type"`
	AccountNumber string `json:"account_number"`
	Supplier      string `json:"supplier"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
}

type allocationRequest struct {
	TotalAmount float64 `json:"total_amount"`
	Discount    float64 `json:"discount"`
}

type allocationResponse struct {
	PropertyID  string                  `json:"property_id"`
	TotalAmount float64                 `json:"total_amount"`
	Discount    float64                 `json:"discount"`
	Items       []estate.UnitAllocation `json:"items"`
	AsOf        time.Time               `json:"as_of"`
}

func (a *API) handlePropertiesCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.createProperty(w, r)
	case http.MethodGet:
		a.listProperties(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

// handlePropertyResource routes /v1/properties/{id} and the nested unit,
// registry-record, utility-account and allocation paths.
func (a *API) handlePropertyResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/properties/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	id, sub, _ := strings.Cut(path, "/")
	if id == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch sub {
	case "":
		switch r.Method {
		case http.MethodGet:
			a.getProperty(w, r, id)
		case http.MethodPut:
			a.updateProperty(w, r, id)
		default:
			methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
		}
	case "units":
		switch r.Method {
		case http.MethodPost:
			a.addUnit(w, r, id)
		case http.MethodGet:
			a.listUnits(w, r, id)
		default:
			methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
		}
	case "registry-records":
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost)
			return
		}
		a.addRegistryRecord(w, r, id)
	case "utility-accounts":
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost)
			return
		}
		a.addUtilityAccount(w, r, id)
	case "iptu/allocation":
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost)
			return
		}
		a.computeAllocation(w, r, id)
	default:
		writeError(w, r, http.StatusNotFound, "resource not found")
	}
}

func (a *API) createProperty(w http.ResponseWriter, r *http.Request) {
	var req createPropertyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	property, err := a.estate.CreateProperty(r.Context(), estate.PropertyParams{
		ClientID:    strings.TrimSpace(req.ClientID),
		Street:      req.Street,
		Number:      req.Number,
		Complement:  req.Complement,
		District:    req.District,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		TotalAreaM2: req.TotalAreaM2,
		Occupancy:   estate.Occupancy(strings.TrimSpace(req.Occupancy)),
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.audit(r.Context(), "property.created", "property", property.ID, map[string]string{
		"client_id": property.ClientID,
	})

	w.Header().Set("Location", "/v1/properties/"+property.ID)
	writeJSON(w, http.StatusCreated, property)
}

func (a *API) updateProperty(w http.ResponseWriter, r *http.Request, id string) {
	var req createPropertyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	property, err := a.estate.UpdateProperty(r.Context(), id, estate.PropertyParams{
		Street:      req.Street,
		Number:      req.Number,
		Complement:  req.Complement,
		District:    req.District,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		TotalAreaM2: req.TotalAreaM2,
		Occupancy:   estate.Occupancy(strings.TrimSpace(req.Occupancy)),
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.audit(r.Context(), "property.updated", "property", property.ID, nil)
	writeJSON(w, http.StatusOK, property)
}

func (a *API) listUnits(w http.ResponseWriter, r *http.Request, propertyID string) {
	units, err := a.estate.ListUnits(r.Context(), propertyID)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if units == nil {
		units = []estate.Unit{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": units})
}

func (a *API) getProperty(w http.ResponseWriter, r *http.Request, id string) {
	property, err := a.estate.GetProperty(r.Context(), id)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

func (a *API) listProperties(w http.ResponseWriter, r *http.Request) {
	clientID := strings.TrimSpace(r.URL.Query().Get("client_id"))
	list, err := a.estate.ListProperties(r.Context(), clientID)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if list == nil {
		list = []*estate.Property{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list})
}

func (a *API) addUnit(w http.ResponseWriter, r *http.Request, propertyID string) {
	var req addUnitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	unit, err := a.estate.AddUnit(r.Context(), propertyID, estate.UnitParams{
		Name:        req.Name,
		AreaM2:      req.AreaM2,
		Description: req.Description,
		ContractID:  req.ContractID,
		Occupancy:   estate.Occupancy(strings.TrimSpace(req.Occupancy)),
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.audit(r.Context(), "property.unit.added", "unit", unit.ID, map[string]string{
		"property_id": propertyID,
		"area_m2":     strconv.FormatFloat(unit.AreaM2, 'f', -1, 64),
	})

	writeJSON(w, http.StatusCreated, unit)
}

func (a *API) addRegistryRecord(w http.ResponseWriter, r *http.Request, propertyID string) {
	var req addRegistryRecordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	record, err := a.estate.AddRegistryRecord(r.Context(), propertyID, estate.RegistryRecordParams{
		Enrollment:           req.Enrollment,
		RegistryOffice:       req.RegistryOffice,
		CNM:                  req.CNM,
		MunicipalInscription: req.MunicipalInscription,
		Current:              req.Current,
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.audit(r.Context(), "property.registry_record.added", "registry_record", record.ID, map[string]string{
		"property_id": propertyID,
		"current":     strconv.FormatBool(record.Current),
	})

	writeJSON(w, http.StatusCreated, record)
}

func (a *API) addUtilityAccount(w http.ResponseWriter, r *http.Request, propertyID string) {
	var req addUtilityAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	account, err := a.estate.AddUtilityAccount(r.Context(), propertyID, estate.UtilityAccountParams{
		Type:          estate.UtilityType(strings.TrimSpace(req.Type)),
		AccountNumber: req.AccountNumber,
		Supplier:      req.Supplier,
		Status:        estate.UtilityStatus(strings.TrimSpace(req.Status)),
		Notes:         req.Notes,
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.audit(r.Context(), "property.utility_account.added", "utility_account", account.ID, map[string]string{
		"property_id": propertyID,
		"type":        string(account.Type),
	})

	writeJSON(w, http.StatusCreated, account)
}

func (a *API) computeAllocation(w http.ResponseWriter, r *http.Request, propertyID string) {
	var req allocationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	items, err := a.estate.ComputeAllocation(r.Context(), propertyID, req.TotalAmount, req.Discount)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.audit(r.Context(), "estate.iptu.allocated", "property", propertyID, map[string]string{
		"total_amount": strconv.FormatFloat(req.TotalAmount, 'f', 2, 64),
		"discount":     strconv.FormatFloat(req.Discount, 'f', 2, 64),
		"units":        strconv.Itoa(len(items)),
	})

	writeJSON(w, http.StatusOK, allocationResponse{
		PropertyID:  propertyID,
		TotalAmount: req.TotalAmount,
		Discount:    req.Discount,
		Items:       items,
		AsOf:        time.Now().UTC(),
	})
}
