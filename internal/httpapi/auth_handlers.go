package httpapi

import (
	"net/http"
	"strings"
	"time"

	"imovia.org/internal/auth"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Service  string `json:"service"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	provider, err := a.auth.Register(r.Context(), auth.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Service:  req.Service,
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.audit(r.Context(), "auth.provider.registered", "provider", provider.ID, map[string]string{
		"email": provider.Email,
	})

	w.Header().Set("Location", "/v1/providers/"+provider.ID)
	writeJSON(w, http.StatusCreated, provider)
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := a.auth.Login(r.Context(), email, req.Password)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.audit(r.Context(), "auth.session.issued", "provider", session.Provider.ID, map[string]string{
		"expires_at": session.ExpiresAt.UTC().Format(time.RFC3339),
	})

	writeJSON(w, http.StatusOK, session)
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	provider, ok := auth.ProviderFromContext(r.Context())
	if !ok {
		unauthorized(w, r, "unauthenticated")
		return
	}
	writeJSON(w, http.StatusOK, provider)
}

func (a *API) handleProvidersCollection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	list, err := a.auth.ListProviders(r.Context())
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if list == nil {
		list = []*auth.Provider{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list})
}

func (a *API) handleProviderResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/providers/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	provider, err := a.auth.GetProvider(r.Context(), id)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, provider)
}
