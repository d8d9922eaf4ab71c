package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"fitcoach-backend/internal/domain"
	"fitcoach-backend/internal/security"
	"fitcoach-backend/internal/service"
)

type ClientHandler struct {
	clientSvc service.ClientService
}

func NewClientHandler(clientSvc service.ClientService) *ClientHandler {
	return &ClientHandler{clientSvc: clientSvc}
}

// Get handles GET /v1/clients/{id}.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := security.IdentityFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	client, err := h.clientSvc.GetClient(r.Context(), id.UID, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

// List handles GET /v1/trainer/clients: the caller's roster.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := security.IdentityFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	clients, err := h.clientSvc.ListClients(r.Context(), id.UID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"clients": clients})
}

// AssignPlan handles PUT /v1/clients/{id}/plan.
func (h *ClientHandler) AssignPlan(w http.ResponseWriter, r *http.Request) {
	id, err := security.IdentityFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var plan domain.PlanAssignment
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		respondError(w, fmt.Errorf("%w: malformed request body", domain.ErrValidation))
		return
	}

	client, err := h.clientSvc.AssignPlan(r.Context(), id.UID, mux.Vars(r)["id"], plan)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}
