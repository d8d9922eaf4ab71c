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

type InvitationHandler struct {
	inviteSvc service.InvitationService
}

func NewInvitationHandler(inviteSvc service.InvitationService) *InvitationHandler {
	return &InvitationHandler{inviteSvc: inviteSvc}
}

// Create handles POST /v1/invitations (trainer only).
func (h *InvitationHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := security.IdentityFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var params service.CreateInvitationParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		respondError(w, fmt.Errorf("%w: malformed request body", domain.ErrValidation))
		return
	}

	inv, err := h.inviteSvc.CreateInvitation(r.Context(), id.UID, id.Name, params)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, inv)
}

// Validate handles GET /v1/invitations/{id}. No authentication: the invitee
// previews the invitation before signing in.
func (h *InvitationHandler) Validate(w http.ResponseWriter, r *http.Request) {
	invitationID := mux.Vars(r)["id"]

	view, err := h.inviteSvc.ValidateInvitation(r.Context(), invitationID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"invitation": view})
}

// Accept handles POST /v1/invitations/{id}/accept for an authenticated
// caller.
func (h *InvitationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id, err := security.IdentityFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	invitationID := mux.Vars(r)["id"]

	client, err := h.inviteSvc.AcceptInvitation(r.Context(), invitationID, id.UID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"client":  client,
	})
}

// Decline handles POST /v1/invitations/{id}/decline. Holding the invitation
// link is the credential here, matching the validate route.
func (h *InvitationHandler) Decline(w http.ResponseWriter, r *http.Request) {
	invitationID := mux.Vars(r)["id"]

	if err := h.inviteSvc.DeclineInvitation(r.Context(), invitationID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
