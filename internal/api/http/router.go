package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"fitcoach-backend/internal/security"
)

// NewRouter wires all HTTP routes. Validate and decline are public: the
// invitee holds only the emailed link at that point.
func NewRouter(verifier security.TokenVerifier, inviteHandler *InvitationHandler, clientHandler *ClientHandler) *mux.Router {
	r := mux.NewRouter()

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/invitations/{id}", inviteHandler.Validate).Methods(http.MethodGet)
	v1.HandleFunc("/invitations/{id}/decline", inviteHandler.Decline).Methods(http.MethodPost)

	authed := v1.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(verifier))
	authed.HandleFunc("/invitations", inviteHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/invitations/{id}/accept", inviteHandler.Accept).Methods(http.MethodPost)
	authed.HandleFunc("/clients/{id}", clientHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/clients/{id}/plan", clientHandler.AssignPlan).Methods(http.MethodPut)
	authed.HandleFunc("/trainer/clients", clientHandler.List).Methods(http.MethodGet)

	return r
}
