package service

import (
	"context"
	"time"

	"fitcoach-backend/internal/domain"
)

// CreateInvitationParams is the trainer-supplied invitation payload.
type CreateInvitationParams struct {
	ClientEmail    string `json:"clientEmail"`
	ClientName     string `json:"clientName,omitempty"`
	Goal           string `json:"goal,omitempty"`
	Injuries       string `json:"injuries,omitempty"`
	PreferredStyle string `json:"preferredStyle,omitempty"`
	PersonalNote   string `json:"personalNote,omitempty"`
}

type InvitationService interface {
	CreateInvitation(ctx context.Context, trainerID, trainerName string, params CreateInvitationParams) (*domain.Invitation, error)
	ValidateInvitation(ctx context.Context, invitationID string) (*domain.InvitationView, error)
	AcceptInvitation(ctx context.Context, invitationID, userID string) (*domain.Client, error)
	DeclineInvitation(ctx context.Context, invitationID string) error
}

type ClientService interface {
	GetClient(ctx context.Context, callerID, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, trainerID string) ([]domain.Client, error)
	AssignPlan(ctx context.Context, trainerID, clientID string, plan domain.PlanAssignment) (*domain.Client, error)
}

type PromotionService interface {
	RunDailyPromotion(ctx context.Context, now time.Time) (*domain.PromotionReport, error)
}

type EmailService interface {
	SendInvitation(ctx context.Context, inv *domain.Invitation) error
}
