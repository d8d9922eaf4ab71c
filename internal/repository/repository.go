package repository

import (
	"context"
	"time"

	"fitcoach-backend/internal/domain"
)

// MaxPromotionBatch is the store's per-batch write limit. Promotion runs
// larger than this are committed in multiple batches.
const MaxPromotionBatch = 500

type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.Invitation) error
	GetByID(ctx context.Context, id string) (*domain.Invitation, error)

	// Accept runs the whole acceptance as one transaction: re-read and
	// re-check the invitation, create the client in the global collection
	// and the trainer roster, merge the caller's role record, and mark the
	// invitation accepted. All five writes commit together or not at all.
	Accept(ctx context.Context, invitationID, userID string, now time.Time) (*domain.Client, error)

	// Decline transactionally moves a pending invitation to declined.
	Decline(ctx context.Context, invitationID string, now time.Time) error
}

type ClientRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]domain.Client, error)

	// AssignPlan transactionally sets the current plan (when none exists)
	// or queues the next plan (when the next slot is free) on a client
	// owned by trainerID.
	AssignPlan(ctx context.Context, trainerID, clientID string, plan domain.PlanAssignment, now time.Time) (*domain.Client, error)

	// ListDuePromotions returns clients whose queued plan's start date has
	// arrived (nextPlanStartDate <= now and a next plan id present).
	ListDuePromotions(ctx context.Context, now time.Time) ([]domain.Client, error)

	// PromoteClients commits one write batch advancing each client's queue:
	// current* <- next*, next* cleared, promotion stamp added. Callers keep
	// batches within MaxPromotionBatch.
	PromoteClients(ctx context.Context, clients []domain.Client, now time.Time) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
