package service

import (
	"context"
	"fmt"
	"time"

	"fitcoach-backend/internal/domain"
	"fitcoach-backend/internal/repository"
)

type clientService struct {
	clientRepo repository.ClientRepository
	now        func() time.Time
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{
		clientRepo: clientRepo,
		now:        time.Now,
	}
}

// GetClient lets a client read its own record and a trainer read records it
// owns; everyone else sees not-found.
func (s *clientService) GetClient(ctx context.Context, callerID, clientID string) (*domain.Client, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	c, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if c.ID != callerID && c.TrainerID != callerID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (s *clientService) ListClients(ctx context.Context, trainerID string) ([]domain.Client, error) {
	if trainerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.clientRepo.ListByTrainer(ctx, trainerID)
}

// AssignPlan sets the current plan on an empty queue or fills the single
// next slot. The repository enforces the queue invariant transactionally.
func (s *clientService) AssignPlan(ctx context.Context, trainerID, clientID string, plan domain.PlanAssignment) (*domain.Client, error) {
	if trainerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if plan.PlanID == "" {
		return nil, fmt.Errorf("%w: plan id is required", domain.ErrValidation)
	}
	if plan.StartDate.IsZero() || plan.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: plan start and end dates are required", domain.ErrValidation)
	}
	if plan.EndDate.Before(plan.StartDate) {
		return nil, fmt.Errorf("%w: plan end date precedes start date", domain.ErrValidation)
	}
	return s.clientRepo.AssignPlan(ctx, trainerID, clientID, plan, s.now())
}
