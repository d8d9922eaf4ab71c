package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fitcoach-backend/internal/domain"
)

// fakeStore is an in-memory stand-in for the Firestore-backed repositories.
// Accept applies its writes all-or-nothing, mirroring the transaction
// contract of the real store.
type fakeStore struct {
	invitations map[string]*domain.Invitation
	clients     map[string]*domain.Client
	roster      map[string]map[string]*domain.Client // trainerID -> clientID -> copy
	users       map[string]*domain.User

	promoteCalls  []int         // batch sizes per PromoteClients call
	promoteErrors map[int]error // call index -> injected error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		invitations:   make(map[string]*domain.Invitation),
		clients:       make(map[string]*domain.Client),
		roster:        make(map[string]map[string]*domain.Client),
		users:         make(map[string]*domain.User),
		promoteErrors: make(map[int]error),
	}
}

// --- repository.InvitationRepository ---

func (s *fakeStore) Create(ctx context.Context, inv *domain.Invitation) error {
	if _, ok := s.invitations[inv.ID]; ok {
		return domain.ErrAlreadyProcessed
	}
	cp := *inv
	s.invitations[inv.ID] = &cp
	return nil
}

func (s *fakeStore) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	inv, ok := s.invitations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (s *fakeStore) Accept(ctx context.Context, invitationID, userID string, now time.Time) (*domain.Client, error) {
	inv, ok := s.invitations[invitationID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := inv.CheckAcceptable(now); err != nil {
		return nil, err
	}

	client := domain.NewClientFromInvitation(inv, userID, now)
	s.clients[client.ID] = client
	if s.roster[inv.TrainerID] == nil {
		s.roster[inv.TrainerID] = make(map[string]*domain.Client)
	}
	rosterCopy := *client
	s.roster[inv.TrainerID][client.ID] = &rosterCopy

	u := s.users[userID]
	if u == nil {
		u = &domain.User{ID: userID}
		s.users[userID] = u
	}
	u.Role = domain.RoleClient
	u.Email = inv.ClientEmail
	u.LinkedTrainerID = inv.TrainerID
	u.UpdatedAt = now

	inv.Status = domain.InvitationStatusAccepted
	inv.AcceptedAt = &now
	inv.AcceptedBy = userID

	cp := *client
	return &cp, nil
}

func (s *fakeStore) Decline(ctx context.Context, invitationID string, now time.Time) error {
	inv, ok := s.invitations[invitationID]
	if !ok {
		return domain.ErrNotFound
	}
	if err := inv.CheckAcceptable(now); err != nil {
		return err
	}
	inv.Status = domain.InvitationStatusDeclined
	inv.DeclinedAt = &now
	return nil
}

// --- repository.ClientRepository ---

func (s *fakeStore) GetClientByID(ctx context.Context, id string) (*domain.Client, error) {
	c, ok := s.clients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeStore) ListByTrainer(ctx context.Context, trainerID string) ([]domain.Client, error) {
	var out []domain.Client
	for _, c := range s.roster[trainerID] {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) AssignPlan(ctx context.Context, trainerID, clientID string, plan domain.PlanAssignment, now time.Time) (*domain.Client, error) {
	c, ok := s.clients[clientID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if c.TrainerID != trainerID {
		return nil, domain.ErrNotFound
	}

	start, end := plan.StartDate, plan.EndDate
	switch {
	case !c.HasCurrentPlan():
		c.CurrentPlanID = plan.PlanID
		c.CurrentPlanStartDate = &start
		c.CurrentPlanEndDate = &end
		c.PromotedAt = &now
		c.PromotionMethod = domain.PromotionMethodTrainer
	case c.CanQueuePlan():
		c.NextPlanID = plan.PlanID
		c.NextPlanStartDate = &start
		c.NextPlanEndDate = &end
	default:
		return nil, fmt.Errorf("%w: a next plan is already queued", domain.ErrValidation)
	}

	cp := *c
	return &cp, nil
}

func (s *fakeStore) ListDuePromotions(ctx context.Context, now time.Time) ([]domain.Client, error) {
	var due []domain.Client
	for _, c := range s.clients {
		if c.IsPromotionDue(now) {
			due = append(due, *c)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ID < due[j].ID })
	return due, nil
}

func (s *fakeStore) PromoteClients(ctx context.Context, clients []domain.Client, now time.Time) error {
	call := len(s.promoteCalls)
	s.promoteCalls = append(s.promoteCalls, len(clients))
	if err, ok := s.promoteErrors[call]; ok {
		return err
	}

	for _, snapshot := range clients {
		c := s.clients[snapshot.ID]
		c.CurrentPlanID = snapshot.NextPlanID
		c.CurrentPlanStartDate = snapshot.NextPlanStartDate
		c.CurrentPlanEndDate = snapshot.NextPlanEndDate
		c.NextPlanID = ""
		c.NextPlanStartDate = nil
		c.NextPlanEndDate = nil
		stamp := now
		c.PromotedAt = &stamp
		c.PromotionMethod = domain.PromotionMethodScheduled
	}
	return nil
}

// --- repository.UserRepository ---

func (s *fakeStore) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// Adapters so one fakeStore serves all three repository interfaces despite
// the overlapping GetByID method names.

type fakeClientRepo struct{ *fakeStore }

func (f fakeClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	return f.GetClientByID(ctx, id)
}

type fakeUserRepo struct{ *fakeStore }

func (f fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return f.GetUserByID(ctx, id)
}

// fakeEmailService records invitation emails instead of sending them.
type fakeEmailService struct {
	sent []string // invitation ids
	err  error
}

func (f *fakeEmailService) SendInvitation(ctx context.Context, inv *domain.Invitation) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, inv.ID)
	return nil
}
