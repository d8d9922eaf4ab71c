package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"fitcoach-backend/internal/domain"
	"fitcoach-backend/internal/logger"
	"fitcoach-backend/internal/repository"
)

type invitationService struct {
	inviteRepo repository.InvitationRepository
	userRepo   repository.UserRepository
	emailSvc   EmailService
	expiry     time.Duration
	now        func() time.Time
	log        *slog.Logger
}

func NewInvitationService(inviteRepo repository.InvitationRepository, userRepo repository.UserRepository, emailSvc EmailService, expiryDays int) InvitationService {
	return &invitationService{
		inviteRepo: inviteRepo,
		userRepo:   userRepo,
		emailSvc:   emailSvc,
		expiry:     time.Duration(expiryDays) * 24 * time.Hour,
		now:        time.Now,
		log:        logger.WithService("invitation"),
	}
}

func (s *invitationService) CreateInvitation(ctx context.Context, trainerID, trainerName string, params CreateInvitationParams) (*domain.Invitation, error) {
	if trainerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(params.ClientEmail) == "" {
		return nil, fmt.Errorf("%w: client email is required", domain.ErrValidation)
	}

	// Inviting is a trainer-only operation. A caller with no user record
	// yet is a trainer onboarding; an existing record must carry the
	// trainer role. The stored display name wins over the token's.
	u, err := s.userRepo.GetByID(ctx, trainerID)
	switch {
	case err == nil:
		if !u.IsTrainer() {
			return nil, fmt.Errorf("%w: caller is not a trainer", domain.ErrUnauthenticated)
		}
		if u.DisplayName != "" {
			trainerName = u.DisplayName
		}
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	now := s.now()
	inv := &domain.Invitation{
		ID:             uuid.New().String(),
		TrainerID:      trainerID,
		TrainerName:    trainerName,
		ClientEmail:    strings.TrimSpace(params.ClientEmail),
		ClientName:     params.ClientName,
		Goal:           params.Goal,
		Injuries:       params.Injuries,
		PreferredStyle: params.PreferredStyle,
		PersonalNote:   params.PersonalNote,
		Status:         domain.InvitationStatusPending,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.expiry),
	}

	if err := s.inviteRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	// Delivery is best effort: the invitation exists either way, and the
	// trainer can always re-share the link.
	if err := s.emailSvc.SendInvitation(ctx, inv); err != nil {
		s.log.Warn("Failed to send invitation email", "invitation_id", inv.ID, "error", err)
	}

	return inv, nil
}

// ValidateInvitation is the unauthenticated preview. Expiry is computed
// here, at call time; nothing is written.
func (s *invitationService) ValidateInvitation(ctx context.Context, invitationID string) (*domain.InvitationView, error) {
	if invitationID == "" {
		return nil, fmt.Errorf("%w: invitation id is required", domain.ErrValidation)
	}

	inv, err := s.inviteRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if err := inv.CheckAcceptable(s.now()); err != nil {
		return nil, err
	}
	return inv.View(), nil
}

// AcceptInvitation re-checks everything inside the store transaction; the
// preconditions here only reject calls that could never succeed.
func (s *invitationService) AcceptInvitation(ctx context.Context, invitationID, userID string) (*domain.Client, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if invitationID == "" {
		return nil, fmt.Errorf("%w: invitation id is required", domain.ErrValidation)
	}

	client, err := s.inviteRepo.Accept(ctx, invitationID, userID, s.now())
	if err != nil {
		return nil, err
	}
	s.log.Info("Invitation accepted", "invitation_id", invitationID, "client_id", client.ID, "trainer_id", client.TrainerID)
	return client, nil
}

func (s *invitationService) DeclineInvitation(ctx context.Context, invitationID string) error {
	if invitationID == "" {
		return fmt.Errorf("%w: invitation id is required", domain.ErrValidation)
	}
	if err := s.inviteRepo.Decline(ctx, invitationID, s.now()); err != nil {
		return err
	}
	s.log.Info("Invitation declined", "invitation_id", invitationID)
	return nil
}
