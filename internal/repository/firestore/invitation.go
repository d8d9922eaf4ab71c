package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"fitcoach-backend/internal/domain"
	"fitcoach-backend/internal/logger"
)

type invitationRepository struct {
	client *firestore.Client
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	logger.StoreCall("CreateInvitation", collInvitations+"/"+inv.ID)
	_, err := r.client.Collection(collInvitations).Doc(inv.ID).Create(ctx, inv)
	logger.StoreResult("CreateInvitation", err)
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	snap, err := r.client.Collection(collInvitations).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	inv := &domain.Invitation{}
	if err := snap.DataTo(inv); err != nil {
		return nil, fmt.Errorf("failed to decode invitation %s: %w", id, err)
	}
	return inv, nil
}

// Accept is the one multi-document transaction in the system. The
// transactional re-read guards against a concurrent accept winning first:
// if the invitation document changed since this transaction read it, the
// store aborts and retries, and the loser surfaces AlreadyProcessed (on
// re-read) or a conflict.
func (r *invitationRepository) Accept(ctx context.Context, invitationID, userID string, now time.Time) (*domain.Client, error) {
	invRef := r.client.Collection(collInvitations).Doc(invitationID)

	var created *domain.Client
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(invRef)
		if err != nil {
			return mapError(err)
		}
		inv := &domain.Invitation{}
		if err := snap.DataTo(inv); err != nil {
			return fmt.Errorf("failed to decode invitation %s: %w", invitationID, err)
		}
		if err := inv.CheckAcceptable(now); err != nil {
			return err
		}

		client := domain.NewClientFromInvitation(inv, userID, now)
		clientRef := r.client.Collection(collClients).Doc(client.ID)
		rosterRef := r.client.Collection(collTrainers).Doc(inv.TrainerID).Collection(collClients).Doc(client.ID)
		userRef := r.client.Collection(collUsers).Doc(userID)

		// Global record and trainer roster copy: both or neither.
		if err := tx.Create(clientRef, client); err != nil {
			return err
		}
		if err := tx.Set(rosterRef, client); err != nil {
			return err
		}

		// Role record is merged, never overwritten: sign-in flows own the
		// rest of the user document.
		if err := tx.Set(userRef, map[string]interface{}{
			"id":              userID,
			"role":            string(domain.RoleClient),
			"email":           inv.ClientEmail,
			"linkedTrainerId": inv.TrainerID,
			"updatedAt":       now,
		}, firestore.MergeAll); err != nil {
			return err
		}

		if err := tx.Update(invRef, []firestore.Update{
			{Path: "status", Value: string(domain.InvitationStatusAccepted)},
			{Path: "acceptedAt", Value: now},
			{Path: "acceptedBy", Value: userID},
		}); err != nil {
			return err
		}

		created = client
		return nil
	})
	logger.StoreResult("AcceptInvitation", err, "invitation_id", invitationID, "user_id", userID)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

func (r *invitationRepository) Decline(ctx context.Context, invitationID string, now time.Time) error {
	invRef := r.client.Collection(collInvitations).Doc(invitationID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(invRef)
		if err != nil {
			return mapError(err)
		}
		inv := &domain.Invitation{}
		if err := snap.DataTo(inv); err != nil {
			return fmt.Errorf("failed to decode invitation %s: %w", invitationID, err)
		}
		if err := inv.CheckAcceptable(now); err != nil {
			return err
		}

		return tx.Update(invRef, []firestore.Update{
			{Path: "status", Value: string(domain.InvitationStatusDeclined)},
			{Path: "declinedAt", Value: now},
		})
	})
	logger.StoreResult("DeclineInvitation", err, "invitation_id", invitationID)
	return mapError(err)
}
