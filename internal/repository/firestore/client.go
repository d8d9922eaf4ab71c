package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"fitcoach-backend/internal/domain"
	"fitcoach-backend/internal/logger"
)

type clientRepository struct {
	client *firestore.Client
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	snap, err := r.client.Collection(collClients).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	c := &domain.Client{}
	if err := snap.DataTo(c); err != nil {
		return nil, fmt.Errorf("failed to decode client %s: %w", id, err)
	}
	return c, nil
}

// ListByTrainer reads the trainer's denormalized roster subcollection, not
// the global collection, so a trainer only ever sees its own clients.
func (r *clientRepository) ListByTrainer(ctx context.Context, trainerID string) ([]domain.Client, error) {
	iter := r.client.Collection(collTrainers).Doc(trainerID).Collection(collClients).Documents(ctx)
	defer iter.Stop()

	var clients []domain.Client
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapError(err)
		}
		var c domain.Client
		if err := snap.DataTo(&c); err != nil {
			return nil, fmt.Errorf("failed to decode roster entry: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, nil
}

// AssignPlan is the server-side queue guard: the check and the write happen
// in one transaction so two concurrent assignments cannot both fill the
// single next slot.
func (r *clientRepository) AssignPlan(ctx context.Context, trainerID, clientID string, plan domain.PlanAssignment, now time.Time) (*domain.Client, error) {
	ref := r.client.Collection(collClients).Doc(clientID)

	var updated *domain.Client
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return mapError(err)
		}
		c := &domain.Client{}
		if err := snap.DataTo(c); err != nil {
			return fmt.Errorf("failed to decode client %s: %w", clientID, err)
		}
		// A trainer has no view of clients it does not own.
		if c.TrainerID != trainerID {
			return domain.ErrNotFound
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
			return fmt.Errorf("%w: a next plan is already queued", domain.ErrValidation)
		}

		if err := tx.Set(ref, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// ListDuePromotions matches the scheduler's trigger: nextPlanStartDate has
// arrived. Documents without the field never match the range query; docs
// with a stray date but no plan id are skipped here.
func (r *clientRepository) ListDuePromotions(ctx context.Context, now time.Time) ([]domain.Client, error) {
	iter := r.client.Collection(collClients).
		Where("nextPlanStartDate", "<=", now).
		Documents(ctx)
	defer iter.Stop()

	var due []domain.Client
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapError(err)
		}
		var c domain.Client
		if err := snap.DataTo(&c); err != nil {
			return nil, fmt.Errorf("failed to decode client: %w", err)
		}
		if c.NextPlanID == "" {
			continue
		}
		due = append(due, c)
	}
	return due, nil
}

// PromoteClients commits one batch. Clearing nextPlanId removes the client
// from the due-promotion query, which is what makes whole-job retries safe.
func (r *clientRepository) PromoteClients(ctx context.Context, clients []domain.Client, now time.Time) error {
	if len(clients) == 0 {
		return nil
	}

	batch := r.client.Batch()
	for _, c := range clients {
		ref := r.client.Collection(collClients).Doc(c.ID)
		batch.Update(ref, []firestore.Update{
			{Path: "currentPlanId", Value: c.NextPlanID},
			{Path: "currentPlanStartDate", Value: c.NextPlanStartDate},
			{Path: "currentPlanEndDate", Value: c.NextPlanEndDate},
			{Path: "nextPlanId", Value: firestore.Delete},
			{Path: "nextPlanStartDate", Value: firestore.Delete},
			{Path: "nextPlanEndDate", Value: firestore.Delete},
			{Path: "promotedAt", Value: now},
			{Path: "promotionMethod", Value: domain.PromotionMethodScheduled},
		})
	}

	_, err := batch.Commit(ctx)
	logger.StoreResult("PromoteClients", err, "count", len(clients))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBatchCommit, err)
	}
	return nil
}
