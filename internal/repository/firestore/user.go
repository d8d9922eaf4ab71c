package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"fitcoach-backend/internal/domain"
)

type userRepository struct {
	client *firestore.Client
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	snap, err := r.client.Collection(collUsers).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	u := &domain.User{}
	if err := snap.DataTo(u); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", id, err)
	}
	return u, nil
}
