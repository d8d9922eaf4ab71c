package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fitcoach-backend/internal/config"
	"fitcoach-backend/internal/domain"
	"fitcoach-backend/internal/repository"
)

// Collection layout. Each trainer keeps a denormalized roster copy of its
// clients under trainers/{id}/clients, written only by the accept
// transaction.
const (
	collInvitations = "invitations"
	collClients     = "clients"
	collTrainers    = "trainers"
	collUsers       = "users"
)

// Store bundles the Firestore-backed repositories, one shared client.
type Store struct {
	InvitationRepository repository.InvitationRepository
	ClientRepository     repository.ClientRepository
	UserRepository       repository.UserRepository

	client *firestore.Client
}

// NewClient connects to Firestore for the configured project. With no
// credentials file, application default credentials (or the emulator) apply.
func NewClient(ctx context.Context, cfg config.FirebaseConfig) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return client, nil
}

// NewStore creates all repositories on top of one Firestore client.
func NewStore(client *firestore.Client) *Store {
	return &Store{
		InvitationRepository: &invitationRepository{client: client},
		ClientRepository:     &clientRepository{client: client},
		UserRepository:       &userRepository{client: client},
		client:               client,
	}
}

// Close releases the underlying Firestore client.
func (s *Store) Close() error {
	return s.client.Close()
}

// mapError translates Firestore RPC errors into the domain taxonomy.
// Domain errors raised inside transaction bodies pass through untouched.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	for _, derr := range []error{
		domain.ErrNotFound,
		domain.ErrAlreadyProcessed,
		domain.ErrExpired,
		domain.ErrValidation,
	} {
		if errors.Is(err, derr) {
			return err
		}
	}
	switch status.Code(err) {
	case codes.NotFound:
		return domain.ErrNotFound
	case codes.AlreadyExists:
		return domain.ErrAlreadyProcessed
	case codes.Aborted, codes.FailedPrecondition:
		// The transaction retried up to its limit and still lost the race.
		return domain.ErrTransactionConflict
	}
	return err
}
