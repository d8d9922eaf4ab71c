package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitcoach-backend/internal/domain"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func newInvitationServiceForTest(store *fakeStore, email *fakeEmailService) *invitationService {
	svc := NewInvitationService(store, fakeUserRepo{store}, email, 7).(*invitationService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func pendingInvitation(id string) *domain.Invitation {
	return &domain.Invitation{
		ID:             id,
		TrainerID:      "trainer-1",
		TrainerName:    "Sam Coach",
		ClientEmail:    "jo@example.com",
		ClientName:     "Jo",
		Goal:           "strength",
		Injuries:       "left knee",
		PersonalNote:   "private note",
		PreferredStyle: "powerlifting",
		Status:         domain.InvitationStatusPending,
		CreatedAt:      testNow.AddDate(0, 0, -1),
		ExpiresAt:      testNow.AddDate(0, 0, 5),
	}
}

func TestCreateInvitation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := newFakeStore()
		email := &fakeEmailService{}
		svc := newInvitationServiceForTest(store, email)

		inv, err := svc.CreateInvitation(ctx, "trainer-1", "Sam Coach", CreateInvitationParams{
			ClientEmail: " jo@example.com ",
			ClientName:  "Jo",
			Goal:        "strength",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, inv.ID)
		assert.Equal(t, domain.InvitationStatusPending, inv.Status)
		assert.Equal(t, "jo@example.com", inv.ClientEmail, "email is trimmed")
		assert.Equal(t, testNow.AddDate(0, 0, 7), inv.ExpiresAt)
		assert.Equal(t, []string{inv.ID}, email.sent)

		stored, err := store.GetByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, inv.ClientEmail, stored.ClientEmail)
	})

	t.Run("Trainer display name preferred over token name", func(t *testing.T) {
		store := newFakeStore()
		store.users["trainer-1"] = &domain.User{ID: "trainer-1", Role: domain.RoleTrainer, DisplayName: "Coach Sam"}
		svc := newInvitationServiceForTest(store, &fakeEmailService{})

		inv, err := svc.CreateInvitation(ctx, "trainer-1", "token name", CreateInvitationParams{ClientEmail: "jo@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "Coach Sam", inv.TrainerName)
	})

	t.Run("Client-role caller rejected", func(t *testing.T) {
		store := newFakeStore()
		store.users["u1"] = &domain.User{ID: "u1", Role: domain.RoleClient, DisplayName: "Jo"}
		email := &fakeEmailService{}
		svc := newInvitationServiceForTest(store, email)

		_, err := svc.CreateInvitation(ctx, "u1", "Jo", CreateInvitationParams{ClientEmail: "pal@example.com"})
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		assert.Empty(t, store.invitations)
		assert.Empty(t, email.sent)
	})

	t.Run("Missing email", func(t *testing.T) {
		svc := newInvitationServiceForTest(newFakeStore(), &fakeEmailService{})
		_, err := svc.CreateInvitation(ctx, "trainer-1", "Sam", CreateInvitationParams{})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		svc := newInvitationServiceForTest(newFakeStore(), &fakeEmailService{})
		_, err := svc.CreateInvitation(ctx, "", "", CreateInvitationParams{ClientEmail: "jo@example.com"})
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("Email failure does not fail creation", func(t *testing.T) {
		store := newFakeStore()
		svc := newInvitationServiceForTest(store, &fakeEmailService{err: assert.AnError})

		inv, err := svc.CreateInvitation(ctx, "trainer-1", "Sam", CreateInvitationParams{ClientEmail: "jo@example.com"})
		require.NoError(t, err)
		_, err = store.GetByID(ctx, inv.ID)
		assert.NoError(t, err)
	})
}

func TestValidateInvitation(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns redacted view", func(t *testing.T) {
		store := newFakeStore()
		store.invitations["inv1"] = pendingInvitation("inv1")
		svc := newInvitationServiceForTest(store, &fakeEmailService{})

		view, err := svc.ValidateInvitation(ctx, "inv1")
		require.NoError(t, err)
		assert.Equal(t, "Sam Coach", view.TrainerName)
		assert.Equal(t, "jo@example.com", view.ClientEmail)
		assert.Equal(t, "strength", view.Goal)
	})

	t.Run("Not found", func(t *testing.T) {
		svc := newInvitationServiceForTest(newFakeStore(), &fakeEmailService{})
		_, err := svc.ValidateInvitation(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Already processed", func(t *testing.T) {
		store := newFakeStore()
		inv := pendingInvitation("inv1")
		inv.Status = domain.InvitationStatusAccepted
		store.invitations["inv1"] = inv
		svc := newInvitationServiceForTest(store, &fakeEmailService{})

		_, err := svc.ValidateInvitation(ctx, "inv1")
		assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	})

	t.Run("Expired at read time", func(t *testing.T) {
		store := newFakeStore()
		inv := pendingInvitation("inv1")
		inv.ExpiresAt = testNow.Add(-time.Hour)
		store.invitations["inv1"] = inv
		svc := newInvitationServiceForTest(store, &fakeEmailService{})

		_, err := svc.ValidateInvitation(ctx, "inv1")
		assert.ErrorIs(t, err, domain.ErrExpired)
		// Lazy expiry: the stored status is untouched.
		assert.Equal(t, domain.InvitationStatusPending, store.invitations["inv1"].Status)
	})

	t.Run("Missing id", func(t *testing.T) {
		svc := newInvitationServiceForTest(newFakeStore(), &fakeEmailService{})
		_, err := svc.ValidateInvitation(ctx, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestAcceptInvitation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success links client, roster and role atomically", func(t *testing.T) {
		store := newFakeStore()
		store.invitations["inv1"] = pendingInvitation("inv1")
		svc := newInvitationServiceForTest(store, &fakeEmailService{})

		client, err := svc.AcceptInvitation(ctx, "inv1", "u1")
		require.NoError(t, err)

		assert.Equal(t, "u1", client.ID)
		assert.Equal(t, domain.ClientStatusActive, client.Status)
		assert.Equal(t, "trainer-1", client.TrainerID)

		// Global record and roster copy agree.
		global := store.clients["u1"]
		require.NotNil(t, global)
		rosterCopy := store.roster["trainer-1"]["u1"]
		require.NotNil(t, rosterCopy)
		assert.Equal(t, *global, *rosterCopy)

		// Role record merged.
		u := store.users["u1"]
		require.NotNil(t, u)
		assert.True(t, u.IsClient())
		assert.Equal(t, "trainer-1", u.LinkedTrainerID)

		// Invitation stamped.
		inv := store.invitations["inv1"]
		assert.Equal(t, domain.InvitationStatusAccepted, inv.Status)
		assert.Equal(t, "u1", inv.AcceptedBy)
		require.NotNil(t, inv.AcceptedAt)
	})

	t.Run("Second accept fails cleanly with no double link", func(t *testing.T) {
		store := newFakeStore()
		store.invitations["inv1"] = pendingInvitation("inv1")
		svc := newInvitationServiceForTest(store, &fakeEmailService{})

		_, err := svc.AcceptInvitation(ctx, "inv1", "u1")
		require.NoError(t, err)

		_, err = svc.AcceptInvitation(ctx, "inv1", "u2")
		assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)

		assert.Len(t, store.clients, 1)
		assert.Len(t, store.roster["trainer-1"], 1)
		assert.Nil(t, store.users["u2"])
		assert.Equal(t, "u1", store.invitations["inv1"].AcceptedBy)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		store := newFakeStore()
		store.invitations["inv1"] = pendingInvitation("inv1")
		svc := newInvitationServiceForTest(store, &fakeEmailService{})

		_, err := svc.AcceptInvitation(ctx, "inv1", "")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		assert.Equal(t, domain.InvitationStatusPending, store.invitations["inv1"].Status)
	})

	t.Run("Expired invitation leaves no writes", func(t *testing.T) {
		store := newFakeStore()
		inv := pendingInvitation("inv1")
		inv.ExpiresAt = testNow.Add(-time.Hour)
		store.invitations["inv1"] = inv
		svc := newInvitationServiceForTest(store, &fakeEmailService{})

		_, err := svc.AcceptInvitation(ctx, "inv1", "u1")
		assert.ErrorIs(t, err, domain.ErrExpired)
		assert.Empty(t, store.clients)
		assert.Empty(t, store.users)
	})

	t.Run("Not found", func(t *testing.T) {
		svc := newInvitationServiceForTest(newFakeStore(), &fakeEmailService{})
		_, err := svc.AcceptInvitation(ctx, "missing", "u1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeclineInvitation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := newFakeStore()
		store.invitations["inv1"] = pendingInvitation("inv1")
		svc := newInvitationServiceForTest(store, &fakeEmailService{})

		require.NoError(t, svc.DeclineInvitation(ctx, "inv1"))
		inv := store.invitations["inv1"]
		assert.Equal(t, domain.InvitationStatusDeclined, inv.Status)
		require.NotNil(t, inv.DeclinedAt)
	})

	t.Run("Declining an accepted invitation fails", func(t *testing.T) {
		store := newFakeStore()
		inv := pendingInvitation("inv1")
		inv.Status = domain.InvitationStatusAccepted
		store.invitations["inv1"] = inv
		svc := newInvitationServiceForTest(store, &fakeEmailService{})

		err := svc.DeclineInvitation(ctx, "inv1")
		assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
		assert.Equal(t, domain.InvitationStatusAccepted, store.invitations["inv1"].Status)
	})
}
