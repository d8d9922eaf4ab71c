package domain

import "time"

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusExpired  InvitationStatus = "expired"
	InvitationStatusDeclined InvitationStatus = "declined"
)

// Invitation is a trainer-issued offer for a specific email to become that
// trainer's client. Status only ever moves out of pending; expiry is decided
// at read time (IsExpired), never written back by a sweep.
type Invitation struct {
	ID          string `firestore:"id" json:"id"`
	TrainerID   string `firestore:"trainerId" json:"trainerId"`
	TrainerName string `firestore:"trainerName" json:"trainerName"` // denormalized for the preview screen
	ClientEmail string `firestore:"clientEmail" json:"clientEmail"`
	ClientName  string `firestore:"clientName,omitempty" json:"clientName,omitempty"`

	// Coaching metadata, copied verbatim onto the Client at acceptance.
	Goal           string `firestore:"goal,omitempty" json:"goal,omitempty"`
	Injuries       string `firestore:"injuries,omitempty" json:"injuries,omitempty"`
	PreferredStyle string `firestore:"preferredStyle,omitempty" json:"preferredStyle,omitempty"`
	PersonalNote   string `firestore:"personalNote,omitempty" json:"personalNote,omitempty"`

	Status     InvitationStatus `firestore:"status" json:"status"`
	CreatedAt  time.Time        `firestore:"createdAt" json:"createdAt"`
	ExpiresAt  time.Time        `firestore:"expiresAt" json:"expiresAt"`
	AcceptedAt *time.Time       `firestore:"acceptedAt,omitempty" json:"acceptedAt,omitempty"`
	AcceptedBy string           `firestore:"acceptedBy,omitempty" json:"acceptedBy,omitempty"`
	DeclinedAt *time.Time       `firestore:"declinedAt,omitempty" json:"declinedAt,omitempty"`
}

func (i *Invitation) IsPending() bool {
	return i.Status == InvitationStatusPending
}

// IsExpired reports lazy expiry: a pending invitation past its deadline.
// Terminal statuses are never re-evaluated.
func (i *Invitation) IsExpired(now time.Time) bool {
	return i.Status == InvitationStatusPending && now.After(i.ExpiresAt)
}

// CheckAcceptable returns the error a caller would hit acting on the
// invitation at time now, or nil if it is still open.
func (i *Invitation) CheckAcceptable(now time.Time) error {
	if !i.IsPending() {
		return ErrAlreadyProcessed
	}
	if i.IsExpired(now) {
		return ErrExpired
	}
	return nil
}

// InvitationView is the redacted projection shown to an unauthenticated
// invitee before sign-in. Personal notes and injury details stay private to
// the trainer until acceptance.
type InvitationView struct {
	ID             string    `json:"id"`
	TrainerName    string    `json:"trainerName"`
	ClientEmail    string    `json:"clientEmail"`
	ClientName     string    `json:"clientName,omitempty"`
	Goal           string    `json:"goal,omitempty"`
	PreferredStyle string    `json:"preferredStyle,omitempty"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

func (i *Invitation) View() *InvitationView {
	return &InvitationView{
		ID:             i.ID,
		TrainerName:    i.TrainerName,
		ClientEmail:    i.ClientEmail,
		ClientName:     i.ClientName,
		Goal:           i.Goal,
		PreferredStyle: i.PreferredStyle,
		ExpiresAt:      i.ExpiresAt,
	}
}
