package domain

import "time"

type Role string

const (
	RoleTrainer Role = "trainer"
	RoleClient  Role = "client"
)

// User is the thin role record keyed by uid. It is only ever merged into,
// never overwritten: sign-in flows own display fields we must not clobber.
type User struct {
	ID              string    `firestore:"id" json:"id"`
	Role            Role      `firestore:"role" json:"role"`
	DisplayName     string    `firestore:"displayName,omitempty" json:"displayName,omitempty"`
	Email           string    `firestore:"email,omitempty" json:"email,omitempty"`
	LinkedTrainerID string    `firestore:"linkedTrainerId,omitempty" json:"linkedTrainerId,omitempty"`
	UpdatedAt       time.Time `firestore:"updatedAt" json:"updatedAt"`
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsClient() bool {
	return u.Role == RoleClient
}
