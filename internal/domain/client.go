package domain

import "time"

type ClientStatus string

const (
	ClientStatusActive ClientStatus = "active"
)

// Promotion method tags stamped onto a client when the current plan changes.
const (
	PromotionMethodScheduled = "scheduled"
	PromotionMethodTrainer   = "trainer"
)

// Client is a coached user. Its document id equals the uid that accepted the
// invitation. The plan queue is capped at two entries: the current plan and
// at most one queued next plan.
type Client struct {
	ID          string       `firestore:"id" json:"id"`
	TrainerID   string       `firestore:"trainerId" json:"trainerId"` // immutable after creation
	Name        string       `firestore:"name,omitempty" json:"name,omitempty"`
	Email       string       `firestore:"email" json:"email"`
	Status      ClientStatus `firestore:"status" json:"status"`

	Goal           string `firestore:"goal,omitempty" json:"goal,omitempty"`
	Injuries       string `firestore:"injuries,omitempty" json:"injuries,omitempty"`
	PreferredStyle string `firestore:"preferredStyle,omitempty" json:"preferredStyle,omitempty"`
	PersonalNote   string `firestore:"personalNote,omitempty" json:"personalNote,omitempty"`

	CurrentPlanID        string     `firestore:"currentPlanId,omitempty" json:"currentPlanId,omitempty"`
	CurrentPlanStartDate *time.Time `firestore:"currentPlanStartDate,omitempty" json:"currentPlanStartDate,omitempty"`
	CurrentPlanEndDate   *time.Time `firestore:"currentPlanEndDate,omitempty" json:"currentPlanEndDate,omitempty"`
	NextPlanID           string     `firestore:"nextPlanId,omitempty" json:"nextPlanId,omitempty"`
	NextPlanStartDate    *time.Time `firestore:"nextPlanStartDate,omitempty" json:"nextPlanStartDate,omitempty"`
	NextPlanEndDate      *time.Time `firestore:"nextPlanEndDate,omitempty" json:"nextPlanEndDate,omitempty"`

	JoinedAt        time.Time  `firestore:"joinedAt" json:"joinedAt"`
	PromotedAt      *time.Time `firestore:"promotedAt,omitempty" json:"promotedAt,omitempty"`
	PromotionMethod string     `firestore:"promotionMethod,omitempty" json:"promotionMethod,omitempty"`
}

// PlanAssignment is the trainer-supplied payload for assigning or queueing a
// training plan on a client.
type PlanAssignment struct {
	PlanID    string    `json:"planId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

func (c *Client) HasCurrentPlan() bool {
	return c.CurrentPlanID != ""
}

func (c *Client) HasNextPlan() bool {
	return c.NextPlanID != ""
}

// CanQueuePlan holds when a next plan may be queued: a current plan exists
// and the single next slot is free.
func (c *Client) CanQueuePlan() bool {
	return c.HasCurrentPlan() && !c.HasNextPlan()
}

func (c *Client) IsCurrentPlanExpired(now time.Time) bool {
	return c.CurrentPlanEndDate != nil && now.After(*c.CurrentPlanEndDate)
}

// ShouldPromoteNextPlan is the strict promotion predicate: current plan over
// and a next plan waiting. The scheduled job deliberately uses the looser
// nextPlanStartDate trigger instead; this predicate backs trainer-facing
// status displays.
func (c *Client) ShouldPromoteNextPlan(now time.Time) bool {
	return c.IsCurrentPlanExpired(now) && c.HasNextPlan()
}

// IsPromotionDue is the scheduler's trigger: the queued plan's own start
// date has arrived, regardless of whether the current plan has ended.
func (c *Client) IsPromotionDue(now time.Time) bool {
	return c.HasNextPlan() && c.NextPlanStartDate != nil && !c.NextPlanStartDate.After(now)
}

// NewClientFromInvitation builds the client record created by an accepted
// invitation: caller identity plus the invitation's coaching metadata, with
// an empty plan queue.
func NewClientFromInvitation(inv *Invitation, userID string, now time.Time) *Client {
	return &Client{
		ID:             userID,
		TrainerID:      inv.TrainerID,
		Name:           inv.ClientName,
		Email:          inv.ClientEmail,
		Status:         ClientStatusActive,
		Goal:           inv.Goal,
		Injuries:       inv.Injuries,
		PreferredStyle: inv.PreferredStyle,
		PersonalNote:   inv.PersonalNote,
		JoinedAt:       now,
	}
}
