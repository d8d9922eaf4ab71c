package domain

import "time"

// PromotionRecord is the audit line for one client whose queued plan was
// advanced: before/after plan ids for the run log.
type PromotionRecord struct {
	ClientID   string `json:"clientId"`
	FromPlanID string `json:"fromPlanId"`
	ToPlanID   string `json:"toPlanId"`
}

// PromotionFailure records a client the run could not promote. The client
// still matches the due-promotion query and is retried on the next run.
type PromotionFailure struct {
	ClientID string `json:"clientId"`
	Reason   string `json:"reason"`
}

// PromotionReport summarizes one scheduled promotion run. Failures are
// per-client and non-fatal to the run as a whole.
type PromotionReport struct {
	RanAt    time.Time          `json:"ranAt"`
	Matched  int                `json:"matched"`
	Promoted int                `json:"promoted"`
	Records  []PromotionRecord  `json:"records,omitempty"`
	Failures []PromotionFailure `json:"failures,omitempty"`
}
