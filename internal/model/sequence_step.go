// internal/model/sequence_step.go
package model

// SequenceStep is one step of a campaign's outreach sequence. Steps are
// totally ordered by StepOrder; DelayDays is relative to the previous step.
type SequenceStep struct {
	ID         int    `db:"id" json:"id"`
	CampaignID int    `db:"campaign_id" json:"campaign_id"`
	StepOrder  int    `db:"step_order" json:"step_order"` // 1-based
	DelayDays  int    `db:"delay_days" json:"delay_days"` // 0 for the first step
	Subject    string `db:"subject" json:"subject"`
	Body       string `db:"body" json:"body"`
}
