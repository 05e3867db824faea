// internal/model/messaging_settings.go
package model

import "time"

// MessagingSettings is the per-campaign sending policy: daily window,
// daily cap and nominal spacing between consecutive sends.
type MessagingSettings struct {
	ID           int        `db:"id" json:"id"`
	CampaignID   int        `db:"campaign_id" json:"campaign_id"`
	StartTime    string     `db:"start_time" json:"start_time"` // "HH:MM" or "HH:MM:SS"
	EndTime      string     `db:"end_time" json:"end_time"`
	MaxPerDay    int        `db:"max_per_day" json:"max_per_day"`
	DelayMinutes int        `db:"delay_minutes" json:"delay_minutes"`
	Timezone     string     `db:"timezone" json:"timezone"` // informational, IANA name
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
