// internal/model/search_url.go
package model

import "time"

// SearchURL is a Sales Navigator search submitted for scraping.
type SearchURL struct {
	ID         int        `db:"id" json:"id"`
	CampaignID int        `db:"campaign_id" json:"campaign_id"`
	URL        string     `db:"url" json:"url"`
	Status     string     `db:"status" json:"status"` // pending, in_progress, completed, failed
	LeadsFound int        `db:"leads_found" json:"leads_found"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
