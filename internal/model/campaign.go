// internal/model/campaign.go
package model

import "time"

type Campaign struct {
	ID          int        `db:"id" json:"id"`
	ClientID    int        `db:"client_id" json:"client_id"`
	Name        string     `db:"name" json:"name"`
	Status      string     `db:"status" json:"status"` // draft, active, paused, cookies_invalid
	LandingPage string     `db:"landing_page" json:"landing_page"`
	LiAtCookie  string     `db:"li_at_cookie" json:"-"`
	JSession    string     `db:"jsession_cookie" json:"-"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// CampaignCookies is the Sales Navigator session pair attached to a campaign.
type CampaignCookies struct {
	LiAt     string `json:"li_at"`
	JSession string `json:"jsession"`
}
