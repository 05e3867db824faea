// internal/model/lead.go
package model

import "time"

type Lead struct {
	ID         int       `db:"id" json:"id"`
	CampaignID int       `db:"campaign_id" json:"campaign_id"`
	ProfileURL string    `db:"profile_url" json:"profile_url"`
	FirstName  string    `db:"first_name" json:"first_name"`
	LastName   string    `db:"last_name" json:"last_name"`
	Company    string    `db:"company" json:"company"`
	Title      string    `db:"title" json:"title"`
	Location   string    `db:"location" json:"location"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
