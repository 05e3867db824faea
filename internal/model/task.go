// internal/model/task.go
package model

import "time"

// Task types recognised by the queue consumer.
const (
	TaskScrapeProfiles   = "scrape-linkedin-profiles"
	TaskCookieValidation = "cookie-validation"
	TaskSendMessages     = "send-messages"
)

// OutreachTask is one unit of asynchronous work popped from the task queue.
// Type-specific payload fields are only set for the matching type.
type OutreachTask struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	CampaignID int       `json:"campaign_id"`
	EnqueuedAt time.Time `json:"enqueued_at"`

	// scrape-linkedin-profiles
	SearchURLID int `json:"search_url_id,omitempty"`

	// send-messages
	LeadID  int    `json:"lead_id,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message,omitempty"`
}
