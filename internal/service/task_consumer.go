// internal/service/task_consumer.go
package service

import (
	"context"
	"fmt"
	"log"

	appErrors "github.com/leadpilot/leadpilot-backend/internal/errors"
	"github.com/leadpilot/leadpilot-backend/internal/linkedin"
	"github.com/leadpilot/leadpilot-backend/internal/model"
	"github.com/leadpilot/leadpilot-backend/internal/queue"
	"github.com/leadpilot/leadpilot-backend/internal/repository"
)

// TaskResult is what one pop-and-dispatch cycle reports back.
type TaskResult struct {
	Processed bool        `json:"processed"`
	TaskID    string      `json:"task_id,omitempty"`
	Message   string      `json:"message,omitempty"`
	Result    interface{} `json:"result,omitempty"`
}

// TaskConsumer pops one OutreachTask at a time and dispatches it to the
// handler for its type. Delivery is at-most-once: a popped task that
// fails is reported, never re-enqueued.
type TaskConsumer struct {
	Queue         queue.TaskQueue
	CampaignRepo  repository.CampaignRepositoryInterface
	LeadRepo      repository.LeadRepositoryInterface
	SearchURLRepo repository.SearchURLRepositoryInterface
	Scraper       linkedin.ProfileScraper
	Checker       linkedin.CookieChecker
	Messenger     linkedin.Messenger
}

// ProcessNext pops and handles a single task. An empty queue is not an
// error: the result comes back with Processed=false.
func (c *TaskConsumer) ProcessNext(ctx context.Context) (*TaskResult, error) {
	task, err := c.Queue.Pop(ctx)
	if err != nil {
		// The payload is already off the queue; nothing to re-enqueue.
		return nil, err
	}
	if task == nil {
		return &TaskResult{Processed: false, Message: "queue empty"}, nil
	}

	if task.CampaignID == 0 {
		return nil, appErrors.NewValidation("campaign_id", "required for every task")
	}

	result := &TaskResult{Processed: true, TaskID: task.ID}

	switch task.Type {
	case model.TaskScrapeProfiles:
		err = c.handleScrape(ctx, task, result)
	case model.TaskCookieValidation:
		err = c.handleCookieValidation(ctx, task, result)
	case model.TaskSendMessages:
		err = c.handleSendMessage(ctx, task, result)
	default:
		return nil, appErrors.NewUnknownTaskType(task.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("task %s: %w", task.ID, err)
	}
	return result, nil
}

func (c *TaskConsumer) handleScrape(ctx context.Context, task *model.OutreachTask, result *TaskResult) error {
	if task.SearchURLID == 0 {
		return appErrors.NewValidation("search_url_id", "required for scrape tasks")
	}

	searchURL, err := c.SearchURLRepo.GetByID(task.SearchURLID)
	if err != nil {
		return err
	}
	if searchURL == nil {
		return appErrors.NewNotFound("search URL", task.SearchURLID)
	}

	campaign, err := c.CampaignRepo.GetByID(task.CampaignID)
	if err != nil {
		return err
	}

	cookies, err := c.CampaignRepo.GetCookies(task.CampaignID)
	if err != nil {
		return err
	}

	if err := c.SearchURLRepo.UpdateStatus(searchURL.ID, "in_progress"); err != nil {
		return err
	}

	profiles, err := c.Scraper.ScrapeProfiles(ctx, searchURL.URL, cookies)
	if err != nil {
		// Failed is a signal for the operator; the consumer never retries.
		if markErr := c.SearchURLRepo.SetResult(searchURL.ID, "failed", 0); markErr != nil {
			log.Println("⚠️ failed to mark search URL failed:", markErr)
		}
		return err
	}

	stored := 0
	for _, p := range profiles {
		exists, err := c.LeadRepo.ExistsByProfileURL(campaign.ClientID, p.ProfileURL)
		if err != nil {
			log.Println("⚠️ lead dedupe check failed for", p.ProfileURL, ":", err)
			continue
		}
		if exists {
			continue
		}
		lead := &model.Lead{
			CampaignID: task.CampaignID,
			ProfileURL: p.ProfileURL,
			FirstName:  p.FirstName,
			LastName:   p.LastName,
			Company:    p.Company,
			Title:      p.Title,
			Location:   p.Location,
		}
		if err := c.LeadRepo.Create(lead); err != nil {
			log.Println("⚠️ failed to persist lead", p.ProfileURL, ":", err)
			continue
		}
		stored++
	}

	if err := c.SearchURLRepo.SetResult(searchURL.ID, "completed", stored); err != nil {
		return err
	}

	result.Message = fmt.Sprintf("scraped %d profiles, stored %d new leads", len(profiles), stored)
	result.Result = map[string]int{"scraped": len(profiles), "stored": stored}
	return nil
}

func (c *TaskConsumer) handleCookieValidation(ctx context.Context, task *model.OutreachTask, result *TaskResult) error {
	cookies, err := c.CampaignRepo.GetCookies(task.CampaignID)
	if err != nil {
		return err
	}

	valid, err := c.Checker.Validate(ctx, cookies)
	if err != nil {
		return err
	}

	status := "active"
	if !valid {
		status = "cookies_invalid"
	}
	if err := c.CampaignRepo.UpdateStatus(task.CampaignID, status); err != nil {
		return err
	}

	result.Message = fmt.Sprintf("cookies valid=%t, campaign marked %s", valid, status)
	result.Result = map[string]bool{"valid": valid}
	return nil
}

func (c *TaskConsumer) handleSendMessage(ctx context.Context, task *model.OutreachTask, result *TaskResult) error {
	if task.LeadID == 0 {
		return appErrors.NewValidation("lead_id", "required for send tasks")
	}

	lead, err := c.LeadRepo.GetByID(task.LeadID)
	if err != nil {
		return err
	}
	if lead == nil {
		return appErrors.NewNotFound("lead", task.LeadID)
	}

	campaign, err := c.CampaignRepo.GetByID(task.CampaignID)
	if err != nil {
		return err
	}

	cookies, err := c.CampaignRepo.GetCookies(task.CampaignID)
	if err != nil {
		return err
	}

	data := map[string]string{
		"first_name":   lead.FirstName,
		"company_name": lead.Company,
		"landingpage":  campaign.LandingPage,
	}
	subject := ResolveMarkers(task.Subject, data)
	content := ResolveMarkers(task.Message, data)

	res, err := c.Messenger.SendMessage(ctx, lead.ProfileURL, subject, content, cookies)
	if err != nil {
		return err
	}
	if !res.Success {
		return appErrors.NewExternalService("messenger", fmt.Errorf("%s", res.Error))
	}

	result.Message = "message sent"
	result.Result = map[string]string{"message_id": res.MessageID}
	return nil
}
