// internal/service/outreach_service.go
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/leadpilot/leadpilot-backend/internal/errors"
	"github.com/leadpilot/leadpilot-backend/internal/lock"
	"github.com/leadpilot/leadpilot-backend/internal/model"
	"github.com/leadpilot/leadpilot-backend/internal/repository"
	"github.com/leadpilot/leadpilot-backend/internal/scheduler"
)

// SendJobPublisher hands a due scheduled message to the delivery worker.
type SendJobPublisher interface {
	Publish(scheduledMessageID int) error
}

// OutreachService owns the scheduling entry point and the due-message
// dispatch around the pure scheduling core.
type OutreachService struct {
	CampaignRepo  repository.CampaignRepositoryInterface
	LeadRepo      repository.LeadRepositoryInterface
	SettingsRepo  repository.MessagingSettingsRepositoryInterface
	StepRepo      repository.SequenceStepRepositoryInterface
	ScheduledRepo repository.ScheduledMessageRepositoryInterface
	Scheduler     *scheduler.Scheduler
	Publisher     SendJobPublisher
	Redis         *redis.Client // nil disables cross-instance locking

	lockTTL time.Duration
}

// ScheduleMessages runs the core scheduler for the given leads and
// persists the resulting plan. One run per campaign is in flight at a
// time: concurrent runs would each start a fresh daily counter and could
// jointly overshoot the cap, so the per-campaign lock rejects the second
// caller.
func (s *OutreachService) ScheduleMessages(ctx context.Context, campaignID int, leadIDs []int, rawSubject, rawMessage string) ([]scheduler.Entry, error) {
	if _, err := s.CampaignRepo.GetByID(campaignID); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		ttl := s.lockTTL
		if ttl == 0 {
			ttl = 2 * time.Minute
		}
		l := lock.NewCampaignLock(s.Redis, campaignID, ttl)
		ok, err := l.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("a scheduling run for campaign %d is already in flight", campaignID)
		}
		defer func() {
			if err := l.Release(ctx); err != nil {
				log.Println("⚠️ failed to release scheduling lock:", err)
			}
		}()
	}

	settings, err := s.SettingsRepo.GetByCampaign(campaignID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, appErrors.NewNotFound("messaging settings for campaign", campaignID)
	}

	steps, err := s.StepRepo.ListByCampaign(campaignID)
	if err != nil {
		return nil, err
	}

	existing, err := s.ScheduledRepo.ListByCampaign(campaignID)
	if err != nil {
		return nil, err
	}

	entries, err := s.Scheduler.Schedule(leadIDs, *settings, steps, existing, rawSubject, rawMessage)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}

	records := make([]model.ScheduledMessage, len(entries))
	for i, e := range entries {
		records[i] = model.ScheduledMessage{
			CampaignID:  campaignID,
			LeadID:      e.LeadID,
			Subject:     e.Subject,
			Message:     e.Message,
			ScheduledAt: e.ScheduledAt,
		}
	}
	if err := s.ScheduledRepo.CreateBatch(records); err != nil {
		// Computed but unpersisted plans are simply lost; the caller can
		// re-run scheduling.
		return nil, err
	}

	log.Printf("Scheduled %d messages for campaign %d (%d leads, %d steps)\n",
		len(entries), campaignID, len(leadIDs), len(steps))
	return entries, nil
}

// DispatchDue publishes pending messages whose instant has arrived onto
// the delivery queue and marks them queued.
func (s *OutreachService) DispatchDue(ctx context.Context, campaignID, limit int) (int, error) {
	if limit <= 0 {
		limit = 100
	}

	due, err := s.ScheduledRepo.ListDue(campaignID, time.Now(), limit)
	if err != nil {
		return 0, err
	}

	dispatched := 0
	for _, m := range due {
		if err := s.Publisher.Publish(m.ID); err != nil {
			log.Println("⚠️ failed to enqueue scheduled message", m.ID, ":", err)
			continue
		}
		if err := s.ScheduledRepo.UpdateStatus(m.ID, "queued", ""); err != nil {
			log.Println("⚠️ failed to mark message queued:", err)
			continue
		}
		dispatched++
	}
	return dispatched, nil
}

// PreviewMessage renders a template against one lead so the operator can
// see the final text before scheduling a run.
func (s *OutreachService) PreviewMessage(campaignID, leadID int, template string) (string, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return "", err
	}

	lead, err := s.LeadRepo.GetByID(leadID)
	if err != nil {
		return "", err
	}
	if lead == nil {
		return "", appErrors.NewNotFound("lead", leadID)
	}

	data := map[string]string{
		"first_name":   lead.FirstName,
		"company_name": lead.Company,
		"landingpage":  campaign.LandingPage,
	}
	// Accept both the raw single-brace form and the stored marker form.
	return ResolveMarkers(scheduler.RewriteMarkers(template), data), nil
}
