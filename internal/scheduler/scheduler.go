package scheduler

import (
	"sort"
	"strings"
	"time"

	"github.com/leadpilot/leadpilot-backend/internal/model"
)

// Entry is one (lead, instant) delivery commitment produced by a
// scheduling run. Subject and Message carry double-brace placeholder
// markers; lead-specific values are resolved at send time, not here.
type Entry struct {
	LeadID      int       `json:"lead_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
}

// Scheduler walks each lead's sequence independently and assigns every
// step an absolute send instant inside the campaign's daily window,
// honouring the daily cap and jittered inter-message spacing.
type Scheduler struct {
	jitter *Jitter
	now    func() time.Time
}

func New() *Scheduler {
	return &Scheduler{jitter: NewJitter(), now: time.Now}
}

// NewDeterministic builds a scheduler with an injected jitter source and
// clock, for reproducible tests.
func NewDeterministic(j *Jitter, now func() time.Time) *Scheduler {
	return &Scheduler{jitter: j, now: now}
}

// Schedule produces the delivery plan for leadIDs in lead-major,
// step-minor order. There is no chronological guarantee across leads:
// every lead's cursor starts at today's window start.
//
// Existing commitments are accepted but not merged; each invocation
// restarts its cursor, so callers that need the daily cap to hold across
// runs must serialize scheduling per campaign.
//
// Empty leadIDs or steps yield an empty plan, not an error. A cap or
// delay of zero-or-less is accepted and degenerates to rollover on every
// step.
func (s *Scheduler) Schedule(
	leadIDs []int,
	settings model.MessagingSettings,
	steps []model.SequenceStep,
	existing []model.ScheduledMessage,
	rawSubject, rawMessage string,
) ([]Entry, error) {
	entries := []Entry{}
	if len(leadIDs) == 0 || len(steps) == 0 {
		return entries, nil
	}

	window, err := NewWindow(settings.StartTime, settings.EndTime)
	if err != nil {
		return nil, err
	}

	ordered := make([]model.SequenceStep, len(steps))
	copy(ordered, steps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StepOrder < ordered[j].StepOrder
	})

	// Every entry carries the same raw pair with tokens rewritten to
	// markers; per-step templates are not consulted here.
	subject := RewriteMarkers(rawSubject)
	message := RewriteMarkers(rawMessage)

	today := s.now()

	for _, leadID := range leadIDs {
		cursor := window.StartOn(today)
		counter := NewDayCounter(settings.MaxPerDay)

		for i, step := range ordered {
			if i > 0 {
				cursor = cursor.AddDate(0, 0, step.DelayDays)
			}
			if cursor.Before(window.StartOn(cursor)) {
				cursor = window.StartOn(cursor)
			}

			// Two rollover checks per step, and in both cases the
			// placement lands exactly on the next day's window start with
			// the delay discarded.
			if counter.ShouldRollOver(cursor, window.EndOn(cursor)) {
				cursor = window.StartOn(cursor.AddDate(0, 0, 1))
				counter.Reset()
			} else {
				dayEnd := window.EndOn(cursor)
				cursor = cursor.Add(time.Duration(s.jitter.Minutes(settings.DelayMinutes)) * time.Minute)
				// The window is half-open, so landing exactly on the end
				// rolls over too.
				if !cursor.Before(dayEnd) {
					cursor = window.StartOn(cursor.AddDate(0, 0, 1))
					counter.Reset()
				}
			}

			counter.Record()
			entries = append(entries, Entry{
				LeadID:      leadID,
				ScheduledAt: cursor,
				Subject:     subject,
				Message:     message,
			})
		}
	}

	return entries, nil
}

var markerReplacer = strings.NewReplacer(
	"{first_name}", "{{first_name}}",
	"{company_name}", "{{company_name}}",
	"{landingpage}", "{{landingpage}}",
)

// RewriteMarkers turns single-brace template tokens into double-brace
// markers so the delivery worker can tell resolved text from still-open
// placeholders.
func RewriteMarkers(s string) string {
	return markerReplacer.Replace(s)
}
