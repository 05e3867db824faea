package scheduler

import "time"

// DayCounter tracks how many messages have been placed on the current
// simulated calendar day of one scheduling run. Counters are scoped to a
// single run; callers must serialize runs per campaign if the daily cap
// has to hold across invocations.
type DayCounter struct {
	maxPerDay int
	count     int
}

func NewDayCounter(maxPerDay int) *DayCounter {
	return &DayCounter{maxPerDay: maxPerDay}
}

// ShouldRollOver reports whether the next placement must move to the
// following day's window start: the daily cap is reached, or the candidate
// instant is at or past the window end.
func (c *DayCounter) ShouldRollOver(candidate, windowEnd time.Time) bool {
	return c.count >= c.maxPerDay || !candidate.Before(windowEnd)
}

// Record counts one placed message on the current day.
func (c *DayCounter) Record() { c.count++ }

// Reset starts a fresh day.
func (c *DayCounter) Reset() { c.count = 0 }

func (c *DayCounter) Count() int { return c.count }
