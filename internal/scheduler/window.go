package scheduler

import (
	"strconv"
	"strings"
	"time"

	appErrors "github.com/leadpilot/leadpilot-backend/internal/errors"
)

// AnchorTimeOfDay parses a wall-clock time of day ("HH:MM" or "HH:MM:SS")
// and anchors it to the calendar day of ref. A missing seconds field
// defaults to 0; anything that does not parse as an in-range integer is a
// hard failure, never silently coerced.
func AnchorTimeOfDay(timeStr string, ref time.Time) (time.Time, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return time.Time{}, appErrors.NewMalformedTime(timeStr)
	}

	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, appErrors.NewMalformedTime(timeStr)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, appErrors.NewMalformedTime(timeStr)
	}
	second := 0
	if len(parts) == 3 {
		second, err = strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || second < 0 || second > 59 {
			return time.Time{}, appErrors.NewMalformedTime(timeStr)
		}
	}

	return time.Date(ref.Year(), ref.Month(), ref.Day(), hour, minute, second, 0, ref.Location()), nil
}

// IsWithinWindow reports whether t falls within [start, end).
func IsWithinWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// Window is a campaign's allowed sending hours, held as wall-clock times
// of day so it can be re-anchored to any calendar day. Overnight-spanning
// windows (start >= end) are not supported.
type Window struct {
	startHour, startMin, startSec int
	endHour, endMin, endSec       int
}

func NewWindow(startStr, endStr string) (Window, error) {
	ref := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	start, err := AnchorTimeOfDay(startStr, ref)
	if err != nil {
		return Window{}, err
	}
	end, err := AnchorTimeOfDay(endStr, ref)
	if err != nil {
		return Window{}, err
	}
	if !start.Before(end) {
		return Window{}, appErrors.NewValidation("sending window", "start time must be before end time")
	}
	return Window{
		startHour: start.Hour(), startMin: start.Minute(), startSec: start.Second(),
		endHour: end.Hour(), endMin: end.Minute(), endSec: end.Second(),
	}, nil
}

// StartOn returns the window's opening instant on day's calendar day.
func (w Window) StartOn(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), w.startHour, w.startMin, w.startSec, 0, day.Location())
}

// EndOn returns the window's closing instant on day's calendar day.
func (w Window) EndOn(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), w.endHour, w.endMin, w.endSec, 0, day.Location())
}

// Contains reports whether t falls inside [start, end) on its own day.
func (w Window) Contains(t time.Time) bool {
	return IsWithinWindow(t, w.StartOn(t), w.EndOn(t))
}
