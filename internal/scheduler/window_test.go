package scheduler

import (
	"errors"
	"testing"
	"time"

	appErrors "github.com/leadpilot/leadpilot-backend/internal/errors"
)

func TestAnchorTimeOfDay(t *testing.T) {
	ref := time.Date(2025, 3, 10, 15, 42, 7, 0, time.UTC)

	got, err := AnchorTimeOfDay("09:30", ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("AnchorTimeOfDay(09:30) = %v, want %v", got, want)
	}

	got, err = AnchorTimeOfDay("17:05:59", ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = time.Date(2025, 3, 10, 17, 5, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("AnchorTimeOfDay(17:05:59) = %v, want %v", got, want)
	}
}

func TestAnchorTimeOfDayMalformed(t *testing.T) {
	ref := time.Now()
	for _, bad := range []string{"", "9am", "12", "ab:cd", "09:xx", "25:00", "09:60", "09:30:75", "09:30:00:00"} {
		_, err := AnchorTimeOfDay(bad, ref)
		if err == nil {
			t.Errorf("AnchorTimeOfDay(%q) should fail", bad)
			continue
		}
		var mt *appErrors.ErrMalformedTime
		if !errors.As(err, &mt) {
			t.Errorf("AnchorTimeOfDay(%q) error = %v, want ErrMalformedTime", bad, err)
		}
	}
}

func TestIsWithinWindow(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	start := day.Add(9 * time.Hour)
	end := day.Add(17 * time.Hour)

	cases := []struct {
		at   time.Time
		want bool
	}{
		{start, true},                     // inclusive start
		{start.Add(time.Minute), true},
		{end.Add(-time.Second), true},
		{end, false},                      // exclusive end
		{start.Add(-time.Second), false},
		{end.Add(time.Hour), false},
	}
	for _, c := range cases {
		if got := IsWithinWindow(c.at, start, end); got != c.want {
			t.Errorf("IsWithinWindow(%v) = %v, want %v", c.at, got, c.want)
		}
	}
}

func TestNewWindowRejectsInvertedWindow(t *testing.T) {
	if _, err := NewWindow("17:00", "09:00"); err == nil {
		t.Error("NewWindow should reject start >= end")
	}
	if _, err := NewWindow("09:00", "09:00"); err == nil {
		t.Error("NewWindow should reject an empty window")
	}
}

func TestWindowReanchoring(t *testing.T) {
	w, err := NewWindow("09:00", "17:30")
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}

	day := time.Date(2025, 6, 1, 13, 11, 0, 0, time.UTC)
	if got := w.StartOn(day); got.Hour() != 9 || got.Day() != 1 {
		t.Errorf("StartOn = %v, want 09:00 on June 1", got)
	}
	if got := w.EndOn(day); got.Hour() != 17 || got.Minute() != 30 {
		t.Errorf("EndOn = %v, want 17:30", got)
	}
	if !w.Contains(day) {
		t.Errorf("window should contain %v", day)
	}
	if w.Contains(day.Add(8 * time.Hour)) {
		t.Errorf("window should not contain %v", day.Add(8*time.Hour))
	}
}
