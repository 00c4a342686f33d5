package repository

import (
	"testing"
	"time"
)

func TestStatsBounds(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local)
	dayStart, dayEnd, missingSince, activeSince := statsBounds(now)

	wantStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	if !dayStart.Equal(wantStart) {
		t.Fatalf("dayStart = %v, want %v", dayStart, wantStart)
	}
	if !dayEnd.Equal(wantStart.AddDate(0, 0, 1)) {
		t.Fatalf("dayEnd = %v, want %v", dayEnd, wantStart.AddDate(0, 0, 1))
	}

	// An event from yesterday evening falls outside the checkout window.
	yesterday := time.Date(2025, 3, 9, 23, 59, 0, 0, time.Local)
	if !yesterday.Before(dayStart) {
		t.Fatalf("yesterday %v should be before dayStart %v", yesterday, dayStart)
	}

	if got := now.Sub(missingSince); got != 7*24*time.Hour {
		t.Fatalf("missing window = %v, want 168h", got)
	}
	if got := now.Sub(activeSince); got != 24*time.Hour {
		t.Fatalf("active window = %v, want 24h", got)
	}
}

func TestStatsBoundsJustAfterMidnight(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 1, 0, time.Local)
	dayStart, dayEnd, _, _ := statsBounds(now)

	if !dayStart.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("dayStart = %v", dayStart)
	}
	if !now.After(dayStart) || !now.Before(dayEnd) {
		t.Fatalf("now %v should fall inside [%v, %v)", now, dayStart, dayEnd)
	}
}
