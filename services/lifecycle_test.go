package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yashrajz/EventHorizon-sub001/models"
)

// scheduledEvent runs 18:00-21:00 local time on 2025-06-15.
func scheduledEvent() (models.Event, time.Time, time.Time) {
	ev := models.Event{
		ID:        "evt-boundaries",
		Title:     "Boundary Check",
		Date:      "2025-06-15",
		StartTime: "18:00",
		EndTime:   "21:00",
		Status:    models.EventPublished,
	}
	start := time.Date(2025, 6, 15, 18, 0, 0, 0, time.Local)
	end := time.Date(2025, 6, 15, 21, 0, 0, 0, time.Local)
	return ev, start, end
}

func TestClassify_Boundaries(t *testing.T) {
	ev, start, end := scheduledEvent()

	tests := []struct {
		name       string
		now        time.Time
		wantStatus string
	}{
		{"one second before start", start.Add(-time.Second), StatusUpcoming},
		{"exactly at start", start, StatusLive},
		{"exactly at end", end, StatusLive},
		{"one second after end", end.Add(time.Second), StatusEnded},
		{"one second before expiry", end.Add(AutoRemoveAfter - time.Second), StatusEnded},
		{"exactly at expiry", end.Add(AutoRemoveAfter), StatusEnded},
		{"one second past expiry", end.Add(AutoRemoveAfter + time.Second), StatusRemoved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(ev, tt.now)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantStatus == StatusRemoved, got.AutoRemoved)

			if tt.wantStatus == StatusUpcoming {
				assert.NotEmpty(t, got.StartsIn)
			} else {
				assert.Empty(t, got.StartsIn)
			}
			if tt.wantStatus == StatusLive {
				assert.NotEmpty(t, got.EndsIn)
			} else {
				assert.Empty(t, got.EndsIn)
			}
		})
	}
}

func TestClassify_ZeroDurationEvent(t *testing.T) {
	ev := models.Event{Date: "2025-06-15", StartTime: "12:00", EndTime: "12:00"}
	at := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

	assert.Equal(t, StatusLive, Classify(ev, at).Status)
	assert.Equal(t, StatusEnded, Classify(ev, at.Add(time.Second)).Status)
}

func TestClassify_UnparseableScheduleStaysListed(t *testing.T) {
	ev := models.Event{Date: "someday", StartTime: "later", EndTime: "eventually"}
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

	got := Classify(ev, now)
	assert.Equal(t, StatusUpcoming, got.Status)
	assert.Empty(t, got.StartsIn)
	assert.False(t, got.AutoRemoved)
}

func TestFilterActive(t *testing.T) {
	ev, _, end := scheduledEvent()
	other := models.Event{
		ID:        "evt-later",
		Date:      "2025-06-16",
		StartTime: "10:00",
		EndTime:   "11:00",
	}

	now := end.Add(AutoRemoveAfter + time.Second)
	active := FilterActive([]models.Event{ev, other}, now)

	assert.Len(t, active, 1)
	assert.Equal(t, "evt-later", active[0].ID)

	// Before expiry both remain, in input order.
	now = end.Add(time.Minute)
	active = FilterActive([]models.Event{ev, other}, now)
	assert.Len(t, active, 2)
	assert.Equal(t, "evt-boundaries", active[0].ID)
}

func TestFormatDelta(t *testing.T) {
	base := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		gap  time.Duration
		want string
	}{
		{"days and hours", 48*time.Hour + 5*time.Hour + 10*time.Minute, "2d 5h"},
		{"exact days", 72 * time.Hour, "3d"},
		{"hours and minutes", 90 * time.Minute, "1h 30m"},
		{"exact hours", 3 * time.Hour, "3h"},
		{"minutes only", 8 * time.Minute, "8m"},
		{"minutes and seconds", 8*time.Minute + 20*time.Second, "8m 20s"},
		{"seconds only", 45 * time.Second, "45s"},
		{"zero gap", 0, "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDelta(base, base.Add(tt.gap)))
		})
	}
}
