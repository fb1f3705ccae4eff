package services

import (
	"fmt"
	"time"

	"github.com/yashrajz/EventHorizon-sub001/models"
)

// Derived lifecycle states. Recomputed fresh on every call from the supplied
// clock value; there is no stored state and no transition bookkeeping.
const (
	StatusUpcoming = "upcoming"
	StatusLive     = "live"
	StatusEnded    = "ended"
	StatusRemoved  = "removed"
)

// AutoRemoveAfter is how long past its declared end an event stays visible
// as "ended" before it drops out of active listings.
const AutoRemoveAfter = 3 * time.Hour

type Classification struct {
	Status      string `json:"status"`
	StartsIn    string `json:"starts_in,omitempty"`
	EndsIn      string `json:"ends_in,omitempty"`
	AutoRemoved bool   `json:"auto_removed"`
}

// Classify maps an event's scheduled window to its lifecycle state at now.
// StartsIn is set only for upcoming events, EndsIn only for live ones.
//
// Schedule strings are interpreted in now's location; the classifier is
// timezone-naive and does no conversion beyond what the stored strings and
// the caller's now already encode.
func Classify(ev models.Event, now time.Time) Classification {
	start, end, ok := eventWindow(ev, now.Location())
	if !ok {
		// Unparseable schedule: keep the event listed, no countdown.
		return Classification{Status: StatusUpcoming}
	}

	switch {
	case now.Before(start):
		return Classification{Status: StatusUpcoming, StartsIn: formatDelta(now, start)}
	case !now.After(end):
		return Classification{Status: StatusLive, EndsIn: formatDelta(now, end)}
	case !now.After(end.Add(AutoRemoveAfter)):
		return Classification{Status: StatusEnded}
	default:
		return Classification{Status: StatusRemoved, AutoRemoved: true}
	}
}

// FilterActive returns the events not yet auto-removed, preserving input order.
func FilterActive(events []models.Event, now time.Time) []models.Event {
	active := []models.Event{}
	for _, ev := range events {
		if Classify(ev, now).Status != StatusRemoved {
			active = append(active, ev)
		}
	}
	return active
}

func eventWindow(ev models.Event, loc *time.Location) (start, end time.Time, ok bool) {
	const layout = "2006-01-02 15:04"

	start, errStart := time.ParseInLocation(layout, ev.Date+" "+ev.StartTime, loc)
	end, errEnd := time.ParseInLocation(layout, ev.Date+" "+ev.EndTime, loc)
	if errStart != nil || errEnd != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// formatDelta renders the gap between now and a future instant using the two
// largest non-zero units, e.g. "2d 5h", "1h 30m", "8m", "45s". The companion
// unit is the modulo remainder within the leading unit, not an absolute total.
func formatDelta(now, until time.Time) string {
	d := until.Sub(now)
	if d < 0 {
		d = 0
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60

	switch {
	case days > 0:
		if hours > 0 {
			return fmt.Sprintf("%dd %dh", days, hours)
		}
		return fmt.Sprintf("%dd", days)
	case hours > 0:
		if mins > 0 {
			return fmt.Sprintf("%dh %dm", hours, mins)
		}
		return fmt.Sprintf("%dh", hours)
	case mins > 0:
		if secs > 0 {
			return fmt.Sprintf("%dm %ds", mins, secs)
		}
		return fmt.Sprintf("%dm", mins)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}
