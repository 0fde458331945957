package scoring

import (
	"strings"
	"time"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

// ParseDate accepts YYYY-MM-DD (in loc) or RFC3339. Malformed input is
// reported through ok=false and never panics.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(models.DateLayout, s, loc); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), true
	}
	return time.Time{}, false
}

// DeadlineAt resolves a deadline. A bare date means the end of that day.
func DeadlineAt(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(models.DateLayout, s, loc); err == nil {
		return EndOfDay(t), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), true
	}
	return time.Time{}, false
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// StartOfWeek returns Monday 00:00 of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return StartOfDay(t.AddDate(0, 0, -(weekday - 1)))
}

func EndOfWeek(t time.Time) time.Time {
	return EndOfDay(StartOfWeek(t).AddDate(0, 0, 6))
}

// Window is an inclusive time range.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func WeekWindow(t time.Time) Window {
	return Window{Start: StartOfWeek(t), End: EndOfWeek(t)}
}

func (w Window) Previous() Window {
	return WeekWindow(w.Start.AddDate(0, 0, -7))
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ContainsDate parses s in the window's location; bad dates are never in range.
func (w Window) ContainsDate(s string) bool {
	t, ok := ParseDate(s, w.Start.Location())
	if !ok {
		return false
	}
	return w.Contains(t)
}

func HoursUntil(deadline, now time.Time) float64 {
	return deadline.Sub(now).Hours()
}

// clockMinutes parses HH:MM or HH:MM:SS into minutes since midnight.
func clockMinutes(s string) (int, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{models.ClockLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}
	return 0, false
}

// HoursBetween returns end-start in hours. Inverted ranges come out negative.
func HoursBetween(start, end string) (float64, bool) {
	s, ok := clockMinutes(start)
	if !ok {
		return 0, false
	}
	e, ok := clockMinutes(end)
	if !ok {
		return 0, false
	}
	return float64(e-s) / 60, true
}
