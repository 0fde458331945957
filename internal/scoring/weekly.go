package scoring

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

// FallbackSessionHours is credited for an attended day with no schedule
// entry on that weekday.
// TODO: confirm with product whether unmatched days should count at all.
const FallbackSessionHours = 1.5

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

func trendOf(delta float64) Trend {
	switch {
	case delta > 0:
		return TrendUp
	case delta < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}

type WeekStats struct {
	Window         Window  `json:"window"`
	TasksCompleted int     `json:"tasks_completed"`
	Classes        int     `json:"classes"`
	Present        int     `json:"present"`
	HoursAttended  float64 `json:"hours_attended"`
}

type Change struct {
	Diff  float64 `json:"diff"`
	Trend Trend   `json:"trend"`
}

func changeOf(cur, prev float64) Change {
	d := cur - prev
	return Change{Diff: d, Trend: trendOf(d)}
}

type WeeklyDelta struct {
	TasksCompleted Change `json:"tasks_completed"`
	Classes        Change `json:"classes"`
	Present        Change `json:"present"`
	HoursAttended  Change `json:"hours_attended"`
}

type Weekly struct {
	Current  WeekStats   `json:"current"`
	Previous WeekStats   `json:"previous"`
	Delta    WeeklyDelta `json:"delta"`
}

// sessionHours sums the subject's schedule entries on the given weekday.
func sessionHours(subject *models.Subject, day time.Weekday) float64 {
	if subject == nil {
		return FallbackSessionHours
	}
	var hours float64
	matched := false
	for _, sc := range subject.Schedules {
		if sc.Day != int(day) {
			continue
		}
		h, ok := HoursBetween(sc.StartTime, sc.EndTime)
		if !ok {
			continue
		}
		hours += h
		matched = true
	}
	if !matched {
		return FallbackSessionHours
	}
	return hours
}

func WeekSummary(w Window, subjects []models.Subject, activities []models.Activity, attendance []models.AttendanceRecord) WeekStats {
	stats := WeekStats{Window: w}
	loc := w.Start.Location()

	for _, a := range activities {
		if a.IsCompleted() && w.ContainsDate(a.Deadline) {
			stats.TasksCompleted++
		}
	}

	byID := make(map[string]*models.Subject, len(subjects))
	for i := range subjects {
		byID[subjects[i].ID] = &subjects[i]
	}

	for _, r := range attendance {
		date, ok := ParseDate(r.Date, loc)
		if !ok || !w.Contains(date) {
			continue
		}
		stats.Classes++
		if !r.Present {
			continue
		}
		stats.Present++
		stats.HoursAttended += sessionHours(byID[r.SubjectID], date.Weekday())
	}
	return stats
}

// WeeklyReport compares the Monday-start week containing now with the one before.
func WeeklyReport(subjects []models.Subject, activities []models.Activity, attendance []models.AttendanceRecord, now time.Time) Weekly {
	cur := WeekWindow(now)
	current := WeekSummary(cur, subjects, activities, attendance)
	previous := WeekSummary(cur.Previous(), subjects, activities, attendance)

	return Weekly{
		Current:  current,
		Previous: previous,
		Delta: WeeklyDelta{
			TasksCompleted: changeOf(float64(current.TasksCompleted), float64(previous.TasksCompleted)),
			Classes:        changeOf(float64(current.Classes), float64(previous.Classes)),
			Present:        changeOf(float64(current.Present), float64(previous.Present)),
			HoursAttended:  changeOf(current.HoursAttended, previous.HoursAttended),
		},
	}
}

// WeeklyHoursProgress is hours attended as a percentage of the weekly goal.
func WeeklyHoursProgress(hours, goal float64) null.Float64 {
	if goal <= 0 {
		return null.Float64{}
	}
	return null.Float64From(hours / goal * 100)
}
