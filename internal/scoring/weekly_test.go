package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

func weeklyFixture() ([]models.Subject, []models.Activity, []models.AttendanceRecord) {
	subjects := []models.Subject{
		{
			ID:   "math",
			Name: "Mathematics",
			Schedules: []models.Schedule{
				{Day: 1, StartTime: "08:00", EndTime: "10:00"},
				{Day: 3, StartTime: "14:00", EndTime: "15:30"},
				{Day: 3, StartTime: "16:00", EndTime: "17:00"},
			},
		},
	}
	activities := []models.Activity{
		task("1", "math", "2024-04-09", models.StatusCompleted),
		task("2", "math", "2024-04-02", models.StatusCompleted),
		task("3", "math", "2024-04-03", models.StatusCompleted),
		task("4", "math", "2024-04-11", models.StatusPending),
		task("5", "math", "whenever", models.StatusCompleted),
	}
	attendance := []models.AttendanceRecord{
		// current week
		attended("math", "2024-04-08", true),
		attended("math", "2024-04-09", false),
		attended("math", "2024-04-10", true),
		attended("math", "2024-04-12", true),
		// previous week
		attended("math", "2024-04-01", true),
		attended("math", "2024-04-03", false),
		// ignored
		attended("math", "2024-03-20", true),
		attended("math", "broken", true),
	}
	return subjects, activities, attendance
}

func TestWeeklyReport(t *testing.T) {
	subjects, activities, attendance := weeklyFixture()

	report := WeeklyReport(subjects, activities, attendance, testNow)

	cur := report.Current
	assert.Equal(t, 1, cur.TasksCompleted)
	assert.Equal(t, 4, cur.Classes)
	assert.Equal(t, 3, cur.Present)
	// Mon 2h + Wed 1.5h+1h + Fri fallback 1.5h
	assert.InDelta(t, 6.0, cur.HoursAttended, 1e-9)

	prev := report.Previous
	assert.Equal(t, 2, prev.TasksCompleted)
	assert.Equal(t, 2, prev.Classes)
	assert.Equal(t, 1, prev.Present)
	assert.InDelta(t, 2.0, prev.HoursAttended, 1e-9)

	assert.Equal(t, Change{Diff: -1, Trend: TrendDown}, report.Delta.TasksCompleted)
	assert.Equal(t, Change{Diff: 2, Trend: TrendUp}, report.Delta.Classes)
	assert.Equal(t, Change{Diff: 2, Trend: TrendUp}, report.Delta.Present)
	assert.Equal(t, TrendUp, report.Delta.HoursAttended.Trend)
	assert.InDelta(t, 4.0, report.Delta.HoursAttended.Diff, 1e-9)
}

func TestWeeklyReport_EmptyIsFlat(t *testing.T) {
	report := WeeklyReport(nil, nil, nil, testNow)
	assert.Equal(t, TrendFlat, report.Delta.TasksCompleted.Trend)
	assert.Equal(t, TrendFlat, report.Delta.HoursAttended.Trend)
	assert.Equal(t, 0, report.Current.Classes)
}

func TestWeekSummary_UnknownSubjectUsesFallback(t *testing.T) {
	w := WeekWindow(testNow)
	attendance := []models.AttendanceRecord{attended("ghost", "2024-04-09", true)}

	stats := WeekSummary(w, nil, nil, attendance)

	require.Equal(t, 1, stats.Present)
	assert.InDelta(t, FallbackSessionHours, stats.HoursAttended, 1e-9)
}

func TestWeeklyHoursProgress(t *testing.T) {
	assert.False(t, WeeklyHoursProgress(5, 0).Valid)

	p := WeeklyHoursProgress(5, 20)
	require.True(t, p.Valid)
	assert.InDelta(t, 25, p.Float64, 1e-9)
}
