package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

func TestPriority_CompletedIsZero(t *testing.T) {
	activities := []models.Activity{
		task("a", "m", "2020-01-01", models.StatusCompleted),
		{ID: "b", SubjectID: "m", Deadline: "garbage", Status: models.StatusCompleted, ActivityType: models.TypeExam,
			Weight: null.Float64From(10), AIDifficulty: null.StringFrom(models.DifficultyHigh)},
	}
	for _, a := range activities {
		res := Priority(a, PriorityContext{Status: models.StatusFreshman, Now: testNow})
		assert.Equal(t, 0, res.Score)
		assert.Equal(t, PriorityLow, res.Level)
		assert.Equal(t, "Completed", res.Label)
	}
}

func TestPriority_FreshmanExamTwelveHoursOut(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	exam := models.Activity{
		ID:           "exam",
		SubjectID:    "unknown",
		Deadline:     "2026-03-10T12:00:00Z",
		Status:       models.StatusPending,
		ActivityType: models.TypeExam,
		Weight:       null.Float64From(3),
	}

	res := Priority(exam, PriorityContext{Status: models.StatusFreshman, Now: now})

	assert.Equal(t, PriorityBreakdown{Deadline: 95, Weight: 100, Risk: 30, Difficulty: 40, StatusBonus: 12}, res.Breakdown)
	assert.Equal(t, 78, res.Score)
	assert.Equal(t, PriorityCritical, res.Level)
	assert.Equal(t, "Urgent", res.Label)
	assert.Equal(t, "deadline within 48h · high weight · exam · first year student", res.Reason)
}

func TestDeadlineScore(t *testing.T) {
	testCases := []struct {
		hours float64
		want  float64
	}{
		{-1, 100},
		{0, 95},
		{12, 95},
		{12.5, 85},
		{24, 85},
		{48, 70},
		{72, 55},
		{100, 35},
		{168, 35},
		{300, 20},
		{336, 20},
		{337, 5},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, deadlineScore(tc.hours, true), "hours %v", tc.hours)
	}
	assert.Equal(t, 5.0, deadlineScore(0, false))
}

func TestWeightScore(t *testing.T) {
	seminar := models.Activity{ActivityType: models.TypeSeminar, Weight: null.Float64From(2)}
	assert.InDelta(t, 60, weightScore(seminar), 1e-9)

	plain := models.Activity{ActivityType: models.TypeExercise}
	assert.InDelta(t, 25, weightScore(plain), 1e-9)

	heavy := models.Activity{ActivityType: models.TypeExam, Weight: null.Float64From(20)}
	assert.InDelta(t, 100, weightScore(heavy), 1e-9)
}

func TestRiskScore(t *testing.T) {
	subjects := []models.Subject{{ID: "m"}}
	target := task("target", "m", "2024-05-01", models.StatusPending)

	testCases := []struct {
		name       string
		subjects   []models.Subject
		activities []models.Activity
		attendance []models.AttendanceRecord
		want       float64
	}{
		{name: "subject unknown", want: 30},
		{name: "subject without data", subjects: subjects, want: 30},
		{name: "failing grade", subjects: subjects, activities: []models.Activity{graded("m", 4, 1)}, want: 90},
		{name: "grade under six", subjects: subjects, activities: []models.Activity{graded("m", 5.5, 1)}, want: 70},
		{name: "grade under seven", subjects: subjects, activities: []models.Activity{graded("m", 6.5, 1)}, want: 50},
		{name: "good grade lowers risk", subjects: subjects, activities: []models.Activity{graded("m", 9, 1)}, want: 20},
		{
			name:       "poor attendance beats good grade",
			subjects:   subjects,
			activities: []models.Activity{graded("m", 9, 1)},
			attendance: []models.AttendanceRecord{
				attended("m", "2024-04-01", true),
				attended("m", "2024-04-02", false),
			},
			want: 80,
		},
		{
			name:     "mediocre attendance",
			subjects: subjects,
			attendance: []models.AttendanceRecord{
				attended("m", "2024-04-01", true),
				attended("m", "2024-04-02", true),
				attended("m", "2024-04-03", true),
				attended("m", "2024-04-04", true),
				attended("m", "2024-04-05", false),
			},
			want: 50,
		},
		{
			name:     "two other overdue activities",
			subjects: subjects,
			activities: []models.Activity{
				graded("m", 9, 1),
				task("o1", "m", "2024-04-01", models.StatusPending),
				task("o2", "m", "2024-04-02", models.StatusPending),
			},
			want: 75,
		},
		{
			name:       "failing grade is not lowered by overdue rule",
			subjects:   subjects,
			activities: []models.Activity{graded("m", 2, 1), task("o1", "m", "2024-04-01", models.StatusPending), task("o2", "m", "2024-04-02", models.StatusPending)},
			want:       90,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pc := PriorityContext{
				Subjects:   tc.subjects,
				Activities: append(tc.activities, target),
				Attendance: tc.attendance,
				Now:        testNow,
			}
			assert.Equal(t, tc.want, riskScore(target, pc))
		})
	}
}

func TestDifficultyScore(t *testing.T) {
	testCases := map[string]float64{
		models.DifficultyHigh:   85,
		models.DifficultyMedium: 45,
		models.DifficultyLow:    15,
		"unheard of":            40,
	}
	for hint, want := range testCases {
		a := models.Activity{AIDifficulty: null.StringFrom(hint)}
		assert.Equal(t, want, difficultyScore(a), hint)
	}
	assert.Equal(t, 40.0, difficultyScore(models.Activity{}))
}

func TestStatusBonus(t *testing.T) {
	exam := models.Activity{ActivityType: models.TypeExam}
	seminar := models.Activity{ActivityType: models.TypeSeminar}
	exercise := models.Activity{ActivityType: models.TypeExercise}

	assert.Equal(t, 12.0, statusBonus(exam, models.StatusFreshman))
	assert.Equal(t, 8.0, statusBonus(seminar, models.StatusFreshman))
	assert.Equal(t, 5.0, statusBonus(exercise, models.StatusFreshman))
	assert.Equal(t, 0.0, statusBonus(exam, models.StatusReturning))
}

func TestPriority_NormalFallback(t *testing.T) {
	a := task("far", "m", "2024-12-31", models.StatusPending)

	res := Priority(a, PriorityContext{Status: models.StatusReturning, Now: testNow})

	assert.Equal(t, 24, res.Score)
	assert.Equal(t, PriorityLow, res.Level)
	assert.Equal(t, "Low", res.Label)
	assert.Equal(t, "normal priority", res.Reason)
}

func TestPriority_OverdueDifficult(t *testing.T) {
	a := task("late", "m", "2024-04-01", models.StatusInProgress)
	a.AIDifficulty = null.StringFrom(models.DifficultyHigh)

	res := Priority(a, PriorityContext{Now: testNow})

	// 100*.3 + 25*.2 + 30*.25 + 85*.25
	assert.Equal(t, 64, res.Score)
	assert.Equal(t, PriorityHigh, res.Level)
	assert.Equal(t, "overdue · marked as difficult", res.Reason)
}

func TestPriority_Idempotent(t *testing.T) {
	pc := PriorityContext{
		Subjects:   []models.Subject{{ID: "m"}},
		Activities: []models.Activity{graded("m", 5, 1), task("x", "m", "2024-04-11", models.StatusPending)},
		Attendance: []models.AttendanceRecord{attended("m", "2024-04-01", false)},
		Status:     models.StatusFreshman,
		Now:        testNow,
	}
	first := Priority(pc.Activities[1], pc)
	second := Priority(pc.Activities[1], pc)
	assert.Equal(t, first, second)
}

func TestRank_StableDescending(t *testing.T) {
	activities := []models.Activity{
		task("a", "m", "2024-12-31", models.StatusPending),
		task("b", "m", "2024-12-31", models.StatusPending),
		task("c", "m", "2024-04-11", models.StatusPending),
		task("d", "m", "2024-12-31", models.StatusPending),
		task("e", "m", "2024-04-01", models.StatusCompleted),
	}

	ranked := Rank(activities, PriorityContext{Now: testNow})
	require.Len(t, ranked, 5)

	var order []string
	for _, r := range ranked {
		order = append(order, r.Activity.ID)
	}
	assert.Equal(t, []string{"c", "a", "b", "d", "e"}, order)

	pending := RankPending(PriorityContext{Activities: activities, Now: testNow})
	require.Len(t, pending, 4)
	assert.Equal(t, "c", pending[0].Activity.ID)
}
