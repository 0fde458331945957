package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

func TestSubjectRisk(t *testing.T) {
	math := models.Subject{ID: "math", Name: "Mathematics"}

	lowAttendance := []models.AttendanceRecord{
		attended("math", "2024-04-01", true),
		attended("math", "2024-04-02", false),
	}
	overdue := []models.Activity{
		task("o1", "math", "2024-04-01", models.StatusPending),
		task("o2", "math", "2024-04-02", models.StatusPending),
		task("o3", "math", "2024-04-03", models.StatusInProgress),
	}

	testCases := []struct {
		name       string
		activities []models.Activity
		attendance []models.AttendanceRecord
		score      int
		level      Level
		factors    []string
	}{
		{
			name:    "no data is safe",
			score:   0,
			level:   LevelSafe,
			factors: []string{},
		},
		{
			name:       "grade 4.5 against target 7 is a warning",
			activities: []models.Activity{graded("math", 4.5, 1)},
			score:      40,
			level:      LevelWarning,
			factors:    []string{"critical average"},
		},
		{
			name:       "slightly below target",
			activities: []models.Activity{graded("math", 6, 1)},
			score:      20,
			level:      LevelWarning,
			factors:    []string{"below target"},
		},
		{
			name:       "single overdue task",
			activities: overdue[:1],
			score:      15,
			level:      LevelSafe,
			factors:    []string{"1 overdue tasks"},
		},
		{
			name:       "grade and attendance",
			activities: []models.Activity{graded("math", 4, 1)},
			attendance: lowAttendance,
			score:      80,
			level:      LevelDanger,
			factors:    []string{"critical average", "critical attendance"},
		},
		{
			name:       "everything at once clamps to 100",
			activities: append([]models.Activity{graded("math", 4, 1)}, overdue...),
			attendance: lowAttendance,
			score:      100,
			level:      LevelDanger,
			factors:    []string{"critical average", "critical attendance", "3 overdue tasks"},
		},
		{
			name: "attendance just under target",
			attendance: []models.AttendanceRecord{
				attended("math", "2024-04-01", true),
				attended("math", "2024-04-02", true),
				attended("math", "2024-04-03", false),
				attended("math", "2024-04-04", true),
				attended("math", "2024-04-05", true),
				attended("math", "2024-04-06", false),
				attended("math", "2024-04-07", true),
			},
			score:   20,
			level:   LevelWarning,
			factors: []string{"low attendance"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := SubjectRisk(math, tc.activities, tc.attendance, DefaultTargets(), testNow)
			assert.Equal(t, tc.score, r.Score)
			assert.Equal(t, tc.level, r.Level)
			assert.Equal(t, tc.factors, r.Factors)
			assert.Equal(t, "Mathematics", r.SubjectName)
		})
	}
}

func TestRiskReport_SortsWorstFirst(t *testing.T) {
	subjects := []models.Subject{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
		{ID: "c", Name: "C"},
		{ID: "d", Name: "D"},
	}
	activities := []models.Activity{
		graded("b", 3, 1),
		graded("c", 6, 1),
	}
	attendance := []models.AttendanceRecord{
		attended("b", "2024-04-01", false),
	}

	report := RiskReport(subjects, activities, attendance, DefaultTargets(), testNow)

	assert.Equal(t, LevelDanger, report.Overall)
	var order []string
	for _, r := range report.Subjects {
		order = append(order, r.SubjectID)
	}
	assert.Equal(t, []string{"b", "c", "a", "d"}, order)
}

func TestRiskReport_Overall(t *testing.T) {
	subjects := []models.Subject{{ID: "a"}, {ID: "b"}}

	assert.Equal(t, LevelSafe, RiskReport(nil, nil, nil, DefaultTargets(), testNow).Overall)
	assert.Equal(t, LevelSafe, RiskReport(subjects, nil, nil, DefaultTargets(), testNow).Overall)

	warn := RiskReport(subjects, []models.Activity{graded("a", 6.5, 1)}, nil, DefaultTargets(), testNow)
	assert.Equal(t, LevelWarning, warn.Overall)
}
