package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

func validActivity() Activity {
	return Activity{
		Student:      "jane.doe",
		SubjectID:    "math",
		Title:        "Midterm",
		Deadline:     "2024-04-12",
		Status:       StatusPending,
		ActivityType: TypeExam,
	}
}

func TestActivityValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(a *Activity)
		wantErr bool
	}{
		{name: "minimal", mutate: func(a *Activity) {}},
		{name: "rfc3339 deadline", mutate: func(a *Activity) { a.Deadline = "2024-04-12T10:00:00Z" }},
		{name: "explicit weight", mutate: func(a *Activity) { a.Weight = null.Float64From(2.5) }},
		{name: "zero weight", mutate: func(a *Activity) { a.Weight = null.Float64From(0) }, wantErr: true},
		{name: "negative weight", mutate: func(a *Activity) { a.Weight = null.Float64From(-1) }, wantErr: true},
		{name: "grade above ten", mutate: func(a *Activity) { a.Grade = null.Float64From(10.5) }, wantErr: true},
		{name: "bad deadline", mutate: func(a *Activity) { a.Deadline = "12/04/2024" }, wantErr: true},
		{name: "bad difficulty", mutate: func(a *Activity) { a.AIDifficulty = null.StringFrom("extreme") }, wantErr: true},
		{name: "bad type", mutate: func(a *Activity) { a.ActivityType = "lecture" }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := validActivity()
			tc.mutate(&a)
			err := a.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProfileValidate(t *testing.T) {
	p := DefaultProfile("jane.doe")
	assert.NoError(t, p.Validate())

	zeroAttendance := p
	zeroAttendance.TargetAttendance = 0
	assert.Error(t, zeroAttendance.Validate())

	zeroGrade := p
	zeroGrade.TargetGrade = 0
	assert.Error(t, zeroGrade.Validate())

	p.WeeklyHoursGoal = 0
	assert.NoError(t, p.Validate())
}
