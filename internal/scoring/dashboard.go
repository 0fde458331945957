package scoring

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

// Snapshot is everything the engine reads for one student.
type Snapshot struct {
	Profile    models.Profile            `json:"profile"`
	Subjects   []models.Subject          `json:"subjects"`
	Activities []models.Activity         `json:"activities"`
	Attendance []models.AttendanceRecord `json:"attendance"`
}

func (s Snapshot) PriorityContext(now time.Time) PriorityContext {
	return PriorityContext{
		Subjects:   s.Subjects,
		Activities: s.Activities,
		Attendance: s.Attendance,
		Status:     s.Profile.AcademicStatus,
		Now:        now,
	}
}

type Dashboard struct {
	Student             string              `json:"student"`
	GeneratedAt         time.Time           `json:"generated_at"`
	Targets             Targets             `json:"targets"`
	Score               Academic            `json:"score"`
	OverallGrade        null.Float64        `json:"overall_grade"`
	OverallAttendance   null.Float64        `json:"overall_attendance"`
	Tasks               TaskStats           `json:"tasks"`
	Risk                RiskSummary         `json:"risk"`
	Priorities          []Ranked            `json:"priorities"`
	Weekly              Weekly              `json:"weekly"`
	WeeklyHoursProgress null.Float64        `json:"weekly_hours_progress"`
	GradeNeeded         []GradeNeededResult `json:"grade_needed"`
	Conflicts           []Conflict          `json:"conflicts"`
	Today               []Slot              `json:"today"`
}

func BuildDashboard(s Snapshot, defaults Targets, now time.Time) Dashboard {
	t := TargetsFor(s.Profile, defaults)
	weekly := WeeklyReport(s.Subjects, s.Activities, s.Attendance, now)

	needed := make([]GradeNeededResult, 0, len(s.Subjects))
	for _, subj := range s.Subjects {
		needed = append(needed, SubjectGradeNeeded(s.Activities, subj.ID, t.Grade))
	}

	return Dashboard{
		Student:             s.Profile.Student,
		GeneratedAt:         now,
		Targets:             t,
		Score:               AcademicScore(s.Activities, s.Attendance, t, now),
		OverallGrade:        OverallAverage(s.Activities, s.Subjects),
		OverallAttendance:   OverallAttendanceRate(s.Attendance),
		Tasks:               Tasks(s.Activities, now),
		Risk:                RiskReport(s.Subjects, s.Activities, s.Attendance, t, now),
		Priorities:          RankPending(s.PriorityContext(now)),
		Weekly:              weekly,
		WeeklyHoursProgress: WeeklyHoursProgress(weekly.Current.HoursAttended, s.Profile.WeeklyHoursGoal),
		GradeNeeded:         needed,
		Conflicts:           ScheduleConflicts(s.Subjects),
		Today:               TodayClasses(s.Subjects, now),
	}
}
