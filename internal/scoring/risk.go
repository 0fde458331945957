package scoring

import (
	"fmt"
	"sort"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

type Level string

const (
	LevelSafe    Level = "safe"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

func (l Level) severity() int {
	switch l {
	case LevelDanger:
		return 2
	case LevelWarning:
		return 1
	default:
		return 0
	}
}

type Risk struct {
	SubjectID      string       `json:"subject_id"`
	SubjectName    string       `json:"subject_name"`
	Level          Level        `json:"level"`
	Score          int          `json:"score"`
	Factors        []string     `json:"factors"`
	GradeAvg       null.Float64 `json:"grade_avg"`
	AttendanceRate null.Float64 `json:"attendance_rate"`
	OverdueTasks   int          `json:"overdue_tasks"`
}

type riskSignals struct {
	grade      null.Float64
	attendance null.Float64
	overdue    int
	targets    Targets
}

type riskTier struct {
	applies func(s riskSignals) bool
	points  int
	factor  func(s riskSignals) string
}

func fixed(label string) func(riskSignals) string {
	return func(riskSignals) string { return label }
}

func overdueFactor(s riskSignals) string {
	return fmt.Sprintf("%d overdue tasks", s.overdue)
}

// Each group contributes at most once: the first tier that applies.
var riskRules = [][]riskTier{
	{
		{
			applies: func(s riskSignals) bool { return s.grade.Valid && s.grade.Float64 < s.targets.Grade-2 },
			points:  40,
			factor:  fixed("critical average"),
		},
		{
			applies: func(s riskSignals) bool { return s.grade.Valid && s.grade.Float64 < s.targets.Grade },
			points:  20,
			factor:  fixed("below target"),
		},
	},
	{
		{
			applies: func(s riskSignals) bool {
				return s.attendance.Valid && s.attendance.Float64 < s.targets.Attendance-10
			},
			points: 40,
			factor: fixed("critical attendance"),
		},
		{
			applies: func(s riskSignals) bool { return s.attendance.Valid && s.attendance.Float64 < s.targets.Attendance },
			points:  20,
			factor:  fixed("low attendance"),
		},
	},
	{
		{applies: func(s riskSignals) bool { return s.overdue >= 3 }, points: 30, factor: overdueFactor},
		{applies: func(s riskSignals) bool { return s.overdue >= 1 }, points: 15, factor: overdueFactor},
	},
}

func evaluateRisk(s riskSignals) (int, []string) {
	score := 0
	factors := []string{}
	for _, group := range riskRules {
		for _, tier := range group {
			if tier.applies(s) {
				score += tier.points
				factors = append(factors, tier.factor(s))
				break
			}
		}
	}
	if score > 100 {
		score = 100
	}
	return score, factors
}

func RiskLevel(score int) Level {
	switch {
	case score >= 50:
		return LevelDanger
	case score >= 20:
		return LevelWarning
	default:
		return LevelSafe
	}
}

func SubjectRisk(subject models.Subject, activities []models.Activity, attendance []models.AttendanceRecord, t Targets, now time.Time) Risk {
	s := riskSignals{
		grade:      WeightedAverage(activities, subject.ID),
		attendance: AttendanceRate(attendance, subject.ID),
		overdue:    OverdueForSubject(activities, subject.ID, now, ""),
		targets:    t,
	}
	score, factors := evaluateRisk(s)
	return Risk{
		SubjectID:      subject.ID,
		SubjectName:    subject.Name,
		Level:          RiskLevel(score),
		Score:          score,
		Factors:        factors,
		GradeAvg:       s.grade,
		AttendanceRate: s.attendance,
		OverdueTasks:   s.overdue,
	}
}

type RiskSummary struct {
	Overall  Level  `json:"overall"`
	Subjects []Risk `json:"subjects"`
}

// RiskReport lists subjects worst first; Overall is the worst level present.
func RiskReport(subjects []models.Subject, activities []models.Activity, attendance []models.AttendanceRecord, t Targets, now time.Time) RiskSummary {
	summary := RiskSummary{Overall: LevelSafe, Subjects: make([]Risk, 0, len(subjects))}
	for _, subj := range subjects {
		r := SubjectRisk(subj, activities, attendance, t, now)
		if r.Level.severity() > summary.Overall.severity() {
			summary.Overall = r.Level
		}
		summary.Subjects = append(summary.Subjects, r)
	}
	sort.SliceStable(summary.Subjects, func(i, j int) bool {
		return summary.Subjects[i].Level.severity() > summary.Subjects[j].Level.severity()
	})
	return summary
}
