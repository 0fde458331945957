package scoring

import "github.com/shrimpsizemoose/pluggbulle/internal/models"

// Targets are the grade and attendance goals of a student.
type Targets struct {
	Grade      float64 `toml:"target_grade" json:"target_grade"`
	Attendance float64 `toml:"target_attendance" json:"target_attendance"`
}

func DefaultTargets() Targets {
	return Targets{Grade: 7.0, Attendance: 75}
}

// TargetsFor takes the profile's targets, keeping defaults for unset ones.
func TargetsFor(p models.Profile, defaults Targets) Targets {
	t := defaults
	if p.TargetGrade > 0 {
		t.Grade = p.TargetGrade
	}
	if p.TargetAttendance > 0 {
		t.Attendance = p.TargetAttendance
	}
	return t
}
