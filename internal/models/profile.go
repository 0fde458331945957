package models

type AcademicStatus string

const (
	StatusFreshman  AcademicStatus = "freshman"
	StatusReturning AcademicStatus = "returning"
)

// Profile holds the per-student settings the scoring engine reads.
type Profile struct {
	Student          string         `db:"student" json:"student" validate:"required,max=64"`
	TargetGrade      float64        `db:"target_grade" json:"target_grade" validate:"gt=0,lte=10"`
	TargetAttendance float64        `db:"target_attendance" json:"target_attendance" validate:"gt=0,lte=100"`
	WeeklyHoursGoal  float64        `db:"weekly_hours_goal" json:"weekly_hours_goal" validate:"gte=0"`
	AcademicStatus   AcademicStatus `db:"academic_status" json:"academic_status" validate:"required,oneof=freshman returning"`
}

func DefaultProfile(student string) Profile {
	return Profile{
		Student:          student,
		TargetGrade:      7.0,
		TargetAttendance: 75,
		AcademicStatus:   StatusReturning,
	}
}

func (p *Profile) Validate() error {
	return validationError(validate.Struct(p))
}
