package models

import (
	"fmt"

	"github.com/volatiletech/null/v8"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

type ActivityType string

const (
	TypeExam       ActivityType = "exam"
	TypeAssignment ActivityType = "assignment"
	TypeSeminar    ActivityType = "seminar"
	TypeExercise   ActivityType = "exercise"
)

// Difficulty hints come from an external classifier and may be missing.
const (
	DifficultyHigh   = "high"
	DifficultyMedium = "medium"
	DifficultyLow    = "low"
)

type Activity struct {
	ID           string       `db:"id" json:"id"`
	Student      string       `db:"student" json:"student" validate:"required,max=64"`
	SubjectID    string       `db:"subject_id" json:"subject_id" validate:"required"`
	Title        string       `db:"title" json:"title" validate:"required,max=200"`
	Description  string       `db:"description" json:"description"`
	Deadline     string       `db:"deadline" json:"deadline" validate:"required"`
	Status       Status       `db:"status" json:"status" validate:"required,oneof=pending in_progress completed"`
	ActivityType ActivityType `db:"activity_type" json:"activity_type" validate:"required,oneof=exam assignment seminar exercise"`
	Grade        null.Float64 `db:"grade" json:"grade"`
	Weight       null.Float64 `db:"weight" json:"weight"`
	AIDifficulty null.String  `db:"ai_difficulty" json:"ai_difficulty"`
}

func (a *Activity) IsCompleted() bool {
	return a.Status == StatusCompleted
}

func (a *Activity) Validate() error {
	if err := validate.Struct(a); err != nil {
		return validationError(err)
	}
	if !validDate(a.Deadline) {
		return fmt.Errorf("bad deadline %q, use YYYY-MM-DD", a.Deadline)
	}
	if a.Grade.Valid && (a.Grade.Float64 < 0 || a.Grade.Float64 > 10) {
		return fmt.Errorf("grade %.2f out of range [0,10]", a.Grade.Float64)
	}
	if a.Weight.Valid && a.Weight.Float64 <= 0 {
		return fmt.Errorf("weight must be positive, omit it for the default of 1")
	}
	if a.AIDifficulty.Valid && !ValidDifficulty(a.AIDifficulty.String) {
		return fmt.Errorf("bad difficulty %q", a.AIDifficulty.String)
	}
	return nil
}

func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyHigh, DifficultyMedium, DifficultyLow:
		return true
	}
	return false
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}
