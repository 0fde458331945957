package models

import (
	"fmt"
	"time"
)

type Schedule struct {
	SubjectID string `db:"subject_id" json:"-"`
	Day       int    `db:"day" json:"day" validate:"gte=0,lte=6"`
	StartTime string `db:"start_time" json:"start_time" validate:"required"`
	EndTime   string `db:"end_time" json:"end_time" validate:"required"`
}

type Subject struct {
	ID        string     `db:"id" json:"id"`
	Student   string     `db:"student" json:"student" validate:"required,max=64"`
	Name      string     `db:"name" json:"name" validate:"required,max=120"`
	Color     string     `db:"color" json:"color" validate:"omitempty,hexcolor"`
	Workload  float64    `db:"workload" json:"workload" validate:"gte=0"`
	Schedules []Schedule `db:"-" json:"schedules" validate:"dive"`
}

func (s *Subject) Validate() error {
	if err := validate.Struct(s); err != nil {
		return validationError(err)
	}
	for i, sc := range s.Schedules {
		if _, err := time.Parse(ClockLayout, sc.StartTime); err != nil {
			return fmt.Errorf("schedule %d: bad start_time %q", i, sc.StartTime)
		}
		if _, err := time.Parse(ClockLayout, sc.EndTime); err != nil {
			return fmt.Errorf("schedule %d: bad end_time %q", i, sc.EndTime)
		}
	}
	return nil
}
