package models

import "fmt"

type AttendanceRecord struct {
	ID        string `db:"id" json:"id"`
	Student   string `db:"student" json:"student" validate:"required,max=64"`
	SubjectID string `db:"subject_id" json:"subject_id" validate:"required"`
	Date      string `db:"date" json:"date" validate:"required"`
	Present   bool   `db:"present" json:"present"`
}

func (r *AttendanceRecord) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationError(err)
	}
	if !validDate(r.Date) {
		return fmt.Errorf("bad date %q, use YYYY-MM-DD", r.Date)
	}
	return nil
}
