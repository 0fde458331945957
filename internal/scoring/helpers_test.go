package scoring

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

func graded(subject string, grade, weight float64) models.Activity {
	return models.Activity{
		SubjectID:    subject,
		Deadline:     "2024-01-01",
		Status:       models.StatusCompleted,
		ActivityType: models.TypeAssignment,
		Grade:        null.Float64From(grade),
		Weight:       null.Float64From(weight),
	}
}

func task(id, subject, deadline string, status models.Status) models.Activity {
	return models.Activity{
		ID:           id,
		SubjectID:    subject,
		Deadline:     deadline,
		Status:       status,
		ActivityType: models.TypeAssignment,
	}
}

func attended(subject, date string, present bool) models.AttendanceRecord {
	return models.AttendanceRecord{SubjectID: subject, Date: date, Present: present}
}

// Wednesday noon.
var testNow = time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)
