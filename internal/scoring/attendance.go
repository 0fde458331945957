package scoring

import (
	"github.com/volatiletech/null/v8"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

func presenceRate(present, total int) null.Float64 {
	if total == 0 {
		return null.Float64{}
	}
	return null.Float64From(100 * float64(present) / float64(total))
}

// AttendanceRate is the share of logged sessions attended, in percent.
func AttendanceRate(records []models.AttendanceRecord, subjectID string) null.Float64 {
	var present, total int
	for _, r := range records {
		if r.SubjectID != subjectID {
			continue
		}
		total++
		if r.Present {
			present++
		}
	}
	return presenceRate(present, total)
}

// OverallAttendanceRate pools every record instead of averaging subjects.
func OverallAttendanceRate(records []models.AttendanceRecord) null.Float64 {
	var present int
	for _, r := range records {
		if r.Present {
			present++
		}
	}
	return presenceRate(present, len(records))
}
