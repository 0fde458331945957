package scoring

import (
	"math"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

const (
	gradeDimWeight       = 0.30
	attendanceDimWeight  = 0.25
	taskDimWeight        = 0.25
	consistencyDimWeight = 0.20

	consistencyBase  = 50.0
	consistencyBonus = 25.0
	consistencyMalus = 15.0
)

type Band string

const (
	BandPositive Band = "positive"
	BandWarning  Band = "warning"
	BandNegative Band = "negative"
)

const LabelNoData = "No data"

type Breakdown struct {
	Grade       null.Float64 `json:"grade"`
	Attendance  null.Float64 `json:"attendance"`
	Tasks       null.Float64 `json:"tasks"`
	Consistency float64      `json:"consistency"`
}

type Academic struct {
	Total     int       `json:"total"`
	Label     string    `json:"label"`
	Band      Band      `json:"band"`
	HasData   bool      `json:"has_data"`
	Breakdown Breakdown `json:"breakdown"`
}

// accumulator sums (weight, value) pairs and divides by the weights that
// were actually used.
type accumulator struct {
	sum     float64
	weights float64
}

func (a *accumulator) add(weight float64, v null.Float64) {
	if !v.Valid {
		return
	}
	a.sum += weight * v.Float64
	a.weights += weight
}

func (a accumulator) mean() float64 {
	if a.weights == 0 {
		return 0
	}
	return a.sum / a.weights
}

type dimensionInputs struct {
	avgGrade       null.Float64
	attendanceRate null.Float64
	taskEffective  null.Float64
}

func consistency(in dimensionInputs, t Targets) float64 {
	c := consistencyBase
	if in.avgGrade.Valid {
		if in.avgGrade.Float64 >= t.Grade {
			c += consistencyBonus
		} else {
			c -= consistencyMalus
		}
	}
	if in.attendanceRate.Valid {
		if in.attendanceRate.Float64 >= t.Attendance {
			c += consistencyBonus
		} else {
			c -= consistencyMalus
		}
	}
	return clamp(c, 0, 100)
}

func combine(in dimensionInputs, t Targets) (int, Breakdown) {
	var b Breakdown
	if in.avgGrade.Valid {
		b.Grade = null.Float64From(math.Min(100, in.avgGrade.Float64/maxGrade*100))
	}
	if in.attendanceRate.Valid {
		b.Attendance = null.Float64From(math.Min(100, in.attendanceRate.Float64))
	}
	if in.taskEffective.Valid {
		b.Tasks = null.Float64From(clamp(in.taskEffective.Float64, 0, 100))
	}
	b.Consistency = consistency(in, t)

	var acc accumulator
	acc.add(gradeDimWeight, b.Grade)
	acc.add(attendanceDimWeight, b.Attendance)
	acc.add(taskDimWeight, b.Tasks)
	acc.add(consistencyDimWeight, null.Float64From(b.Consistency))

	return int(math.Round(acc.mean())), b
}

// AcademicScore folds grades, attendance and task completion into a single
// 0-100 score. Dimensions without data drop out of the weighting.
func AcademicScore(activities []models.Activity, attendance []models.AttendanceRecord, t Targets, now time.Time) Academic {
	if len(activities) == 0 && len(attendance) == 0 {
		return Academic{Label: LabelNoData, Band: BandNegative}
	}

	in := dimensionInputs{
		avgGrade:       PooledGrades(activities).Average(),
		attendanceRate: OverallAttendanceRate(attendance),
		taskEffective:  Tasks(activities, now).Effective,
	}
	total, breakdown := combine(in, t)
	return Academic{
		Total:     total,
		Label:     ScoreLabel(total),
		Band:      ScoreBand(total),
		HasData:   true,
		Breakdown: breakdown,
	}
}

func ScoreLabel(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 75:
		return "Very Good"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Regular"
	default:
		return "Critical"
	}
}

func ScoreBand(score int) Band {
	switch {
	case score >= 75:
		return BandPositive
	case score >= 50:
		return BandWarning
	default:
		return BandNegative
	}
}
