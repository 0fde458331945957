package scoring

import (
	"github.com/volatiletech/null/v8"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

const (
	maxGrade       = 10.0
	nextEvalWeight = 1.0
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func weightOf(a models.Activity) float64 {
	if !a.Weight.Valid || a.Weight.Float64 <= 0 {
		return 1
	}
	return a.Weight.Float64
}

type GradeStats struct {
	WeightedSum float64 `json:"weighted_sum"`
	WeightTotal float64 `json:"weight_total"`
	Count       int     `json:"count"`
}

func (g GradeStats) Average() null.Float64 {
	if g.Count == 0 || g.WeightTotal == 0 {
		return null.Float64{}
	}
	return null.Float64From(g.WeightedSum / g.WeightTotal)
}

func (g *GradeStats) add(a models.Activity) {
	if !a.Grade.Valid {
		return
	}
	w := weightOf(a)
	g.WeightedSum += clamp(a.Grade.Float64, 0, maxGrade) * w
	g.WeightTotal += w
	g.Count++
}

// SubjectGrades collects the graded activities of one subject.
func SubjectGrades(activities []models.Activity, subjectID string) GradeStats {
	var g GradeStats
	for _, a := range activities {
		if a.SubjectID == subjectID {
			g.add(a)
		}
	}
	return g
}

// PooledGrades collects every graded activity regardless of subject.
func PooledGrades(activities []models.Activity) GradeStats {
	var g GradeStats
	for _, a := range activities {
		g.add(a)
	}
	return g
}

func WeightedAverage(activities []models.Activity, subjectID string) null.Float64 {
	return SubjectGrades(activities, subjectID).Average()
}

// GradeNeeded solves for the grade on a weight-1 evaluation that lifts the
// average to target. Unreachable targets (above 10) yield an invalid value.
func GradeNeeded(target, weightedSum, weightTotal float64) null.Float64 {
	needed := (target*(weightTotal+nextEvalWeight) - weightedSum) / nextEvalWeight
	if needed > maxGrade {
		return null.Float64{}
	}
	if needed < 0 {
		needed = 0
	}
	return null.Float64From(needed)
}

type GradeNeededResult struct {
	SubjectID  string       `json:"subject_id"`
	Current    null.Float64 `json:"current"`
	Target     float64      `json:"target"`
	Applicable bool         `json:"applicable"`
	Reachable  bool         `json:"reachable"`
	Needed     null.Float64 `json:"needed"`
}

func SubjectGradeNeeded(activities []models.Activity, subjectID string, target float64) GradeNeededResult {
	g := SubjectGrades(activities, subjectID)
	res := GradeNeededResult{
		SubjectID: subjectID,
		Current:   g.Average(),
		Target:    target,
	}
	if !res.Current.Valid || res.Current.Float64 >= target {
		return res
	}
	res.Applicable = true
	res.Needed = GradeNeeded(target, g.WeightedSum, g.WeightTotal)
	res.Reachable = res.Needed.Valid
	return res
}

// OverallAverage is the plain mean of subject averages; subjects without
// grades are left out.
func OverallAverage(activities []models.Activity, subjects []models.Subject) null.Float64 {
	var sum float64
	var n int
	for _, s := range subjects {
		if avg := WeightedAverage(activities, s.ID); avg.Valid {
			sum += avg.Float64
			n++
		}
	}
	if n == 0 {
		return null.Float64{}
	}
	return null.Float64From(sum / float64(n))
}
