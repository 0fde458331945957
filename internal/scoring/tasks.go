package scoring

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

const overduePenaltyFactor = 20.0

type TaskStats struct {
	Total          int          `json:"total"`
	Completed      int          `json:"completed"`
	Overdue        int          `json:"overdue"`
	CompletionRate null.Float64 `json:"completion_rate"`
	OverduePenalty float64      `json:"overdue_penalty"`
	Effective      null.Float64 `json:"effective"`
}

// IsOverdue reports unfinished activities past their deadline. Activities
// with an unreadable deadline are never overdue.
func IsOverdue(a models.Activity, now time.Time) bool {
	if a.IsCompleted() {
		return false
	}
	deadline, ok := DeadlineAt(a.Deadline, now.Location())
	if !ok {
		return false
	}
	return deadline.Before(now)
}

// OverdueForSubject counts overdue activities of a subject, skipping exceptID.
func OverdueForSubject(activities []models.Activity, subjectID string, now time.Time, exceptID string) int {
	n := 0
	for _, a := range activities {
		if a.SubjectID != subjectID || (exceptID != "" && a.ID == exceptID) {
			continue
		}
		if IsOverdue(a, now) {
			n++
		}
	}
	return n
}

func Tasks(activities []models.Activity, now time.Time) TaskStats {
	stats := TaskStats{Total: len(activities)}
	for _, a := range activities {
		if a.IsCompleted() {
			stats.Completed++
		} else if IsOverdue(a, now) {
			stats.Overdue++
		}
	}
	if stats.Total == 0 {
		return stats
	}

	rate := 100 * float64(stats.Completed) / float64(stats.Total)
	stats.CompletionRate = null.Float64From(rate)
	stats.OverduePenalty = overduePenaltyFactor * float64(stats.Overdue) / float64(stats.Total)
	stats.Effective = null.Float64From(clamp(rate-stats.OverduePenalty, 0, 100))
	return stats
}
