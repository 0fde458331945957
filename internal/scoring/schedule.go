package scoring

import (
	"sort"
	"time"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

type Slot struct {
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	Day         int    `json:"day"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`

	start, end int
}

type Conflict struct {
	Day    int  `json:"day"`
	First  Slot `json:"first"`
	Second Slot `json:"second"`
}

func slotsOf(subjects []models.Subject) []Slot {
	var slots []Slot
	for _, subj := range subjects {
		for _, sc := range subj.Schedules {
			start, ok1 := clockMinutes(sc.StartTime)
			end, ok2 := clockMinutes(sc.EndTime)
			if !ok1 || !ok2 {
				continue
			}
			slots = append(slots, Slot{
				SubjectID:   subj.ID,
				SubjectName: subj.Name,
				Day:         sc.Day,
				StartTime:   sc.StartTime,
				EndTime:     sc.EndTime,
				start:       start,
				end:         end,
			})
		}
	}
	return slots
}

// ScheduleConflicts finds overlapping [start, end) slots on the same day.
func ScheduleConflicts(subjects []models.Subject) []Conflict {
	slots := slotsOf(subjects)
	conflicts := []Conflict{}
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			a, b := slots[i], slots[j]
			if a.Day != b.Day {
				continue
			}
			if a.start < b.end && b.start < a.end {
				conflicts = append(conflicts, Conflict{Day: a.Day, First: a, Second: b})
			}
		}
	}
	return conflicts
}

func TodayClasses(subjects []models.Subject, now time.Time) []Slot {
	today := []Slot{}
	for _, s := range slotsOf(subjects) {
		if s.Day == int(now.Weekday()) {
			today = append(today, s)
		}
	}
	sort.SliceStable(today, func(i, j int) bool {
		return today[i].start < today[j].start
	})
	return today
}
