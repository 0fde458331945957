package scoring

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

type PriorityLevel string

const (
	PriorityCritical PriorityLevel = "critical"
	PriorityHigh     PriorityLevel = "high"
	PriorityMedium   PriorityLevel = "medium"
	PriorityLow      PriorityLevel = "low"
)

const (
	reasonSeparator = " · "
	reasonFallback  = "normal priority"

	defaultRisk       = 30.0
	neutralDifficulty = 40.0
	baseWeightPoints  = 25.0
)

type PriorityBreakdown struct {
	Deadline    float64 `json:"deadline"`
	Weight      float64 `json:"weight"`
	Risk        float64 `json:"risk"`
	Difficulty  float64 `json:"difficulty"`
	StatusBonus float64 `json:"status_bonus"`
}

type PriorityResult struct {
	Score     int               `json:"score"`
	Label     string            `json:"label"`
	Level     PriorityLevel     `json:"level"`
	Reason    string            `json:"reason"`
	Breakdown PriorityBreakdown `json:"breakdown"`
}

// PriorityContext is the data an activity is ranked against.
type PriorityContext struct {
	Subjects   []models.Subject
	Activities []models.Activity
	Attendance []models.AttendanceRecord
	Status     models.AcademicStatus
	Now        time.Time
}

var deadlineBuckets = []struct {
	maxHours float64
	points   float64
}{
	{12, 95},
	{24, 85},
	{48, 70},
	{72, 55},
	{168, 35},
	{336, 20},
}

func deadlineScore(hours float64, known bool) float64 {
	if !known {
		return 5
	}
	if hours < 0 {
		return 100
	}
	for _, b := range deadlineBuckets {
		if hours <= b.maxHours {
			return b.points
		}
	}
	return 5
}

func typeMultiplier(t models.ActivityType) float64 {
	switch t {
	case models.TypeExam:
		return 1.5
	case models.TypeSeminar:
		return 1.2
	default:
		return 1.0
	}
}

func weightScore(a models.Activity) float64 {
	return math.Min(100, weightOf(a)*typeMultiplier(a.ActivityType)*baseWeightPoints)
}

func gradeRisk(avg float64) float64 {
	switch {
	case avg < 5:
		return 90
	case avg < 6:
		return 70
	case avg < 7:
		return 50
	default:
		return 20
	}
}

// riskScore keeps the single worst signal; rules never add up.
func riskScore(a models.Activity, pc PriorityContext) float64 {
	found := false
	for _, s := range pc.Subjects {
		if s.ID == a.SubjectID {
			found = true
			break
		}
	}
	if !found {
		return defaultRisk
	}

	risk := defaultRisk
	if avg := WeightedAverage(pc.Activities, a.SubjectID); avg.Valid {
		risk = gradeRisk(avg.Float64)
	}
	if rate := AttendanceRate(pc.Attendance, a.SubjectID); rate.Valid {
		switch {
		case rate.Float64 < 75:
			risk = math.Max(risk, 80)
		case rate.Float64 < 85:
			risk = math.Max(risk, 50)
		}
	}
	if OverdueForSubject(pc.Activities, a.SubjectID, pc.Now, a.ID) >= 2 {
		risk = math.Max(risk, 75)
	}
	return risk
}

func difficultyScore(a models.Activity) float64 {
	if !a.AIDifficulty.Valid {
		return neutralDifficulty
	}
	switch a.AIDifficulty.String {
	case models.DifficultyHigh:
		return 85
	case models.DifficultyMedium:
		return 45
	case models.DifficultyLow:
		return 15
	default:
		return neutralDifficulty
	}
}

func statusBonus(a models.Activity, status models.AcademicStatus) float64 {
	if status != models.StatusFreshman {
		return 0
	}
	switch a.ActivityType {
	case models.TypeExam:
		return 12
	case models.TypeSeminar:
		return 8
	default:
		return 5
	}
}

func PriorityLevelFor(score int) (PriorityLevel, string) {
	switch {
	case score >= 75:
		return PriorityCritical, "Urgent"
	case score >= 50:
		return PriorityHigh, "High"
	case score >= 25:
		return PriorityMedium, "Medium"
	default:
		return PriorityLow, "Low"
	}
}

type prioritySignals struct {
	activity      models.Activity
	hours         float64
	deadlineKnown bool
	breakdown     PriorityBreakdown
}

var priorityReasons = []struct {
	applies func(s prioritySignals) bool
	label   string
}{
	{func(s prioritySignals) bool { return s.deadlineKnown && s.hours < 0 }, "overdue"},
	{func(s prioritySignals) bool { return s.deadlineKnown && s.hours >= 0 && s.hours <= 48 }, "deadline within 48h"},
	{func(s prioritySignals) bool { return s.breakdown.Weight >= 75 }, "high weight"},
	{func(s prioritySignals) bool { return s.activity.ActivityType == models.TypeExam }, "exam"},
	{func(s prioritySignals) bool { return s.breakdown.Risk >= 70 }, "subject at risk"},
	{func(s prioritySignals) bool { return s.breakdown.Difficulty >= 85 }, "marked as difficult"},
	{func(s prioritySignals) bool { return s.breakdown.StatusBonus > 0 }, "first year student"},
}

func priorityReason(s prioritySignals) string {
	seen := make(map[string]bool)
	var parts []string
	for _, r := range priorityReasons {
		if !r.applies(s) || seen[r.label] {
			continue
		}
		seen[r.label] = true
		parts = append(parts, r.label)
	}
	if len(parts) == 0 {
		return reasonFallback
	}
	return strings.Join(parts, reasonSeparator)
}

// Priority scores how urgently an activity needs attention, 0-100.
func Priority(a models.Activity, pc PriorityContext) PriorityResult {
	if a.IsCompleted() {
		return PriorityResult{Score: 0, Label: "Completed", Level: PriorityLow}
	}

	s := prioritySignals{activity: a}
	if deadline, ok := DeadlineAt(a.Deadline, pc.Now.Location()); ok {
		s.deadlineKnown = true
		s.hours = HoursUntil(deadline, pc.Now)
	}
	s.breakdown = PriorityBreakdown{
		Deadline:    deadlineScore(s.hours, s.deadlineKnown),
		Weight:      weightScore(a),
		Risk:        riskScore(a, pc),
		Difficulty:  difficultyScore(a),
		StatusBonus: statusBonus(a, pc.Status),
	}

	b := s.breakdown
	composite := math.Round(b.Deadline*0.30 + b.Weight*0.20 + b.Risk*0.25 + b.Difficulty*0.25 + b.StatusBonus)
	score := int(math.Min(100, composite))
	level, label := PriorityLevelFor(score)

	return PriorityResult{
		Score:     score,
		Label:     label,
		Level:     level,
		Reason:    priorityReason(s),
		Breakdown: b,
	}
}

type Ranked struct {
	Activity models.Activity `json:"activity"`
	Priority PriorityResult  `json:"priority"`
}

// Rank orders activities by priority, highest first; ties keep input order.
func Rank(activities []models.Activity, pc PriorityContext) []Ranked {
	ranked := make([]Ranked, 0, len(activities))
	for _, a := range activities {
		ranked = append(ranked, Ranked{Activity: a, Priority: Priority(a, pc)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Priority.Score > ranked[j].Priority.Score
	})
	return ranked
}

func RankPending(pc PriorityContext) []Ranked {
	pending := make([]models.Activity, 0, len(pc.Activities))
	for _, a := range pc.Activities {
		if !a.IsCompleted() {
			pending = append(pending, a)
		}
	}
	return Rank(pending, pc)
}
