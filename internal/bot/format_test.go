package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
	"github.com/shrimpsizemoose/pluggbulle/internal/scoring"
)

func TestFormatScore(t *testing.T) {
	assert.Contains(t, formatScore(scoring.Academic{Label: scoring.LabelNoData}), "нет данных")

	text := formatScore(scoring.Academic{
		Total:   78,
		Label:   "Good",
		HasData: true,
		Breakdown: scoring.Breakdown{
			Grade:       null.Float64From(70),
			Tasks:       null.Float64From(90),
			Consistency: 75,
		},
	})
	assert.Contains(t, text, "Скор: 78 (Good)")
	assert.Contains(t, text, "Оценки: 70")
	assert.Contains(t, text, "Посещаемость: -")
}

func TestFormatRisk(t *testing.T) {
	assert.Equal(t, "Предметов пока нет", formatRisk(scoring.RiskSummary{Overall: scoring.LevelSafe}))

	text := formatRisk(scoring.RiskSummary{
		Overall: scoring.LevelDanger,
		Subjects: []scoring.Risk{
			{SubjectName: "Math", Level: scoring.LevelDanger, Score: 70, Factors: []string{"low grades", "2 overdue tasks"}},
			{SubjectName: "Art", Level: scoring.LevelSafe},
		},
	})
	assert.Contains(t, text, "🔴 Общий риск: danger")
	assert.Contains(t, text, "🔴 Math: 70")
	assert.Contains(t, text, "low grades, 2 overdue tasks")
	assert.Contains(t, text, "🟢 Art: 0")
}

func TestFormatTodo(t *testing.T) {
	assert.Contains(t, formatTodo(nil, 5), "Все задания сделаны")

	ranked := make([]scoring.Ranked, 7)
	for i := range ranked {
		ranked[i] = scoring.Ranked{
			Activity: models.Activity{Title: "Task", Deadline: "2024-04-12"},
			Priority: scoring.PriorityResult{Score: 50, Label: "Medium", Level: scoring.PriorityMedium, Reason: "normal priority"},
		}
	}
	text := formatTodo(ranked, 5)
	assert.Contains(t, text, "5. 📌 Task (50, Medium)")
	assert.NotContains(t, text, "6.")
}

func TestFormatWeek(t *testing.T) {
	w := scoring.Weekly{
		Current: scoring.WeekStats{
			Window:         scoring.WeekWindow(time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)),
			TasksCompleted: 3,
			Classes:        4,
			Present:        3,
			HoursAttended:  4.5,
		},
		Delta: scoring.WeeklyDelta{
			TasksCompleted: scoring.Change{Diff: 1, Trend: scoring.TrendUp},
			Classes:        scoring.Change{Trend: scoring.TrendFlat},
			Present:        scoring.Change{Diff: -1, Trend: scoring.TrendDown},
			HoursAttended:  scoring.Change{Diff: -1.5, Trend: scoring.TrendDown},
		},
	}

	text := formatWeek(w)
	assert.Contains(t, text, "Неделя с 2024-04-08")
	assert.Contains(t, text, "Сделано заданий: 3 ↑")
	assert.Contains(t, text, "Часов на парах: 4.5 ↓")
}

func TestFormatToken(t *testing.T) {
	info := &models.TokenInfo{Token: "sk-plggbll-abc", RequestCount: 3}
	assert.Contains(t, formatToken("jane.doe", info, true), "Новый токен для jane.doe")
	assert.Contains(t, formatToken("jane.doe", info, false), "запрошен 3 раз")
}
