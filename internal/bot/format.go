package bot

import (
	"fmt"
	"strings"

	"github.com/volatiletech/null/v8"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
	"github.com/shrimpsizemoose/pluggbulle/internal/scoring"
)

var levelEmoji = map[scoring.Level]string{
	scoring.LevelSafe:    "🟢",
	scoring.LevelWarning: "🟡",
	scoring.LevelDanger:  "🔴",
}

var priorityEmoji = map[scoring.PriorityLevel]string{
	scoring.PriorityCritical: "🔥",
	scoring.PriorityHigh:     "❗",
	scoring.PriorityMedium:   "📌",
	scoring.PriorityLow:      "💤",
}

var trendArrow = map[scoring.Trend]string{
	scoring.TrendUp:   "↑",
	scoring.TrendDown: "↓",
	scoring.TrendFlat: "→",
}

func orDash(v null.Float64, format string) string {
	if !v.Valid {
		return "-"
	}
	return fmt.Sprintf(format, v.Float64)
}

func formatToken(student string, info *models.TokenInfo, isNew bool) string {
	var msg strings.Builder
	if isNew {
		msg.WriteString(fmt.Sprintf("🔑 Новый токен для %s:\n\n", student))
	} else {
		msg.WriteString(fmt.Sprintf("🔑 Токен для %s (запрошен %d раз):\n\n", student, info.RequestCount))
	}
	msg.WriteString(info.Token)
	msg.WriteString("\n\nПередавай его в заголовке Authorization: Bearer <token>")
	return msg.String()
}

func formatScore(a scoring.Academic) string {
	if !a.HasData {
		return "📊 Пока нет данных: добавь задания или посещаемость."
	}
	return fmt.Sprintf("📊 Скор: %d (%s)\n\n"+
		"Оценки: %s\n"+
		"Посещаемость: %s\n"+
		"Задания: %s\n"+
		"Стабильность: %.0f",
		a.Total, a.Label,
		orDash(a.Breakdown.Grade, "%.0f"),
		orDash(a.Breakdown.Attendance, "%.0f"),
		orDash(a.Breakdown.Tasks, "%.0f"),
		a.Breakdown.Consistency,
	)
}

func formatRisk(r scoring.RiskSummary) string {
	if len(r.Subjects) == 0 {
		return "Предметов пока нет"
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("%s Общий риск: %s\n\n", levelEmoji[r.Overall], r.Overall))
	for _, s := range r.Subjects {
		msg.WriteString(fmt.Sprintf("%s %s: %d\n", levelEmoji[s.Level], s.SubjectName, s.Score))
		if len(s.Factors) > 0 {
			msg.WriteString("   " + strings.Join(s.Factors, ", ") + "\n")
		}
	}
	return msg.String()
}

func formatTodo(ranked []scoring.Ranked, limit int) string {
	if len(ranked) == 0 {
		return "🎉 Все задания сделаны"
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	var msg strings.Builder
	msg.WriteString("Что делать дальше:\n\n")
	for i, r := range ranked {
		msg.WriteString(fmt.Sprintf("%d. %s %s (%d, %s)\n   📅 %s · %s\n",
			i+1,
			priorityEmoji[r.Priority.Level],
			r.Activity.Title,
			r.Priority.Score,
			r.Priority.Label,
			r.Activity.Deadline,
			r.Priority.Reason,
		))
	}
	return msg.String()
}

func formatWeek(w scoring.Weekly) string {
	cur, d := w.Current, w.Delta
	return fmt.Sprintf("🗓 Неделя с %s\n\n"+
		"Сделано заданий: %d %s\n"+
		"Занятий: %d %s\n"+
		"Посещено: %d %s\n"+
		"Часов на парах: %.1f %s",
		cur.Window.Start.Format(models.DateLayout),
		cur.TasksCompleted, trendArrow[d.TasksCompleted.Trend],
		cur.Classes, trendArrow[d.Classes.Trend],
		cur.Present, trendArrow[d.Present.Trend],
		cur.HoursAttended, trendArrow[d.HoursAttended.Trend],
	)
}
