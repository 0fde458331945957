package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

const (
	todoLimit = 5

	studentHelp = `Доступные команды:
/token - Получить токен для доступа к API
/score - Академический скор
/risk - Риски по предметам
/todo - Что делать в первую очередь
/week - Итоги недели
/help - Показать это сообщение`

	adminHelp = studentHelp + `

Для админов:
/link <tg_username> <student> - Привязать telegram пользователя к студенту
/difficulty <student> <activity> <high|medium|low> - Задать сложность задания вручную

Примеры:
/link @jane_tg jane.doe
/difficulty jane.doe 6f1c2b9e high`
)

type commandHandler func(*tgbotapi.Message) error

func (b *Bot) routeStudentCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"start": b.handleStart,
		"help":  b.handleHelp,
		"token": b.handleToken,
		"score": b.handleScore,
		"risk":  b.handleRisk,
		"todo":  b.handleTodo,
		"week":  b.handleWeek,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) routeAdminCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"link":       b.handleLink,
		"difficulty": b.handleDifficulty,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		b.sendHelp(msg.Chat.ID)
		return
	}

	cmd := msg.Command()

	if handler, ok := b.routeStudentCommands(cmd); ok {
		if err := handler(msg); err != nil {
			logger.Error.Printf("Command error: %v", err)
			b.sendMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
		}
		return
	}

	if b.admins[msg.From.ID] {
		if handler, ok := b.routeAdminCommands(cmd); ok {
			if err := handler(msg); err != nil {
				logger.Error.Printf("Command error: %v", err)
				b.sendMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
			}
		}
		return
	}

	b.sendHelp(msg.Chat.ID)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	var text string
	if b.admins[msg.From.ID] {
		text = adminHelp
	} else {
		text = studentHelp
	}

	return b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) sendHelp(chatID int64) error {
	return b.sendMessage(chatID, "Используйте команды для взаимодействия с ботом. Отправьте /help для списка команд.")
}

func (b *Bot) handleStart(msg *tgbotapi.Message) error {
	text := "Привет! Я слежу за твоей учёбой.\n\n"
	if b.admins[msg.From.ID] {
		text += "Ты администратор. Используй /help для списка команд."
	} else {
		text += "Попроси администратора привязать тебя к студенту, потом используй /score или /todo."
	}

	return b.sendMessage(msg.Chat.ID, text)
}

// handleLink is admin only: a link decides whose token /token hands out.
func (b *Bot) handleLink(msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())
	if len(args) != 2 {
		return b.sendMessage(msg.Chat.ID, "Использование:\n/link <tg_username> <student>")
	}
	username, student := strings.TrimPrefix(args[0], "@"), args[1]
	if username == "" {
		return fmt.Errorf("пустой username")
	}

	ctx := context.Background()
	action := "привязан"
	if existing, err := b.tokens.FetchLink(ctx, username); err == nil && existing != nil {
		if existing.Student == student {
			return b.sendMessage(msg.Chat.ID, fmt.Sprintf("@%s уже привязан к студенту %s", username, student))
		}
		action = fmt.Sprintf("перепривязан (был %s)", existing.Student)
	}

	link := models.ChatLink{
		Student:    student,
		Username:   username,
		LinkedTime: time.Now(),
	}
	if err := b.tokens.LinkTelegram(ctx, link); err != nil {
		return fmt.Errorf("не удалось сохранить привязку: %v", err)
	}

	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ @%s %s к студенту %s", username, action, student))
}

// studentFor resolves the student linked to the sender.
func (b *Bot) studentFor(ctx context.Context, msg *tgbotapi.Message) (string, error) {
	if msg.From.UserName == "" {
		return "", fmt.Errorf("для работы с ботом нужен username в telegram")
	}
	link, err := b.tokens.FetchLink(ctx, msg.From.UserName)
	if err != nil {
		logger.Debug.Printf("No link for %s: %v", msg.From.UserName, err)
		return "", fmt.Errorf("твой telegram не привязан к студенту, обратись к администратору")
	}
	return link.Student, nil
}

func (b *Bot) handleToken(msg *tgbotapi.Message) error {
	ctx := context.Background()
	student, err := b.studentFor(ctx, msg)
	if err != nil {
		return err
	}

	info, isNew, err := b.tokens.FetchOrCreateStudentToken(ctx, student)
	if err != nil {
		return fmt.Errorf("не удалось получить токен: %v", err)
	}

	return b.sendMessage(msg.Chat.ID, formatToken(student, info, isNew))
}

func (b *Bot) handleScore(msg *tgbotapi.Message) error {
	ctx := context.Background()
	student, err := b.studentFor(ctx, msg)
	if err != nil {
		return err
	}

	score, err := b.service.Score(ctx, student)
	if err != nil {
		return fmt.Errorf("не удалось посчитать скор: %v", err)
	}
	return b.sendMessage(msg.Chat.ID, formatScore(score))
}

func (b *Bot) handleRisk(msg *tgbotapi.Message) error {
	ctx := context.Background()
	student, err := b.studentFor(ctx, msg)
	if err != nil {
		return err
	}

	risk, err := b.service.Risk(ctx, student)
	if err != nil {
		return fmt.Errorf("не удалось посчитать риски: %v", err)
	}
	return b.sendMessage(msg.Chat.ID, formatRisk(risk))
}

func (b *Bot) handleTodo(msg *tgbotapi.Message) error {
	ctx := context.Background()
	student, err := b.studentFor(ctx, msg)
	if err != nil {
		return err
	}

	ranked, err := b.service.Priorities(ctx, student)
	if err != nil {
		return fmt.Errorf("не удалось построить список дел: %v", err)
	}
	return b.sendMessage(msg.Chat.ID, formatTodo(ranked, todoLimit))
}

func (b *Bot) handleWeek(msg *tgbotapi.Message) error {
	ctx := context.Background()
	student, err := b.studentFor(ctx, msg)
	if err != nil {
		return err
	}

	weekly, err := b.service.Weekly(ctx, student)
	if err != nil {
		return fmt.Errorf("не удалось собрать итоги недели: %v", err)
	}
	return b.sendMessage(msg.Chat.ID, formatWeek(weekly))
}

func (b *Bot) handleDifficulty(msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())
	if len(args) != 3 {
		return b.sendMessage(msg.Chat.ID, "Использование:\n"+
			"/difficulty <student> <activity> <high|medium|low>")
	}
	student, activity, level := args[0], args[1], strings.ToLower(args[2])

	if err := b.service.SetActivityDifficulty(student, activity, level); err != nil {
		return fmt.Errorf("не удалось сохранить сложность: %v", err)
	}

	title := activity
	if a, err := b.service.Store.GetActivity(student, activity); err == nil && a != nil {
		title = a.Title
	}
	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ Сложность задания «%s» студента %s: %s", title, student, level))
}

func (b *Bot) sendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.out.Send(msg)
	return err
}
