package bot

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/pluggbulle/internal/app"
	"github.com/shrimpsizemoose/pluggbulle/internal/models"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// linkStore is the part of app.TokenManager the bot uses.
type linkStore interface {
	LinkTelegram(ctx context.Context, link models.ChatLink) error
	FetchLink(ctx context.Context, tgUsername string) (*models.ChatLink, error)
	FetchOrCreateStudentToken(ctx context.Context, student string) (*models.TokenInfo, bool, error)
}

type Bot struct {
	service *app.Service
	tokens  linkStore
	api     *tgbotapi.BotAPI
	out     sender
	admins  map[int64]bool
}

func New(service *app.Service, tokens *app.TokenManager) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(service.Config.Bot.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	admins := make(map[int64]bool)
	for _, id := range service.Config.Bot.AdminIDs {
		admins[id] = true
	}

	return &Bot{
		service: service,
		tokens:  tokens,
		api:     api,
		out:     api,
		admins:  admins,
	}, nil
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case update := <-updates:
			if update.Message == nil {
				continue
			}

			go b.handleMessage(update.Message)

		case <-sigChan:
			logger.Info.Println("Shutting down bot...")
			b.api.StopReceivingUpdates()
			return nil
		}
	}
}
