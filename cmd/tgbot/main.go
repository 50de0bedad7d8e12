package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/config"
	"github.com/Ruchit0807/chemicalplantdesign009/internal/observability"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := config.LoadEnvFile(".env"); err != nil {
		logrus.WithError(err).Fatal("Error loading .env file")
	}
	logger := observability.NewLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	token := os.Getenv("TOKEN_BOT")
	if token == "" {
		logger.Fatal("TOKEN_BOT missing")
	}

	bot := &Bot{
		API: &TelegramAPI{BaseURL: "https://api.telegram.org/bot" + token},
		Log: logger,
	}
	logger.Info("bot polling for updates")
	bot.Run(ctx, 2*time.Second)
	logger.Info("bot stopped")
}

// Run polls for updates until ctx is done, answering each message.
func (b *Bot) Run(ctx context.Context, retry time.Duration) {
	offset := 0
	for ctx.Err() == nil {
		updates, err := b.API.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			b.Log.WithError(err).Warn("getUpdates error")
			select {
			case <-ctx.Done():
				return
			case <-time.After(retry):
			}
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			b.Handle(ctx, u)
		}
	}
}

type Bot struct {
	API interface {
		GetUpdates(ctx context.Context, offset int) ([]Update, error)
		SendMessage(ctx context.Context, chatID int64, text string) error
	}
	Log logrus.FieldLogger
}

func (b *Bot) Handle(ctx context.Context, u Update) {
	if u.Message == nil || u.Message.Text == "" {
		return
	}
	reply := Respond(u.Message.Text)
	if reply == "" {
		return
	}
	if err := b.API.SendMessage(ctx, u.Message.Chat.ID, reply); err != nil {
		b.Log.WithError(err).WithField("chat_id", u.Message.Chat.ID).Warn("sendMessage failed")
	}
}
