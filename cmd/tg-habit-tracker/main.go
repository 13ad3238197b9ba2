// cmd/tg-habit-tracker/main.go
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/go-telegram/bot"
	"github.com/irondsc/tg-habit-tracker/pkg/bot/handlers"
	"github.com/irondsc/tg-habit-tracker/pkg/bot/progress"
	"github.com/irondsc/tg-habit-tracker/pkg/bot/reminders"
	"github.com/irondsc/tg-habit-tracker/pkg/config"
	"github.com/irondsc/tg-habit-tracker/pkg/db"
	"github.com/irondsc/tg-habit-tracker/pkg/logger"
	"github.com/irondsc/tg-habit-tracker/pkg/ui"
)

type botSender struct {
	b *bot.Bot
}

func (s botSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	_, err := s.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	return err
}

func main() {
	if err := config.LoadConfig("config.json"); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := logger.Configure(logger.Options{
		Level: config.AppConfig.Logging.Level,
		File:  config.AppConfig.Logging.File,
	}); err != nil {
		logger.Error("failed to configure logger", "error", err)
	}

	if err := db.InitDB(config.AppConfig.Database); err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	opts := []bot.Option{
		bot.WithDefaultHandler(handlers.DefaultHandler),
	}
	b, err := bot.New(config.AppConfig.Telegram.Token, opts...)
	if err != nil {
		logger.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, handlers.HandleStart)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, ui.CallbackPrefix, bot.MatchTypePrefix, handlers.HandleMenuCallback)

	go progress.StartProgressTicker(ctx, botSender{b: b}, config.AppConfig.Scheduler.ProgressInterval())
	go reminders.StartPeriodicReminders(ctx, b, config.AppConfig.Scheduler.ReminderInterval())

	logger.Info("Starting bot...")
	b.Start(ctx)
}
