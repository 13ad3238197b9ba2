package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/irondsc/tg-habit-tracker/pkg/bot/session"
	"github.com/irondsc/tg-habit-tracker/pkg/logger"
	"github.com/irondsc/tg-habit-tracker/pkg/ui"
)

const welcomeText = "Welcome to Iron Discipline! I'm your companion on the road to " +
	"discipline and new habits. Ready to become a better version of yourself? " +
	"Tap Go to menu and start right now!"

// HandleStart greets the user and, as the fallback path of every flow,
// discards whatever conversation state was pending.
func HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleStart")
		return
	}

	if err := session.Reset(update.Message.From.ID); err != nil {
		logger.Error("failed to reset conversation state", "user_id", update.Message.From.ID, "error", err)
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        welcomeText,
		ReplyMarkup: ui.WelcomeKeyboard(),
	})
	if err != nil {
		logger.Error("failed to send welcome message", "user_id", update.Message.From.ID, "error", err)
	}
}
