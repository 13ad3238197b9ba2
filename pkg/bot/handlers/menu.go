package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/irondsc/tg-habit-tracker/pkg/bot/session"
	"github.com/irondsc/tg-habit-tracker/pkg/db"
	"github.com/irondsc/tg-habit-tracker/pkg/logger"
	"github.com/irondsc/tg-habit-tracker/pkg/motivation"
	"github.com/irondsc/tg-habit-tracker/pkg/ui"
)

const mainMenuText = "Ready to improve yourself? Great! Here is what we can do together:\n\n" +
	"🌱 Add a habit: name your new goal, pick how often you'll work on it, and we're off.\n\n" +
	"🚀 Show progress: check your achievements. Every step is a small win!\n\n" +
	"💪 Get motivation: grab a phrase to lift your fighting spirit.\n\n" +
	"✅ Complete a habit: log the work you just did.\n\n" +
	"🎯 Delete a habit: once a habit is truly yours, you can let it go.\n\n" +
	"Pick a goal, make a plan, and beat yesterday's you! 🌟"

// HandleMenuCallback dispatches the inline menu buttons.
func HandleMenuCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.CallbackQuery == nil {
		logger.Error("invalid update in HandleMenuCallback")
		return
	}

	if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
	}); err != nil {
		logger.Error("failed to answer menu callback query", "error", err)
	}

	message := update.CallbackQuery.Message
	if message.Type != models.MaybeInaccessibleMessageTypeMessage || message.Message == nil || message.Message.Chat.ID == 0 {
		logger.Error("menu callback without accessible message")
		return
	}
	chatID := message.Message.Chat.ID
	userID := update.CallbackQuery.From.ID

	action, err := ui.ParseCallbackData(update.CallbackQuery.Data)
	if err != nil {
		logger.Error("unknown menu callback", "data", update.CallbackQuery.Data, "error", err)
		return
	}

	switch action {
	case ui.ActionMainMenu:
		if err := session.Reset(userID); err != nil {
			logger.Error("failed to reset conversation state", "user_id", userID, "error", err)
		}
		sendText(ctx, b, chatID, mainMenuText, ui.MainMenuKeyboard())
	case ui.ActionAddHabit:
		beginFlow(ctx, b, chatID, userID, session.BeginAddingHabit,
			"What habit do you want to build? Send me its name.")
	case ui.ActionCompleteHabit:
		beginFlow(ctx, b, chatID, userID, session.BeginCompletion,
			"Which habit did you just work on? Send me its name and I'll bump its progress.")
	case ui.ActionDeleteHabit:
		beginFlow(ctx, b, chatID, userID, session.BeginDeletion,
			"Which habit do you want to delete? Send me its name.")
	case ui.ActionProgress:
		text, err := renderProgress(userID)
		if err != nil {
			logger.Error("failed to render progress", "user_id", userID, "error", err)
			sendText(ctx, b, chatID, "Failed to load your progress. Please try again later.", ui.ReturnToMenuKeyboard())
			return
		}
		sendText(ctx, b, chatID, text, ui.ReturnToMenuKeyboard())
	case ui.ActionMotivation:
		sendText(ctx, b, chatID, "💪 "+motivation.Pick(), ui.ReturnToMenuKeyboard())
	}
}

func beginFlow(ctx context.Context, b *bot.Bot, chatID, userID int64, begin func(int64) error, prompt string) {
	if err := begin(userID); err != nil {
		logger.Error("failed to enter conversation state", "user_id", userID, "error", err)
		sendText(ctx, b, chatID, "Something went wrong. Please try again from the menu.", ui.ReturnToMenuKeyboard())
		return
	}
	sendText(ctx, b, chatID, prompt, nil)
}

func renderProgress(userID int64) (string, error) {
	habits, err := db.ListActiveHabits(userID)
	if err != nil {
		return "", err
	}
	if len(habits) == 0 {
		return "You have no active habits yet. Start by adding a new one!", nil
	}

	var sb strings.Builder
	sb.WriteString("Your progress:\n\n")
	for _, h := range habits {
		percentage := 0.0
		if h.Total > 0 {
			percentage = h.Progress / h.Total * 100
		}
		fmt.Fprintf(&sb, "🎯 %s: %.1f/%.0f (%.1f%%)\n", h.Name, h.Progress, h.Total, percentage)
	}
	return sb.String(), nil
}

func sendText(ctx context.Context, b *bot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}
	if _, err := b.SendMessage(ctx, params); err != nil {
		logger.Error("failed to send message", "chat_id", chatID, "error", err)
	}
}
