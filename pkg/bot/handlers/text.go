package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/irondsc/tg-habit-tracker/pkg/bot/session"
	"github.com/irondsc/tg-habit-tracker/pkg/db"
	"github.com/irondsc/tg-habit-tracker/pkg/habit"
	"github.com/irondsc/tg-habit-tracker/pkg/logger"
	"github.com/irondsc/tg-habit-tracker/pkg/ui"
)

// DefaultHandler routes free text by the user's conversation state. Idle
// users get a usage hint.
func DefaultHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("received invalid update in DefaultHandler")
		return
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	state, err := session.Get(userID)
	if err != nil {
		logger.Error("failed to load conversation state", "user_id", userID, "error", err)
		failFlow(ctx, b, chatID, userID)
		return
	}

	if state == nil || text == "" {
		sendText(ctx, b, chatID,
			"Send /start or use the menu to add habits, track progress, and get motivation.",
			ui.ReturnToMenuKeyboard())
		return
	}

	switch state.State {
	case session.StateAddingHabit:
		handleHabitName(ctx, b, chatID, userID, text)
	case session.StateSettingCadence:
		handleCadenceChoice(ctx, b, chatID, userID, state.PendingHabit, text)
	case session.StateAwaitingCompletion:
		handleCompletionTarget(ctx, b, chatID, userID, text)
	case session.StateAwaitingDeletion:
		handleDeletionTarget(ctx, b, chatID, userID, text)
	default:
		logger.Error("unknown conversation state", "user_id", userID, "state", state.State)
		failFlow(ctx, b, chatID, userID)
	}
}

func handleHabitName(ctx context.Context, b *bot.Bot, chatID, userID int64, name string) {
	if err := session.SetPendingHabit(userID, name); err != nil {
		logger.Error("failed to store pending habit name", "user_id", userID, "error", err)
		failFlow(ctx, b, chatID, userID)
		return
	}
	sendText(ctx, b, chatID, "How often do you want to work on this habit?", ui.CadenceKeyboard())
}

func handleCadenceChoice(ctx context.Context, b *bot.Bot, chatID, userID int64, name, text string) {
	cadence := habit.ParseCadence(text)

	_, err := db.CreateHabit(userID, name, string(cadence), habit.DefaultTotal)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateHabit) {
			resetState(userID)
			sendText(ctx, b, chatID,
				fmt.Sprintf("You already have an active habit named '%s'. Pick another name from the menu.", name),
				ui.ReturnToMenuKeyboard())
			return
		}
		logger.Error("failed to create habit", "user_id", userID, "error", err)
		failFlow(ctx, b, chatID, userID)
		return
	}
	resetState(userID)

	sendText(ctx, b, chatID,
		fmt.Sprintf("Habit '%s' added with cadence '%s'. Good luck!", name, cadence), nil)
	sendText(ctx, b, chatID,
		"You can return to the main menu and keep tracking!", ui.ReturnToMenuKeyboard())
}

func handleCompletionTarget(ctx context.Context, b *bot.Bot, chatID, userID int64, name string) {
	found, err := db.FindActiveHabit(userID, name)
	if err != nil {
		if errors.Is(err, db.ErrHabitNotFound) {
			resetState(userID)
			sendText(ctx, b, chatID, "Habit not found or already completed.", ui.ReturnToMenuKeyboard())
			return
		}
		logger.Error("failed to look up habit", "user_id", userID, "error", err)
		failFlow(ctx, b, chatID, userID)
		return
	}

	updated, err := db.AdvanceHabit(found.ID, habit.ManualIncrement)
	if err != nil {
		logger.Error("failed to advance habit", "user_id", userID, "habit_id", found.ID, "error", err)
		failFlow(ctx, b, chatID, userID)
		return
	}
	resetState(userID)

	var message string
	if updated.Archived {
		message = fmt.Sprintf("Congratulations! You finished '%s' and it has been moved to the archive.", name)
	} else {
		message = fmt.Sprintf("Progress for '%s' increased by %.0f. You're now at %.1f/%.0f.",
			name, habit.ManualIncrement, updated.Progress, updated.Total)
	}
	sendText(ctx, b, chatID, message, nil)
	sendText(ctx, b, chatID, "You can return to the main menu.", ui.ReturnToMenuKeyboard())
}

func handleDeletionTarget(ctx context.Context, b *bot.Bot, chatID, userID int64, name string) {
	removed, err := db.DeleteHabits(userID, name)
	if err != nil {
		logger.Error("failed to delete habit", "user_id", userID, "error", err)
		failFlow(ctx, b, chatID, userID)
		return
	}
	resetState(userID)

	var message string
	if removed == 0 {
		message = fmt.Sprintf("No habit named '%s' was found.", name)
	} else {
		message = fmt.Sprintf("Habit '%s' has been deleted.", name)
	}
	sendText(ctx, b, chatID, message, nil)
	sendText(ctx, b, chatID, "You can return to the main menu and keep tracking!", ui.ReturnToMenuKeyboard())
}

// failFlow surfaces a generic failure and returns the user to idle so a
// storage error never leaves them stuck mid-flow.
func failFlow(ctx context.Context, b *bot.Bot, chatID, userID int64) {
	resetState(userID)
	sendText(ctx, b, chatID, "Something went wrong. Please try again from the menu.", ui.ReturnToMenuKeyboard())
}

func resetState(userID int64) {
	if err := session.Reset(userID); err != nil {
		logger.Error("failed to reset conversation state", "user_id", userID, "error", err)
	}
}
