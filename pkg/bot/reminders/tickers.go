// Package reminders sends the periodic cadence-driven habit reminders.
package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/irondsc/tg-habit-tracker/pkg/config"
	"github.com/irondsc/tg-habit-tracker/pkg/db"
	"github.com/irondsc/tg-habit-tracker/pkg/habit"
	"github.com/irondsc/tg-habit-tracker/pkg/logger"
)

// StartPeriodicReminders nudges users about their active habits on a
// fixed interval until the context is canceled.
func StartPeriodicReminders(ctx context.Context, b *bot.Bot, interval time.Duration) {
	if interval <= 0 {
		interval = config.DefaultReminderInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			processReminders(ctx, b, now.UTC())
		}
	}
}

func processReminders(ctx context.Context, b *bot.Bot, now time.Time) {
	habits, err := db.ListActiveHabitsAll()
	if err != nil {
		logger.Error("failed to fetch habits for reminders", "error", err)
		return
	}

	for _, h := range habits {
		if !habit.ShouldRemind(habit.Cadence(h.Cadence), now) {
			continue
		}
		text := fmt.Sprintf("📌 Reminder: don't forget about your habit '%s'! You're on the right track 💪", h.Name)
		if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: h.UserID,
			Text:   text,
		}); err != nil {
			// Delivery failures are per-recipient; keep going.
			logger.Error("failed to send habit reminder", "user_id", h.UserID, "habit_id", h.ID, "error", err)
		}
	}
}
