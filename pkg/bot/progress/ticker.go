// Package progress runs the background accrual of habit progress.
package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/irondsc/tg-habit-tracker/pkg/config"
	"github.com/irondsc/tg-habit-tracker/pkg/db"
	"github.com/irondsc/tg-habit-tracker/pkg/habit"
	"github.com/irondsc/tg-habit-tracker/pkg/logger"
)

// Sender delivers a notification to a user. Satisfied by the bot wrapper
// in cmd; tests substitute their own.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// StartProgressTicker advances every active habit on a fixed interval
// until the context is canceled. The increment per tick assumes one tick
// per hour; config scales the interval for operational tuning.
func StartProgressTicker(ctx context.Context, sender Sender, interval time.Duration) {
	if interval <= 0 {
		interval = config.DefaultProgressInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ProcessTick(ctx, sender)
		}
	}
}

// ProcessTick applies one accrual pass. Habits fail independently: an
// error on one row is logged and the pass moves on.
func ProcessTick(ctx context.Context, sender Sender) {
	habits, err := db.ListActiveHabitsAll()
	if err != nil {
		logger.Error("failed to fetch habits for progress tick", "error", err)
		return
	}

	for _, h := range habits {
		increment := habit.HourlyIncrement(habit.Cadence(h.Cadence), h.Total)
		if increment <= 0 {
			continue
		}

		updated, err := db.AdvanceHabit(h.ID, increment)
		if err != nil {
			logger.Error("failed to advance habit", "habit_id", h.ID, "user_id", h.UserID, "error", err)
			continue
		}

		if updated.Archived && sender != nil {
			text := fmt.Sprintf("Congratulations! You finished '%s' and it has been moved to the archive.", h.Name)
			if err := sender.SendMessage(ctx, h.UserID, text); err != nil {
				logger.Error("failed to send completion notification", "user_id", h.UserID, "error", err)
			}
		}
	}
}
