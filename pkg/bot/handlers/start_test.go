package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/irondsc/tg-habit-tracker/pkg/bot/session"
	"github.com/irondsc/tg-habit-tracker/pkg/internal/testutil"
	"github.com/irondsc/tg-habit-tracker/pkg/logger"
)

func TestHandleStartSendsWelcome(t *testing.T) {
	testutil.SetupTestDB(t)
	logger.SetLogLevel(logger.ERROR)

	client := newMockClient()
	b := newTestTelegramBot(t, client)
	update := newTestUpdate("/start", 100)

	HandleStart(context.Background(), b, update)

	got := client.lastMessageText(t)
	if !strings.Contains(got, "Welcome to Iron Discipline") {
		t.Fatalf("expected welcome message, got %q", got)
	}
}

func TestHandleStartResetsPendingState(t *testing.T) {
	testutil.SetupTestDB(t)
	logger.SetLogLevel(logger.ERROR)

	if err := session.SetPendingHabit(100, "Run"); err != nil {
		t.Fatalf("failed to seed conversation state: %v", err)
	}

	client := newMockClient()
	b := newTestTelegramBot(t, client)
	HandleStart(context.Background(), b, newTestUpdate("/start", 100))

	state, err := session.Get(100)
	if err != nil {
		t.Fatalf("failed to load conversation state: %v", err)
	}
	if state != nil {
		t.Fatalf("expected idle state after /start, got %+v", state)
	}
}
