package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigSuccess(t *testing.T) {
	original := AppConfig
	t.Cleanup(func() {
		AppConfig = original
	})

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	content := `{
		"database": {
			"path": "habits.db"
		},
		"telegram": {
			"token": "test-token"
		},
		"logging": {
			"level": "debug"
		},
		"scheduler": {
			"progress_interval_minutes": 30,
			"reminder_interval_hours": 12
		}
	}`

	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	if err := LoadConfig(configPath); err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if AppConfig.Database.Path != "habits.db" {
		t.Errorf("expected database path habits.db, got %q", AppConfig.Database.Path)
	}
	if AppConfig.Telegram.Token != "test-token" {
		t.Errorf("expected token to be test-token, got %q", AppConfig.Telegram.Token)
	}
	if AppConfig.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %q", AppConfig.Logging.Level)
	}
	if got := AppConfig.Scheduler.ProgressInterval(); got != 30*time.Minute {
		t.Errorf("expected progress interval 30m, got %v", got)
	}
	if got := AppConfig.Scheduler.ReminderInterval(); got != 12*time.Hour {
		t.Errorf("expected reminder interval 12h, got %v", got)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	original := AppConfig
	t.Cleanup(func() {
		AppConfig = original
	})

	if err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error when loading a missing config file")
	}
}

func TestSchedulerIntervalDefaults(t *testing.T) {
	var cfg SchedulerConfig
	if got := cfg.ProgressInterval(); got != DefaultProgressInterval {
		t.Errorf("expected default progress interval, got %v", got)
	}
	if got := cfg.ReminderInterval(); got != DefaultReminderInterval {
		t.Errorf("expected default reminder interval, got %v", got)
	}
}
