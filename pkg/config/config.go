package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/irondsc/tg-habit-tracker/pkg/logger"
)

const (
	DefaultProgressInterval = time.Hour
	DefaultReminderInterval = 24 * time.Hour
)

type Config struct {
	Database  DatabaseConfig  `json:"database"`
	Telegram  TelegramConfig  `json:"telegram"`
	Logging   LoggingConfig   `json:"logging"`
	Scheduler SchedulerConfig `json:"scheduler"`
}

type DatabaseConfig struct {
	// Path selects the embedded sqlite store. When Host is set, a
	// postgres connection is used instead.
	Path     string `json:"path"`
	Host     string `json:"host"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	Port     int    `json:"port"`
	SSLMode  string `json:"sslmode"`
}

type TelegramConfig struct {
	Token string `json:"token"`
}

type LoggingConfig struct {
	Level     string `json:"level"`
	File      string `json:"file"`
	GormLevel string `json:"gorm_level"`
}

type SchedulerConfig struct {
	ProgressIntervalMinutes int `json:"progress_interval_minutes"`
	ReminderIntervalHours   int `json:"reminder_interval_hours"`
}

var AppConfig Config

func LoadConfig(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		logger.Error("failed to open config file", "error", err)
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&AppConfig); err != nil {
		logger.Error("failed to decode config file", "error", err)
		return err
	}

	return nil
}

func (c SchedulerConfig) ProgressInterval() time.Duration {
	if c.ProgressIntervalMinutes <= 0 {
		return DefaultProgressInterval
	}
	return time.Duration(c.ProgressIntervalMinutes) * time.Minute
}

func (c SchedulerConfig) ReminderInterval() time.Duration {
	if c.ReminderIntervalHours <= 0 {
		return DefaultReminderInterval
	}
	return time.Duration(c.ReminderIntervalHours) * time.Hour
}
