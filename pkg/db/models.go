// pkg/db/models.go
package db

import (
	"time"
)

// Habit is one user-declared habit. Progress accrues toward Total either
// hourly (progress scheduler) or in manual +10 steps; reaching Total
// archives the row instead of deleting it.
type Habit struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    int64   `gorm:"index"` // To keep habits separate for each user
	Name      string  `gorm:"not null"`
	Cadence   string  `gorm:"not null"`
	Progress  float64 `gorm:"not null;default:0"`
	Total     float64 `gorm:"not null"`
	StartedAt time.Time
	Archived  bool `gorm:"not null;default:false"`
	Blocked   bool `gorm:"not null;default:false"` // Legacy column, carried through migration
}

// ConversationState is the per-user slot of the chat flow. State names the
// pending step; PendingHabit holds the habit name captured mid-creation.
type ConversationState struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       int64  `gorm:"uniqueIndex"`
	State        string `gorm:"not null;default:''"`
	PendingHabit string `gorm:"not null;default:''"`
	UpdatedAt    time.Time
}
