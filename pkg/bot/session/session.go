// Package session tracks each user's place in a chat flow. One row per
// user; the row disappears whenever the user is back at the main menu.
package session

import (
	"errors"

	"github.com/irondsc/tg-habit-tracker/pkg/db"
	"gorm.io/gorm"
)

const (
	StateAddingHabit        = "adding_habit"
	StateSettingCadence     = "setting_cadence"
	StateAwaitingCompletion = "awaiting_completion"
	StateAwaitingDeletion   = "awaiting_deletion"
)

// Get returns the user's pending conversation state, or nil when the user
// is idle.
func Get(userID int64) (*db.ConversationState, error) {
	var state db.ConversationState
	if err := db.DB.Where("user_id = ?", userID).First(&state).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &state, nil
}

// BeginAddingHabit puts the user into the name-entry step of habit
// creation, discarding any previous scratch value.
func BeginAddingHabit(userID int64) error {
	state, err := ensureState(userID)
	if err != nil {
		return err
	}
	state.State = StateAddingHabit
	state.PendingHabit = ""
	return db.DB.Save(state).Error
}

// SetPendingHabit stores the captured habit name and moves the user to the
// cadence-selection step.
func SetPendingHabit(userID int64, name string) error {
	state, err := ensureState(userID)
	if err != nil {
		return err
	}
	state.State = StateSettingCadence
	state.PendingHabit = name
	return db.DB.Save(state).Error
}

// BeginCompletion puts the user into the completion-target step.
func BeginCompletion(userID int64) error {
	return setBareState(userID, StateAwaitingCompletion)
}

// BeginDeletion puts the user into the deletion-target step.
func BeginDeletion(userID int64) error {
	return setBareState(userID, StateAwaitingDeletion)
}

// Reset returns the user to idle, dropping any pending scratch value.
// Safe to call when no state exists.
func Reset(userID int64) error {
	return db.DB.Where("user_id = ?", userID).Delete(&db.ConversationState{}).Error
}

func setBareState(userID int64, name string) error {
	state, err := ensureState(userID)
	if err != nil {
		return err
	}
	state.State = name
	state.PendingHabit = ""
	return db.DB.Save(state).Error
}

func ensureState(userID int64) (*db.ConversationState, error) {
	var state db.ConversationState
	if err := db.DB.Where("user_id = ?", userID).First(&state).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		state = db.ConversationState{UserID: userID}
		if err := db.DB.Create(&state).Error; err != nil {
			return nil, err
		}
	}
	return &state, nil
}
