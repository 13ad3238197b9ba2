// pkg/db/habits.go
package db

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrHabitNotFound  = errors.New("habit not found")
	ErrDuplicateHabit = errors.New("an active habit with this name already exists")
)

// CreateHabit inserts a new active habit with zero progress. A name that
// already belongs to one of the user's active habits is rejected, so
// name-keyed lookups stay unambiguous. Archived habits do not block the
// name from being reused.
func CreateHabit(userID int64, name, cadence string, total float64) (*Habit, error) {
	habit := Habit{
		UserID:    userID,
		Name:      name,
		Cadence:   cadence,
		Progress:  0,
		Total:     total,
		StartedAt: time.Now().UTC(),
	}
	err := DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Habit{}).
			Where("user_id = ? AND name = ? AND archived = ?", userID, name, false).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateHabit
		}
		return tx.Create(&habit).Error
	})
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

// ListActiveHabits returns the user's unarchived habits in creation order.
func ListActiveHabits(userID int64) ([]Habit, error) {
	var habits []Habit
	if err := DB.Where("user_id = ? AND archived = ?", userID, false).
		Order("id").Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

// FindActiveHabit returns the first active habit with the given name.
func FindActiveHabit(userID int64, name string) (*Habit, error) {
	var habit Habit
	err := DB.Where("user_id = ? AND name = ? AND archived = ?", userID, name, false).
		Order("id").First(&habit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, err
	}
	return &habit, nil
}

// AdvanceHabit adds delta to a habit's progress, clamped to its total, and
// archives the habit when the target is reached. The clamp runs as a
// single guarded UPDATE so a manual completion racing a scheduler tick
// cannot lose either increment; an already-archived habit is left
// untouched. Returns the habit as stored after the call.
func AdvanceHabit(habitID uint, delta float64) (*Habit, error) {
	var habit Habit
	err := DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Habit{}).
			Where("id = ? AND archived = ?", habitID, false).
			Update("progress", clampedProgressExpr(tx, delta)).Error; err != nil {
			return err
		}
		if err := tx.Model(&Habit{}).
			Where("id = ? AND archived = ? AND progress >= total", habitID, false).
			Update("archived", true).Error; err != nil {
			return err
		}
		return tx.First(&habit, habitID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, err
	}
	return &habit, nil
}

func clampedProgressExpr(tx *gorm.DB, delta float64) any {
	// sqlite spells the two-argument scalar minimum MIN; postgres LEAST.
	if tx.Dialector.Name() == "sqlite" {
		return gorm.Expr("MIN(progress + ?, total)", delta)
	}
	return gorm.Expr("LEAST(progress + ?, total)", delta)
}

// DeleteHabits hard-deletes every habit of the user with the given name
// and reports how many rows went away. Zero matches is not an error.
func DeleteHabits(userID int64, name string) (int64, error) {
	res := DB.Where("user_id = ? AND name = ?", userID, name).Delete(&Habit{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// ListActiveHabitsAll returns every unarchived habit across users, in
// insertion order. Used by the background schedulers.
func ListActiveHabitsAll() ([]Habit, error) {
	var habits []Habit
	if err := DB.Where("archived = ?", false).Order("id").Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}
