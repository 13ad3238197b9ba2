package ui

import (
	"errors"
	"strings"

	"github.com/go-telegram/bot/models"
	"github.com/irondsc/tg-habit-tracker/pkg/habit"
)

const (
	CallbackPrefix     = "h:"
	MaxCallbackDataLen = 64
)

// Action is a main-menu selection carried as callback data.
type Action string

const (
	ActionMainMenu      Action = "main_menu"
	ActionAddHabit      Action = "add_habit"
	ActionProgress      Action = "progress"
	ActionMotivation    Action = "motivation"
	ActionCompleteHabit Action = "complete_habit"
	ActionDeleteHabit   Action = "delete_habit"
)

var (
	errInvalidPrefix       = errors.New("invalid callback prefix")
	errInvalidAction       = errors.New("invalid callback action")
	errCallbackDataTooLong = errors.New("callback data too long")
)

func BuildCallback(action Action) (string, error) {
	data := CallbackPrefix + string(action)
	if _, err := parseAction(string(action)); err != nil {
		return "", err
	}
	if len(data) > MaxCallbackDataLen {
		return "", errCallbackDataTooLong
	}
	return data, nil
}

func ParseCallbackData(data string) (Action, error) {
	if data == "" {
		return "", errInvalidAction
	}
	if len(data) > MaxCallbackDataLen {
		return "", errCallbackDataTooLong
	}
	if !strings.HasPrefix(data, CallbackPrefix) {
		return "", errInvalidPrefix
	}
	return parseAction(strings.TrimPrefix(data, CallbackPrefix))
}

func parseAction(value string) (Action, error) {
	switch Action(value) {
	case ActionMainMenu, ActionAddHabit, ActionProgress,
		ActionMotivation, ActionCompleteHabit, ActionDeleteHabit:
		return Action(value), nil
	default:
		return "", errInvalidAction
	}
}

func inlineButton(label string, action Action) models.InlineKeyboardButton {
	data, _ := BuildCallback(action)
	return models.InlineKeyboardButton{Text: label, CallbackData: data}
}

// WelcomeKeyboard is the single "go to menu" button under the /start
// greeting.
func WelcomeKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{inlineButton("Go to menu", ActionMainMenu)},
		},
	}
}

// MainMenuKeyboard lists every action the bot understands, one per row.
func MainMenuKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{inlineButton("Add a habit", ActionAddHabit)},
			{inlineButton("Show progress", ActionProgress)},
			{inlineButton("Get motivation", ActionMotivation)},
			{inlineButton("Complete a habit", ActionCompleteHabit)},
			{inlineButton("Delete a habit", ActionDeleteHabit)},
		},
	}
}

// ReturnToMenuKeyboard is appended after each finished flow.
func ReturnToMenuKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{inlineButton("Return to menu", ActionMainMenu)},
		},
	}
}

// CadenceKeyboard offers the three known cadence labels as a one-time
// reply keyboard. Free text is still accepted.
func CadenceKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: string(habit.Daily)}},
			{{Text: string(habit.Weekly)}},
			{{Text: string(habit.Monthly)}},
		},
		OneTimeKeyboard: true,
		ResizeKeyboard:  true,
	}
}
