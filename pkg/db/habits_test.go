package db

import (
	"errors"
	"math"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHabitDB(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := gdb.AutoMigrate(&Habit{}, &ConversationState{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	DB = gdb

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to access underlying DB: %v", err)
	}
	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}
		DB = nil
	})
}

func TestCreateHabitDefaults(t *testing.T) {
	setupHabitDB(t)

	habit, err := CreateHabit(100, "Run", "Daily", 30)
	if err != nil {
		t.Fatalf("CreateHabit returned error: %v", err)
	}
	if habit.ID == 0 {
		t.Error("expected assigned habit ID")
	}
	if habit.Progress != 0 || habit.Total != 30 || habit.Archived {
		t.Errorf("unexpected new habit state: %+v", habit)
	}
	if habit.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
}

func TestCreateHabitRejectsDuplicateActiveName(t *testing.T) {
	setupHabitDB(t)

	if _, err := CreateHabit(100, "Run", "Daily", 30); err != nil {
		t.Fatalf("first CreateHabit returned error: %v", err)
	}
	if _, err := CreateHabit(100, "Run", "Weekly", 30); !errors.Is(err, ErrDuplicateHabit) {
		t.Fatalf("expected ErrDuplicateHabit, got %v", err)
	}
	// A different user can use the same name.
	if _, err := CreateHabit(200, "Run", "Daily", 30); err != nil {
		t.Fatalf("CreateHabit for other user returned error: %v", err)
	}
}

func TestCreateHabitAllowsNameReuseAfterArchive(t *testing.T) {
	setupHabitDB(t)

	habit, err := CreateHabit(100, "Run", "Daily", 30)
	if err != nil {
		t.Fatalf("CreateHabit returned error: %v", err)
	}
	if _, err := AdvanceHabit(habit.ID, 30); err != nil {
		t.Fatalf("AdvanceHabit returned error: %v", err)
	}
	if _, err := CreateHabit(100, "Run", "Daily", 30); err != nil {
		t.Fatalf("expected name reuse after archive, got %v", err)
	}
}

func TestListActiveHabitsInInsertionOrder(t *testing.T) {
	setupHabitDB(t)

	for _, name := range []string{"Run", "Read", "Meditate"} {
		if _, err := CreateHabit(100, name, "Daily", 30); err != nil {
			t.Fatalf("CreateHabit(%q) returned error: %v", name, err)
		}
	}

	habits, err := ListActiveHabits(100)
	if err != nil {
		t.Fatalf("ListActiveHabits returned error: %v", err)
	}
	if len(habits) != 3 {
		t.Fatalf("expected 3 habits, got %d", len(habits))
	}
	for i, want := range []string{"Run", "Read", "Meditate"} {
		if habits[i].Name != want {
			t.Errorf("habit %d = %q, want %q", i, habits[i].Name, want)
		}
	}
}

func TestFindActiveHabitExcludesArchived(t *testing.T) {
	setupHabitDB(t)

	habit, err := CreateHabit(100, "Run", "Daily", 30)
	if err != nil {
		t.Fatalf("CreateHabit returned error: %v", err)
	}
	if _, err := AdvanceHabit(habit.ID, 30); err != nil {
		t.Fatalf("AdvanceHabit returned error: %v", err)
	}

	if _, err := FindActiveHabit(100, "Run"); !errors.Is(err, ErrHabitNotFound) {
		t.Fatalf("expected ErrHabitNotFound for archived habit, got %v", err)
	}
}

func TestAdvanceHabitClampsAndArchives(t *testing.T) {
	setupHabitDB(t)

	habit, err := CreateHabit(100, "Run", "Daily", 30)
	if err != nil {
		t.Fatalf("CreateHabit returned error: %v", err)
	}

	// Scenario: three manual completions of +10 reach the target exactly.
	for i := 0; i < 2; i++ {
		updated, err := AdvanceHabit(habit.ID, 10)
		if err != nil {
			t.Fatalf("AdvanceHabit returned error: %v", err)
		}
		if updated.Archived {
			t.Fatalf("habit archived too early at progress %v", updated.Progress)
		}
	}
	updated, err := AdvanceHabit(habit.ID, 10)
	if err != nil {
		t.Fatalf("AdvanceHabit returned error: %v", err)
	}
	if updated.Progress != 30 || !updated.Archived {
		t.Fatalf("expected progress 30 and archived, got %+v", updated)
	}

	habits, err := ListActiveHabits(100)
	if err != nil {
		t.Fatalf("ListActiveHabits returned error: %v", err)
	}
	if len(habits) != 0 {
		t.Fatalf("expected no active habits after archive, got %d", len(habits))
	}
}

func TestAdvanceHabitNeverOvershootsTotal(t *testing.T) {
	setupHabitDB(t)

	habit, err := CreateHabit(100, "Run", "Daily", 30)
	if err != nil {
		t.Fatalf("CreateHabit returned error: %v", err)
	}
	updated, err := AdvanceHabit(habit.ID, 1000)
	if err != nil {
		t.Fatalf("AdvanceHabit returned error: %v", err)
	}
	if updated.Progress != 30 || !updated.Archived {
		t.Fatalf("expected clamp to total with archive, got %+v", updated)
	}
}

func TestAdvanceHabitOnArchivedIsNoOp(t *testing.T) {
	setupHabitDB(t)

	habit, err := CreateHabit(100, "Run", "Daily", 30)
	if err != nil {
		t.Fatalf("CreateHabit returned error: %v", err)
	}
	if _, err := AdvanceHabit(habit.ID, 30); err != nil {
		t.Fatalf("AdvanceHabit returned error: %v", err)
	}

	updated, err := AdvanceHabit(habit.ID, 10)
	if err != nil {
		t.Fatalf("AdvanceHabit on archived habit returned error: %v", err)
	}
	if updated.Progress != 30 || !updated.Archived {
		t.Fatalf("expected archived habit to stay at total, got %+v", updated)
	}
}

func TestAdvanceHabitFractionalIncrement(t *testing.T) {
	setupHabitDB(t)

	habit, err := CreateHabit(100, "Read", "Weekly", 30)
	if err != nil {
		t.Fatalf("CreateHabit returned error: %v", err)
	}

	delta := 30.0 / (4 * 7 * 24)
	updated, err := AdvanceHabit(habit.ID, delta)
	if err != nil {
		t.Fatalf("AdvanceHabit returned error: %v", err)
	}
	if math.Abs(updated.Progress-delta) > 1e-9 {
		t.Fatalf("expected progress %v, got %v", delta, updated.Progress)
	}
	if updated.Archived {
		t.Fatal("habit should remain active below total")
	}
}

func TestAdvanceHabitMissingRow(t *testing.T) {
	setupHabitDB(t)

	if _, err := AdvanceHabit(9999, 10); !errors.Is(err, ErrHabitNotFound) {
		t.Fatalf("expected ErrHabitNotFound, got %v", err)
	}
}

func TestDeleteHabits(t *testing.T) {
	setupHabitDB(t)

	if _, err := CreateHabit(100, "Run", "Daily", 30); err != nil {
		t.Fatalf("CreateHabit returned error: %v", err)
	}

	removed, err := DeleteHabits(100, "Run")
	if err != nil {
		t.Fatalf("DeleteHabits returned error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 row removed, got %d", removed)
	}

	removed, err = DeleteHabits(100, "Nothing")
	if err != nil {
		t.Fatalf("DeleteHabits for missing name returned error: %v", err)
	}
	if removed != 0 {
		t.Fatalf("expected 0 rows removed for missing name, got %d", removed)
	}
}

func TestListActiveHabitsAllSkipsArchived(t *testing.T) {
	setupHabitDB(t)

	first, err := CreateHabit(100, "Run", "Daily", 30)
	if err != nil {
		t.Fatalf("CreateHabit returned error: %v", err)
	}
	if _, err := CreateHabit(200, "Read", "Weekly", 30); err != nil {
		t.Fatalf("CreateHabit returned error: %v", err)
	}
	if _, err := AdvanceHabit(first.ID, 30); err != nil {
		t.Fatalf("AdvanceHabit returned error: %v", err)
	}

	habits, err := ListActiveHabitsAll()
	if err != nil {
		t.Fatalf("ListActiveHabitsAll returned error: %v", err)
	}
	if len(habits) != 1 || habits[0].Name != "Read" {
		t.Fatalf("expected only the active habit, got %+v", habits)
	}
}
