package services

import (
	"testing"
	"time"

	"dailytrack/internal/models"
	"dailytrack/internal/testutil"
)

func TestCreateTask(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		taskSvc := NewTaskService(db, NewPreferencesService(db))

		task, err := taskSvc.CreateTask(testutil.Date(2024, time.July, 1), models.TaskCategoryAcademic, "Read chapter 4", "")
		testutil.AssertNoError(t, err)
		if task.ID == 0 {
			t.Fatal("expected non-zero task ID")
		}
		if task.IsCompleted {
			t.Error("expected new task to start incomplete")
		}
	})

	t.Run("empty_title", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		taskSvc := NewTaskService(db, NewPreferencesService(db))

		_, err := taskSvc.CreateTask(testutil.Date(2024, time.July, 1), models.TaskCategoryDaily, "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		taskSvc := NewTaskService(db, NewPreferencesService(db))

		_, err := taskSvc.CreateTask(testutil.Date(2024, time.July, 1), models.TaskCategory("CHORES"), "Laundry", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetTasksByDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	taskSvc := NewTaskService(db, NewPreferencesService(db))

	day := testutil.Date(2024, time.July, 1)
	testutil.CreateTestTask(t, db, day, models.TaskCategoryAcademic)
	testutil.CreateTestTask(t, db, day, models.TaskCategoryHealth)
	testutil.CreateTestTask(t, db, testutil.Date(2024, time.July, 2), models.TaskCategoryDaily)

	tasks, err := taskSvc.GetTasksByDate(day)
	testutil.AssertNoError(t, err)
	if len(tasks) != 2 {
		t.Errorf("expected 2 tasks for the day, got %d", len(tasks))
	}
}

func TestToggleTask(t *testing.T) {
	t.Run("flips_both_ways", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		taskSvc := NewTaskService(db, NewPreferencesService(db))

		task := testutil.CreateTestTask(t, db, testutil.Date(2024, time.July, 1), models.TaskCategoryDaily)

		toggled, err := taskSvc.ToggleTask(task.ID)
		testutil.AssertNoError(t, err)
		if !toggled.IsCompleted {
			t.Error("expected task completed after first toggle")
		}

		toggled, err = taskSvc.ToggleTask(task.ID)
		testutil.AssertNoError(t, err)
		if toggled.IsCompleted {
			t.Error("expected task incomplete after second toggle")
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		taskSvc := NewTaskService(db, NewPreferencesService(db))

		_, err := taskSvc.ToggleTask(9999)
		testutil.AssertAppError(t, err, "TASK_NOT_FOUND")
	})
}

func TestSuggestTasks(t *testing.T) {
	t.Run("fills_missing_categories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		prefsSvc := NewPreferencesService(db)
		if _, err := prefsSvc.Ensure(); err != nil {
			t.Fatalf("failed to ensure preferences: %v", err)
		}
		taskSvc := NewTaskService(db, prefsSvc)

		today := testutil.Date(2024, time.July, 1)
		testutil.CreateTestTask(t, db, today, models.TaskCategoryAcademic)

		created, err := taskSvc.SuggestTasks(today)
		testutil.AssertNoError(t, err)
		if len(created) != 2 {
			t.Fatalf("expected 2 suggested tasks, got %d", len(created))
		}
		for _, task := range created {
			if task.Category == models.TaskCategoryAcademic {
				t.Errorf("did not expect a suggestion for the covered category")
			}
		}
	})

	t.Run("second_call_adds_nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		prefsSvc := NewPreferencesService(db)
		if _, err := prefsSvc.Ensure(); err != nil {
			t.Fatalf("failed to ensure preferences: %v", err)
		}
		taskSvc := NewTaskService(db, prefsSvc)

		today := testutil.Date(2024, time.July, 1)

		first, err := taskSvc.SuggestTasks(today)
		testutil.AssertNoError(t, err)
		if len(first) != 3 {
			t.Fatalf("expected 3 suggested tasks, got %d", len(first))
		}

		second, err := taskSvc.SuggestTasks(today)
		testutil.AssertNoError(t, err)
		if len(second) != 0 {
			t.Errorf("expected no new suggestions, got %d", len(second))
		}
	})

	t.Run("uses_preference_focus", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		prefsSvc := NewPreferencesService(db)
		if _, err := prefsSvc.Ensure(); err != nil {
			t.Fatalf("failed to ensure preferences: %v", err)
		}
		focus := "linear algebra"
		if _, err := prefsSvc.Update(PreferencesUpdateFields{AcademicFocus: &focus}); err != nil {
			t.Fatalf("failed to update preferences: %v", err)
		}
		taskSvc := NewTaskService(db, prefsSvc)

		created, err := taskSvc.SuggestTasks(testutil.Date(2024, time.July, 1))
		testutil.AssertNoError(t, err)

		found := false
		for _, task := range created {
			if task.Category == models.TaskCategoryAcademic {
				found = true
				if task.Title != "Study: linear algebra (45 minutes)" {
					t.Errorf("expected focus in title, got %q", task.Title)
				}
			}
		}
		if !found {
			t.Error("expected an academic suggestion")
		}
	})
}
