package services

import (
	"testing"

	"dailytrack/internal/models"
	"dailytrack/internal/testutil"
)

func TestEnsurePreferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	prefsSvc := NewPreferencesService(db)

	first, err := prefsSvc.Ensure()
	testutil.AssertNoError(t, err)
	if first.DailyWaterGoalGlasses != 8 {
		t.Errorf("expected default water goal 8, got %d", first.DailyWaterGoalGlasses)
	}

	second, err := prefsSvc.Ensure()
	testutil.AssertNoError(t, err)
	if first.ID != second.ID {
		t.Errorf("expected a single preferences row, got IDs %d and %d", first.ID, second.ID)
	}

	var count int64
	if err := db.Model(&models.Preferences{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count preferences rows: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}
}

func TestUpdatePreferences(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		prefsSvc := NewPreferencesService(db)

		if _, err := prefsSvc.Ensure(); err != nil {
			t.Fatalf("failed to ensure preferences: %v", err)
		}

		focus := "distributed systems"
		updated, err := prefsSvc.Update(PreferencesUpdateFields{AcademicFocus: &focus})
		testutil.AssertNoError(t, err)
		if updated.AcademicFocus != focus {
			t.Errorf("expected academic focus %q, got %q", focus, updated.AcademicFocus)
		}
		if updated.DailyWaterGoalGlasses != 8 {
			t.Errorf("expected water goal unchanged, got %d", updated.DailyWaterGoalGlasses)
		}
	})

	t.Run("invalid_water_goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		prefsSvc := NewPreferencesService(db)

		if _, err := prefsSvc.Ensure(); err != nil {
			t.Fatalf("failed to ensure preferences: %v", err)
		}

		zero := 0
		_, err := prefsSvc.Update(PreferencesUpdateFields{DailyWaterGoalGlasses: &zero})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
