package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dailytrack/internal/models"
	"dailytrack/internal/recurrence"
	"dailytrack/internal/testutil"
)

func TestGenerateTransactions(t *testing.T) {
	t.Run("due_template_fires_once", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")
		recSvc := NewRecurringService(db, acctSvc)
		account := testutil.CreateTestAccount(t, db)

		due := testutil.Date(2024, time.January, 15)
		testutil.CreateTestTransactionTemplate(t, db, account.ID, recurrence.Daily, due)

		generated, err := recSvc.GenerateTransactions(due)
		testutil.AssertNoError(t, err)
		if generated != 1 {
			t.Fatalf("expected 1 generated transaction, got %d", generated)
		}

		var transactions []models.Transaction
		if err := db.Find(&transactions).Error; err != nil {
			t.Fatalf("failed to load transactions: %v", err)
		}
		if len(transactions) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(transactions))
		}
		if !transactions[0].Date.Equal(due) {
			t.Errorf("expected transaction dated %v, got %v", due, transactions[0].Date)
		}
	})

	t.Run("schedule_advances_one_step", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")
		recSvc := NewRecurringService(db, acctSvc)
		account := testutil.CreateTestAccount(t, db)

		due := testutil.Date(2024, time.January, 15)
		template := testutil.CreateTestTransactionTemplate(t, db, account.ID, recurrence.Weekly, due)

		_, err := recSvc.GenerateTransactions(due)
		testutil.AssertNoError(t, err)

		var reloaded models.RecurringTransaction
		if err := db.First(&reloaded, template.ID).Error; err != nil {
			t.Fatalf("failed to reload template: %v", err)
		}
		want := testutil.Date(2024, time.January, 22)
		if !reloaded.NextDate.Equal(want) {
			t.Errorf("expected next date %v, got %v", want, reloaded.NextDate)
		}
	})

	t.Run("overdue_template_catches_up_across_calls", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")
		recSvc := NewRecurringService(db, acctSvc)
		account := testutil.CreateTestAccount(t, db)

		// Three days overdue; each call fills exactly one missed day.
		testutil.CreateTestTransactionTemplate(t, db, account.ID, recurrence.Daily, testutil.Date(2024, time.March, 1))
		today := testutil.Date(2024, time.March, 3)

		for call, wantDate := range []time.Time{
			testutil.Date(2024, time.March, 1),
			testutil.Date(2024, time.March, 2),
			testutil.Date(2024, time.March, 3),
		} {
			generated, err := recSvc.GenerateTransactions(today)
			testutil.AssertNoError(t, err)
			if generated != 1 {
				t.Fatalf("call %d: expected 1 generated transaction, got %d", call+1, generated)
			}

			var count int64
			if err := db.Model(&models.Transaction{}).Where("date = ?", wantDate).Count(&count).Error; err != nil {
				t.Fatalf("failed to count transactions: %v", err)
			}
			if count != 1 {
				t.Errorf("call %d: expected transaction dated %v", call+1, wantDate)
			}
		}

		// Schedule is now in the future, nothing more to do.
		generated, err := recSvc.GenerateTransactions(today)
		testutil.AssertNoError(t, err)
		if generated != 0 {
			t.Errorf("expected 0 generated after catch-up, got %d", generated)
		}
	})

	t.Run("inactive_and_future_templates_skipped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")
		recSvc := NewRecurringService(db, acctSvc)
		account := testutil.CreateTestAccount(t, db)

		today := testutil.Date(2024, time.June, 1)

		inactive := testutil.CreateTestTransactionTemplate(t, db, account.ID, recurrence.Daily, today)
		if err := db.Model(inactive).Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate template: %v", err)
		}
		testutil.CreateTestTransactionTemplate(t, db, account.ID, recurrence.Daily, testutil.Date(2024, time.June, 2))

		generated, err := recSvc.GenerateTransactions(today)
		testutil.AssertNoError(t, err)
		if generated != 0 {
			t.Errorf("expected 0 generated, got %d", generated)
		}
	})

	t.Run("multiple_due_templates_counted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")
		recSvc := NewRecurringService(db, acctSvc)
		account := testutil.CreateTestAccount(t, db)

		today := testutil.Date(2024, time.June, 1)
		testutil.CreateTestTransactionTemplate(t, db, account.ID, recurrence.Daily, today)
		testutil.CreateTestTransactionTemplate(t, db, account.ID, recurrence.Monthly, testutil.Date(2024, time.May, 28))

		generated, err := recSvc.GenerateTransactions(today)
		testutil.AssertNoError(t, err)
		if generated != 2 {
			t.Errorf("expected 2 generated, got %d", generated)
		}
	})

	t.Run("generated_record_is_independent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")
		recSvc := NewRecurringService(db, acctSvc)
		account := testutil.CreateTestAccount(t, db)

		today := testutil.Date(2024, time.June, 1)
		template := testutil.CreateTestTransactionTemplate(t, db, account.ID, recurrence.Daily, today)

		_, err := recSvc.GenerateTransactions(today)
		testutil.AssertNoError(t, err)

		if err := recSvc.DeleteTransactionTemplate(template.ID); err != nil {
			t.Fatalf("failed to delete template: %v", err)
		}

		var count int64
		if err := db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
			t.Fatalf("failed to count transactions: %v", err)
		}
		if count != 1 {
			t.Errorf("expected generated transaction to survive template deletion, got count %d", count)
		}
	})

	t.Run("concurrent_run_skips_raced_template", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")
		recSvc := NewRecurringService(db, acctSvc).(*recurringService)
		account := testutil.CreateTestAccount(t, db)

		due := testutil.Date(2024, time.January, 15)
		template := testutil.CreateTestTransactionTemplate(t, db, account.ID, recurrence.Weekly, due)

		// Snapshot the template as a second generator run would hold it.
		var stale models.RecurringTransaction
		if err := db.First(&stale, template.ID).Error; err != nil {
			t.Fatalf("failed to load template: %v", err)
		}

		// The first run wins and advances the schedule.
		generated, err := recSvc.GenerateTransactions(due)
		testutil.AssertNoError(t, err)
		if generated != 1 {
			t.Fatalf("expected 1 generated transaction, got %d", generated)
		}

		// The stale run now fires against an already-advanced schedule.
		next, err := recurrence.Advance(stale.NextDate, stale.Frequency)
		testutil.AssertNoError(t, err)
		err = db.Transaction(func(tx *gorm.DB) error {
			return recSvc.fireTransactionTemplate(tx, &stale, next)
		})
		if !errors.Is(err, errTemplateRaced) {
			t.Fatalf("expected raced-template error, got %v", err)
		}

		var count int64
		if err := db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
			t.Fatalf("failed to count transactions: %v", err)
		}
		if count != 1 {
			t.Errorf("expected no duplicate transaction, got count %d", count)
		}

		var reloaded models.RecurringTransaction
		if err := db.First(&reloaded, template.ID).Error; err != nil {
			t.Fatalf("failed to reload template: %v", err)
		}
		want := testutil.Date(2024, time.January, 22)
		if !reloaded.NextDate.Equal(want) {
			t.Errorf("expected schedule advanced once to %v, got %v", want, reloaded.NextDate)
		}

		// The raced template is no longer due and contributes no count.
		generated, err = recSvc.GenerateTransactions(due)
		testutil.AssertNoError(t, err)
		if generated != 0 {
			t.Errorf("expected 0 generated after race, got %d", generated)
		}
	})
}

func TestGenerateTasks(t *testing.T) {
	t.Run("due_template_creates_task", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")
		recSvc := NewRecurringService(db, acctSvc)

		due := testutil.Date(2024, time.February, 10)
		template := testutil.CreateTestTaskTemplate(t, db, recurrence.Weekly, due)

		generated, err := recSvc.GenerateTasks(due)
		testutil.AssertNoError(t, err)
		if generated != 1 {
			t.Fatalf("expected 1 generated task, got %d", generated)
		}

		var tasks []models.DailyTask
		if err := db.Find(&tasks).Error; err != nil {
			t.Fatalf("failed to load tasks: %v", err)
		}
		if len(tasks) != 1 {
			t.Fatalf("expected 1 task, got %d", len(tasks))
		}
		if tasks[0].Title != template.Title {
			t.Errorf("expected task title %q, got %q", template.Title, tasks[0].Title)
		}
		if !tasks[0].Date.Equal(due) {
			t.Errorf("expected task dated %v, got %v", due, tasks[0].Date)
		}
		if tasks[0].IsCompleted {
			t.Error("expected generated task to start incomplete")
		}
	})

	t.Run("nothing_due", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")
		recSvc := NewRecurringService(db, acctSvc)

		testutil.CreateTestTaskTemplate(t, db, recurrence.Daily, testutil.Date(2024, time.February, 11))

		generated, err := recSvc.GenerateTasks(testutil.Date(2024, time.February, 10))
		testutil.AssertNoError(t, err)
		if generated != 0 {
			t.Errorf("expected 0 generated, got %d", generated)
		}
	})

	t.Run("concurrent_run_skips_raced_template", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")
		recSvc := NewRecurringService(db, acctSvc).(*recurringService)

		due := testutil.Date(2024, time.February, 10)
		template := testutil.CreateTestTaskTemplate(t, db, recurrence.Weekly, due)

		var stale models.RecurringTask
		if err := db.First(&stale, template.ID).Error; err != nil {
			t.Fatalf("failed to load template: %v", err)
		}

		generated, err := recSvc.GenerateTasks(due)
		testutil.AssertNoError(t, err)
		if generated != 1 {
			t.Fatalf("expected 1 generated task, got %d", generated)
		}

		next, err := recurrence.Advance(stale.NextDate, stale.Frequency)
		testutil.AssertNoError(t, err)
		err = db.Transaction(func(tx *gorm.DB) error {
			return recSvc.fireTaskTemplate(tx, &stale, next)
		})
		if !errors.Is(err, errTemplateRaced) {
			t.Fatalf("expected raced-template error, got %v", err)
		}

		var count int64
		if err := db.Model(&models.DailyTask{}).Count(&count).Error; err != nil {
			t.Fatalf("failed to count tasks: %v", err)
		}
		if count != 1 {
			t.Errorf("expected no duplicate task, got count %d", count)
		}

		generated, err = recSvc.GenerateTasks(due)
		testutil.AssertNoError(t, err)
		if generated != 0 {
			t.Errorf("expected 0 generated after race, got %d", generated)
		}
	})
}

func TestCreateTransactionTemplate(t *testing.T) {
	t.Run("invalid_frequency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")
		recSvc := NewRecurringService(db, acctSvc)
		account := testutil.CreateTestAccount(t, db)

		_, err := recSvc.CreateTransactionTemplate(
			&account.ID,
			models.TransactionTypeExpense,
			decimal.RequireFromString("10.00"),
			"Rent", "",
			recurrence.Frequency("YEARLY"),
			testutil.Date(2024, time.January, 1),
		)
		testutil.AssertAppError(t, err, "INVALID_FREQUENCY")
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")
		recSvc := NewRecurringService(db, acctSvc)
		account := testutil.CreateTestAccount(t, db)

		_, err := recSvc.CreateTransactionTemplate(
			&account.ID,
			models.TransactionTypeExpense,
			decimal.Zero,
			"Rent", "",
			recurrence.Daily,
			testutil.Date(2024, time.January, 1),
		)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateTransactionTemplate(t *testing.T) {
	t.Run("deactivate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")
		recSvc := NewRecurringService(db, acctSvc)
		account := testutil.CreateTestAccount(t, db)

		template := testutil.CreateTestTransactionTemplate(t, db, account.ID, recurrence.Daily, testutil.Date(2024, time.January, 1))

		inactive := false
		updated, err := recSvc.UpdateTransactionTemplate(template.ID, RecurringTransactionUpdateFields{IsActive: &inactive})
		testutil.AssertNoError(t, err)
		if updated.IsActive {
			t.Error("expected template to be inactive")
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")
		recSvc := NewRecurringService(db, acctSvc)

		_, err := recSvc.UpdateTransactionTemplate(9999, RecurringTransactionUpdateFields{})
		testutil.AssertAppError(t, err, "TEMPLATE_NOT_FOUND")
	})
}
