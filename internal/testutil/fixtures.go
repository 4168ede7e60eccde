package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"dailytrack/internal/models"
	"dailytrack/internal/recurrence"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Date builds a UTC-midnight date for use in fixtures and assertions.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestAccount creates an account with a unique name and zero initial
// balance.
func CreateTestAccount(t *testing.T, db *gorm.DB) *models.Account {
	t.Helper()
	return CreateTestAccountWithBalance(t, db, decimal.Zero)
}

// CreateTestAccountWithBalance creates an account with the given initial
// balance.
func CreateTestAccountWithBalance(t *testing.T, db *gorm.DB, initial decimal.Decimal) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:           fmt.Sprintf("Account %d", nextID()),
		InitialBalance: initial,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestTransaction creates a transaction on the given account.
func CreateTestTransaction(t *testing.T, db *gorm.DB, accountID uint, transactionType models.TransactionType, amount string, date time.Time) *models.Transaction {
	t.Helper()

	transaction := &models.Transaction{
		AccountID: accountID,
		Date:      date,
		Type:      transactionType,
		Amount:    decimal.RequireFromString(amount),
		Category:  "General",
	}
	if err := db.Create(transaction).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return transaction
}

// CreateTestGoal creates a savings goal with a unique name.
func CreateTestGoal(t *testing.T, db *gorm.DB, target string) *models.SavingsGoal {
	t.Helper()

	goal := &models.SavingsGoal{
		Name:         fmt.Sprintf("Goal %d", nextID()),
		TargetAmount: decimal.RequireFromString(target),
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestSaving creates a saving on the given account, optionally linked
// to a goal.
func CreateTestSaving(t *testing.T, db *gorm.DB, accountID uint, goalID *uint, amount string, date time.Time) *models.Saving {
	t.Helper()

	saving := &models.Saving{
		AccountID: accountID,
		GoalID:    goalID,
		Date:      date,
		Amount:    decimal.RequireFromString(amount),
	}
	if err := db.Create(saving).Error; err != nil {
		t.Fatalf("failed to create test saving: %v", err)
	}
	return saving
}

// CreateTestTask creates a daily task for the given date.
func CreateTestTask(t *testing.T, db *gorm.DB, date time.Time, category models.TaskCategory) *models.DailyTask {
	t.Helper()

	task := &models.DailyTask{
		Date:     date,
		Category: category,
		Title:    fmt.Sprintf("Task %d", nextID()),
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateTestTransactionTemplate creates an active recurring transaction
// template due at nextDate.
func CreateTestTransactionTemplate(t *testing.T, db *gorm.DB, accountID uint, frequency recurrence.Frequency, nextDate time.Time) *models.RecurringTransaction {
	t.Helper()

	template := &models.RecurringTransaction{
		AccountID: accountID,
		Type:      models.TransactionTypeExpense,
		Amount:    decimal.RequireFromString("15.00"),
		Category:  "Subscriptions",
		Frequency: frequency,
		NextDate:  nextDate,
		IsActive:  true,
	}
	if err := db.Create(template).Error; err != nil {
		t.Fatalf("failed to create test transaction template: %v", err)
	}
	return template
}

// CreateTestTaskTemplate creates an active recurring task template due at
// nextDate.
func CreateTestTaskTemplate(t *testing.T, db *gorm.DB, frequency recurrence.Frequency, nextDate time.Time) *models.RecurringTask {
	t.Helper()

	template := &models.RecurringTask{
		Category:  models.TaskCategoryDaily,
		Title:     fmt.Sprintf("Recurring task %d", nextID()),
		Frequency: frequency,
		NextDate:  nextDate,
		IsActive:  true,
	}
	if err := db.Create(template).Error; err != nil {
		t.Fatalf("failed to create test task template: %v", err)
	}
	return template
}

// CreateTestLearningLog creates a learning log for the given date.
func CreateTestLearningLog(t *testing.T, db *gorm.DB, date time.Time, minutes int) *models.LearningLog {
	t.Helper()

	log := &models.LearningLog{
		Date:            date,
		Topic:           fmt.Sprintf("Topic %d", nextID()),
		DurationMinutes: minutes,
	}
	if err := db.Create(log).Error; err != nil {
		t.Fatalf("failed to create test learning log: %v", err)
	}
	return log
}

// CreateTestHealthLog creates a health log for the given date.
func CreateTestHealthLog(t *testing.T, db *gorm.DB, date time.Time) *models.HealthLog {
	t.Helper()

	log := &models.HealthLog{
		Date:     date,
		Activity: fmt.Sprintf("Activity %d", nextID()),
	}
	if err := db.Create(log).Error; err != nil {
		t.Fatalf("failed to create test health log: %v", err)
	}
	return log
}
