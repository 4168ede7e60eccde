package services

import (
	"testing"
	"time"

	"dailytrack/internal/models"
	"dailytrack/internal/testutil"
)

func TestGetMonthlyReport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	reportSvc := NewReportService(db)

	account := testutil.CreateTestAccount(t, db)

	testutil.CreateTestTransaction(t, db, account.ID, models.TransactionTypeIncome, "1000.00", testutil.Date(2024, time.June, 1))
	testutil.CreateTestTransaction(t, db, account.ID, models.TransactionTypeExpense, "200.00", testutil.Date(2024, time.June, 5))
	testutil.CreateTestTransaction(t, db, account.ID, models.TransactionTypeExpense, "50.00", testutil.Date(2024, time.June, 10))
	// Outside the month window.
	testutil.CreateTestTransaction(t, db, account.ID, models.TransactionTypeExpense, "999.00", testutil.Date(2024, time.May, 31))
	// After today, not yet in the report.
	testutil.CreateTestTransaction(t, db, account.ID, models.TransactionTypeExpense, "999.00", testutil.Date(2024, time.June, 20))

	testutil.CreateTestLearningLog(t, db, testutil.Date(2024, time.June, 3), 30)
	testutil.CreateTestLearningLog(t, db, testutil.Date(2024, time.June, 4), 45)
	testutil.CreateTestHealthLog(t, db, testutil.Date(2024, time.June, 4))

	today := testutil.Date(2024, time.June, 15)
	report, err := reportSvc.GetMonthlyReport(today)
	testutil.AssertNoError(t, err)

	if report.MonthStart != "2024-06-01" {
		t.Errorf("expected month start 2024-06-01, got %s", report.MonthStart)
	}
	if report.IncomeTotal.StringFixed(2) != "1000.00" {
		t.Errorf("expected income 1000.00, got %s", report.IncomeTotal.StringFixed(2))
	}
	if report.ExpenseTotal.StringFixed(2) != "250.00" {
		t.Errorf("expected expense 250.00, got %s", report.ExpenseTotal.StringFixed(2))
	}
	if len(report.ByCategory) != 1 {
		t.Fatalf("expected 1 expense category, got %d", len(report.ByCategory))
	}
	if report.ByCategory[0].Category != "General" {
		t.Errorf("expected category General, got %q", report.ByCategory[0].Category)
	}
	if report.LearningMinutes != 75 {
		t.Errorf("expected 75 learning minutes, got %d", report.LearningMinutes)
	}
	if report.HealthSessions != 1 {
		t.Errorf("expected 1 health session, got %d", report.HealthSessions)
	}
}
