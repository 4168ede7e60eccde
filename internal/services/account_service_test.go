package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"dailytrack/internal/models"
	"dailytrack/internal/testutil"
)

func TestCurrentBalance(t *testing.T) {
	t.Run("derived_from_full_ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")

		account := testutil.CreateTestAccountWithBalance(t, db, decimal.RequireFromString("100.00"))
		day := testutil.Date(2024, time.April, 1)
		testutil.CreateTestTransaction(t, db, account.ID, models.TransactionTypeIncome, "50.00", day)
		testutil.CreateTestTransaction(t, db, account.ID, models.TransactionTypeExpense, "30.00", day)
		testutil.CreateTestSaving(t, db, account.ID, nil, "10.00", day)

		balance, err := acctSvc.CurrentBalance(account.ID)
		testutil.AssertNoError(t, err)

		want := decimal.RequireFromString("110.00")
		if !balance.Equal(want) {
			t.Errorf("expected balance %s, got %s", want, balance)
		}
	})

	t.Run("no_activity_equals_initial", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")

		account := testutil.CreateTestAccountWithBalance(t, db, decimal.RequireFromString("25.50"))

		balance, err := acctSvc.CurrentBalance(account.ID)
		testutil.AssertNoError(t, err)
		if !balance.Equal(decimal.RequireFromString("25.50")) {
			t.Errorf("expected balance 25.50, got %s", balance)
		}
	})

	t.Run("other_accounts_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")

		account := testutil.CreateTestAccount(t, db)
		other := testutil.CreateTestAccount(t, db)
		day := testutil.Date(2024, time.April, 1)
		testutil.CreateTestTransaction(t, db, other.ID, models.TransactionTypeIncome, "500.00", day)

		balance, err := acctSvc.CurrentBalance(account.ID)
		testutil.AssertNoError(t, err)
		if !balance.IsZero() {
			t.Errorf("expected zero balance, got %s", balance)
		}
	})

	t.Run("account_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")

		_, err := acctSvc.CurrentBalance(9999)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestCreateAccount(t *testing.T) {
	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")

		_, err := acctSvc.CreateAccount("Cash", "", decimal.Zero)
		testutil.AssertNoError(t, err)

		_, err = acctSvc.CreateAccount("Cash", "", decimal.Zero)
		testutil.AssertAppError(t, err, "DUPLICATE_ACCOUNT")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")

		_, err := acctSvc.CreateAccount("", "", decimal.Zero)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestEnsureDefaultAccount(t *testing.T) {
	t.Run("creates_once", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")

		first, err := acctSvc.EnsureDefaultAccount()
		testutil.AssertNoError(t, err)

		second, err := acctSvc.EnsureDefaultAccount()
		testutil.AssertNoError(t, err)

		if first.ID != second.ID {
			t.Errorf("expected same default account, got IDs %d and %d", first.ID, second.ID)
		}

		var count int64
		if err := db.Model(&models.Account{}).Count(&count).Error; err != nil {
			t.Fatalf("failed to count accounts: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 account, got %d", count)
		}
	})
}

func TestResolveAccount(t *testing.T) {
	t.Run("explicit_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")

		account := testutil.CreateTestAccount(t, db)

		resolved, err := acctSvc.ResolveAccount(&account.ID)
		testutil.AssertNoError(t, err)
		if resolved.ID != account.ID {
			t.Errorf("expected account %d, got %d", account.ID, resolved.ID)
		}
	})

	t.Run("nil_falls_back_to_default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")

		defaultAccount, err := acctSvc.EnsureDefaultAccount()
		testutil.AssertNoError(t, err)

		resolved, err := acctSvc.ResolveAccount(nil)
		testutil.AssertNoError(t, err)
		if resolved.ID != defaultAccount.ID {
			t.Errorf("expected default account %d, got %d", defaultAccount.ID, resolved.ID)
		}
	})

	t.Run("missing_id_falls_back_to_default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		acctSvc := NewAccountService(db, "Main Wallet")

		defaultAccount, err := acctSvc.EnsureDefaultAccount()
		testutil.AssertNoError(t, err)

		missing := uint(9999)
		resolved, err := acctSvc.ResolveAccount(&missing)
		testutil.AssertNoError(t, err)
		if resolved.ID != defaultAccount.ID {
			t.Errorf("expected default account %d, got %d", defaultAccount.ID, resolved.ID)
		}
	})
}
