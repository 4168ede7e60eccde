package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "dailytrack/internal/errors"
	"dailytrack/internal/models"
)

// accountService handles account-related business logic.
type accountService struct {
	db *gorm.DB

	// defaultName is the configured name of the fallback account used when
	// a caller references a missing or absent account.
	defaultName string
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB, defaultName string) AccountServicer {
	return &accountService{db: db, defaultName: defaultName}
}

// CreateAccount creates a new account.
func (s *accountService) CreateAccount(name, description string, initialBalance decimal.Decimal) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	var existing models.Account
	err := s.db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, apperrors.ErrDuplicateAccount
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	account := &models.Account{
		Name:           name,
		Description:    description,
		InitialBalance: initialBalance,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// GetAccounts retrieves all accounts ordered by name.
func (s *accountService) GetAccounts() ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Order("name").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// GetAccountByID retrieves an account by ID.
func (s *accountService) GetAccountByID(accountID uint) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// UpdateAccount updates an existing account.
func (s *accountService) UpdateAccount(accountID uint, fields AccountUpdateFields) (*models.Account, error) {
	account, err := s.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.InitialBalance != nil {
		updates["initial_balance"] = *fields.InitialBalance
	}

	if len(updates) > 0 {
		if err := s.db.Model(account).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.First(account, account.ID).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return account, nil
}

// DeleteAccount removes an account.
func (s *accountService) DeleteAccount(accountID uint) error {
	result := s.db.Delete(&models.Account{}, accountID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// DefaultAccount returns the configured default account.
func (s *accountService) DefaultAccount() (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("name = ?", s.defaultName).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// EnsureDefaultAccount creates the configured default account if it does not
// exist yet. Called once at startup so request handlers never have to create
// records implicitly.
func (s *accountService) EnsureDefaultAccount() (*models.Account, error) {
	account, err := s.DefaultAccount()
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrAccountNotFound) {
		return nil, err
	}
	return s.CreateAccount(s.defaultName, "", decimal.Zero)
}

// ResolveAccount returns the account for the given ID, falling back to the
// default account when the ID is absent or references a missing account.
func (s *accountService) ResolveAccount(accountID *uint) (*models.Account, error) {
	if accountID != nil {
		account, err := s.GetAccountByID(*accountID)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, err
		}
	}
	return s.DefaultAccount()
}

// CurrentBalance derives the account balance from the full ledger:
// initial balance + income - expense - savings. The value is recomputed on
// every call; nothing is cached or denormalized.
func (s *accountService) CurrentBalance(accountID uint) (decimal.Decimal, error) {
	account, err := s.GetAccountByID(accountID)
	if err != nil {
		return decimal.Zero, err
	}

	income, err := s.sumTransactions(accountID, models.TransactionTypeIncome)
	if err != nil {
		return decimal.Zero, err
	}
	expense, err := s.sumTransactions(accountID, models.TransactionTypeExpense)
	if err != nil {
		return decimal.Zero, err
	}

	var saved decimal.Decimal
	err = s.db.Model(&models.Saving{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("account_id = ?", accountID).
		Scan(&saved).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return account.InitialBalance.Add(income).Sub(expense).Sub(saved), nil
}

func (s *accountService) sumTransactions(accountID uint, transactionType models.TransactionType) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("account_id = ? AND type = ?", accountID, transactionType).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}
