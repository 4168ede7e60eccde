package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Transaction represents a dated income or expense entry on an account.
// Once created it is an independent record, editable and deletable
// regardless of whether a recurring template spawned it.
type Transaction struct {
	Base
	AccountID uint            `gorm:"not null;index" json:"account_id"`
	Date      time.Time       `gorm:"not null;index" json:"date"`
	Type      TransactionType `gorm:"not null" json:"type"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category  string          `json:"category"`
	Note      string          `json:"note"`

	// Relationships
	Account Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}
