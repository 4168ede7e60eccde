package models

import "github.com/shopspring/decimal"

// Account represents a money pot (wallet, bank account) that transactions
// and savings are recorded against. The current balance is never stored:
// it is derived from the initial balance plus the full ledger on every read.
type Account struct {
	Base
	Name           string          `gorm:"uniqueIndex;not null" json:"name"`
	Description    string          `json:"description"`
	InitialBalance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"initial_balance"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
	Savings      []Saving      `gorm:"foreignKey:AccountID" json:"savings,omitempty"`
}
