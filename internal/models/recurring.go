package models

import (
	"time"

	"github.com/shopspring/decimal"

	"dailytrack/internal/recurrence"
)

// RecurringTransaction is a template that periodically materializes concrete
// transactions. NextDate advances by exactly one frequency step each time the
// generator fires; it is never rewound.
type RecurringTransaction struct {
	Base
	AccountID uint                 `gorm:"not null;index" json:"account_id"`
	Type      TransactionType      `gorm:"not null" json:"type"`
	Amount    decimal.Decimal      `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category  string               `json:"category"`
	Note      string               `json:"note"`
	Frequency recurrence.Frequency `gorm:"not null" json:"frequency"`
	NextDate  time.Time            `gorm:"not null;index" json:"next_date"`
	IsActive  bool                 `gorm:"default:true" json:"is_active"`

	// Relationships
	Account Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

// RecurringTask is the task-side counterpart of RecurringTransaction.
type RecurringTask struct {
	Base
	Category    TaskCategory         `gorm:"not null" json:"category"`
	Title       string               `gorm:"not null" json:"title"`
	Description string               `json:"description"`
	Frequency   recurrence.Frequency `gorm:"not null" json:"frequency"`
	NextDate    time.Time            `gorm:"not null;index" json:"next_date"`
	IsActive    bool                 `gorm:"default:true" json:"is_active"`
}
