package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal is a named savings target. The saved amount and progress are
// derived from the savings that reference the goal, never stored.
type SavingsGoal struct {
	Base
	Name         string          `gorm:"uniqueIndex;not null" json:"name"`
	TargetAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"target_amount"`
	Description  string          `json:"description"`

	// Relationships
	Savings []Saving `gorm:"foreignKey:GoalID" json:"savings,omitempty"`
}

// Saving represents money set aside from an account, optionally toward a
// stored goal. GoalName keeps a free-text label when no stored goal matches,
// e.g. after a CSV import referencing an unknown goal.
type Saving struct {
	Base
	AccountID uint            `gorm:"not null;index" json:"account_id"`
	GoalID    *uint           `json:"goal_id,omitempty"`
	Date      time.Time       `gorm:"not null;index" json:"date"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	GoalName  string          `json:"goal_name"`
	Note      string          `json:"note"`

	// Relationships
	Account Account      `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Goal    *SavingsGoal `gorm:"foreignKey:GoalID" json:"goal,omitempty"`
}
