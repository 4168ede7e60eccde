package models

import "time"

// TaskCategory represents the category of a daily task
type TaskCategory string

const (
	TaskCategoryAcademic TaskCategory = "ACADEMIC"
	TaskCategoryHealth   TaskCategory = "HEALTH"
	TaskCategoryDaily    TaskCategory = "DAILY"
)

// DailyTask represents a dated to-do item in one of the tracker categories.
type DailyTask struct {
	Base
	Date        time.Time    `gorm:"not null;index" json:"date"`
	Category    TaskCategory `gorm:"not null" json:"category"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `json:"description"`
	IsCompleted bool         `gorm:"default:false" json:"is_completed"`
}
