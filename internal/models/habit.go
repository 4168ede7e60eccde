package models

import "time"

// LearningLog records a study session for a day.
type LearningLog struct {
	Base
	Date            time.Time `gorm:"not null;index" json:"date"`
	Topic           string    `gorm:"not null" json:"topic"`
	DurationMinutes int       `gorm:"default:0" json:"duration_minutes"`
	KeyTakeaways    string    `json:"key_takeaways"`
	SourceURL       string    `json:"source_url"`
}

// HealthLog records an exercise session for a day.
type HealthLog struct {
	Base
	Date           time.Time `gorm:"not null;index" json:"date"`
	Activity       string    `gorm:"not null" json:"activity"`
	DurationOrSets string    `json:"duration_or_sets"`
	Note           string    `json:"note"`
}

// MindfulnessLog is a daily reflection journal entry.
type MindfulnessLog struct {
	Base
	Date        time.Time `gorm:"not null;index" json:"date"`
	Achievement string    `json:"achievement"`
	Challenge   string    `json:"challenge"`
	Solution    string    `json:"solution"`
	Gratitude   string    `json:"gratitude"`
}

// WaterIntake counts glasses of water for a single day. One row per date.
type WaterIntake struct {
	Base
	Date    time.Time `gorm:"not null;uniqueIndex" json:"date"`
	Glasses int       `gorm:"default:0" json:"glasses"`
}
