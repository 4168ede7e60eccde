package models

// Preferences holds the single user's tracker settings. Exactly one row
// exists; it is created explicitly at startup rather than lazily inside
// request handlers.
type Preferences struct {
	Base
	AcademicFocus         string `json:"academic_focus"`
	HealthFocus           string `json:"health_focus"`
	DailyWaterGoalGlasses int    `gorm:"default:8" json:"daily_water_goal_glasses"`
}
