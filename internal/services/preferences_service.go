package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "dailytrack/internal/errors"
	"dailytrack/internal/models"
)

// preferencesService manages the single preferences row.
type preferencesService struct {
	db *gorm.DB
}

// NewPreferencesService creates a new PreferencesServicer.
func NewPreferencesService(db *gorm.DB) PreferencesServicer {
	return &preferencesService{db: db}
}

// Ensure creates the preferences row if it does not exist. Called once at
// startup; handlers only ever read or update the existing row.
func (s *preferencesService) Ensure() (*models.Preferences, error) {
	var prefs models.Preferences
	err := s.db.First(&prefs).Error
	if err == nil {
		return &prefs, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	prefs = models.Preferences{DailyWaterGoalGlasses: 8}
	if err := s.db.Create(&prefs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &prefs, nil
}

// Get returns the preferences row.
func (s *preferencesService) Get() (*models.Preferences, error) {
	var prefs models.Preferences
	if err := s.db.First(&prefs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &prefs, nil
}

// Update applies partial updates to the preferences row.
func (s *preferencesService) Update(fields PreferencesUpdateFields) (*models.Preferences, error) {
	prefs, err := s.Get()
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.AcademicFocus != nil {
		updates["academic_focus"] = *fields.AcademicFocus
	}
	if fields.HealthFocus != nil {
		updates["health_focus"] = *fields.HealthFocus
	}
	if fields.DailyWaterGoalGlasses != nil {
		if *fields.DailyWaterGoalGlasses < 1 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "water goal must be at least 1 glass")
		}
		updates["daily_water_goal_glasses"] = *fields.DailyWaterGoalGlasses
	}

	if len(updates) > 0 {
		if err := s.db.Model(prefs).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.First(prefs, prefs.ID).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return prefs, nil
}
