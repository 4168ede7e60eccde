package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "dailytrack/internal/errors"
	"dailytrack/internal/models"
	"dailytrack/internal/pagination"
)

// habitService handles learning, health, mindfulness, and water logs.
type habitService struct {
	db *gorm.DB

	// lookbackDays bounds the backward scan for streak counting so a
	// long-lived dataset cannot make a dashboard read unbounded.
	lookbackDays int
}

// NewHabitService creates a new HabitServicer.
func NewHabitService(db *gorm.DB, lookbackDays int) HabitServicer {
	if lookbackDays < 1 {
		lookbackDays = 365
	}
	return &habitService{db: db, lookbackDays: lookbackDays}
}

// AddLearningLog records a study session.
func (s *habitService) AddLearningLog(date time.Time, topic string, durationMinutes int, keyTakeaways, sourceURL string) (*models.LearningLog, error) {
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if topic == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "topic is required")
	}
	if durationMinutes < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "duration must not be negative")
	}

	log := &models.LearningLog{
		Date:            date,
		Topic:           topic,
		DurationMinutes: durationMinutes,
		KeyTakeaways:    keyTakeaways,
		SourceURL:       sourceURL,
	}
	if err := s.db.Create(log).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return log, nil
}

// GetLearningLogs retrieves learning logs, newest first.
func (s *habitService) GetLearningLogs(page pagination.PageRequest) (*pagination.PageResponse[models.LearningLog], error) {
	return listLogs[models.LearningLog](s.db, page)
}

// AddHealthLog records an exercise session.
func (s *habitService) AddHealthLog(date time.Time, activity, durationOrSets, note string) (*models.HealthLog, error) {
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if activity == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "activity is required")
	}

	log := &models.HealthLog{
		Date:           date,
		Activity:       activity,
		DurationOrSets: durationOrSets,
		Note:           note,
	}
	if err := s.db.Create(log).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return log, nil
}

// GetHealthLogs retrieves health logs, newest first.
func (s *habitService) GetHealthLogs(page pagination.PageRequest) (*pagination.PageResponse[models.HealthLog], error) {
	return listLogs[models.HealthLog](s.db, page)
}

// AddMindfulnessLog records a daily reflection entry.
func (s *habitService) AddMindfulnessLog(date time.Time, achievement, challenge, solution, gratitude string) (*models.MindfulnessLog, error) {
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	log := &models.MindfulnessLog{
		Date:        date,
		Achievement: achievement,
		Challenge:   challenge,
		Solution:    solution,
		Gratitude:   gratitude,
	}
	if err := s.db.Create(log).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return log, nil
}

// GetMindfulnessLogs retrieves mindfulness logs, newest first.
func (s *habitService) GetMindfulnessLogs(page pagination.PageRequest) (*pagination.PageResponse[models.MindfulnessLog], error) {
	return listLogs[models.MindfulnessLog](s.db, page)
}

// WaterToday returns the water intake row for the given date. A missing row
// reads as zero glasses without creating anything.
func (s *habitService) WaterToday(today time.Time) (*models.WaterIntake, error) {
	var water models.WaterIntake
	err := s.db.Where("date = ?", today).First(&water).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.WaterIntake{Date: today}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &water, nil
}

// AddWaterGlass increments the glass count for the given date, creating the
// day's row on the first glass.
func (s *habitService) AddWaterGlass(today time.Time) (*models.WaterIntake, error) {
	var water models.WaterIntake
	err := s.db.Where("date = ?", today).First(&water).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		water = models.WaterIntake{Date: today, Glasses: 1}
		if err := s.db.Create(&water).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &water, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&water).Update("glasses", gorm.Expr("glasses + 1")).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	water.Glasses++
	return &water, nil
}

// LearningStreak counts consecutive days with at least one learning log,
// scanning backward from today up to the lookback window.
func (s *habitService) LearningStreak(today time.Time) (int, error) {
	return s.streak(&models.LearningLog{}, today)
}

// HealthStreak counts consecutive days with at least one health log.
func (s *habitService) HealthStreak(today time.Time) (int, error) {
	return s.streak(&models.HealthLog{}, today)
}

func (s *habitService) streak(model interface{}, today time.Time) (int, error) {
	streak := 0
	day := today
	for i := 0; i < s.lookbackDays; i++ {
		var count int64
		if err := s.db.Model(model).Where("date = ?", day).Count(&count).Error; err != nil {
			return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}

// listLogs is the shared newest-first paginated listing for habit logs.
func listLogs[T any](db *gorm.DB, page pagination.PageRequest) (*pagination.PageResponse[T], error) {
	page.Defaults()

	var model T
	base := db.Model(&model)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var logs []T
	if err := base.Order("date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(logs, page.Page, page.PageSize, totalItems)
	return &result, nil
}
