package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "dailytrack/internal/errors"
	"dailytrack/internal/models"
)

// taskService handles daily-task business logic.
type taskService struct {
	db          *gorm.DB
	preferences PreferencesServicer
}

// NewTaskService creates a new TaskServicer.
func NewTaskService(db *gorm.DB, preferences PreferencesServicer) TaskServicer {
	return &taskService{db: db, preferences: preferences}
}

// CreateTask creates a new daily task.
func (s *taskService) CreateTask(date time.Time, category models.TaskCategory, title, description string) (*models.DailyTask, error) {
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}
	switch category {
	case models.TaskCategoryAcademic, models.TaskCategoryHealth, models.TaskCategoryDaily:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category must be ACADEMIC, HEALTH, or DAILY")
	}

	task := &models.DailyTask{
		Date:        date,
		Category:    category,
		Title:       title,
		Description: description,
	}
	if err := s.db.Create(task).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return task, nil
}

// GetTasksByDate retrieves all tasks for a calendar date, ordered by
// category then creation time.
func (s *taskService) GetTasksByDate(date time.Time) ([]models.DailyTask, error) {
	var tasks []models.DailyTask
	if err := s.db.Where("date = ?", date).
		Order("category, created_at").
		Find(&tasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tasks, nil
}

// UpdateTask applies partial updates to a task.
func (s *taskService) UpdateTask(taskID uint, fields TaskUpdateFields) (*models.DailyTask, error) {
	task, err := s.getTask(taskID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Date != nil && !fields.Date.IsZero() {
		updates["date"] = *fields.Date
	}
	if fields.Category != nil {
		updates["category"] = *fields.Category
	}
	if fields.Title != nil && *fields.Title != "" {
		updates["title"] = *fields.Title
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.IsCompleted != nil {
		updates["is_completed"] = *fields.IsCompleted
	}

	if len(updates) > 0 {
		if err := s.db.Model(task).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.First(task, task.ID).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return task, nil
}

// DeleteTask removes a task.
func (s *taskService) DeleteTask(taskID uint) error {
	result := s.db.Delete(&models.DailyTask{}, taskID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

// ToggleTask flips a task's completion flag.
func (s *taskService) ToggleTask(taskID uint) (*models.DailyTask, error) {
	task, err := s.getTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(task).Update("is_completed", !task.IsCompleted).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	task.IsCompleted = !task.IsCompleted
	return task, nil
}

// SuggestTasks creates a preference-driven task for each category that has
// none today, and returns the tasks it created.
func (s *taskService) SuggestTasks(today time.Time) ([]models.DailyTask, error) {
	prefs, err := s.preferences.Get()
	if err != nil {
		return nil, err
	}

	academicFocus := prefs.AcademicFocus
	if academicFocus == "" {
		academicFocus = "your favorite topic"
	}
	healthFocus := prefs.HealthFocus
	if healthFocus == "" {
		healthFocus = "a brisk walk"
	}

	suggestions := []models.DailyTask{
		{
			Date:        today,
			Category:    models.TaskCategoryAcademic,
			Title:       fmt.Sprintf("Study: %s (45 minutes)", academicFocus),
			Description: fmt.Sprintf("Focus on one sub-topic of %s. Write down 3 key points.", academicFocus),
		},
		{
			Date:        today,
			Category:    models.TaskCategoryHealth,
			Title:       fmt.Sprintf("Exercise: %s", healthFocus),
			Description: "At least 25-30 minutes. Warm up and cool down.",
		},
		{
			Date:        today,
			Category:    models.TaskCategoryDaily,
			Title:       "Mindfulness: write down 3 things you are grateful for",
			Description: "Take 5 minutes to reflect.",
		},
	}

	var created []models.DailyTask
	for i := range suggestions {
		var count int64
		if err := s.db.Model(&models.DailyTask{}).
			Where("date = ? AND category = ?", today, suggestions[i].Category).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			continue
		}
		if err := s.db.Create(&suggestions[i]).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		created = append(created, suggestions[i])
	}
	return created, nil
}

func (s *taskService) getTask(taskID uint) (*models.DailyTask, error) {
	var task models.DailyTask
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &task, nil
}
