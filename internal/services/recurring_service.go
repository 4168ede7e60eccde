package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "dailytrack/internal/errors"
	"dailytrack/internal/logger"
	"dailytrack/internal/models"
	"dailytrack/internal/recurrence"
)

// errTemplateRaced signals that a concurrent generator run advanced the
// template first; the record was not created here and must not be counted.
var errTemplateRaced = errors.New("template advanced by concurrent run")

// recurringService manages recurring templates and the generator that turns
// them into concrete records.
type recurringService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(db *gorm.DB, accountService AccountServicer) RecurringServicer {
	return &recurringService{db: db, accountService: accountService}
}

// CreateTransactionTemplate creates a recurring transaction template.
func (s *recurringService) CreateTransactionTemplate(
	accountID *uint,
	transactionType models.TransactionType,
	amount decimal.Decimal,
	category, note string,
	frequency recurrence.Frequency,
	nextDate time.Time,
) (*models.RecurringTransaction, error) {
	if transactionType != models.TransactionTypeIncome && transactionType != models.TransactionTypeExpense {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be INCOME or EXPENSE")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !frequency.Valid() {
		return nil, apperrors.ErrInvalidFrequency
	}
	if nextDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "next date is required")
	}

	account, err := s.accountService.ResolveAccount(accountID)
	if err != nil {
		return nil, err
	}

	template := &models.RecurringTransaction{
		AccountID: account.ID,
		Type:      transactionType,
		Amount:    amount,
		Category:  category,
		Note:      note,
		Frequency: frequency,
		NextDate:  nextDate,
		IsActive:  true,
	}
	if err := s.db.Create(template).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return template, nil
}

// GetTransactionTemplates lists transaction templates, optionally for one
// account, soonest due first.
func (s *recurringService) GetTransactionTemplates(accountID *uint) ([]models.RecurringTransaction, error) {
	base := s.db.Model(&models.RecurringTransaction{})
	if accountID != nil {
		base = base.Where("account_id = ?", *accountID)
	}

	var templates []models.RecurringTransaction
	if err := base.Preload("Account").Order("next_date, id").Find(&templates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return templates, nil
}

// UpdateTransactionTemplate applies partial updates to a template.
func (s *recurringService) UpdateTransactionTemplate(templateID uint, fields RecurringTransactionUpdateFields) (*models.RecurringTransaction, error) {
	var template models.RecurringTransaction
	if err := s.db.First(&template, templateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if fields.Type != nil {
		if *fields.Type != models.TransactionTypeIncome && *fields.Type != models.TransactionTypeExpense {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be INCOME or EXPENSE")
		}
		updates["type"] = *fields.Type
	}
	if fields.Amount != nil {
		if fields.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *fields.Amount
	}
	if fields.Category != nil {
		updates["category"] = *fields.Category
	}
	if fields.Note != nil {
		updates["note"] = *fields.Note
	}
	if fields.Frequency != nil {
		if !fields.Frequency.Valid() {
			return nil, apperrors.ErrInvalidFrequency
		}
		updates["frequency"] = *fields.Frequency
	}
	if fields.NextDate != nil && !fields.NextDate.IsZero() {
		updates["next_date"] = *fields.NextDate
	}
	if fields.IsActive != nil {
		updates["is_active"] = *fields.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&template).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.First(&template, template.ID).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return &template, nil
}

// DeleteTransactionTemplate removes a template. Records it generated are
// independent and stay untouched.
func (s *recurringService) DeleteTransactionTemplate(templateID uint) error {
	result := s.db.Delete(&models.RecurringTransaction{}, templateID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTemplateNotFound
	}
	return nil
}

// GenerateTransactions materializes one transaction per due template and
// advances each schedule exactly one frequency step. A template further
// overdue than one step catches up across repeated invocations, never within
// one. Returns the number of transactions generated.
func (s *recurringService) GenerateTransactions(today time.Time) (int, error) {
	var templates []models.RecurringTransaction
	if err := s.db.
		Where("is_active = ? AND next_date <= ?", true, today).
		Order("id").
		Find(&templates).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	generated := 0
	for i := range templates {
		template := &templates[i]
		next, err := recurrence.Advance(template.NextDate, template.Frequency)
		if err != nil {
			// Stored frequency is broken: stop rather than guess a step.
			// Templates already processed stay advanced.
			return generated, apperrors.Wrap(apperrors.ErrInvalidFrequency, err)
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			return s.fireTransactionTemplate(tx, template, next)
		})
		if err != nil {
			if errors.Is(err, errTemplateRaced) {
				logger.Get().Infow("recurring transaction raced, skipping",
					"template_id", template.ID)
				continue
			}
			return generated, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		generated++
	}
	return generated, nil
}

// fireTransactionTemplate creates the concrete transaction and advances the
// schedule as one atomic unit. The optimistic next_date check keeps two
// concurrent generator runs from both firing the same template.
func (s *recurringService) fireTransactionTemplate(tx *gorm.DB, template *models.RecurringTransaction, next time.Time) error {
	result := tx.Model(&models.RecurringTransaction{}).
		Where("id = ? AND next_date = ?", template.ID, template.NextDate).
		Update("next_date", next)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errTemplateRaced
	}

	record := &models.Transaction{
		AccountID: template.AccountID,
		Date:      template.NextDate,
		Type:      template.Type,
		Amount:    template.Amount,
		Category:  template.Category,
		Note:      template.Note,
	}
	return tx.Create(record).Error
}

// CreateTaskTemplate creates a recurring task template.
func (s *recurringService) CreateTaskTemplate(
	category models.TaskCategory,
	title, description string,
	frequency recurrence.Frequency,
	nextDate time.Time,
) (*models.RecurringTask, error) {
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}
	switch category {
	case models.TaskCategoryAcademic, models.TaskCategoryHealth, models.TaskCategoryDaily:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category must be ACADEMIC, HEALTH, or DAILY")
	}
	if !frequency.Valid() {
		return nil, apperrors.ErrInvalidFrequency
	}
	if nextDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "next date is required")
	}

	template := &models.RecurringTask{
		Category:    category,
		Title:       title,
		Description: description,
		Frequency:   frequency,
		NextDate:    nextDate,
		IsActive:    true,
	}
	if err := s.db.Create(template).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return template, nil
}

// GetTaskTemplates lists recurring task templates, soonest due first.
func (s *recurringService) GetTaskTemplates() ([]models.RecurringTask, error) {
	var templates []models.RecurringTask
	if err := s.db.Order("next_date, id").Find(&templates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return templates, nil
}

// UpdateTaskTemplate applies partial updates to a task template.
func (s *recurringService) UpdateTaskTemplate(templateID uint, fields RecurringTaskUpdateFields) (*models.RecurringTask, error) {
	var template models.RecurringTask
	if err := s.db.First(&template, templateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if fields.Category != nil {
		updates["category"] = *fields.Category
	}
	if fields.Title != nil && *fields.Title != "" {
		updates["title"] = *fields.Title
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Frequency != nil {
		if !fields.Frequency.Valid() {
			return nil, apperrors.ErrInvalidFrequency
		}
		updates["frequency"] = *fields.Frequency
	}
	if fields.NextDate != nil && !fields.NextDate.IsZero() {
		updates["next_date"] = *fields.NextDate
	}
	if fields.IsActive != nil {
		updates["is_active"] = *fields.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&template).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.First(&template, template.ID).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return &template, nil
}

// DeleteTaskTemplate removes a task template.
func (s *recurringService) DeleteTaskTemplate(templateID uint) error {
	result := s.db.Delete(&models.RecurringTask{}, templateID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTemplateNotFound
	}
	return nil
}

// GenerateTasks materializes one daily task per due task template, with the
// same single-step and concurrency semantics as GenerateTransactions.
func (s *recurringService) GenerateTasks(today time.Time) (int, error) {
	var templates []models.RecurringTask
	if err := s.db.
		Where("is_active = ? AND next_date <= ?", true, today).
		Order("id").
		Find(&templates).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	generated := 0
	for i := range templates {
		template := &templates[i]
		next, err := recurrence.Advance(template.NextDate, template.Frequency)
		if err != nil {
			return generated, apperrors.Wrap(apperrors.ErrInvalidFrequency, err)
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			return s.fireTaskTemplate(tx, template, next)
		})
		if err != nil {
			if errors.Is(err, errTemplateRaced) {
				logger.Get().Infow("recurring task raced, skipping",
					"template_id", template.ID)
				continue
			}
			return generated, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		generated++
	}
	return generated, nil
}

// fireTaskTemplate creates the concrete daily task and advances the schedule
// as one atomic unit, with the same optimistic next_date check as the
// transaction path.
func (s *recurringService) fireTaskTemplate(tx *gorm.DB, template *models.RecurringTask, next time.Time) error {
	result := tx.Model(&models.RecurringTask{}).
		Where("id = ? AND next_date = ?", template.ID, template.NextDate).
		Update("next_date", next)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errTemplateRaced
	}

	task := &models.DailyTask{
		Date:        template.NextDate,
		Category:    template.Category,
		Title:       template.Title,
		Description: template.Description,
	}
	return tx.Create(task).Error
}
