package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "dailytrack/internal/errors"
	"dailytrack/internal/models"
	"dailytrack/internal/pagination"
)

// savingService handles savings and savings-goal business logic.
type savingService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewSavingService creates a new SavingServicer.
func NewSavingService(db *gorm.DB, accountService AccountServicer) SavingServicer {
	return &savingService{db: db, accountService: accountService}
}

// CreateSaving records money set aside from an account. A goal ID that
// matches no stored goal is dropped and the free-text goal name remains the
// only label.
func (s *savingService) CreateSaving(
	accountID, goalID *uint,
	date time.Time,
	amount decimal.Decimal,
	goalName, note string,
) (*models.Saving, error) {
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	account, err := s.accountService.ResolveAccount(accountID)
	if err != nil {
		return nil, err
	}

	saving := &models.Saving{
		AccountID: account.ID,
		GoalID:    s.resolveGoalID(goalID),
		Date:      date,
		Amount:    amount,
		GoalName:  goalName,
		Note:      note,
	}
	if err := s.db.Create(saving).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return saving, nil
}

// resolveGoalID returns goalID only when it references a stored goal.
func (s *savingService) resolveGoalID(goalID *uint) *uint {
	if goalID == nil {
		return nil
	}
	var goal models.SavingsGoal
	if err := s.db.First(&goal, *goalID).Error; err != nil {
		return nil
	}
	return goalID
}

// GetSavings retrieves a filtered, paginated list of savings, newest first.
func (s *savingService) GetSavings(page pagination.PageRequest, filter SavingFilter) (*pagination.PageResponse[models.Saving], error) {
	page.Defaults()

	base := s.db.Model(&models.Saving{})
	if filter.AccountID != nil {
		base = base.Where("account_id = ?", *filter.AccountID)
	}
	if filter.GoalID != nil {
		base = base.Where("goal_id = ?", *filter.GoalID)
	}
	if filter.FromDate != nil {
		base = base.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("date <= ?", *filter.ToDate)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		base = base.Where("goal_name LIKE ? OR note LIKE ?", like, like)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var savings []models.Saving
	if err := base.Preload("Account").Preload("Goal").
		Order("date DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&savings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(savings, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateSaving applies partial updates to a saving.
func (s *savingService) UpdateSaving(savingID uint, fields SavingUpdateFields) (*models.Saving, error) {
	var saving models.Saving
	if err := s.db.First(&saving, savingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSavingNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if fields.Date != nil && !fields.Date.IsZero() {
		updates["date"] = *fields.Date
	}
	if fields.Amount != nil {
		if fields.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *fields.Amount
	}
	if fields.GoalID != nil {
		updates["goal_id"] = s.resolveGoalID(fields.GoalID)
	}
	if fields.GoalName != nil {
		updates["goal_name"] = *fields.GoalName
	}
	if fields.Note != nil {
		updates["note"] = *fields.Note
	}

	if len(updates) > 0 {
		if err := s.db.Model(&saving).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.First(&saving, saving.ID).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return &saving, nil
}

// DeleteSaving removes a saving.
func (s *savingService) DeleteSaving(savingID uint) error {
	result := s.db.Delete(&models.Saving{}, savingID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrSavingNotFound
	}
	return nil
}

// CreateGoal creates a new savings goal.
func (s *savingService) CreateGoal(name string, targetAmount decimal.Decimal, description string) (*models.SavingsGoal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if targetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}

	var existing models.SavingsGoal
	err := s.db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, apperrors.ErrDuplicateGoal
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	goal := &models.SavingsGoal{
		Name:         name,
		TargetAmount: targetAmount,
		Description:  description,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetGoals retrieves all goals with derived progress, newest first.
func (s *savingService) GetGoals() ([]GoalProgress, error) {
	var goals []models.SavingsGoal
	if err := s.db.Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	progress := make([]GoalProgress, 0, len(goals))
	for i := range goals {
		p, err := s.goalProgress(&goals[i])
		if err != nil {
			return nil, err
		}
		progress = append(progress, *p)
	}
	return progress, nil
}

// GetGoalByID retrieves a goal with derived progress.
func (s *savingService) GetGoalByID(goalID uint) (*GoalProgress, error) {
	var goal models.SavingsGoal
	if err := s.db.First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.goalProgress(&goal)
}

// goalProgress derives the saved amount and progress percentage from the
// savings referencing the goal. Nothing is stored.
func (s *savingService) goalProgress(goal *models.SavingsGoal) (*GoalProgress, error) {
	var saved decimal.Decimal
	err := s.db.Model(&models.Saving{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("goal_id = ?", goal.ID).
		Scan(&saved).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var percent float64
	if goal.TargetAmount.IsPositive() {
		percent, _ = saved.Div(goal.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
	}

	return &GoalProgress{
		Goal:            *goal,
		SavedAmount:     saved,
		ProgressPercent: percent,
	}, nil
}

// UpdateGoal applies partial updates to a goal.
func (s *savingService) UpdateGoal(goalID uint, fields GoalUpdateFields) (*models.SavingsGoal, error) {
	var goal models.SavingsGoal
	if err := s.db.First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.TargetAmount != nil {
		if fields.TargetAmount.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
		}
		updates["target_amount"] = *fields.TargetAmount
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(&goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.First(&goal, goal.ID).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return &goal, nil
}

// DeleteGoal removes a goal. Savings that referenced it keep their free-text
// goal name as the only label.
func (s *savingService) DeleteGoal(goalID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Saving{}).
			Where("goal_id = ?", goalID).
			Update("goal_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.SavingsGoal{}, goalID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrGoalNotFound
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
