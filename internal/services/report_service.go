package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "dailytrack/internal/errors"
	"dailytrack/internal/models"
)

// reportService builds the month-to-date report.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// GetMonthlyReport aggregates finance and habit figures from the first of
// the current month through today.
func (s *reportService) GetMonthlyReport(today time.Time) (*MonthlyReport, error) {
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	report := &MonthlyReport{
		MonthStart: monthStart.Format(time.DateOnly),
		Today:      today.Format(time.DateOnly),
	}

	income, err := s.sumByType(models.TransactionTypeIncome, monthStart, today)
	if err != nil {
		return nil, err
	}
	report.IncomeTotal = income

	expense, err := s.sumByType(models.TransactionTypeExpense, monthStart, today)
	if err != nil {
		return nil, err
	}
	report.ExpenseTotal = expense

	var byCategory []CategoryTotal
	if err := s.db.Model(&models.Transaction{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("type = ? AND date >= ? AND date <= ?", models.TransactionTypeExpense, monthStart, today).
		Group("category").
		Order("total DESC").
		Scan(&byCategory).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	report.ByCategory = byCategory

	var learningMinutes int64
	if err := s.db.Model(&models.LearningLog{}).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Where("date >= ? AND date <= ?", monthStart, today).
		Scan(&learningMinutes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	report.LearningMinutes = learningMinutes

	if err := s.db.Model(&models.HealthLog{}).
		Where("date >= ? AND date <= ?", monthStart, today).
		Count(&report.HealthSessions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return report, nil
}

func (s *reportService) sumByType(transactionType models.TransactionType, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ? AND date >= ? AND date <= ?", transactionType, from, to).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}
