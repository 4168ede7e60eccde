package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "dailytrack/internal/errors"
	"dailytrack/internal/models"
)

// quotes rotates by day ordinal on the dashboard.
var quotes = []string{
	"Small steps today are big wins tomorrow.",
	"Consistency beats intensity.",
	"Learning is the best investment in yourself.",
	"Healthy body, sharp mind.",
	"Progress matters more than perfection.",
}

// dashboardService builds the daily summary read model.
type dashboardService struct {
	db             *gorm.DB
	accountService AccountServicer
	savingService  SavingServicer
	habitService   HabitServicer
	preferences    PreferencesServicer
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(
	db *gorm.DB,
	accountService AccountServicer,
	savingService SavingServicer,
	habitService HabitServicer,
	preferences PreferencesServicer,
) DashboardServicer {
	return &dashboardService{
		db:             db,
		accountService: accountService,
		savingService:  savingService,
		habitService:   habitService,
		preferences:    preferences,
	}
}

// GetSummary assembles the dashboard for the given day. Everything here is
// derived from the current data snapshot; nothing is cached between reads.
func (s *dashboardService) GetSummary(today time.Time) (*DashboardSummary, error) {
	summary := &DashboardSummary{
		Today: today.Format(time.DateOnly),
		Quote: quoteOfTheDay(today),
	}

	var tasks []models.DailyTask
	if err := s.db.Where("date = ?", today).
		Order("category, created_at").
		Find(&tasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	summary.Tasks = tasks
	summary.Focus = taskFocus(tasks)

	account, err := s.accountService.DefaultAccount()
	if err != nil {
		return nil, err
	}
	summary.Account = *account

	balance, err := s.accountService.CurrentBalance(account.ID)
	if err != nil {
		return nil, err
	}
	summary.CurrentBalance = balance

	if err := s.db.Preload("Account").
		Order("date DESC, id DESC").Limit(5).
		Find(&summary.RecentTransactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Preload("Account").Preload("Goal").
		Order("date DESC, id DESC").Limit(5).
		Find(&summary.RecentSavings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	weekly, err := s.weeklyCounts(today)
	if err != nil {
		return nil, err
	}
	summary.WeeklyCounts = weekly

	water, err := s.habitService.WaterToday(today)
	if err != nil {
		return nil, err
	}
	summary.Water = *water

	prefs, err := s.preferences.Get()
	if err != nil {
		return nil, err
	}
	summary.WaterGoalGlasses = prefs.DailyWaterGoalGlasses

	goals, err := s.savingService.GetGoals()
	if err != nil {
		return nil, err
	}
	if len(goals) > 5 {
		goals = goals[:5]
	}
	summary.Goals = goals

	if err := s.db.Order("date DESC, id DESC").Limit(5).
		Find(&summary.RecentLearning).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Order("date DESC, id DESC").Limit(5).
		Find(&summary.RecentHealth).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Order("date DESC, id DESC").Limit(5).
		Find(&summary.RecentMindfulness).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if summary.LearningStreak, err = s.habitService.LearningStreak(today); err != nil {
		return nil, err
	}
	if summary.HealthStreak, err = s.habitService.HealthStreak(today); err != nil {
		return nil, err
	}

	return summary, nil
}

// weeklyCounts returns completed/total task counts for each day of the
// current Monday-to-Sunday week.
func (s *dashboardService) weeklyCounts(today time.Time) ([]DayCount, error) {
	weekday := int(today.Weekday())
	// time.Weekday has Sunday = 0; the tracker week starts on Monday.
	offset := (weekday + 6) % 7
	weekStart := today.AddDate(0, 0, -offset)

	counts := make([]DayCount, 0, 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)

		var total, completed int64
		if err := s.db.Model(&models.DailyTask{}).
			Where("date = ?", day).
			Count(&total).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Model(&models.DailyTask{}).
			Where("date = ? AND is_completed = ?", day, true).
			Count(&completed).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		counts = append(counts, DayCount{
			Date:      day.Format(time.DateOnly),
			Completed: completed,
			Total:     total,
		})
	}
	return counts, nil
}

// taskFocus picks the first task of each category for the day.
func taskFocus(tasks []models.DailyTask) TaskFocus {
	var focus TaskFocus
	for i := range tasks {
		switch tasks[i].Category {
		case models.TaskCategoryAcademic:
			if focus.Academic == nil {
				focus.Academic = &tasks[i]
			}
		case models.TaskCategoryHealth:
			if focus.Health == nil {
				focus.Health = &tasks[i]
			}
		case models.TaskCategoryDaily:
			if focus.Daily == nil {
				focus.Daily = &tasks[i]
			}
		}
	}
	return focus
}

func quoteOfTheDay(today time.Time) string {
	// toordinal-style rotation: days since epoch picks the quote.
	days := today.Unix() / 86400
	idx := int(days) % len(quotes)
	if idx < 0 {
		idx += len(quotes)
	}
	return quotes[idx]
}
