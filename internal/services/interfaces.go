package services

import (
	"io"
	"time"

	"github.com/shopspring/decimal"

	"dailytrack/internal/models"
	"dailytrack/internal/pagination"
	"dailytrack/internal/recurrence"
)

// AccountUpdateFields holds optional fields for updating an account.
type AccountUpdateFields struct {
	Name           *string
	Description    *string
	InitialBalance *decimal.Decimal
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(name, description string, initialBalance decimal.Decimal) (*models.Account, error)
	GetAccounts() ([]models.Account, error)
	GetAccountByID(accountID uint) (*models.Account, error)
	UpdateAccount(accountID uint, fields AccountUpdateFields) (*models.Account, error)
	DeleteAccount(accountID uint) error
	DefaultAccount() (*models.Account, error)
	EnsureDefaultAccount() (*models.Account, error)
	ResolveAccount(accountID *uint) (*models.Account, error)
	CurrentBalance(accountID uint) (decimal.Decimal, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	AccountID *uint
	FromDate  *time.Time
	ToDate    *time.Time
	Type      *models.TransactionType
	Query     string
}

// TransactionUpdateFields holds optional fields for updating a transaction.
type TransactionUpdateFields struct {
	Date     *time.Time
	Type     *models.TransactionType
	Amount   *decimal.Decimal
	Category *string
	Note     *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(accountID *uint, date time.Time, transactionType models.TransactionType, amount decimal.Decimal, category, note string) (*models.Transaction, error)
	GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(transactionID uint) (*models.Transaction, error)
	UpdateTransaction(transactionID uint, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(transactionID uint) error
}

// SavingFilter holds optional filter parameters for listing savings.
type SavingFilter struct {
	AccountID *uint
	GoalID    *uint
	FromDate  *time.Time
	ToDate    *time.Time
	Query     string
}

// SavingUpdateFields holds optional fields for updating a saving.
type SavingUpdateFields struct {
	Date     *time.Time
	Amount   *decimal.Decimal
	GoalID   *uint
	GoalName *string
	Note     *string
}

// GoalUpdateFields holds optional fields for updating a savings goal.
type GoalUpdateFields struct {
	Name         *string
	TargetAmount *decimal.Decimal
	Description  *string
}

// GoalProgress is a savings goal together with its derived progress.
type GoalProgress struct {
	Goal            models.SavingsGoal `json:"goal"`
	SavedAmount     decimal.Decimal    `json:"saved_amount"`
	ProgressPercent float64            `json:"progress_percent"`
}

// SavingServicer defines the contract for savings and goal business logic.
type SavingServicer interface {
	CreateSaving(accountID, goalID *uint, date time.Time, amount decimal.Decimal, goalName, note string) (*models.Saving, error)
	GetSavings(page pagination.PageRequest, filter SavingFilter) (*pagination.PageResponse[models.Saving], error)
	UpdateSaving(savingID uint, fields SavingUpdateFields) (*models.Saving, error)
	DeleteSaving(savingID uint) error

	CreateGoal(name string, targetAmount decimal.Decimal, description string) (*models.SavingsGoal, error)
	GetGoals() ([]GoalProgress, error)
	GetGoalByID(goalID uint) (*GoalProgress, error)
	UpdateGoal(goalID uint, fields GoalUpdateFields) (*models.SavingsGoal, error)
	DeleteGoal(goalID uint) error
}

// TaskUpdateFields holds optional fields for updating a daily task.
type TaskUpdateFields struct {
	Date        *time.Time
	Category    *models.TaskCategory
	Title       *string
	Description *string
	IsCompleted *bool
}

// TaskServicer defines the contract for daily-task business logic.
type TaskServicer interface {
	CreateTask(date time.Time, category models.TaskCategory, title, description string) (*models.DailyTask, error)
	GetTasksByDate(date time.Time) ([]models.DailyTask, error)
	UpdateTask(taskID uint, fields TaskUpdateFields) (*models.DailyTask, error)
	DeleteTask(taskID uint) error
	ToggleTask(taskID uint) (*models.DailyTask, error)
	SuggestTasks(today time.Time) ([]models.DailyTask, error)
}

// HabitServicer defines the contract for habit-log business logic.
type HabitServicer interface {
	AddLearningLog(date time.Time, topic string, durationMinutes int, keyTakeaways, sourceURL string) (*models.LearningLog, error)
	GetLearningLogs(page pagination.PageRequest) (*pagination.PageResponse[models.LearningLog], error)
	AddHealthLog(date time.Time, activity, durationOrSets, note string) (*models.HealthLog, error)
	GetHealthLogs(page pagination.PageRequest) (*pagination.PageResponse[models.HealthLog], error)
	AddMindfulnessLog(date time.Time, achievement, challenge, solution, gratitude string) (*models.MindfulnessLog, error)
	GetMindfulnessLogs(page pagination.PageRequest) (*pagination.PageResponse[models.MindfulnessLog], error)
	WaterToday(today time.Time) (*models.WaterIntake, error)
	AddWaterGlass(today time.Time) (*models.WaterIntake, error)
	LearningStreak(today time.Time) (int, error)
	HealthStreak(today time.Time) (int, error)
}

// PreferencesUpdateFields holds optional fields for updating preferences.
type PreferencesUpdateFields struct {
	AcademicFocus         *string
	HealthFocus           *string
	DailyWaterGoalGlasses *int
}

// PreferencesServicer defines the contract for the single preferences row.
type PreferencesServicer interface {
	Ensure() (*models.Preferences, error)
	Get() (*models.Preferences, error)
	Update(fields PreferencesUpdateFields) (*models.Preferences, error)
}

// RecurringTransactionUpdateFields holds optional fields for updating a
// recurring transaction template.
type RecurringTransactionUpdateFields struct {
	Type      *models.TransactionType
	Amount    *decimal.Decimal
	Category  *string
	Note      *string
	Frequency *recurrence.Frequency
	NextDate  *time.Time
	IsActive  *bool
}

// RecurringTaskUpdateFields holds optional fields for updating a recurring
// task template.
type RecurringTaskUpdateFields struct {
	Category    *models.TaskCategory
	Title       *string
	Description *string
	Frequency   *recurrence.Frequency
	NextDate    *time.Time
	IsActive    *bool
}

// RecurringServicer defines the contract for recurring templates and the
// generator that materializes them into concrete records.
type RecurringServicer interface {
	CreateTransactionTemplate(accountID *uint, transactionType models.TransactionType, amount decimal.Decimal, category, note string, frequency recurrence.Frequency, nextDate time.Time) (*models.RecurringTransaction, error)
	GetTransactionTemplates(accountID *uint) ([]models.RecurringTransaction, error)
	UpdateTransactionTemplate(templateID uint, fields RecurringTransactionUpdateFields) (*models.RecurringTransaction, error)
	DeleteTransactionTemplate(templateID uint) error
	GenerateTransactions(today time.Time) (int, error)

	CreateTaskTemplate(category models.TaskCategory, title, description string, frequency recurrence.Frequency, nextDate time.Time) (*models.RecurringTask, error)
	GetTaskTemplates() ([]models.RecurringTask, error)
	UpdateTaskTemplate(templateID uint, fields RecurringTaskUpdateFields) (*models.RecurringTask, error)
	DeleteTaskTemplate(templateID uint) error
	GenerateTasks(today time.Time) (int, error)
}

// TaskFocus is the first task of each category for the day.
type TaskFocus struct {
	Academic *models.DailyTask `json:"academic"`
	Health   *models.DailyTask `json:"health"`
	Daily    *models.DailyTask `json:"daily"`
}

// DayCount is the completed/total task split for a single day.
type DayCount struct {
	Date      string `json:"date"`
	Completed int64  `json:"completed"`
	Total     int64  `json:"total"`
}

// DashboardSummary aggregates everything the dashboard shows for one day.
type DashboardSummary struct {
	Today              string                  `json:"today"`
	Quote              string                  `json:"quote"`
	Tasks              []models.DailyTask      `json:"tasks"`
	Focus              TaskFocus               `json:"focus"`
	Account            models.Account          `json:"account"`
	CurrentBalance     decimal.Decimal         `json:"current_balance"`
	RecentTransactions []models.Transaction    `json:"recent_transactions"`
	RecentSavings      []models.Saving         `json:"recent_savings"`
	WeeklyCounts       []DayCount              `json:"weekly_counts"`
	Water              models.WaterIntake      `json:"water"`
	WaterGoalGlasses   int                     `json:"water_goal_glasses"`
	Goals              []GoalProgress          `json:"goals"`
	RecentLearning     []models.LearningLog    `json:"recent_learning"`
	RecentHealth       []models.HealthLog      `json:"recent_health"`
	RecentMindfulness  []models.MindfulnessLog `json:"recent_mindfulness"`
	LearningStreak     int                     `json:"learning_streak"`
	HealthStreak       int                     `json:"health_streak"`
}

// DashboardServicer defines the contract for the dashboard read model.
type DashboardServicer interface {
	GetSummary(today time.Time) (*DashboardSummary, error)
}

// CategoryTotal is an expense sum for one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlyReport aggregates finance and habit figures for the current month.
type MonthlyReport struct {
	MonthStart      string          `json:"month_start"`
	Today           string          `json:"today"`
	IncomeTotal     decimal.Decimal `json:"income_total"`
	ExpenseTotal    decimal.Decimal `json:"expense_total"`
	ByCategory      []CategoryTotal `json:"by_category"`
	LearningMinutes int64           `json:"learning_minutes"`
	HealthSessions  int64           `json:"health_sessions"`
}

// ReportServicer defines the contract for monthly reporting.
type ReportServicer interface {
	GetMonthlyReport(today time.Time) (*MonthlyReport, error)
}

// CSVServicer defines the contract for CSV interchange of transactions and
// savings.
type CSVServicer interface {
	ExportTransactions(accountID *uint, w io.Writer) error
	ExportSavings(accountID *uint, w io.Writer) error
	ImportTransactions(r io.Reader, account *models.Account) (int, error)
	ImportSavings(r io.Reader, account *models.Account) (int, error)
}
