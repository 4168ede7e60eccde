package services

import (
	"encoding/csv"
	"errors"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "dailytrack/internal/errors"
	"dailytrack/internal/models"
	"dailytrack/internal/recurrence"
)

var transactionCSVHeader = []string{"date", "account", "type", "amount", "category", "note"}
var savingCSVHeader = []string{"date", "account", "amount", "goal", "goal_name", "note"}

// csvService implements CSV interchange for transactions and savings.
type csvService struct {
	db *gorm.DB
}

// NewCSVService creates a new CSVServicer.
func NewCSVService(db *gorm.DB) CSVServicer {
	return &csvService{db: db}
}

// ExportTransactions writes transactions as CSV, oldest first, optionally
// limited to one account.
func (s *csvService) ExportTransactions(accountID *uint, w io.Writer) error {
	base := s.db.Preload("Account").Order("date, id")
	if accountID != nil {
		base = base.Where("account_id = ?", *accountID)
	}

	var transactions []models.Transaction
	if err := base.Find(&transactions).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(transactionCSVHeader); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for i := range transactions {
		tr := &transactions[i]
		row := []string{
			tr.Date.Format(time.DateOnly),
			tr.Account.Name,
			string(tr.Type),
			tr.Amount.StringFixed(2),
			tr.Category,
			tr.Note,
		}
		if err := writer.Write(row); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

// ExportSavings writes savings as CSV, oldest first, optionally limited to
// one account.
func (s *csvService) ExportSavings(accountID *uint, w io.Writer) error {
	base := s.db.Preload("Account").Preload("Goal").Order("date, id")
	if accountID != nil {
		base = base.Where("account_id = ?", *accountID)
	}

	var savings []models.Saving
	if err := base.Find(&savings).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(savingCSVHeader); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for i := range savings {
		sv := &savings[i]
		goalName := ""
		if sv.Goal != nil {
			goalName = sv.Goal.Name
		}
		row := []string{
			sv.Date.Format(time.DateOnly),
			sv.Account.Name,
			sv.Amount.StringFixed(2),
			goalName,
			sv.GoalName,
			sv.Note,
		}
		if err := writer.Write(row); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}

// ImportTransactions reads CSV rows into the given account. Each row stands
// alone: a malformed row is skipped and the rest continue. Returns the
// number of rows imported.
func (s *csvService) ImportTransactions(r io.Reader, account *models.Account) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "empty or unreadable CSV file")
	}
	columns := columnIndex(header)

	imported := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}

		date, ok := parseCSVDate(field(row, columns, "date"))
		if !ok {
			continue
		}
		transactionType := models.TransactionType(field(row, columns, "type"))
		if transactionType != models.TransactionTypeIncome && transactionType != models.TransactionTypeExpense {
			continue
		}
		amount, ok := parseCSVAmount(field(row, columns, "amount"))
		if !ok {
			continue
		}

		transaction := &models.Transaction{
			AccountID: account.ID,
			Date:      date,
			Type:      transactionType,
			Amount:    amount,
			Category:  field(row, columns, "category"),
			Note:      field(row, columns, "note"),
		}
		if err := s.db.Create(transaction).Error; err != nil {
			continue
		}
		imported++
	}
	return imported, nil
}

// ImportSavings reads CSV rows into the given account. A goal column that
// matches no stored goal leaves goal_name as the only label.
func (s *csvService) ImportSavings(r io.Reader, account *models.Account) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "empty or unreadable CSV file")
	}
	columns := columnIndex(header)

	imported := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}

		date, ok := parseCSVDate(field(row, columns, "date"))
		if !ok {
			continue
		}
		amount, ok := parseCSVAmount(field(row, columns, "amount"))
		if !ok {
			continue
		}

		var goalID *uint
		if goalTitle := field(row, columns, "goal"); goalTitle != "" {
			var goal models.SavingsGoal
			if err := s.db.Where("name = ?", goalTitle).First(&goal).Error; err == nil {
				goalID = &goal.ID
			}
		}

		saving := &models.Saving{
			AccountID: account.ID,
			GoalID:    goalID,
			Date:      date,
			Amount:    amount,
			GoalName:  field(row, columns, "goal_name"),
			Note:      field(row, columns, "note"),
		}
		if err := s.db.Create(saving).Error; err != nil {
			continue
		}
		imported++
	}
	return imported, nil
}

// columnIndex maps header names to positions so exports with reordered
// columns still import.
func columnIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	return columns
}

func field(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseCSVDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, false
	}
	return recurrence.DateOf(parsed), true
}

func parseCSVAmount(value string) (decimal.Decimal, bool) {
	if value == "" {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(value)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, false
	}
	return amount, true
}
