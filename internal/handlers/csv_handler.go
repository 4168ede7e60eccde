package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "dailytrack/internal/errors"
	"dailytrack/internal/services"
)

// CSVHandler handles CSV export and import of transactions and savings.
type CSVHandler struct {
	csvService     services.CSVServicer
	accountService services.AccountServicer
}

// NewCSVHandler creates a new CSVHandler.
func NewCSVHandler(csvService services.CSVServicer, accountService services.AccountServicer) *CSVHandler {
	return &CSVHandler{csvService: csvService, accountService: accountService}
}

func setCSVHeaders(c *gin.Context, prefix string) {
	filename := fmt.Sprintf("%s_%s.csv", prefix, time.Now().Format(time.DateOnly))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

// importAccount resolves the optional account_id form field to an account,
// falling back to the default account.
func (h *CSVHandler) importAccount(c *gin.Context) (*uint, error) {
	raw := c.PostForm("account_id")
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account_id must be a positive integer")
	}
	accountID := uint(parsed)
	return &accountID, nil
}

// ExportTransactions streams all transactions as CSV.
func (h *CSVHandler) ExportTransactions(c *gin.Context) {
	accountID, err := optionalUintQuery(c, "account_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	setCSVHeaders(c, "transactions")
	if err := h.csvService.ExportTransactions(accountID, c.Writer); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// ExportSavings streams all savings as CSV.
func (h *CSVHandler) ExportSavings(c *gin.Context) {
	accountID, err := optionalUintQuery(c, "account_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	setCSVHeaders(c, "savings")
	if err := h.csvService.ExportSavings(accountID, c.Writer); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// ImportTransactions ingests a transactions CSV file. Malformed rows are
// skipped and the number of imported rows is returned.
func (h *CSVHandler) ImportTransactions(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "file is required"))
		return
	}

	accountID, err := h.importAccount(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.ResolveAccount(accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}
	defer file.Close()

	imported, err := h.csvService.ImportTransactions(file, account)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": imported, "message": "Transactions imported"})
}

// ImportSavings ingests a savings CSV file. Malformed rows are skipped and
// the number of imported rows is returned.
func (h *CSVHandler) ImportSavings(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "file is required"))
		return
	}

	accountID, err := h.importAccount(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	account, err := h.accountService.ResolveAccount(accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}
	defer file.Close()

	imported, err := h.csvService.ImportSavings(file, account)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": imported, "message": "Savings imported"})
}
