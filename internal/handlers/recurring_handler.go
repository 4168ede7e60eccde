package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "dailytrack/internal/errors"
	"dailytrack/internal/models"
	"dailytrack/internal/recurrence"
	"dailytrack/internal/services"
)

// RecurringHandler handles recurring templates and the generator endpoints.
type RecurringHandler struct {
	recurringService services.RecurringServicer
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringService services.RecurringServicer) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// CreateRecurringTransactionRequest represents the request payload for a
// recurring transaction template.
type CreateRecurringTransactionRequest struct {
	AccountID *uint           `json:"account_id"`
	Type      string          `json:"type" binding:"required,transaction_type"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Category  string          `json:"category" binding:"max=100"`
	Note      string          `json:"note" binding:"max=255"`
	Frequency string          `json:"frequency" binding:"required,frequency"`
	NextDate  string          `json:"next_date" binding:"required,iso_date"`
}

// UpdateRecurringTransactionRequest represents the request payload for editing
// a recurring transaction template.
type UpdateRecurringTransactionRequest struct {
	Type      *string          `json:"type" binding:"omitempty,transaction_type"`
	Amount    *decimal.Decimal `json:"amount"`
	Category  *string          `json:"category" binding:"omitempty,max=100"`
	Note      *string          `json:"note" binding:"omitempty,max=255"`
	Frequency *string          `json:"frequency" binding:"omitempty,frequency"`
	NextDate  *string          `json:"next_date" binding:"omitempty,iso_date"`
	IsActive  *bool            `json:"is_active"`
}

// CreateRecurringTaskRequest represents the request payload for a recurring
// task template.
type CreateRecurringTaskRequest struct {
	Category    string `json:"category" binding:"required,task_category"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=500"`
	Frequency   string `json:"frequency" binding:"required,frequency"`
	NextDate    string `json:"next_date" binding:"required,iso_date"`
}

// UpdateRecurringTaskRequest represents the request payload for editing a
// recurring task template.
type UpdateRecurringTaskRequest struct {
	Category    *string `json:"category" binding:"omitempty,task_category"`
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Frequency   *string `json:"frequency" binding:"omitempty,frequency"`
	NextDate    *string `json:"next_date" binding:"omitempty,iso_date"`
	IsActive    *bool   `json:"is_active"`
}

// CreateTransactionTemplate creates a recurring transaction template.
func (h *RecurringHandler) CreateTransactionTemplate(c *gin.Context) {
	var req CreateRecurringTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	nextDate, err := parseDate(req.NextDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	template, err := h.recurringService.CreateTransactionTemplate(
		req.AccountID,
		models.TransactionType(req.Type),
		req.Amount,
		req.Category,
		req.Note,
		recurrence.Frequency(req.Frequency),
		nextDate,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"template": template})
}

// GetTransactionTemplates lists recurring transaction templates, optionally
// filtered by account.
func (h *RecurringHandler) GetTransactionTemplates(c *gin.Context) {
	accountID, err := optionalUintQuery(c, "account_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	templates, err := h.recurringService.GetTransactionTemplates(accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// UpdateTransactionTemplate applies partial updates to a recurring transaction
// template.
func (h *RecurringHandler) UpdateTransactionTemplate(c *gin.Context) {
	templateID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRecurringTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	nextDate, err := parseOptionalDate(req.NextDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fields := services.RecurringTransactionUpdateFields{
		Amount:   req.Amount,
		Category: req.Category,
		Note:     req.Note,
		NextDate: nextDate,
		IsActive: req.IsActive,
	}
	if req.Type != nil {
		transactionType := models.TransactionType(*req.Type)
		fields.Type = &transactionType
	}
	if req.Frequency != nil {
		frequency := recurrence.Frequency(*req.Frequency)
		fields.Frequency = &frequency
	}

	template, err := h.recurringService.UpdateTransactionTemplate(templateID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": template})
}

// DeleteTransactionTemplate removes a recurring transaction template.
func (h *RecurringHandler) DeleteTransactionTemplate(c *gin.Context) {
	templateID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.recurringService.DeleteTransactionTemplate(templateID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}

// GenerateTransactions materializes all due transaction templates and reports
// how many records were created.
func (h *RecurringHandler) GenerateTransactions(c *gin.Context) {
	today, err := todayParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	generated, err := h.recurringService.GenerateTransactions(today)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"generated": generated, "message": "Recurring transactions generated"})
}

// CreateTaskTemplate creates a recurring task template.
func (h *RecurringHandler) CreateTaskTemplate(c *gin.Context) {
	var req CreateRecurringTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	nextDate, err := parseDate(req.NextDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	template, err := h.recurringService.CreateTaskTemplate(
		models.TaskCategory(req.Category),
		req.Title,
		req.Description,
		recurrence.Frequency(req.Frequency),
		nextDate,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"template": template})
}

// GetTaskTemplates lists recurring task templates.
func (h *RecurringHandler) GetTaskTemplates(c *gin.Context) {
	templates, err := h.recurringService.GetTaskTemplates()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// UpdateTaskTemplate applies partial updates to a recurring task template.
func (h *RecurringHandler) UpdateTaskTemplate(c *gin.Context) {
	templateID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRecurringTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	nextDate, err := parseOptionalDate(req.NextDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fields := services.RecurringTaskUpdateFields{
		Title:       req.Title,
		Description: req.Description,
		NextDate:    nextDate,
		IsActive:    req.IsActive,
	}
	if req.Category != nil {
		category := models.TaskCategory(*req.Category)
		fields.Category = &category
	}
	if req.Frequency != nil {
		frequency := recurrence.Frequency(*req.Frequency)
		fields.Frequency = &frequency
	}

	template, err := h.recurringService.UpdateTaskTemplate(templateID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": template})
}

// DeleteTaskTemplate removes a recurring task template.
func (h *RecurringHandler) DeleteTaskTemplate(c *gin.Context) {
	templateID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.recurringService.DeleteTaskTemplate(templateID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}

// GenerateTasks materializes all due task templates and reports how many
// records were created.
func (h *RecurringHandler) GenerateTasks(c *gin.Context) {
	today, err := todayParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	generated, err := h.recurringService.GenerateTasks(today)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"generated": generated, "message": "Recurring tasks generated"})
}
