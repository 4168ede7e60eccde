package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "dailytrack/internal/errors"
	"dailytrack/internal/models"
	"dailytrack/internal/pagination"
	"dailytrack/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for recording a transaction.
type CreateTransactionRequest struct {
	AccountID *uint           `json:"account_id"`
	Date      string          `json:"date" binding:"required,iso_date"`
	Type      string          `json:"type" binding:"required,transaction_type"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Category  string          `json:"category" binding:"max=100"`
	Note      string          `json:"note" binding:"max=255"`
}

// UpdateTransactionRequest represents the request payload for editing a transaction.
type UpdateTransactionRequest struct {
	Date     *string          `json:"date" binding:"omitempty,iso_date"`
	Type     *string          `json:"type" binding:"omitempty,transaction_type"`
	Amount   *decimal.Decimal `json:"amount"`
	Category *string          `json:"category" binding:"omitempty,max=100"`
	Note     *string          `json:"note" binding:"omitempty,max=255"`
}

// ListTransactionsRequest holds the query parameters for listing transactions.
type ListTransactionsRequest struct {
	pagination.PageRequest
	AccountID *uint   `form:"account_id"`
	From      *string `form:"from" binding:"omitempty,iso_date"`
	To        *string `form:"to" binding:"omitempty,iso_date"`
	Type      *string `form:"type" binding:"omitempty,transaction_type"`
	Query     string  `form:"q"`
}

// CreateTransaction records a new income or expense entry.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(
		req.AccountID,
		date,
		models.TransactionType(req.Type),
		req.Amount,
		req.Category,
		req.Note,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions lists transactions with optional filters and pagination.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var req ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	from, err := parseOptionalDate(req.From)
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := services.TransactionFilter{
		AccountID: req.AccountID,
		FromDate:  from,
		ToDate:    to,
		Query:     req.Query,
	}
	if req.Type != nil {
		transactionType := models.TransactionType(*req.Type)
		filter.Type = &transactionType
	}

	result, err := h.transactionService.GetTransactions(req.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID returns one transaction.
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction applies partial updates to a transaction.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fields := services.TransactionUpdateFields{
		Date:     date,
		Amount:   req.Amount,
		Category: req.Category,
		Note:     req.Note,
	}
	if req.Type != nil {
		transactionType := models.TransactionType(*req.Type)
		fields.Type = &transactionType
	}

	transaction, err := h.transactionService.UpdateTransaction(transactionID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction removes a transaction.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}
