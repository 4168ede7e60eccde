package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "dailytrack/internal/errors"
	"dailytrack/internal/pagination"
	"dailytrack/internal/services"
)

// SavingHandler handles savings and savings-goal requests.
type SavingHandler struct {
	savingService services.SavingServicer
}

// NewSavingHandler creates a new SavingHandler.
func NewSavingHandler(savingService services.SavingServicer) *SavingHandler {
	return &SavingHandler{savingService: savingService}
}

// CreateSavingRequest represents the request payload for recording a saving.
type CreateSavingRequest struct {
	AccountID *uint           `json:"account_id"`
	GoalID    *uint           `json:"goal_id"`
	Date      string          `json:"date" binding:"required,iso_date"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	GoalName  string          `json:"goal_name" binding:"max=100"`
	Note      string          `json:"note" binding:"max=255"`
}

// UpdateSavingRequest represents the request payload for editing a saving.
type UpdateSavingRequest struct {
	Date     *string          `json:"date" binding:"omitempty,iso_date"`
	Amount   *decimal.Decimal `json:"amount"`
	GoalID   *uint            `json:"goal_id"`
	GoalName *string          `json:"goal_name" binding:"omitempty,max=100"`
	Note     *string          `json:"note" binding:"omitempty,max=255"`
}

// ListSavingsRequest holds the query parameters for listing savings.
type ListSavingsRequest struct {
	pagination.PageRequest
	AccountID *uint   `form:"account_id"`
	GoalID    *uint   `form:"goal_id"`
	From      *string `form:"from" binding:"omitempty,iso_date"`
	To        *string `form:"to" binding:"omitempty,iso_date"`
	Query     string  `form:"q"`
}

// CreateGoalRequest represents the request payload for creating a savings goal.
type CreateGoalRequest struct {
	Name         string          `json:"name" binding:"required,max=100"`
	TargetAmount decimal.Decimal `json:"target_amount" binding:"required"`
	Description  string          `json:"description" binding:"max=255"`
}

// UpdateGoalRequest represents the request payload for editing a savings goal.
type UpdateGoalRequest struct {
	Name         *string          `json:"name" binding:"omitempty,max=100"`
	TargetAmount *decimal.Decimal `json:"target_amount"`
	Description  *string          `json:"description" binding:"omitempty,max=255"`
}

// CreateSaving records a new saving entry.
func (h *SavingHandler) CreateSaving(c *gin.Context) {
	var req CreateSavingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	saving, err := h.savingService.CreateSaving(req.AccountID, req.GoalID, date, req.Amount, req.GoalName, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"saving": saving})
}

// GetSavings lists savings with optional filters and pagination.
func (h *SavingHandler) GetSavings(c *gin.Context) {
	var req ListSavingsRequest
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

	filter := services.SavingFilter{
		AccountID: req.AccountID,
		GoalID:    req.GoalID,
		FromDate:  from,
		ToDate:    to,
		Query:     req.Query,
	}

	result, err := h.savingService.GetSavings(req.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateSaving applies partial updates to a saving.
func (h *SavingHandler) UpdateSaving(c *gin.Context) {
	savingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSavingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	saving, err := h.savingService.UpdateSaving(savingID, services.SavingUpdateFields{
		Date:     date,
		Amount:   req.Amount,
		GoalID:   req.GoalID,
		GoalName: req.GoalName,
		Note:     req.Note,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saving": saving})
}

// DeleteSaving removes a saving.
func (h *SavingHandler) DeleteSaving(c *gin.Context) {
	savingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.savingService.DeleteSaving(savingID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Saving deleted"})
}

// CreateGoal creates a new savings goal.
func (h *SavingHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.savingService.CreateGoal(req.Name, req.TargetAmount, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoals lists all goals with their progress.
func (h *SavingHandler) GetGoals(c *gin.Context) {
	goals, err := h.savingService.GetGoals()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// GetGoalByID returns one goal with its progress.
func (h *SavingHandler) GetGoalByID(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.savingService.GetGoalByID(goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// UpdateGoal applies partial updates to a savings goal.
func (h *SavingHandler) UpdateGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.savingService.UpdateGoal(goalID, services.GoalUpdateFields{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Description:  req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal removes a savings goal, detaching its savings.
func (h *SavingHandler) DeleteGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.savingService.DeleteGoal(goalID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted"})
}
