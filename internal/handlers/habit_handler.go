package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "dailytrack/internal/errors"
	"dailytrack/internal/pagination"
	"dailytrack/internal/services"
)

// HabitHandler handles learning, health and mindfulness logs plus water intake.
type HabitHandler struct {
	habitService services.HabitServicer
}

// NewHabitHandler creates a new HabitHandler.
func NewHabitHandler(habitService services.HabitServicer) *HabitHandler {
	return &HabitHandler{habitService: habitService}
}

// CreateLearningLogRequest represents the request payload for a learning log.
type CreateLearningLogRequest struct {
	Date            string `json:"date" binding:"required,iso_date"`
	Topic           string `json:"topic" binding:"required,max=200"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0"`
	KeyTakeaways    string `json:"key_takeaways" binding:"max=1000"`
	SourceURL       string `json:"source_url" binding:"omitempty,max=500"`
}

// CreateHealthLogRequest represents the request payload for a health log.
type CreateHealthLogRequest struct {
	Date           string `json:"date" binding:"required,iso_date"`
	Activity       string `json:"activity" binding:"required,max=200"`
	DurationOrSets string `json:"duration_or_sets" binding:"max=100"`
	Note           string `json:"note" binding:"max=500"`
}

// CreateMindfulnessLogRequest represents the request payload for a
// mindfulness log.
type CreateMindfulnessLogRequest struct {
	Date        string `json:"date" binding:"required,iso_date"`
	Achievement string `json:"achievement" binding:"max=500"`
	Challenge   string `json:"challenge" binding:"max=500"`
	Solution    string `json:"solution" binding:"max=500"`
	Gratitude   string `json:"gratitude" binding:"max=500"`
}

// CreateLearningLog records a learning session.
func (h *HabitHandler) CreateLearningLog(c *gin.Context) {
	var req CreateLearningLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	log, err := h.habitService.AddLearningLog(date, req.Topic, req.DurationMinutes, req.KeyTakeaways, req.SourceURL)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"log": log})
}

// GetLearningLogs lists learning logs, newest first.
func (h *HabitHandler) GetLearningLogs(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.habitService.GetLearningLogs(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateHealthLog records a health activity.
func (h *HabitHandler) CreateHealthLog(c *gin.Context) {
	var req CreateHealthLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	log, err := h.habitService.AddHealthLog(date, req.Activity, req.DurationOrSets, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"log": log})
}

// GetHealthLogs lists health logs, newest first.
func (h *HabitHandler) GetHealthLogs(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.habitService.GetHealthLogs(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateMindfulnessLog records a daily reflection.
func (h *HabitHandler) CreateMindfulnessLog(c *gin.Context) {
	var req CreateMindfulnessLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	log, err := h.habitService.AddMindfulnessLog(date, req.Achievement, req.Challenge, req.Solution, req.Gratitude)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"log": log})
}

// GetMindfulnessLogs lists mindfulness logs, newest first.
func (h *HabitHandler) GetMindfulnessLogs(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.habitService.GetMindfulnessLogs(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// WaterToday returns today's water intake without creating a row.
func (h *HabitHandler) WaterToday(c *gin.Context) {
	today, err := todayParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	water, err := h.habitService.WaterToday(today)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"water": water})
}

// AddWaterGlass increments today's water intake by one glass.
func (h *HabitHandler) AddWaterGlass(c *gin.Context) {
	today, err := todayParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	water, err := h.habitService.AddWaterGlass(today)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"water": water})
}
