package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "dailytrack/internal/errors"
	"dailytrack/internal/models"
	"dailytrack/internal/services"
)

// TaskHandler handles daily-task requests.
type TaskHandler struct {
	taskService services.TaskServicer
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService services.TaskServicer) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents the request payload for creating a daily task.
type CreateTaskRequest struct {
	Date        string `json:"date" binding:"required,iso_date"`
	Category    string `json:"category" binding:"required,task_category"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateTaskRequest represents the request payload for editing a daily task.
type UpdateTaskRequest struct {
	Date        *string `json:"date" binding:"omitempty,iso_date"`
	Category    *string `json:"category" binding:"omitempty,task_category"`
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsCompleted *bool   `json:"is_completed"`
}

// CreateTask creates a task for a specific day.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	task, err := h.taskService.CreateTask(date, models.TaskCategory(req.Category), req.Title, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// GetTasks lists the tasks for one day. The day defaults to today and can be
// overridden with the "date" query parameter.
func (h *TaskHandler) GetTasks(c *gin.Context) {
	date, err := todayParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if raw := c.Query("date"); raw != "" {
		date, err = parseDate(raw)
		if err != nil {
			respondWithError(c, err)
			return
		}
	}

	tasks, err := h.taskService.GetTasksByDate(date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// UpdateTask applies partial updates to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fields := services.TaskUpdateFields{
		Date:        date,
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
	}
	if req.Category != nil {
		category := models.TaskCategory(*req.Category)
		fields.Category = &category
	}

	task, err := h.taskService.UpdateTask(taskID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// ToggleTask flips the completion state of a task.
func (h *TaskHandler) ToggleTask(c *gin.Context) {
	taskID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	task, err := h.taskService.ToggleTask(taskID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// SuggestTasks creates one suggested task per category missing for today.
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	today, err := todayParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tasks, err := h.taskService.SuggestTasks(today)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tasks": tasks})
}
