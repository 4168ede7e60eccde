package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "dailytrack/internal/errors"
	"dailytrack/internal/services"
)

// PreferencesHandler handles the single preferences row.
type PreferencesHandler struct {
	preferencesService services.PreferencesServicer
}

// NewPreferencesHandler creates a new PreferencesHandler.
func NewPreferencesHandler(preferencesService services.PreferencesServicer) *PreferencesHandler {
	return &PreferencesHandler{preferencesService: preferencesService}
}

// UpdatePreferencesRequest represents the request payload for editing
// preferences.
type UpdatePreferencesRequest struct {
	AcademicFocus         *string `json:"academic_focus" binding:"omitempty,max=200"`
	HealthFocus           *string `json:"health_focus" binding:"omitempty,max=200"`
	DailyWaterGoalGlasses *int    `json:"daily_water_goal_glasses" binding:"omitempty,gt=0"`
}

// GetPreferences returns the current preferences.
func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	preferences, err := h.preferencesService.Get()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": preferences})
}

// UpdatePreferences applies partial updates to the preferences row.
func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	preferences, err := h.preferencesService.Update(services.PreferencesUpdateFields{
		AcademicFocus:         req.AcademicFocus,
		HealthFocus:           req.HealthFocus,
		DailyWaterGoalGlasses: req.DailyWaterGoalGlasses,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": preferences})
}
