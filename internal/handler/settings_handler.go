package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Madhesh247/Zenfocus/internal/errors"
	"github.com/Madhesh247/Zenfocus/internal/model"
	"github.com/Madhesh247/Zenfocus/internal/store"
)

// Daily-goal bounds enforced at this surface, not by the store.
const (
	minDailyGoalMinutes = 60
	maxDailyGoalMinutes = 720
)

type SettingsHandler struct {
	prefs *store.PreferenceStore
}

type updateSettingsRequest struct {
	DailyGoalMinutes int            `json:"dailyGoalMinutes"`
	Durations        map[string]int `json:"durations"`
}

func NewSettingsHandler(prefs *store.PreferenceStore) *SettingsHandler {
	return &SettingsHandler{prefs: prefs}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"preferences": h.prefs.Get()})
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	if req.DailyGoalMinutes < minDailyGoalMinutes || req.DailyGoalMinutes > maxDailyGoalMinutes {
		writeError(c, apperrors.BadRequest("invalid_daily_goal", "dailyGoalMinutes must be between 60 and 720"))
		return
	}
	for mode, seconds := range req.Durations {
		if !model.IsValidMode(mode) {
			writeError(c, apperrors.BadRequest("invalid_mode", "unknown mode: "+mode))
			return
		}
		if seconds < 0 {
			writeError(c, apperrors.BadRequest("invalid_duration", "durations must be non-negative seconds"))
			return
		}
	}

	prefs := model.UserPreferences{
		DailyGoalMinutes: req.DailyGoalMinutes,
		Durations:        req.Durations,
	}
	if err := h.prefs.Set(c.Request.Context(), prefs); err != nil {
		writeError(c, apperrors.Internal("failed to save preferences"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": h.prefs.Get()})
}
