package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Madhesh247/Zenfocus/internal/coach"
	"github.com/Madhesh247/Zenfocus/internal/engine"
	"github.com/Madhesh247/Zenfocus/internal/store"
)

type CoachHandler struct {
	gateway *coach.Gateway
	engine  *engine.Engine
	logs    *store.SessionLogStore
}

type askRequest struct {
	Message string `json:"message"`
}

func NewCoachHandler(gateway *coach.Gateway, e *engine.Engine, logs *store.SessionLogStore) *CoachHandler {
	return &CoachHandler{gateway: gateway, engine: e, logs: logs}
}

// Ask forwards one user message to the coaching provider. The gateway never
// fails; a degraded provider comes back as a fallback reply string.
func (h *CoachHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	reply := h.gateway.Ask(c.Request.Context(), h.engine.AnyRunning(), h.logs.Recent(5), req.Message)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func (h *CoachHandler) DayReview(c *gin.Context) {
	reply := h.gateway.AnalyzeDay(c.Request.Context(), h.logs.All())
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
