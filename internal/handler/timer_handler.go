package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Madhesh247/Zenfocus/internal/engine"
	apperrors "github.com/Madhesh247/Zenfocus/internal/errors"
	"github.com/Madhesh247/Zenfocus/internal/model"
)

type TimerHandler struct {
	engine *engine.Engine
}

type createTimerRequest struct {
	Mode  string `json:"mode"`
	Label string `json:"label"`
}

type renameTimerRequest struct {
	Label string `json:"label"`
}

func NewTimerHandler(e *engine.Engine) *TimerHandler {
	return &TimerHandler{engine: e}
}

func (h *TimerHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"timers": h.engine.Snapshot()})
}

func (h *TimerHandler) Create(c *gin.Context) {
	var req createTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}
	if !model.IsValidMode(req.Mode) {
		writeError(c, apperrors.BadRequest("invalid_mode", "mode must be one of pomodoro, short_break, long_break, deep_work, flow, micro"))
		return
	}

	timer := h.engine.Create(req.Mode, req.Label)
	c.JSON(http.StatusCreated, gin.H{"timer": timer})
}

// Delete removes a timer. Unknown ids and the last remaining timer are
// documented no-ops, so the response is the surviving collection either way.
func (h *TimerHandler) Delete(c *gin.Context) {
	h.engine.Delete(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"timers": h.engine.Snapshot()})
}

func (h *TimerHandler) Toggle(c *gin.Context) {
	id := c.Param("id")
	h.engine.Toggle(id)
	h.respondWithTimer(c, id)
}

func (h *TimerHandler) Reset(c *gin.Context) {
	id := c.Param("id")
	h.engine.Reset(id)
	h.respondWithTimer(c, id)
}

func (h *TimerHandler) Rename(c *gin.Context) {
	var req renameTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	id := c.Param("id")
	h.engine.Rename(id, req.Label)
	h.respondWithTimer(c, id)
}

func (h *TimerHandler) respondWithTimer(c *gin.Context, id string) {
	if timer, ok := h.engine.Get(id); ok {
		c.JSON(http.StatusOK, gin.H{"timer": timer})
		return
	}
	// Unknown id actions are silent no-ops; report the collection instead.
	c.JSON(http.StatusOK, gin.H{"timers": h.engine.Snapshot()})
}
