package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Madhesh247/Zenfocus/internal/analytics"
	"github.com/Madhesh247/Zenfocus/internal/export"
	"github.com/Madhesh247/Zenfocus/internal/store"
)

type SessionHandler struct {
	logs *store.SessionLogStore
}

func NewSessionHandler(logs *store.SessionLogStore) *SessionHandler {
	return &SessionHandler{logs: logs}
}

func (h *SessionHandler) List(c *gin.Context) {
	limit := 50
	if rawLimit := c.Query("limit"); rawLimit != "" {
		if parsed, err := strconv.Atoi(rawLimit); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	c.JSON(http.StatusOK, gin.H{"sessions": h.logs.Recent(limit)})
}

func (h *SessionHandler) Export(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	if err := export.WriteCSV(c.Writer, h.logs.All()); err != nil {
		// Headers are out by now; all we can do is log.
		_ = c.Error(err)
	}
}

func (h *SessionHandler) Weekly(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"buckets": analytics.WeeklyBuckets(h.logs.All(), time.Now()),
	})
}

func (h *SessionHandler) Summary(c *gin.Context) {
	logs := h.logs.All()
	c.JSON(http.StatusOK, gin.H{
		"summary":      analytics.Summarize(logs),
		"todayMinutes": analytics.TodayMinutes(logs, time.Now()),
	})
}
