package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Madhesh247/Zenfocus/internal/handler"
	"github.com/Madhesh247/Zenfocus/internal/middleware"
	"github.com/Madhesh247/Zenfocus/internal/service"
)

func New(
	authService *service.AuthService,
	authHandler *handler.AuthHandler,
	timerHandler *handler.TimerHandler,
	sessionHandler *handler.SessionHandler,
	settingsHandler *handler.SettingsHandler,
	coachHandler *handler.CoachHandler,
	corsOrigins []string,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(authService))

	timers := protected.Group("/timers")
	timers.GET("", timerHandler.List)
	timers.POST("", timerHandler.Create)
	timers.DELETE("/:id", timerHandler.Delete)
	timers.POST("/:id/toggle", timerHandler.Toggle)
	timers.POST("/:id/reset", timerHandler.Reset)
	timers.PUT("/:id/label", timerHandler.Rename)

	sessions := protected.Group("/sessions")
	sessions.GET("", sessionHandler.List)
	sessions.GET("/export", sessionHandler.Export)

	stats := protected.Group("/analytics")
	stats.GET("/weekly", sessionHandler.Weekly)
	stats.GET("/summary", sessionHandler.Summary)

	settings := protected.Group("/settings")
	settings.GET("", settingsHandler.Get)
	settings.PUT("", settingsHandler.Update)

	coachGroup := protected.Group("/coach")
	coachGroup.POST("/ask", coachHandler.Ask)
	coachGroup.POST("/day-review", coachHandler.DayReview)

	return engine
}
