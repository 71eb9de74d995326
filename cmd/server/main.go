package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Madhesh247/Zenfocus/internal/coach"
	"github.com/Madhesh247/Zenfocus/internal/config"
	"github.com/Madhesh247/Zenfocus/internal/db"
	"github.com/Madhesh247/Zenfocus/internal/engine"
	"github.com/Madhesh247/Zenfocus/internal/handler"
	"github.com/Madhesh247/Zenfocus/internal/model"
	"github.com/Madhesh247/Zenfocus/internal/notify"
	"github.com/Madhesh247/Zenfocus/internal/repository"
	"github.com/Madhesh247/Zenfocus/internal/router"
	"github.com/Madhesh247/Zenfocus/internal/service"
	"github.com/Madhesh247/Zenfocus/internal/store"
)

func main() {
	cfg := config.Load()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessionRepo := repository.NewSessionLogRepository(database)
	valueRepo := repository.NewValueRepository(database)

	logs := store.NewSessionLogStore(sessionRepo)
	logs.Load(ctx)
	prefs := store.NewPreferenceStore(valueRepo)
	prefs.Load(ctx)

	focusEngine := engine.New(prefs, notify.NewDesktop("ZenFocus"), func(entry model.SessionLog) {
		logs.Append(context.Background(), entry)
		log.Printf("session complete: %s (%s, %ds)", entry.TimerLabel, entry.Mode, entry.Duration)
	})

	scheduler := engine.NewScheduler(focusEngine, time.Second)
	scheduler.Start()
	defer scheduler.Stop()

	authService, err := service.NewAuthService(cfg.AuthPassword, cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("init auth: %v", err)
	}
	gateway := coach.NewGateway(cfg.GeminiAPIKey, cfg.GeminiBase, cfg.GeminiModel, nil)

	authHandler := handler.NewAuthHandler(authService)
	timerHandler := handler.NewTimerHandler(focusEngine)
	sessionHandler := handler.NewSessionHandler(logs)
	settingsHandler := handler.NewSettingsHandler(prefs)
	coachHandler := handler.NewCoachHandler(gateway, focusEngine, logs)

	ginEngine := router.New(
		authService,
		authHandler,
		timerHandler,
		sessionHandler,
		settingsHandler,
		coachHandler,
		cfg.CORSOrigins,
	)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: ginEngine,
	}

	go func() {
		log.Printf("zenfocus listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("run server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
