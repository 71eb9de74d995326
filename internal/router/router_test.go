package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Madhesh247/Zenfocus/internal/coach"
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

const testPassword = "open-sesame"

type testEnv struct {
	server http.Handler
	engine *engine.Engine
	logs   *store.SessionLogStore
}

type timerEnvelope struct {
	Timer model.Timer `json:"timer"`
}

type timersEnvelope struct {
	Timers []model.Timer `json:"timers"`
}

type sessionsEnvelope struct {
	Sessions []model.SessionLog `json:"sessions"`
}

type prefsEnvelope struct {
	Preferences model.UserPreferences `json:"preferences"`
}

func setupTestEnv(t *testing.T, password string) *testEnv {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})
	if err := db.RunMigrations(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	logs := store.NewSessionLogStore(repository.NewSessionLogRepository(database))
	logs.Load(context.Background())
	prefs := store.NewPreferenceStore(repository.NewValueRepository(database))
	prefs.Load(context.Background())

	focusEngine := engine.New(prefs, notify.Silent{}, func(entry model.SessionLog) {
		logs.Append(context.Background(), entry)
	})

	authService, err := service.NewAuthService(password, "test-secret", 24*time.Hour)
	if err != nil {
		t.Fatalf("init auth: %v", err)
	}
	gateway := coach.NewGateway("", "http://127.0.0.1:0", "gemini-2.5-flash", nil)

	server := router.New(
		authService,
		handler.NewAuthHandler(authService),
		handler.NewTimerHandler(focusEngine),
		handler.NewSessionHandler(logs),
		handler.NewSettingsHandler(prefs),
		handler.NewCoachHandler(gateway, focusEngine, logs),
		[]string{"http://localhost:5173"},
	)

	return &testEnv{server: server, engine: focusEngine, logs: logs}
}

func login(t *testing.T, env *testEnv) string {
	t.Helper()
	status, body := requestJSON(t, env.server, http.MethodPost, "/api/auth/login", "", map[string]string{
		"password": testPassword,
	})
	if status != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", status, string(body))
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("empty token")
	}
	return resp.Token
}

func TestAuthRequired(t *testing.T) {
	env := setupTestEnv(t, testPassword)

	status, _ := requestJSON(t, env.server, http.MethodGet, "/api/timers", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}

	status, _ = requestJSON(t, env.server, http.MethodPost, "/api/auth/login", "", map[string]string{
		"password": "wrong",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", status)
	}

	token := login(t, env)
	status, body := requestJSON(t, env.server, http.MethodGet, "/api/timers", token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", status, body)
	}
}

func TestAuthDisabledWithoutPassword(t *testing.T) {
	env := setupTestEnv(t, "")

	status, body := requestJSON(t, env.server, http.MethodGet, "/api/timers", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected open access without configured password, got %d: %s", status, body)
	}
}

func TestTimerLifecycle(t *testing.T) {
	env := setupTestEnv(t, testPassword)
	token := login(t, env)

	// The engine always starts with the default timer.
	status, body := requestJSON(t, env.server, http.MethodGet, "/api/timers", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list timers: %d", status)
	}
	var initial timersEnvelope
	if err := json.Unmarshal(body, &initial); err != nil {
		t.Fatalf("unmarshal timers: %v", err)
	}
	if len(initial.Timers) != 1 || initial.Timers[0].Label != "Deep Focus" {
		t.Fatalf("unexpected initial timers: %+v", initial.Timers)
	}

	status, body = requestJSON(t, env.server, http.MethodPost, "/api/timers", token, map[string]string{
		"mode": model.ModeMicro,
	})
	if status != http.StatusCreated {
		t.Fatalf("create timer: %d: %s", status, body)
	}
	var created timerEnvelope
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("unmarshal created timer: %v", err)
	}
	if created.Timer.InitialDuration != 600 || created.Timer.Label != "Micro Task" {
		t.Fatalf("unexpected created timer: %+v", created.Timer)
	}

	status, body = requestJSON(t, env.server, http.MethodPost, "/api/timers/"+created.Timer.ID+"/toggle", token, nil)
	if status != http.StatusOK {
		t.Fatalf("toggle timer: %d", status)
	}
	var toggled timerEnvelope
	if err := json.Unmarshal(body, &toggled); err != nil {
		t.Fatalf("unmarshal toggled timer: %v", err)
	}
	if !toggled.Timer.IsRunning {
		t.Fatalf("expected running after toggle: %+v", toggled.Timer)
	}

	status, body = requestJSON(t, env.server, http.MethodPost, "/api/timers/"+created.Timer.ID+"/reset", token, nil)
	if status != http.StatusOK {
		t.Fatalf("reset timer: %d", status)
	}
	var reset timerEnvelope
	if err := json.Unmarshal(body, &reset); err != nil {
		t.Fatalf("unmarshal reset timer: %v", err)
	}
	if reset.Timer.IsRunning || reset.Timer.Remaining != reset.Timer.InitialDuration {
		t.Fatalf("unexpected state after reset: %+v", reset.Timer)
	}

	status, _ = requestJSON(t, env.server, http.MethodPost, "/api/timers", token, map[string]string{
		"mode": "forever",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid mode, got %d", status)
	}
}

func TestDeleteKeepsAtLeastOneTimer(t *testing.T) {
	env := setupTestEnv(t, testPassword)
	token := login(t, env)

	second := env.engine.Create(model.ModeShortBreak, "")

	status, body := requestJSON(t, env.server, http.MethodDelete, "/api/timers/"+second.ID, token, nil)
	if status != http.StatusOK {
		t.Fatalf("delete timer: %d", status)
	}
	var afterFirst timersEnvelope
	if err := json.Unmarshal(body, &afterFirst); err != nil {
		t.Fatalf("unmarshal timers: %v", err)
	}
	if len(afterFirst.Timers) != 1 {
		t.Fatalf("expected one timer after delete, got %d", len(afterFirst.Timers))
	}

	// Deleting the survivor is a documented no-op.
	status, body = requestJSON(t, env.server, http.MethodDelete, "/api/timers/"+afterFirst.Timers[0].ID, token, nil)
	if status != http.StatusOK {
		t.Fatalf("delete last timer: %d", status)
	}
	var afterSecond timersEnvelope
	if err := json.Unmarshal(body, &afterSecond); err != nil {
		t.Fatalf("unmarshal timers: %v", err)
	}
	if len(afterSecond.Timers) != 1 {
		t.Fatalf("last timer was deleted: %d left", len(afterSecond.Timers))
	}
}

func TestCompletionFlowsIntoSessions(t *testing.T) {
	env := setupTestEnv(t, testPassword)
	token := login(t, env)

	// Shrink micro sessions so the countdown finishes in two ticks.
	status, _ := requestJSON(t, env.server, http.MethodPut, "/api/settings", token, map[string]interface{}{
		"dailyGoalMinutes": 240,
		"durations":        map[string]int{model.ModeMicro: 2},
	})
	if status != http.StatusOK {
		t.Fatalf("update settings: %d", status)
	}

	timer := env.engine.Create(model.ModeMicro, "Quick task")
	if timer.InitialDuration != 2 {
		t.Fatalf("settings not applied to new timer: %+v", timer)
	}
	env.engine.Toggle(timer.ID)
	env.engine.AdvanceOneSecond()
	env.engine.AdvanceOneSecond()

	status, body := requestJSON(t, env.server, http.MethodGet, "/api/sessions?limit=10", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list sessions: %d", status)
	}
	var sessions sessionsEnvelope
	if err := json.Unmarshal(body, &sessions); err != nil {
		t.Fatalf("unmarshal sessions: %v", err)
	}
	if len(sessions.Sessions) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions.Sessions))
	}
	entry := sessions.Sessions[0]
	if entry.Duration != 2 || entry.TimerLabel != "Quick task" || entry.Mode != model.ModeMicro {
		t.Fatalf("unexpected session entry: %+v", entry)
	}

	status, body = requestJSON(t, env.server, http.MethodGet, "/api/analytics/weekly", token, nil)
	if status != http.StatusOK {
		t.Fatalf("weekly analytics: %d", status)
	}
	var weekly struct {
		Buckets []struct {
			Label   string `json:"label"`
			Minutes int    `json:"minutes"`
		} `json:"buckets"`
	}
	if err := json.Unmarshal(body, &weekly); err != nil {
		t.Fatalf("unmarshal weekly: %v", err)
	}
	if len(weekly.Buckets) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(weekly.Buckets))
	}
}

func TestSettingsValidation(t *testing.T) {
	env := setupTestEnv(t, testPassword)
	token := login(t, env)

	status, _ := requestJSON(t, env.server, http.MethodPut, "/api/settings", token, map[string]interface{}{
		"dailyGoalMinutes": 30,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for goal below range, got %d", status)
	}

	status, _ = requestJSON(t, env.server, http.MethodPut, "/api/settings", token, map[string]interface{}{
		"dailyGoalMinutes": 240,
		"durations":        map[string]int{"centuries": 100},
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown mode, got %d", status)
	}

	status, body := requestJSON(t, env.server, http.MethodPut, "/api/settings", token, map[string]interface{}{
		"dailyGoalMinutes": 300,
		"durations":        map[string]int{model.ModePomodoro: 600},
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200 for valid settings, got %d: %s", status, body)
	}
	var prefs prefsEnvelope
	if err := json.Unmarshal(body, &prefs); err != nil {
		t.Fatalf("unmarshal preferences: %v", err)
	}
	if prefs.Preferences.DailyGoalMinutes != 300 {
		t.Errorf("goal not applied: %+v", prefs.Preferences)
	}
	if prefs.Preferences.Durations[model.ModePomodoro] != 600 {
		t.Errorf("duration override not applied: %+v", prefs.Preferences.Durations)
	}
	if prefs.Preferences.Durations[model.ModeShortBreak] != 300 {
		t.Errorf("unset mode should keep its default: %+v", prefs.Preferences.Durations)
	}
}

func TestCoachDegradesToFallback(t *testing.T) {
	env := setupTestEnv(t, testPassword)
	token := login(t, env)

	status, body := requestJSON(t, env.server, http.MethodPost, "/api/coach/ask", token, map[string]string{
		"message": "any advice?",
	})
	if status != http.StatusOK {
		t.Fatalf("coach ask: %d", status)
	}
	var resp struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal reply: %v", err)
	}
	if resp.Reply != "AI Configuration Missing: Please set your API Key." {
		t.Errorf("expected configuration fallback, got %q", resp.Reply)
	}
}

func TestExportCSV(t *testing.T) {
	env := setupTestEnv(t, testPassword)
	token := login(t, env)

	env.logs.Append(context.Background(), model.SessionLog{
		ID:         "x",
		TimerLabel: "Deep Focus",
		Mode:       model.ModePomodoro,
		Duration:   1500,
		Timestamp:  time.Now().UnixMilli(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/export", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	env.server.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("export: %d", recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("unexpected content type: %s", ct)
	}
	if cd := recorder.Header().Get("Content-Disposition"); !strings.Contains(cd, "zenfocus_data.csv") {
		t.Errorf("unexpected disposition: %s", cd)
	}
	lines := strings.Split(strings.TrimSpace(recorder.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Date,Time,Mode") {
		t.Errorf("unexpected header: %s", lines[0])
	}
}

func TestCORSPreflight(t *testing.T) {
	env := setupTestEnv(t, testPassword)

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	recorder := httptest.NewRecorder()

	env.server.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", recorder.Code)
	}
	if recorder.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("unexpected allow-origin header: %s", recorder.Header().Get("Access-Control-Allow-Origin"))
	}
}

func requestJSON(
	t *testing.T,
	server http.Handler,
	method, path, token string,
	body interface{},
) (int, []byte) {
	t.Helper()

	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		payload = raw
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder.Code, recorder.Body.Bytes()
}
