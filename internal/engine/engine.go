package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Madhesh247/Zenfocus/internal/model"
	"github.com/Madhesh247/Zenfocus/internal/notify"
)

// PreferenceSource resolves the configured duration for a mode.
type PreferenceSource interface {
	DurationFor(mode string) int
}

const defaultTimerLabel = "Deep Focus"

// Engine owns the timer collection. All mutations and the periodic tick go
// through one mutex, so a tick can never observe a half-applied action.
// Completion events are delivered outside the lock.
type Engine struct {
	mu         sync.Mutex
	timers     []*model.Timer
	prefs      PreferenceSource
	notifier   notify.Notifier
	onComplete func(model.SessionLog)
}

// New builds an engine seeded with one default pomodoro timer. The
// collection never drops below one timer afterwards.
func New(prefs PreferenceSource, notifier notify.Notifier, onComplete func(model.SessionLog)) *Engine {
	e := &Engine{
		prefs:      prefs,
		notifier:   notifier,
		onComplete: onComplete,
	}
	e.timers = append(e.timers, e.newTimer(model.ModePomodoro, defaultTimerLabel))
	return e
}

func (e *Engine) newTimer(mode, label string) *model.Timer {
	duration := e.prefs.DurationFor(mode)
	if label == "" {
		label = model.ModeLabels[mode]
	}
	return &model.Timer{
		ID:              uuid.NewString(),
		Label:           label,
		Mode:            mode,
		InitialDuration: duration,
		Remaining:       duration,
		CreatedAt:       time.Now().UnixMilli(),
	}
}

// AdvanceOneSecond moves every running timer forward one second. A timer
// whose remaining time is at zero on its running tick completes: it stops,
// and exactly one session log is emitted for it. Because completion clears
// IsRunning, a timer cannot complete twice without a fresh zero-crossing.
func (e *Engine) AdvanceOneSecond() {
	var completed []model.Timer

	e.mu.Lock()
	for _, t := range e.timers {
		if !t.IsRunning {
			continue
		}
		if t.Remaining > 0 {
			t.Remaining--
		}
		if t.Remaining == 0 {
			t.IsRunning = false
			t.IsPaused = false
			completed = append(completed, *t)
		}
	}
	e.mu.Unlock()

	for _, t := range completed {
		entry := model.SessionLog{
			ID:         uuid.NewString(),
			TimerLabel: t.Label,
			Mode:       t.Mode,
			Duration:   t.InitialDuration,
			Timestamp:  time.Now().UnixMilli(),
		}
		if e.onComplete != nil {
			e.onComplete(entry)
		}
		if e.notifier != nil {
			e.notifier.SessionComplete(t.Label, t.InitialDuration)
		}
	}
}

// Toggle flips a timer between running and halted. Halting a started timer
// marks it paused; IsPaused is informational and never gates ticking.
// Unknown ids are ignored.
func (e *Engine) Toggle(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.find(id)
	if t == nil {
		return
	}
	if t.IsRunning {
		t.IsRunning = false
		t.IsPaused = true
	} else {
		t.IsRunning = true
		t.IsPaused = false
	}
}

// Reset returns a timer to its stopped state with the full initial duration.
// Unknown ids are ignored.
func (e *Engine) Reset(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.find(id)
	if t == nil {
		return
	}
	t.IsRunning = false
	t.IsPaused = false
	t.Remaining = t.InitialDuration
}

// Create appends a stopped timer for mode, taking its duration from
// preferences with the built-in default as fallback. An empty label gets the
// mode's display name.
func (e *Engine) Create(mode, label string) model.Timer {
	t := e.newTimer(mode, label)

	e.mu.Lock()
	e.timers = append(e.timers, t)
	e.mu.Unlock()

	return *t
}

// Delete removes a timer. Deleting the last remaining timer is rejected as a
// no-op; the collection never goes empty. Returns whether a timer was
// removed.
func (e *Engine) Delete(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.timers) <= 1 {
		return false
	}
	for i, t := range e.timers {
		if t.ID == id {
			e.timers = append(e.timers[:i], e.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Rename updates a timer's display label. Unknown ids are ignored.
func (e *Engine) Rename(id, label string) {
	if label == "" {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if t := e.find(id); t != nil {
		t.Label = label
	}
}

// Snapshot returns copies of all timers in creation order.
func (e *Engine) Snapshot() []model.Timer {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]model.Timer, 0, len(e.timers))
	for _, t := range e.timers {
		out = append(out, *t)
	}
	return out
}

// Get returns a copy of one timer.
func (e *Engine) Get(id string) (model.Timer, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if t := e.find(id); t != nil {
		return *t, true
	}
	return model.Timer{}, false
}

// AnyRunning reports whether at least one timer is counting down.
func (e *Engine) AnyRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, t := range e.timers {
		if t.IsRunning {
			return true
		}
	}
	return false
}

func (e *Engine) find(id string) *model.Timer {
	for _, t := range e.timers {
		if t.ID == id {
			return t
		}
	}
	return nil
}
