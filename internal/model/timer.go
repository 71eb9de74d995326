package model

const (
	ModePomodoro   = "pomodoro"
	ModeShortBreak = "short_break"
	ModeLongBreak  = "long_break"
	ModeDeepWork   = "deep_work"
	ModeFlow       = "flow"
	ModeMicro      = "micro"
)

// DefaultDurations holds the built-in duration per mode, in seconds. Flow
// sessions are open-ended, so their preset is zero.
var DefaultDurations = map[string]int{
	ModePomodoro:   25 * 60,
	ModeShortBreak: 5 * 60,
	ModeLongBreak:  15 * 60,
	ModeDeepWork:   90 * 60,
	ModeFlow:       0,
	ModeMicro:      10 * 60,
}

var ModeLabels = map[string]string{
	ModePomodoro:   "Pomodoro",
	ModeShortBreak: "Short Break",
	ModeLongBreak:  "Long Break",
	ModeDeepWork:   "Deep Work",
	ModeFlow:       "Flow Mode",
	ModeMicro:      "Micro Task",
}

func IsValidMode(mode string) bool {
	_, ok := DefaultDurations[mode]
	return ok
}

// Timer is one countdown instance. Timers live only in memory; the engine
// owns the collection exclusively and hands out copies.
type Timer struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	Mode            string `json:"mode"`
	InitialDuration int    `json:"initialDurationSeconds"`
	Remaining       int    `json:"remainingSeconds"`
	IsRunning       bool   `json:"isRunning"`
	IsPaused        bool   `json:"isPaused"`
	CreatedAt       int64  `json:"createdAt"`
}
