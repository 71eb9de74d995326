package model

// SessionLog records one full countdown to zero. Entries are immutable once
// appended and are kept newest first.
type SessionLog struct {
	ID         string `json:"id"`
	TimerLabel string `json:"timerLabel"`
	Mode       string `json:"mode"`
	// Duration is the timer's initial duration in seconds. A session is
	// credited in full regardless of pauses; only a countdown that reaches
	// zero is logged at all.
	Duration int `json:"durationSeconds"`
	// Timestamp is the completion instant in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}
