// Package analytics derives chart and summary figures from session logs.
// Everything here is a pure function over its inputs.
package analytics

import (
	"time"

	"github.com/Madhesh247/Zenfocus/internal/model"
)

// DayBucket is one bar of the weekly chart.
type DayBucket struct {
	Label   string `json:"label"`
	Minutes int    `json:"minutes"`
}

// Summary holds overall statistics across a log set.
type Summary struct {
	TotalSeconds   int `json:"totalSeconds"`
	SessionCount   int `json:"sessionCount"`
	AverageSeconds int `json:"averageSeconds"`
}

// WeeklyBuckets aggregates logs into exactly seven buckets covering the six
// days before today through today inclusive, labeled by short weekday name.
// A log lands in a bucket when its timestamp falls on that local calendar
// day; each bucket's value is the floored minute total for the day.
func WeeklyBuckets(logs []model.SessionLog, today time.Time) []DayBucket {
	buckets := make([]DayBucket, 7)
	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, i-6)
		seconds := 0
		for _, entry := range logs {
			if sameDay(time.UnixMilli(entry.Timestamp).In(today.Location()), day) {
				seconds += entry.Duration
			}
		}
		buckets[i] = DayBucket{
			Label:   day.Format("Mon"),
			Minutes: seconds / 60,
		}
	}
	return buckets
}

// Summarize computes totals across all logs. The average is zero when there
// are no sessions.
func Summarize(logs []model.SessionLog) Summary {
	total := 0
	for _, entry := range logs {
		total += entry.Duration
	}

	s := Summary{
		TotalSeconds: total,
		SessionCount: len(logs),
	}
	if s.SessionCount > 0 {
		s.AverageSeconds = total / s.SessionCount
	}
	return s
}

// TodayMinutes is the floored minute total for logs on now's calendar day.
func TodayMinutes(logs []model.SessionLog, now time.Time) int {
	seconds := 0
	for _, entry := range logs {
		if sameDay(time.UnixMilli(entry.Timestamp).In(now.Location()), now) {
			seconds += entry.Duration
		}
	}
	return seconds / 60
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
