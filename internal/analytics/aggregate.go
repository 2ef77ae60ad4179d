// Package analytics derives presentation data from the habit and log
// collections. Every function here is a pure function of its inputs and is
// recomputed in full on each call; nothing is cached or persisted.
package analytics

import (
	"math"

	"github.com/sarpek/flagtrack/internal/store"
)

// TodaysLogs filters logs down to those recorded on the given calendar date.
func TodaysLogs(logs []store.Log, today string) []store.Log {
	var out []store.Log
	for _, l := range logs {
		if l.Date == today {
			out = append(out, l)
		}
	}
	return out
}

// ValueFor returns the habit's logged value among todayLogs, or 0 when no
// log exists for it.
func ValueFor(h store.Habit, todayLogs []store.Log) float64 {
	for _, l := range todayLogs {
		if l.HabitID == h.ID {
			return l.Value
		}
	}
	return 0
}

// IsComplete reports whether value meets the habit's goal.
func IsComplete(h store.Habit, value float64) bool {
	return value >= h.Goal
}

// CompletionPercentage computes today's overall completion as a rounded
// 0-100 percentage. A complete habit contributes 1.0; a non-boolean habit
// with partial progress contributes min(value/goal, 1); boolean habits
// contribute nothing until complete. No habits yields 0.
func CompletionPercentage(habits []store.Habit, todayLogs []store.Log) int {
	if len(habits) == 0 {
		return 0
	}

	var completed float64
	for _, h := range habits {
		v := ValueFor(h, todayLogs)
		switch {
		case IsComplete(h, v):
			completed++
		case v > 0 && h.Type != store.TypeBoolean:
			completed += math.Min(v/h.Goal, 1)
		}
	}

	return int(math.Round(completed / float64(len(habits)) * 100))
}
