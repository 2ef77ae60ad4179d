package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/sarpek/flagtrack/internal/store"
)

// BadgeID identifies one of the fixed achievement badges.
type BadgeID string

const (
	BadgeStreak3        BadgeID = "streak_3"
	BadgeStreak7        BadgeID = "streak_7"
	BadgeVolumeDuration BadgeID = "volume_duration"
	BadgeVolumeCount    BadgeID = "volume_count"
)

const (
	volumeDurationThreshold = 120 // minutes across duration habits
	volumeCountThreshold    = 50  // occurrences across count habits
)

// Badge is a static achievement definition. Unlock state is never stored;
// it is recomputed from the current habits and logs on every evaluation.
type Badge struct {
	ID          BadgeID
	Name        string
	Description string
	Icon        string
}

// Badges is the fixed, code-defined badge set, in display order.
var Badges = []Badge{
	{ID: BadgeStreak3, Name: "Getting Started", Description: "Any habit hit its goal 3 days in a row", Icon: "🌱"},
	{ID: BadgeStreak7, Name: "Habit Master", Description: "Any habit hit its goal 7 days in a row", Icon: "🔥"},
	{ID: BadgeVolumeDuration, Name: "Endurance Athlete", Description: "120 total minutes across duration habits", Icon: "🏃"},
	{ID: BadgeVolumeCount, Name: "Well Read", Description: "50 total occurrences across count habits", Icon: "📚"},
}

// Unlocked evaluates the badge's condition against the full habit and log
// history. Evaluation is pure and stateless.
func (b Badge) Unlocked(habits []store.Habit, logs []store.Log) bool {
	switch b.ID {
	case BadgeStreak3:
		return hasStreak(habits, logs, 3)
	case BadgeStreak7:
		return hasStreak(habits, logs, 7)
	case BadgeVolumeDuration:
		return volumeTotal(habits, logs, store.TypeDuration) >= volumeDurationThreshold
	case BadgeVolumeCount:
		return volumeTotal(habits, logs, store.TypeCount) >= volumeCountThreshold
	}
	return false
}

// hasStreak reports whether any habit has met its goal on `days` consecutive
// calendar days. The scan stops at the first qualifying habit.
func hasStreak(habits []store.Habit, logs []store.Log, days int) bool {
	sorted := make([]store.Log, len(logs))
	copy(sorted, logs)
	// Zero-padded ISO dates sort lexically in chronological order.
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	for _, h := range habits {
		var satisfied []store.Log
		for _, l := range sorted {
			if l.HabitID == h.ID && l.Value >= h.Goal {
				satisfied = append(satisfied, l)
			}
		}

		streak := 0
		for i := 0; i+1 < len(satisfied); i++ {
			if dayGap(satisfied[i].Date, satisfied[i+1].Date) == 1 {
				streak++
				// N consecutive days produce N-1 qualifying pairs.
				if streak >= days-1 {
					return true
				}
			} else {
				streak = 0
			}
		}
	}
	return false
}

// dayGap returns the calendar-day distance between two ISO dates: the
// millisecond difference divided by 86_400_000, rounded to the nearest
// whole day.
func dayGap(from, to string) int {
	a, errA := time.Parse("2006-01-02", from)
	b, errB := time.Parse("2006-01-02", to)
	if errA != nil || errB != nil {
		return -1
	}
	ms := b.Sub(a).Milliseconds()
	return int(math.Round(float64(ms) / 86400000.0))
}

// volumeTotal sums log values across all habits of the given type.
// Orphaned logs (habit deleted) are never counted.
func volumeTotal(habits []store.Habit, logs []store.Log, typ store.HabitType) float64 {
	ids := make(map[string]bool)
	for _, h := range habits {
		if h.Type == typ {
			ids[h.ID] = true
		}
	}

	var total float64
	for _, l := range logs {
		if ids[l.HabitID] {
			total += l.Value
		}
	}
	return total
}
