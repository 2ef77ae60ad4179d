package analytics

import (
	"math"
	"time"

	"github.com/sarpek/flagtrack/internal/store"
)

// TrendPoint is one day of the completion-rate series.
type TrendPoint struct {
	Date string
	Rate int // 0-100
}

// DurationTotal is one duration habit's summed minutes over a window.
type DurationTotal struct {
	Name    string
	Minutes float64
	Color   string
}

// CompletionTrend produces one point per calendar day of the window: the
// share of habits whose same-day log met its goal, rounded to a 0-100
// percentage. The series always spans the whole window regardless of how
// many logs exist; with no habits every rate is 0.
func CompletionTrend(habits []store.Habit, logs []store.Log, w Window, today time.Time) []TrendPoint {
	days := w.Days(today)
	points := make([]TrendPoint, 0, len(days))

	for _, day := range days {
		completed := 0
		for _, h := range habits {
			for _, l := range logs {
				if l.HabitID == h.ID && l.Date == day && l.Value >= h.Goal {
					completed++
					break
				}
			}
		}

		rate := 0
		if len(habits) > 0 {
			rate = int(math.Round(float64(completed) / float64(len(habits)) * 100))
		}
		points = append(points, TrendPoint{Date: day, Rate: rate})
	}
	return points
}

// DurationDistribution sums each duration habit's log values over the
// window, inclusive of both bounds. Habits with a zero total are omitted.
// The bounds comparison is lexical, which the fixed-width date format makes
// chronological.
func DurationDistribution(habits []store.Habit, logs []store.Log, w Window, today time.Time) []DurationTotal {
	start, end := w.Range(today)
	startStr, endStr := start.Format(dateLayout), end.Format(dateLayout)

	var out []DurationTotal
	for _, h := range habits {
		if h.Type != store.TypeDuration {
			continue
		}
		var total float64
		for _, l := range logs {
			if l.HabitID == h.ID && l.Date >= startStr && l.Date <= endStr {
				total += l.Value
			}
		}
		if total > 0 {
			out = append(out, DurationTotal{Name: h.Name, Minutes: total, Color: h.Color})
		}
	}
	return out
}
