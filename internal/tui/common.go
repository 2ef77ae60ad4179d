package tui

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/sarpek/flagtrack/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewCheckin
	viewAnalytics
	viewSettings
)

var viewNames = []string{"Dashboard", "Check-in", "Analytics", "Settings"}

// --- Messages ---

type habitsChangedMsg struct{}

type logSavedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type insightMsg struct {
	seq     int
	content string
	err     error
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func today() string {
	return time.Now().Format("2006-01-02")
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatProgress(h store.Habit, value float64) string {
	if h.Type == store.TypeBoolean {
		if value >= h.Goal {
			return "done"
		}
		return "not yet"
	}
	return fmt.Sprintf("%s/%s %s", formatValue(value), formatValue(h.Goal), h.Unit)
}

// renderBar draws a fixed-width progress bar filled in proportion to
// value/goal.
func renderBar(width int, value, goal float64) string {
	if width < 1 {
		width = 1
	}
	frac := 0.0
	if goal > 0 {
		frac = math.Min(value/goal, 1)
	}
	filled := int(math.Round(frac * float64(width)))
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}
