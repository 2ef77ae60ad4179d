package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sarpek/flagtrack/internal/analytics"
	"github.com/sarpek/flagtrack/internal/store"
)

// checkin step sizes per habit type
const (
	countStep    = 1
	durationStep = 5
)

type checkinModel struct {
	store  *store.Store
	width  int
	height int

	habits    []store.Habit
	todayLogs []store.Log
	cursor    int
}

func newCheckinModel(s *store.Store) checkinModel {
	return checkinModel{store: s}
}

func (c *checkinModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type checkinDataMsg struct {
	habits    []store.Habit
	todayLogs []store.Log
}

func (c checkinModel) refresh() tea.Cmd {
	return func() tea.Msg {
		habits, _ := c.store.Habits()
		logs, _ := c.store.Logs()
		return checkinDataMsg{
			habits:    habits,
			todayLogs: analytics.TodaysLogs(logs, today()),
		}
	}
}

func (c checkinModel) update(msg tea.Msg) (checkinModel, tea.Cmd) {
	switch msg := msg.(type) {
	case checkinDataMsg:
		c.habits = msg.habits
		c.todayLogs = msg.todayLogs
		if c.cursor >= len(c.habits) {
			c.cursor = max(0, len(c.habits)-1)
		}
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, keys.Down):
			if c.cursor < len(c.habits)-1 {
				c.cursor++
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			return c.adjust(0)
		case key.Matches(msg, keys.Increment):
			return c.adjust(1)
		case key.Matches(msg, keys.Decrement):
			return c.adjust(-1)
		}
	}
	return c, nil
}

// adjust applies a check-in step to the habit under the cursor.
// Direction 0 toggles boolean habits and increments the rest.
func (c checkinModel) adjust(direction int) (checkinModel, tea.Cmd) {
	if c.cursor >= len(c.habits) {
		return c, nil
	}
	h := c.habits[c.cursor]
	value := analytics.ValueFor(h, c.todayLogs)

	var next float64
	switch h.Type {
	case store.TypeBoolean:
		if direction > 0 {
			next = 1
		} else if direction < 0 {
			next = 0
		} else if value > 0 {
			next = 0
		} else {
			next = 1
		}
	case store.TypeDuration:
		step := float64(durationStep)
		if direction == 0 {
			direction = 1
		}
		next = value + step*float64(direction)
	default:
		step := float64(countStep)
		if direction == 0 {
			direction = 1
		}
		next = value + step*float64(direction)
	}
	if next < 0 {
		next = 0
	}

	if err := c.store.UpsertLog(h.ID, today(), next); err != nil {
		return c, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}

	return c, tea.Batch(
		c.refresh(),
		func() tea.Msg { return logSavedMsg{} },
	)
}

func (c checkinModel) view() string {
	w := c.width - 4
	title := titleStyle.Render(fmt.Sprintf("Check-in — %s", today()))

	if len(c.habits) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No habits yet. Press 4 to go to Settings and create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, h := range c.habits {
		value := analytics.ValueFor(h, c.todayLogs)

		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		status := mutedStyle.Render("○")
		if analytics.IsComplete(h, value) {
			status = successStyle.Render("✓")
		}

		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color)).Render("●")
		name := style.Render(fmt.Sprintf("%s%s %-18s", cursor, h.Icon, h.Name))
		progress := subtitleStyle.Render(formatProgress(h, value))
		rows = append(rows, fmt.Sprintf("  %s %s %s %s", status, colorDot, name, progress))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle  +/-: adjust  ↑/↓: move"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
