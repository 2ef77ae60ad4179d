package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sarpek/flagtrack/internal/analytics"
	"github.com/sarpek/flagtrack/internal/store"
)

type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	habits    []store.Habit
	todayLogs []store.Log
	percent   int
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{store: s}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	habits    []store.Habit
	todayLogs []store.Log
	percent   int
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		habits, _ := d.store.Habits()
		logs, _ := d.store.Logs()
		todayLogs := analytics.TodaysLogs(logs, today())

		return dashboardDataMsg{
			habits:    habits,
			todayLogs: todayLogs,
			percent:   analytics.CompletionPercentage(habits, todayLogs),
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.habits = msg.habits
		d.todayLogs = msg.todayLogs
		d.percent = msg.percent
		return d, nil
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	percentPanel := d.renderPercentPanel(contentWidth)
	habitsPanel := d.renderHabitsPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, percentPanel, habitsPanel)
}

func (d dashboardModel) renderPercentPanel(w int) string {
	style := percentStyle
	if d.percent >= 100 {
		style = percentDoneStyle
	}
	display := style.Width(w - 6).Render(fmt.Sprintf("%d%%", d.percent))

	barWidth := w - 8
	if barWidth > 50 {
		barWidth = 50
	}
	bar := lipgloss.NewStyle().Align(lipgloss.Center).Width(w - 6).
		Render(renderBar(barWidth, float64(d.percent), 100))

	label := subtitleStyle.Width(w - 6).Align(lipgloss.Center).Render("completed today")

	content := lipgloss.JoinVertical(lipgloss.Center, display, bar, label)
	if d.percent >= 100 {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderHabitsPanel(w int) string {
	title := titleStyle.Render("Today's Habits")

	if len(d.habits) == 0 {
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

	for _, h := range d.habits {
		value := analytics.ValueFor(h, d.todayLogs)

		status := mutedStyle.Render("○")
		if analytics.IsComplete(h, value) {
			status = successStyle.Render("✓")
		}

		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color)).Render("●")
		bar := renderBar(14, value, h.Goal)
		progress := subtitleStyle.Render(formatProgress(h, value))

		row := fmt.Sprintf("  %s %s %s %-18s %s  %s", status, colorDot, h.Icon, h.Name, bar, progress)
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  2: check in  3: analytics"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
