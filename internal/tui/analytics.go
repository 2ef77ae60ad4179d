package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sarpek/flagtrack/internal/analytics"
	"github.com/sarpek/flagtrack/internal/store"
)

// insightRequester is the outbound boundary for AI review generation.
type insightRequester interface {
	Review(ctx context.Context, habits []store.Habit, logs []store.Log, windowStart, periodLabel string) (string, error)
}

type analyticsModel struct {
	store  *store.Store
	ai     insightRequester
	width  int
	height int

	window analytics.Window
	habits []store.Habit
	logs   []store.Log

	trend        []analytics.TrendPoint
	distribution []analytics.DurationTotal
	chart        barchart.Model

	// Insight state. insightSeq guards against a stale response from a
	// superseded request overwriting a newer one.
	insightSeq     int
	insightLoading bool
	insight        string
	insightErr     string
}

func newAnalyticsModel(s *store.Store, ai insightRequester) analyticsModel {
	return analyticsModel{
		store:  s,
		ai:     ai,
		window: analytics.Week,
		chart:  barchart.New(60, 10),
	}
}

func (a *analyticsModel) setSize(w, h int) {
	a.width = w
	a.height = h
}

type analyticsDataMsg struct {
	habits []store.Habit
	logs   []store.Log
}

func (a analyticsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		habits, _ := a.store.Habits()
		logs, _ := a.store.Logs()
		return analyticsDataMsg{habits: habits, logs: logs}
	}
}

func (a analyticsModel) update(msg tea.Msg) (analyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case analyticsDataMsg:
		a.habits = msg.habits
		a.logs = msg.logs
		a.rebuild()
		return a, nil

	case insightMsg:
		if msg.seq != a.insightSeq {
			// A newer request is outstanding or already resolved.
			return a, nil
		}
		a.insightLoading = false
		if msg.err != nil {
			a.insightErr = msg.err.Error()
			a.insight = ""
			return a, nil
		}
		a.insightErr = ""
		a.insight = msg.content
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Week):
			if a.window != analytics.Week {
				a.window = analytics.Week
				a.rebuild()
			}
			return a, nil
		case key.Matches(msg, keys.Month):
			if a.window != analytics.Month {
				a.window = analytics.Month
				a.rebuild()
			}
			return a, nil
		case key.Matches(msg, keys.Insight):
			return a.requestInsight()
		}
	}
	return a, nil
}

func (a *analyticsModel) rebuild() {
	now := time.Now()
	a.trend = analytics.CompletionTrend(a.habits, a.logs, a.window, now)
	a.distribution = analytics.DurationDistribution(a.habits, a.logs, a.window, now)
	a.buildChart()
}

func (a *analyticsModel) buildChart() {
	chartWidth := a.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10

	a.chart = barchart.New(chartWidth, chartHeight)

	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	emptyStyle := lipgloss.NewStyle().Foreground(colorSubtle)

	var bars []barchart.BarData
	for _, p := range a.trend {
		style := barStyle
		if p.Rate == 0 {
			style = emptyStyle
		}
		// Day of month as the label keeps month charts readable.
		label := p.Date[8:]
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: p.Date, Value: float64(p.Rate), Style: style},
			},
		})
	}

	a.chart.PushAll(bars)
	a.chart.Draw()
}

func (a analyticsModel) requestInsight() (analyticsModel, tea.Cmd) {
	a.insightSeq++
	a.insightLoading = true
	a.insightErr = ""

	seq := a.insightSeq
	ai := a.ai
	habits := a.habits
	logs := a.logs
	now := time.Now()
	start, _ := a.window.Range(now)
	windowStart := start.Format("2006-01-02")
	label := a.window.Label(now)

	return a, func() tea.Msg {
		content, err := ai.Review(context.Background(), habits, logs, windowStart, label)
		return insightMsg{seq: seq, content: content, err: err}
	}
}

func (a analyticsModel) view() string {
	w := a.width - 4

	weekTab := inactiveTabStyle.Render("Week")
	monthTab := inactiveTabStyle.Render("Month")
	if a.window == analytics.Week {
		weekTab = activeTabStyle.Render("Week")
	} else {
		monthTab = activeTabStyle.Render("Month")
	}
	windowTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, weekTab, monthTab)
	dateLabel := mutedStyle.Render(a.window.Label(time.Now()))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Analytics"), "  ", windowTabs, "  ", dateLabel,
	)

	badges := a.renderBadges()
	chartView := a.chart.View()
	distView := a.renderDistribution(w)
	insightView := a.renderInsight(w)

	nav := mutedStyle.Render("  w/m: window  g: insight")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", badges, "", chartView, "", distView, "", insightView, "", nav,
		),
	)
}

func (a analyticsModel) renderBadges() string {
	var items []string
	for _, b := range analytics.Badges {
		if b.Unlocked(a.habits, a.logs) {
			items = append(items, successStyle.Render(fmt.Sprintf("%s %s", b.Icon, b.Name)))
		} else {
			items = append(items, mutedStyle.Render(fmt.Sprintf("%s %s", b.Icon, b.Name)))
		}
	}
	return "  " + strings.Join(items, "   ")
}

func (a analyticsModel) renderDistribution(w int) string {
	title := titleStyle.Render("Time Spent")

	if len(a.distribution) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("  No duration habits logged in this window"),
		)
	}

	var rows []string
	rows = append(rows, title)
	for _, d := range a.distribution {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(d.Color)).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-18s %s mins", colorDot, d.Name, formatValue(d.Minutes)))
	}
	return strings.Join(rows, "\n")
}

func (a analyticsModel) renderInsight(w int) string {
	title := titleStyle.Render("AI Review")

	switch {
	case a.insightLoading:
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			warningStyle.Render("  Generating review..."),
		)
	case a.insightErr != "":
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			errorStyle.Render("  "+a.insightErr),
		)
	case a.insight != "":
		rendered := a.insight
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(w-6)); err == nil {
			if out, err := r.Render(a.insight); err == nil {
				rendered = out
			}
		}
		return lipgloss.JoinVertical(lipgloss.Left, title, rendered)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		mutedStyle.Render("  Press g to generate a review for this window"),
	)
}
