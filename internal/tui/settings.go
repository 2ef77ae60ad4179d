package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sarpek/flagtrack/internal/store"
)

var habitColors = []string{"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6", "#3498DB"}

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	habits []store.Habit
	cursor int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName  *string
	formIcon  *string
	formType  *string
	formGoal  *string
	formUnit  *string
	formColor *string
}

func newSettingsModel(s *store.Store) settingsModel {
	name, icon, typ := "", "", string(store.TypeBoolean)
	goal, unit, color := "", "", habitColors[0]
	return settingsModel{
		store:     s,
		formName:  &name,
		formIcon:  &icon,
		formType:  &typ,
		formGoal:  &goal,
		formUnit:  &unit,
		formColor: &color,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	habits []store.Habit
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		habits, _ := s.store.Habits()
		return settingsDataMsg{habits: habits}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.habits = msg.habits
		if s.cursor >= len(s.habits) {
			s.cursor = max(0, len(s.habits)-1)
		}
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, keys.Down):
			if s.cursor < len(s.habits)-1 {
				s.cursor++
			}
		case key.Matches(msg, keys.New):
			return s.showNewHabitForm()
		case key.Matches(msg, keys.Delete):
			if len(s.habits) > 0 {
				h := s.habits[s.cursor]
				s.store.DeleteHabit(h.ID)
				return s, tea.Batch(
					s.refresh(),
					func() tea.Msg { return habitsChangedMsg{} },
				)
			}
		}
	}
	return s, nil
}

func (s settingsModel) showNewHabitForm() (settingsModel, tea.Cmd) {
	*s.formName = ""
	*s.formIcon = ""
	*s.formType = string(store.TypeBoolean)
	*s.formGoal = ""
	*s.formUnit = ""
	*s.formColor = habitColors[0]

	colorOptions := make([]huh.Option[string], len(habitColors))
	for i, c := range habitColors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("● %s", c), c)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Habit Name").Value(s.formName),
			huh.NewInput().Title("Icon (blank for 🎯)").Value(s.formIcon),
			huh.NewSelect[string]().Title("Type").
				Options(
					huh.NewOption("Yes/no", string(store.TypeBoolean)),
					huh.NewOption("Count", string(store.TypeCount)),
					huh.NewOption("Duration (minutes)", string(store.TypeDuration)),
				).Value(s.formType),
			huh.NewInput().Title("Daily goal (blank for default)").Value(s.formGoal),
			huh.NewInput().Title("Unit (blank for default)").Value(s.formUnit),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(s.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s.submitForm()
	}

	return s, cmd
}

// submitForm creates the habit. An empty name makes the whole
// submission a silent no-op.
func (s settingsModel) submitForm() (settingsModel, tea.Cmd) {
	typ := store.HabitType(*s.formType)
	goal, _ := strconv.ParseFloat(strings.TrimSpace(*s.formGoal), 64)

	h, ok := store.NewHabit(*s.formName, strings.TrimSpace(*s.formIcon), typ, goal, strings.TrimSpace(*s.formUnit), *s.formColor)
	if !ok {
		return s, s.refresh()
	}

	if err := s.store.AddHabit(h); err != nil {
		return s, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}

	return s, tea.Batch(
		s.refresh(),
		func() tea.Msg { return habitsChangedMsg{} },
	)
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("New Habit")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Habits")

	if len(s.habits) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No habits. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	// Table header
	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-20s %-10s %-10s %-8s", "", "Name", "Type", "Goal", "Unit"))
	rows = append(rows, header)

	for i, h := range s.habits {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == s.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%s %s %-18s %-10s %-10s %-8s",
			cursor, colorDot, h.Icon, h.Name, h.Type, formatValue(h.Goal), h.Unit))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
