package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sarpek/flagtrack/internal/analytics"
	"github.com/sarpek/flagtrack/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type fakeInsight struct {
	content string
	err     error
	calls   int
}

func (f *fakeInsight) Review(ctx context.Context, habits []store.Habit, logs []store.Log, windowStart, periodLabel string) (string, error) {
	f.calls++
	return f.content, f.err
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 4 {
		t.Fatalf("expected 4 view names, got %d", len(viewNames))
	}
	expected := []string{"Dashboard", "Check-in", "Analytics", "Settings"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewDashboard != 0 || viewCheckin != 1 || viewAnalytics != 2 || viewSettings != 3 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// Helper functions
// ============================================================

func TestToday(t *testing.T) {
	got := today()
	if _, err := time.Parse("2006-01-02", got); err != nil {
		t.Fatalf("today() = %q, not a valid date: %v", got, err)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{12.5, "12.5"},
		{30, "30"},
	}
	for _, tt := range tests {
		got := formatValue(tt.v)
		if got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestFormatProgress(t *testing.T) {
	boolean := store.Habit{Type: store.TypeBoolean, Goal: 1, Unit: "done"}
	if got := formatProgress(boolean, 0); got != "not yet" {
		t.Fatalf("boolean at 0 = %q, want 'not yet'", got)
	}
	if got := formatProgress(boolean, 1); got != "done" {
		t.Fatalf("boolean at 1 = %q, want 'done'", got)
	}

	count := store.Habit{Type: store.TypeCount, Goal: 20, Unit: "pages"}
	if got := formatProgress(count, 12); got != "12/20 pages" {
		t.Fatalf("count progress = %q, want '12/20 pages'", got)
	}
}

func TestRenderBar(t *testing.T) {
	empty := renderBar(10, 0, 30)
	if strings.Contains(empty, "█") {
		t.Fatal("zero value should render no filled cells")
	}

	full := renderBar(10, 30, 30)
	if strings.Contains(full, "░") {
		t.Fatal("complete value should fill the whole bar")
	}

	over := renderBar(10, 90, 30)
	if over != full {
		t.Fatal("overshoot should cap at a full bar")
	}

	half := renderBar(10, 15, 30)
	if strings.Count(half, "█") != 5 {
		t.Fatalf("half value should fill half the bar, got %q", half)
	}
}

// ============================================================
// Dashboard model
// ============================================================

func TestDashboardLoadData(t *testing.T) {
	s := newTestStore(t)
	habits := []store.Habit{
		{ID: "run", Name: "Running", Type: store.TypeDuration, Goal: 30, Unit: "mins"},
	}
	if err := s.SaveHabits(habits); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertLog("run", today(), 30); err != nil {
		t.Fatal(err)
	}

	d := newDashboardModel(s)
	msg := d.loadData()()
	data, ok := msg.(dashboardDataMsg)
	if !ok {
		t.Fatalf("expected dashboardDataMsg, got %T", msg)
	}
	if data.percent != 100 {
		t.Fatalf("percent = %d, want 100", data.percent)
	}

	d, _ = d.update(data)
	if d.percent != 100 || len(d.habits) != 1 {
		t.Fatal("dashboard did not apply loaded data")
	}
}

func TestDashboardViewRenders(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s)
	d.setSize(100, 30)

	if out := d.view(); out == "" {
		t.Fatal("dashboard view rendered empty")
	}
}

// ============================================================
// Check-in model
// ============================================================

func checkinWith(t *testing.T, habits []store.Habit) (checkinModel, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	if err := s.SaveHabits(habits); err != nil {
		t.Fatal(err)
	}
	c := newCheckinModel(s)
	c.habits = habits
	return c, s
}

func todayValue(t *testing.T, s *store.Store, habitID string) float64 {
	t.Helper()
	logs, err := s.Logs()
	if err != nil {
		t.Fatal(err)
	}
	for _, l := range logs {
		if l.HabitID == habitID && l.Date == today() {
			return l.Value
		}
	}
	return 0
}

func TestCheckinToggleBoolean(t *testing.T) {
	c, s := checkinWith(t, []store.Habit{
		{ID: "floss", Name: "Floss", Type: store.TypeBoolean, Goal: 1},
	})

	c, _ = c.adjust(0)
	if got := todayValue(t, s, "floss"); got != 1 {
		t.Fatalf("first toggle = %v, want 1", got)
	}

	// State refresh is async in the app; feed it manually.
	msg := c.refresh()()
	c, _ = c.update(msg)

	c, _ = c.adjust(0)
	if got := todayValue(t, s, "floss"); got != 0 {
		t.Fatalf("second toggle = %v, want 0", got)
	}
}

func TestCheckinCountSteps(t *testing.T) {
	c, s := checkinWith(t, []store.Habit{
		{ID: "read", Name: "Reading", Type: store.TypeCount, Goal: 20},
	})

	c, _ = c.adjust(1)
	msg := c.refresh()()
	c, _ = c.update(msg)
	c, _ = c.adjust(1)

	if got := todayValue(t, s, "read"); got != 2 {
		t.Fatalf("two increments = %v, want 2", got)
	}

	msg = c.refresh()()
	c, _ = c.update(msg)
	c, _ = c.adjust(-1)
	if got := todayValue(t, s, "read"); got != 1 {
		t.Fatalf("after decrement = %v, want 1", got)
	}
}

func TestCheckinDurationSteps(t *testing.T) {
	c, s := checkinWith(t, []store.Habit{
		{ID: "run", Name: "Running", Type: store.TypeDuration, Goal: 30},
	})

	c, _ = c.adjust(1)
	if got := todayValue(t, s, "run"); got != 5 {
		t.Fatalf("duration increment = %v, want 5", got)
	}
}

func TestCheckinClampsAtZero(t *testing.T) {
	c, s := checkinWith(t, []store.Habit{
		{ID: "read", Name: "Reading", Type: store.TypeCount, Goal: 20},
	})

	c, _ = c.adjust(-1)
	if got := todayValue(t, s, "read"); got != 0 {
		t.Fatalf("decrement below zero = %v, want 0", got)
	}
}

func TestCheckinAdjustNoHabits(t *testing.T) {
	s := newTestStore(t)
	c := newCheckinModel(s)

	// No habits — should be a no-op, not a panic
	_, cmd := c.adjust(1)
	if cmd != nil {
		t.Fatal("adjust with no habits should not produce a command")
	}
}

func TestCheckinViewRenders(t *testing.T) {
	c, _ := checkinWith(t, []store.Habit{
		{ID: "run", Name: "Running", Type: store.TypeDuration, Goal: 30, Color: "#E74C3C"},
	})
	c.setSize(100, 30)

	if out := c.view(); out == "" {
		t.Fatal("check-in view rendered empty")
	}
}

// ============================================================
// Analytics model
// ============================================================

func TestAnalyticsWindowDefault(t *testing.T) {
	s := newTestStore(t)
	a := newAnalyticsModel(s, &fakeInsight{})
	if a.window != analytics.Week {
		t.Fatal("default window should be week")
	}
}

func TestAnalyticsRebuildTrendLength(t *testing.T) {
	s := newTestStore(t)
	a := newAnalyticsModel(s, &fakeInsight{})
	a.setSize(100, 40)
	a.habits = []store.Habit{{ID: "run", Type: store.TypeDuration, Goal: 30}}
	a.rebuild()

	if len(a.trend) != 7 {
		t.Fatalf("week trend has %d points, want 7", len(a.trend))
	}

	a.window = analytics.Month
	a.rebuild()
	if len(a.trend) < 28 || len(a.trend) > 31 {
		t.Fatalf("month trend has %d points, want 28-31", len(a.trend))
	}
}

func TestAnalyticsInsightRequest(t *testing.T) {
	s := newTestStore(t)
	fake := &fakeInsight{content: "# Great week"}
	a := newAnalyticsModel(s, fake)

	a, cmd := a.requestInsight()
	if !a.insightLoading {
		t.Fatal("should be loading after request")
	}
	if cmd == nil {
		t.Fatal("request should produce a command")
	}

	msg := cmd()
	res, ok := msg.(insightMsg)
	if !ok {
		t.Fatalf("expected insightMsg, got %T", msg)
	}
	if fake.calls != 1 {
		t.Fatalf("expected 1 API call, got %d", fake.calls)
	}

	a, _ = a.update(res)
	if a.insightLoading {
		t.Fatal("loading should clear once the response lands")
	}
	if a.insight != "# Great week" {
		t.Fatalf("insight = %q", a.insight)
	}
	if a.insightErr != "" {
		t.Fatalf("unexpected error %q", a.insightErr)
	}
}

func TestAnalyticsInsightError(t *testing.T) {
	s := newTestStore(t)
	fake := &fakeInsight{err: errors.New("API key is missing")}
	a := newAnalyticsModel(s, fake)

	a, cmd := a.requestInsight()
	a, _ = a.update(cmd())

	if a.insightErr == "" {
		t.Fatal("error should surface to the view state")
	}
	if a.insight != "" {
		t.Fatal("no content should be shown on error")
	}
}

func TestAnalyticsStaleInsightDropped(t *testing.T) {
	s := newTestStore(t)
	a := newAnalyticsModel(s, &fakeInsight{})
	a.insightSeq = 2
	a.insightLoading = true
	a.insight = "current"

	// A response from request 1 arrives after request 2 was issued.
	a, _ = a.update(insightMsg{seq: 1, content: "stale"})
	if a.insight != "current" {
		t.Fatalf("stale response overwrote state: %q", a.insight)
	}
	if !a.insightLoading {
		t.Fatal("stale response should not clear loading for the newer request")
	}
}

func TestAnalyticsSecondRequestWins(t *testing.T) {
	s := newTestStore(t)
	a := newAnalyticsModel(s, &fakeInsight{content: "first"})

	a, cmd1 := a.requestInsight()
	a.ai = &fakeInsight{content: "second"}
	a, cmd2 := a.requestInsight()

	// First response arrives late; second must win.
	res2 := cmd2()
	res1 := cmd1()
	a, _ = a.update(res2)
	a, _ = a.update(res1)

	if a.insight != "second" {
		t.Fatalf("insight = %q, want the newer response", a.insight)
	}
}

func TestAnalyticsViewRenders(t *testing.T) {
	s := newTestStore(t)
	a := newAnalyticsModel(s, &fakeInsight{})
	a.setSize(100, 40)
	a.habits = []store.Habit{{ID: "run", Name: "Running", Type: store.TypeDuration, Goal: 30, Color: "#E74C3C"}}
	a.logs = []store.Log{{HabitID: "run", Date: today(), Value: 30}}
	a.rebuild()

	out := a.view()
	if out == "" {
		t.Fatal("analytics view rendered empty")
	}
	if !strings.Contains(out, "Getting Started") {
		t.Fatal("badge wall missing from view")
	}
}

// ============================================================
// Settings model
// ============================================================

func TestSettingsSubmitEmptyNameIsNoop(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)
	if err := s.SaveHabits(nil); err != nil {
		t.Fatal(err)
	}

	*m.formName = "   "
	*m.formType = string(store.TypeCount)

	m, _ = m.submitForm()

	habits, _ := s.Habits()
	if len(habits) != 0 {
		t.Fatalf("empty name should not create a habit, got %d", len(habits))
	}
}

func TestSettingsSubmitCreatesHabit(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)
	if err := s.SaveHabits(nil); err != nil {
		t.Fatal(err)
	}

	*m.formName = "Meditate"
	*m.formType = string(store.TypeDuration)
	*m.formGoal = "15"
	*m.formUnit = ""
	*m.formColor = habitColors[1]

	m, _ = m.submitForm()

	habits, _ := s.Habits()
	if len(habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(habits))
	}
	h := habits[0]
	if h.Name != "Meditate" || h.Type != store.TypeDuration || h.Goal != 15 {
		t.Fatalf("unexpected habit %+v", h)
	}
	if h.Unit != "mins" {
		t.Fatalf("blank unit should default to mins, got %q", h.Unit)
	}
}

func TestSettingsSubmitInvalidGoalDefaults(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)
	if err := s.SaveHabits(nil); err != nil {
		t.Fatal(err)
	}

	*m.formName = "Pushups"
	*m.formType = string(store.TypeCount)
	*m.formGoal = "not a number"

	m, _ = m.submitForm()

	habits, _ := s.Habits()
	if len(habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(habits))
	}
	if habits[0].Goal != 10 {
		t.Fatalf("invalid goal should default to 10, got %v", habits[0].Goal)
	}
}

func TestSettingsDeleteKeepsLogs(t *testing.T) {
	s := newTestStore(t)
	habits := []store.Habit{{ID: "run", Name: "Running", Type: store.TypeDuration, Goal: 30}}
	if err := s.SaveHabits(habits); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertLog("run", today(), 30); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteHabit("run"); err != nil {
		t.Fatal(err)
	}

	logs, _ := s.Logs()
	if len(logs) != 1 {
		t.Fatal("deleting a habit should keep its logs")
	}
}

func TestSettingsViewRenders(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)
	m.setSize(100, 30)
	m.habits, _ = s.Habits()

	out := m.view()
	if out == "" {
		t.Fatal("settings view rendered empty")
	}
	if !strings.Contains(out, "Swimming") {
		t.Fatal("preset habits missing from settings view")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, &fakeInsight{})

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, &fakeInsight{})

	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, &fakeInsight{})
	app.width = 120
	app.height = 40

	// Test all views render without panic
	views := []viewState{viewDashboard, viewCheckin, viewAnalytics, viewSettings}
	for _, v := range views {
		app.activeView = v
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, &fakeInsight{})
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, &fakeInsight{})
	// Width 0 means not yet sized
	output := app.View()
	if output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, &fakeInsight{})
	app.width = 120
	app.height = 40
	app.status = "test status"

	footer := app.renderFooter()
	if !strings.Contains(footer, "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppExportPicker(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s, &fakeInsight{})
	app.width = 120
	app.height = 40
	app.exportPicking = true

	output := app.View()
	if !strings.Contains(output, "Export Format") {
		t.Fatal("export picker should be visible")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test — just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"percent", func() string { return percentStyle.Render("test") }},
		{"percentDone", func() string { return percentDoneStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"subtitle", func() string { return subtitleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
	}

	for _, s := range styles {
		result := s.fn()
		if result == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
