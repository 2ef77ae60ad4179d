package store

// HabitType says how a habit is measured.
type HabitType string

const (
	TypeBoolean  HabitType = "boolean"
	TypeCount    HabitType = "count"
	TypeDuration HabitType = "duration"
)

type Habit struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Icon  string    `json:"icon"`
	Type  HabitType `json:"type"`
	Goal  float64   `json:"goal"`
	Unit  string    `json:"unit"`
	Color string    `json:"color"`
}

// Log is one day's recorded value for one habit. At most one log exists per
// (HabitID, Date) pair; absence means a value of 0 for that day.
type Log struct {
	HabitID string  `json:"habitId"`
	Date    string  `json:"date"` // YYYY-MM-DD
	Value   float64 `json:"value"`
}

// PresetHabits is the seed list used when nothing valid is stored yet.
var PresetHabits = []Habit{
	{ID: "1", Name: "Swimming", Icon: "🏊", Type: TypeDuration, Goal: 45, Unit: "mins", Color: "#3498DB"},
	{ID: "2", Name: "Reading", Icon: "📚", Type: TypeCount, Goal: 20, Unit: "pages", Color: "#F39C12"},
	{ID: "3", Name: "Water", Icon: "💧", Type: TypeCount, Goal: 8, Unit: "cups", Color: "#2EC4B6"},
	{ID: "4", Name: "Sleep", Icon: "😴", Type: TypeDuration, Goal: 8, Unit: "hours", Color: "#6C63FF"},
	{ID: "5", Name: "Running", Icon: "🏃", Type: TypeDuration, Goal: 30, Unit: "mins", Color: "#E74C3C"},
}

// DefaultUnit returns the unit applied when habit creation leaves it blank.
func DefaultUnit(t HabitType) string {
	switch t {
	case TypeDuration:
		return "mins"
	case TypeBoolean:
		return "done"
	default:
		return "times"
	}
}

// DefaultGoal returns the goal applied when habit creation leaves it unset.
func DefaultGoal(t HabitType) float64 {
	if t == TypeBoolean {
		return 1
	}
	return 10
}
