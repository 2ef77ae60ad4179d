package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const habitsKey = "habits"

// Habits loads the habit collection. A missing row or malformed JSON falls
// back to PresetHabits; storage errors are still surfaced.
func (s *Store) Habits() ([]Habit, error) {
	raw, ok, err := s.getKV(habitsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return presetCopy(), nil
	}

	var habits []Habit
	if err := json.Unmarshal([]byte(raw), &habits); err != nil {
		return presetCopy(), nil
	}
	return habits, nil
}

// SaveHabits mirrors the full habit collection to storage.
func (s *Store) SaveHabits(habits []Habit) error {
	data, err := json.Marshal(habits)
	if err != nil {
		return fmt.Errorf("marshal habits: %w", err)
	}
	return s.setKV(habitsKey, string(data))
}

// NewHabit builds a habit from user input, applying type-based defaults.
// An empty name is invalid and yields ok=false (creation is a no-op upstream).
func NewHabit(name, icon string, typ HabitType, goal float64, unit, color string) (Habit, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Habit{}, false
	}
	if icon == "" {
		icon = "🎯"
	}
	if unit == "" {
		unit = DefaultUnit(typ)
	}
	if typ == TypeBoolean || goal <= 0 {
		goal = DefaultGoal(typ)
	}
	if color == "" {
		color = "#3498DB"
	}
	return Habit{
		ID:    uuid.NewString(),
		Name:  name,
		Icon:  icon,
		Type:  typ,
		Goal:  goal,
		Unit:  unit,
		Color: color,
	}, true
}

// AddHabit appends h to the collection and saves.
func (s *Store) AddHabit(h Habit) error {
	habits, err := s.Habits()
	if err != nil {
		return err
	}
	return s.SaveHabits(append(habits, h))
}

// DeleteHabit removes the habit with the given id. Its logs are left in
// place; they become inert once no habit resolves them.
func (s *Store) DeleteHabit(id string) error {
	habits, err := s.Habits()
	if err != nil {
		return err
	}
	kept := habits[:0]
	for _, h := range habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	return s.SaveHabits(kept)
}

func presetCopy() []Habit {
	habits := make([]Habit, len(PresetHabits))
	copy(habits, PresetHabits)
	return habits
}
