package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sarpek/flagtrack/internal/store"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	Count      int       `json:"count"`
	Logs       []jsonLog `json:"logs"`
}

type jsonLog struct {
	Date     string  `json:"date"`
	Habit    string  `json:"habit"`
	HabitID  string  `json:"habit_id"`
	Value    float64 `json:"value"`
	Goal     float64 `json:"goal,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Complete bool    `json:"complete"`
}

func ToJSON(logs []store.Log, habits map[string]store.Habit, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(logs),
	}

	for _, l := range logs {
		habitName := "Unknown"
		var goal float64
		unit := ""
		complete := false
		if h, ok := habits[l.HabitID]; ok {
			habitName = h.Name
			goal = h.Goal
			unit = h.Unit
			complete = l.Value >= h.Goal
		}

		export.Logs = append(export.Logs, jsonLog{
			Date:     l.Date,
			Habit:    habitName,
			HabitID:  l.HabitID,
			Value:    l.Value,
			Goal:     goal,
			Unit:     unit,
			Complete: complete,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
