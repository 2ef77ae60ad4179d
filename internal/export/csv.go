package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sarpek/flagtrack/internal/store"
)

func ToCSV(logs []store.Log, habits map[string]store.Habit, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Habit", "Value", "Goal", "Unit", "Complete"}); err != nil {
		return err
	}

	for _, l := range logs {
		habitName := "Unknown"
		goal := ""
		unit := ""
		complete := ""
		if h, ok := habits[l.HabitID]; ok {
			habitName = h.Name
			goal = formatNumber(h.Goal)
			unit = h.Unit
			complete = strconv.FormatBool(l.Value >= h.Goal)
		}

		row := []string{
			l.Date,
			habitName,
			formatNumber(l.Value),
			goal,
			unit,
			complete,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
