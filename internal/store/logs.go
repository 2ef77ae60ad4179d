package store

import (
	"encoding/json"
	"fmt"
)

const logsKey = "logs"

// Logs loads the full log collection. A missing row or malformed JSON falls
// back to an empty list; storage errors are still surfaced.
func (s *Store) Logs() ([]Log, error) {
	raw, ok, err := s.getKV(logsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var logs []Log
	if err := json.Unmarshal([]byte(raw), &logs); err != nil {
		return nil, nil
	}
	return logs, nil
}

// SaveLogs mirrors the full log collection to storage.
func (s *Store) SaveLogs(logs []Log) error {
	data, err := json.Marshal(logs)
	if err != nil {
		return fmt.Errorf("marshal logs: %w", err)
	}
	return s.setKV(logsKey, string(data))
}

// UpsertLog records value for (habitID, date) with find-or-replace semantics:
// an existing log for the pair is overwritten, otherwise one is appended.
// Calling it twice for the same pair leaves exactly one log with the latest
// value.
func (s *Store) UpsertLog(habitID, date string, value float64) error {
	logs, err := s.Logs()
	if err != nil {
		return err
	}

	found := false
	for i := range logs {
		if logs[i].HabitID == habitID && logs[i].Date == date {
			logs[i].Value = value
			found = true
			break
		}
	}
	if !found {
		logs = append(logs, Log{HabitID: habitID, Date: date, Value: value})
	}

	return s.SaveLogs(logs)
}
