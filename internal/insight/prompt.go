package insight

import (
	"encoding/json"
	"fmt"

	"github.com/sarpek/flagtrack/internal/store"
)

const systemInstruction = `You are a warm, enthusiastic and analytical personal growth coach.
Your goal is to turn the user's habit check-in data for the period into a concise, emoji-rich review.
1. Summarize their performance (completion rate, total time invested, and so on).
2. Pick the highlight of the period, the habit they did best at.
3. For the weakest habit, give one concrete, actionable suggestion.
4. Keep the tone positive and encouraging, like a friend.
5. Use Markdown with clear headings and bullet lists.`

type promptHabit struct {
	Name string  `json:"name"`
	Goal float64 `json:"goal"`
	Unit string  `json:"unit"`
}

type promptLog struct {
	Habit string  `json:"habit"`
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type promptContext struct {
	Period string        `json:"period"`
	Habits []promptHabit `json:"habits"`
	Logs   []promptLog   `json:"logs"`
}

// userPrompt serializes the snapshot for the model. Logs before
// windowStart are dropped, and logs whose habit no longer exists are
// reported under an empty name rather than skipped.
func userPrompt(habits []store.Habit, logs []store.Log, windowStart, periodLabel string) string {
	names := make(map[string]string, len(habits))
	for _, h := range habits {
		names[h.ID] = h.Name
	}

	pc := promptContext{
		Period: periodLabel,
		Habits: make([]promptHabit, 0, len(habits)),
		Logs:   make([]promptLog, 0, len(logs)),
	}
	for _, h := range habits {
		pc.Habits = append(pc.Habits, promptHabit{Name: h.Name, Goal: h.Goal, Unit: h.Unit})
	}
	for _, l := range logs {
		if l.Date < windowStart {
			continue
		}
		pc.Logs = append(pc.Logs, promptLog{Habit: names[l.HabitID], Date: l.Date, Value: l.Value})
	}

	data, err := json.Marshal(pc)
	if err != nil {
		data = []byte("{}")
	}
	return fmt.Sprintf("Here is my habit check-in data for the period: %s. Please write my review for this period.", data)
}
