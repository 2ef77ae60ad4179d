package analytics

import "time"

const dateLayout = "2006-01-02"

// Window is the interval selected for trend and distribution aggregation.
type Window int

const (
	Week  Window = iota // Monday-Sunday containing today
	Month               // calendar month containing today
)

// Range returns the first and last calendar day of the window containing
// today, truncated to dates.
func (w Window) Range(today time.Time) (start, end time.Time) {
	d := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	switch w {
	case Month:
		start = time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
		end = start.AddDate(0, 1, -1)
	default:
		weekday := int(d.Weekday())
		if weekday == 0 { // Sunday belongs to the week that started 6 days ago
			weekday = 7
		}
		start = d.AddDate(0, 0, -(weekday - 1))
		end = start.AddDate(0, 0, 6)
	}
	return start, end
}

// Days returns every calendar date in the window, in order, as YYYY-MM-DD
// strings. Length is 7 for a week and 28-31 for a month.
func (w Window) Days(today time.Time) []string {
	start, end := w.Range(today)
	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(dateLayout))
	}
	return days
}

// Label renders the window bounds for display and for the insight request,
// e.g. "2024-03-04 to 2024-03-10".
func (w Window) Label(today time.Time) string {
	start, end := w.Range(today)
	return start.Format(dateLayout) + " to " + end.Format(dateLayout)
}

func (w Window) String() string {
	if w == Month {
		return "month"
	}
	return "week"
}
