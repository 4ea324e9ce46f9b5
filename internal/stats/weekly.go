package stats

import "time"

// WindowDay is one day of a trailing completion window, with the
// calendar metadata the dashboard needs to draw a week strip.
type WindowDay struct {
	Date       string // YYYY-MM-DD
	Completed  bool
	DayOfMonth int
	Weekday    string // three-letter abbreviation
}

// Window produces the n trailing days ending at today (today last),
// marking each day completed when it appears in the date set.
func Window(dates []string, today time.Time, n int) []WindowDay {
	if n <= 0 {
		return nil
	}
	set := make(map[string]struct{}, len(dates))
	for _, d := range cleanDays(dates) {
		set[Day(d)] = struct{}{}
	}

	window := make([]WindowDay, 0, n)
	for i := n - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		key := Day(d)
		_, done := set[key]
		window = append(window, WindowDay{
			Date:       key,
			Completed:  done,
			DayOfMonth: d.Day(),
			Weekday:    d.Format("Mon"),
		})
	}
	return window
}

// WindowRate is the round-half-up percent of completed days in a
// trailing window of n days ending at today.
func WindowRate(dates []string, today time.Time, n int) int {
	if n <= 0 {
		return 0
	}
	completed := 0
	for _, wd := range Window(dates, today, n) {
		if wd.Completed {
			completed++
		}
	}
	return percent(float64(completed), float64(n))
}
