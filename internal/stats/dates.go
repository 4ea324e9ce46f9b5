// Package stats computes derived dashboard state: habit streaks,
// periodic completion rates, cross-entity aggregates, and rule-based
// insights. Everything here is a pure function of its inputs; callers
// own persistence and cache invalidation.
package stats

import (
	"sort"
	"time"

	"github.com/dailyflow/dailyflow/internal/model"
)

// Day normalizes a time to its calendar day key.
func Day(t time.Time) string {
	return t.Format(model.DayKey)
}

// parseDay strictly parses a YYYY-MM-DD key.
func parseDay(s string) (time.Time, bool) {
	t, err := time.Parse(model.DayKey, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// cleanDays deduplicates and sorts a raw date set ascending, dropping
// malformed entries. Malformed dates are treated as absent rather than
// failing the whole aggregation.
func cleanDays(raw []string) []time.Time {
	seen := make(map[string]struct{}, len(raw))
	var days []time.Time
	for _, s := range raw {
		if _, dup := seen[s]; dup {
			continue
		}
		t, ok := parseDay(s)
		if !ok {
			continue
		}
		seen[s] = struct{}{}
		days = append(days, t)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// nextDay reports whether b is exactly one calendar day after a.
func nextDay(a, b time.Time) bool {
	return a.AddDate(0, 0, 1).Format(model.DayKey) == b.Format(model.DayKey)
}

// percent computes round-half-up integer percent of k/n, clamped to
// 0-100. n <= 0 is defined as 0, never NaN.
func percent(k, n float64) int {
	if n <= 0 {
		return 0
	}
	p := int(k/n*100 + 0.5)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
