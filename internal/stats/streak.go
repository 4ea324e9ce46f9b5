package stats

import "time"

// Streak holds the two derived streak values for a completion set.
type Streak struct {
	Current int
	Best    int
}

// CurrentStreak counts consecutive completed calendar days walking
// backward from today. A gap at today itself means the streak is 0:
// this is the strict "current as of today" reading, and it is always
// recomputed from the full date set, never adjusted incrementally.
func CurrentStreak(dates []string, today time.Time) int {
	days := cleanDays(dates)
	if len(days) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(days))
	for _, d := range days {
		set[Day(d)] = struct{}{}
	}

	count := 0
	for d := today; ; d = d.AddDate(0, 0, -1) {
		if _, ok := set[Day(d)]; !ok {
			break
		}
		count++
	}
	return count
}

// BestStreak scans all completion dates chronologically and returns
// the longest run of day-adjacent dates.
func BestStreak(dates []string) int {
	days := cleanDays(dates)
	if len(days) == 0 {
		return 0
	}

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if nextDay(days[i-1], days[i]) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// Streaks computes both streak values in one pass over the cleaned set.
func Streaks(dates []string, today time.Time) Streak {
	return Streak{
		Current: CurrentStreak(dates, today),
		Best:    BestStreak(dates),
	}
}
