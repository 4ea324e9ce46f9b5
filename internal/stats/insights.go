package stats

import (
	"fmt"
	"time"
)

// InsightType classifies an insight card.
type InsightType string

const (
	InsightSuccess InsightType = "success"
	InsightInfo    InsightType = "info"
	InsightWarning InsightType = "warning"
)

// Insight is a rule-triggered summary card. Action is an opaque
// reference resolved by the UI layer (a tab name), not interpreted
// here.
type Insight struct {
	Type    InsightType
	Title   string
	Message string
	Action  string
}

// minInsights is the minimum number of cards Insights returns; shortfalls
// are padded with rotating generic tips.
const minInsights = 4

var genericTips = []Insight{
	{Type: InsightInfo, Title: "Plan Tomorrow Tonight", Message: "Logging planned hours the evening before makes the next morning frictionless.", Action: "days"},
	{Type: InsightInfo, Title: "Small Habits Compound", Message: "A two-minute version of a habit still extends the streak.", Action: "habits"},
	{Type: InsightInfo, Title: "Review Your Goals", Message: "A weekly glance at goal target dates keeps priorities honest.", Action: "goals"},
	{Type: InsightInfo, Title: "Note One Win", Message: "Add a single line to today's notes about what went well.", Action: "days"},
	{Type: InsightInfo, Title: "Update Project Progress", Message: "Progress bars only motivate when they move. Nudge one project today.", Action: "projects"},
}

// Insights evaluates the threshold rules against a snapshot in order
// and returns a bounded card list, padded to minInsights with tips.
// The tip rotation is keyed by day-of-year so the padding changes
// daily but is stable within a day.
func Insights(snap Snapshot, today time.Time) []Insight {
	var cards []Insight

	if snap.TrackedDays > 0 {
		switch {
		case snap.DayRate >= 80:
			cards = append(cards, Insight{
				Type:    InsightSuccess,
				Title:   "Outstanding Consistency",
				Message: fmt.Sprintf("You completed %d%% of your tracked days. Keep the rhythm going.", snap.DayRate),
				Action:  "days",
			})
		case snap.DayRate >= 60:
			cards = append(cards, Insight{
				Type:    InsightInfo,
				Title:   "Good Progress",
				Message: fmt.Sprintf("%d%% of tracked days completed. A little more focus closes the gap.", snap.DayRate),
				Action:  "days",
			})
		default:
			cards = append(cards, Insight{
				Type:    InsightWarning,
				Title:   "Consistency Needed",
				Message: fmt.Sprintf("Only %d%% of tracked days completed. Try planning fewer hours per day.", snap.DayRate),
				Action:  "days",
			})
		}
	}

	if snap.GoalsTotal > 0 {
		switch {
		case snap.GoalRate >= 70:
			cards = append(cards, Insight{
				Type:    InsightSuccess,
				Title:   "Goals On Track",
				Message: fmt.Sprintf("%d of %d goals completed.", snap.GoalsCompleted, snap.GoalsTotal),
				Action:  "goals",
			})
		case snap.GoalRate >= 40:
			cards = append(cards, Insight{
				Type:    InsightInfo,
				Title:   "Goals Moving",
				Message: fmt.Sprintf("%d%% of goals done. Pick one to finish this week.", snap.GoalRate),
				Action:  "goals",
			})
		default:
			cards = append(cards, Insight{
				Type:    InsightWarning,
				Title:   "Goals Need Attention",
				Message: fmt.Sprintf("Only %d of %d goals completed so far.", snap.GoalsCompleted, snap.GoalsTotal),
				Action:  "goals",
			})
		}
	}

	if snap.CalendarStreak.Current >= 7 {
		cards = append(cards, Insight{
			Type:    InsightSuccess,
			Title:   "Streak Power",
			Message: fmt.Sprintf("%d completed days in a row. Your best is %d.", snap.CalendarStreak.Current, snap.CalendarStreak.Best),
			Action:  "days",
		})
	}

	if snap.TotalHours > 100 {
		cards = append(cards, Insight{
			Type:    InsightSuccess,
			Title:   "Century of Hours",
			Message: fmt.Sprintf("%.0f hours logged in total. That is real momentum.", snap.TotalHours),
			Action:  "days",
		})
	}

	if snap.TopHabitStreak >= 7 {
		cards = append(cards, Insight{
			Type:    InsightSuccess,
			Title:   "Habit Locked In",
			Message: fmt.Sprintf("%q has a %d-day streak.", snap.TopHabitName, snap.TopHabitStreak),
			Action:  "habits",
		})
	}

	if snap.ActiveHabits > 0 && snap.BestWeeklyRate < 30 {
		cards = append(cards, Insight{
			Type:    InsightWarning,
			Title:   "Low Habit Activity",
			Message: "No habit reached 30% completion this week. Start with just one.",
			Action:  "habits",
		})
	}

	for i := 0; len(cards) < minInsights; i++ {
		tip := genericTips[(today.YearDay()+i)%len(genericTips)]
		cards = append(cards, tip)
	}
	return cards
}
