package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findInsight(cards []Insight, title string) *Insight {
	for i := range cards {
		if cards[i].Title == title {
			return &cards[i]
		}
	}
	return nil
}

func TestInsights_MinimumCount(t *testing.T) {
	cards := Insights(Snapshot{}, refDay)
	assert.GreaterOrEqual(t, len(cards), 4, "padded with generic tips")
}

func TestInsights_PaddingRotatesByDay(t *testing.T) {
	a := Insights(Snapshot{}, refDay)
	b := Insights(Snapshot{}, refDay.AddDate(0, 0, 1))
	require.NotEmpty(t, a)
	require.NotEmpty(t, b)
	assert.NotEqual(t, a[0].Title, b[0].Title, "tip rotation advances daily")

	again := Insights(Snapshot{}, refDay)
	assert.Equal(t, a, again, "stable within a day")
}

func TestInsights_OutstandingConsistency(t *testing.T) {
	snap := Snapshot{TrackedDays: 10, DayRate: 85}
	card := findInsight(Insights(snap, refDay), "Outstanding Consistency")
	require.NotNil(t, card)
	assert.Equal(t, InsightSuccess, card.Type)
	assert.Equal(t, "days", card.Action)
	assert.Contains(t, card.Message, "85%")
}

func TestInsights_GoodProgress(t *testing.T) {
	snap := Snapshot{TrackedDays: 10, DayRate: 65}
	card := findInsight(Insights(snap, refDay), "Good Progress")
	require.NotNil(t, card)
	assert.Equal(t, InsightInfo, card.Type)
}

func TestInsights_ConsistencyNeeded(t *testing.T) {
	snap := Snapshot{TrackedDays: 10, DayRate: 20}
	card := findInsight(Insights(snap, refDay), "Consistency Needed")
	require.NotNil(t, card)
	assert.Equal(t, InsightWarning, card.Type)
}

func TestInsights_NoDayCardWithoutTrackedDays(t *testing.T) {
	cards := Insights(Snapshot{}, refDay)
	assert.Nil(t, findInsight(cards, "Consistency Needed"))
	assert.Nil(t, findInsight(cards, "Outstanding Consistency"))
}

func TestInsights_GoalThresholds(t *testing.T) {
	high := Snapshot{GoalsTotal: 10, GoalsCompleted: 8, GoalRate: 80}
	assert.NotNil(t, findInsight(Insights(high, refDay), "Goals On Track"))

	mid := Snapshot{GoalsTotal: 10, GoalsCompleted: 5, GoalRate: 50}
	assert.NotNil(t, findInsight(Insights(mid, refDay), "Goals Moving"))

	low := Snapshot{GoalsTotal: 10, GoalsCompleted: 1, GoalRate: 10}
	card := findInsight(Insights(low, refDay), "Goals Need Attention")
	require.NotNil(t, card)
	assert.Equal(t, InsightWarning, card.Type)
	assert.Equal(t, "goals", card.Action)
}

func TestInsights_StreakPower(t *testing.T) {
	snap := Snapshot{CalendarStreak: Streak{Current: 7, Best: 12}}
	card := findInsight(Insights(snap, refDay), "Streak Power")
	require.NotNil(t, card)
	assert.Contains(t, card.Message, "7")
	assert.Contains(t, card.Message, "12")

	short := Snapshot{CalendarStreak: Streak{Current: 6, Best: 12}}
	assert.Nil(t, findInsight(Insights(short, refDay), "Streak Power"))
}

func TestInsights_CenturyOfHours(t *testing.T) {
	assert.NotNil(t, findInsight(Insights(Snapshot{TotalHours: 100.5}, refDay), "Century of Hours"))
	assert.Nil(t, findInsight(Insights(Snapshot{TotalHours: 100}, refDay), "Century of Hours"))
}

func TestInsights_HabitCards(t *testing.T) {
	locked := Snapshot{TopHabitName: "Reading", TopHabitStreak: 9, ActiveHabits: 1, BestWeeklyRate: 100}
	card := findInsight(Insights(locked, refDay), "Habit Locked In")
	require.NotNil(t, card)
	assert.Contains(t, card.Message, "Reading")

	idle := Snapshot{ActiveHabits: 2, BestWeeklyRate: 14}
	warn := findInsight(Insights(idle, refDay), "Low Habit Activity")
	require.NotNil(t, warn)
	assert.Equal(t, InsightWarning, warn.Type)

	none := Snapshot{ActiveHabits: 0, BestWeeklyRate: 0}
	assert.Nil(t, findInsight(Insights(none, refDay), "Low Habit Activity"))
}

func TestInsights_RuleOrderPrecedesPadding(t *testing.T) {
	snap := Snapshot{TrackedDays: 10, DayRate: 85, GoalsTotal: 2, GoalsCompleted: 2, GoalRate: 100}
	cards := Insights(snap, refDay)
	require.GreaterOrEqual(t, len(cards), 4)
	assert.Equal(t, "Outstanding Consistency", cards[0].Title)
	assert.Equal(t, "Goals On Track", cards[1].Title)
}
