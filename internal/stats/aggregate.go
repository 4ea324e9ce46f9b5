package stats

import (
	"sort"
	"time"

	"github.com/dailyflow/dailyflow/internal/model"
)

// CategoryStat is the per-category slice of the breakdown. HabitWeight
// is completions/7 per habit, a rough weekly-equivalent weighting; it
// is not hours or a count of anything concrete.
type CategoryStat struct {
	Category       model.Category
	Goals          int
	GoalsCompleted int
	Habits         int
	HabitWeight    float64
}

// Snapshot is the full set of dashboard aggregates for one point in
// time. All rates are round-half-up integer percents in 0-100.
type Snapshot struct {
	TrackedDays   int
	CompletedDays int
	DayRate       int
	TotalHours    float64

	// Calendar streak over day records with completed status, distinct
	// from any individual habit streak.
	CalendarStreak Streak

	GoalsTotal     int
	GoalsCompleted int
	GoalRate       int

	ProjectsTotal     int
	ProjectsCompleted int
	ProjectRate       int

	ActiveHabits   int
	TopHabitName   string
	TopHabitStreak int
	BestWeeklyRate int

	Categories []CategoryStat
}

// Compute builds a snapshot from the full entity set. It never fails:
// malformed inputs degrade to zero values so a partial dashboard still
// renders.
func Compute(days map[string]model.DayRecord, habits []model.Habit, goals []model.Goal, projects []model.Project, today time.Time) Snapshot {
	var snap Snapshot

	var completedDates []string
	for key, rec := range days {
		if _, ok := parseDay(key); !ok {
			continue
		}
		snap.TrackedDays++
		snap.TotalHours += model.ClampHours(rec.ActualHours)
		if rec.Status == model.DayCompleted {
			snap.CompletedDays++
			completedDates = append(completedDates, key)
		}
	}
	snap.DayRate = percent(float64(snap.CompletedDays), float64(snap.TrackedDays))
	snap.CalendarStreak = Streaks(completedDates, today)

	byCategory := make(map[model.Category]*CategoryStat)
	bucket := func(c model.Category) *CategoryStat {
		if !c.Valid() {
			c = model.CategoryOther
		}
		cs, ok := byCategory[c]
		if !ok {
			cs = &CategoryStat{Category: c}
			byCategory[c] = cs
		}
		return cs
	}

	for _, g := range goals {
		snap.GoalsTotal++
		cs := bucket(g.Category)
		cs.Goals++
		if g.Status == model.GoalCompleted {
			snap.GoalsCompleted++
			cs.GoalsCompleted++
		}
	}
	snap.GoalRate = percent(float64(snap.GoalsCompleted), float64(snap.GoalsTotal))

	for _, p := range projects {
		snap.ProjectsTotal++
		if p.Status == model.ProjectCompleted {
			snap.ProjectsCompleted++
		}
	}
	snap.ProjectRate = percent(float64(snap.ProjectsCompleted), float64(snap.ProjectsTotal))

	snap.ActiveHabits = len(habits)
	for _, h := range habits {
		cs := bucket(h.Category)
		cs.Habits++
		cs.HabitWeight += float64(len(cleanDays(h.CompletedDates))) / 7

		cur := CurrentStreak(h.CompletedDates, today)
		if cur > snap.TopHabitStreak {
			snap.TopHabitStreak = cur
			snap.TopHabitName = h.Name
		}
		if rate := WindowRate(h.CompletedDates, today, 7); rate > snap.BestWeeklyRate {
			snap.BestWeeklyRate = rate
		}
	}

	for _, c := range model.Categories {
		if cs, ok := byCategory[c]; ok {
			snap.Categories = append(snap.Categories, *cs)
		}
	}
	sort.SliceStable(snap.Categories, func(i, j int) bool {
		return snap.Categories[i].Goals+snap.Categories[i].Habits >
			snap.Categories[j].Goals+snap.Categories[j].Habits
	})

	return snap
}
