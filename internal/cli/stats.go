package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dailyflow/dailyflow/internal/stats"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard summary to stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			days, err := s.DayMap()
			if err != nil {
				return err
			}
			habits, err := s.ListHabits()
			if err != nil {
				return err
			}
			goals, err := s.ListGoals()
			if err != nil {
				return err
			}
			projects, err := s.ListProjects()
			if err != nil {
				return err
			}

			today := time.Now()
			snap := stats.Compute(days, habits, goals, projects, today)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Days tracked:   %d (%d%% completed)\n", snap.TrackedDays, snap.DayRate)
			fmt.Fprintf(out, "Total hours:    %.1f\n", snap.TotalHours)
			fmt.Fprintf(out, "Day streak:     %d (best %d)\n", snap.CalendarStreak.Current, snap.CalendarStreak.Best)
			fmt.Fprintf(out, "Goals:          %d/%d (%d%%)\n", snap.GoalsCompleted, snap.GoalsTotal, snap.GoalRate)
			fmt.Fprintf(out, "Projects:       %d/%d (%d%%)\n", snap.ProjectsCompleted, snap.ProjectsTotal, snap.ProjectRate)
			fmt.Fprintf(out, "Active habits:  %d\n", snap.ActiveHabits)
			if snap.TopHabitName != "" {
				fmt.Fprintf(out, "Top habit:      %s (%d-day streak, best week %d%%)\n",
					snap.TopHabitName, snap.TopHabitStreak, snap.BestWeeklyRate)
			}

			if len(snap.Categories) > 0 {
				fmt.Fprintln(out, "\nCategories:")
				for _, c := range snap.Categories {
					fmt.Fprintf(out, "  %-10s goals %d/%d, habits %d (weight %.1f)\n",
						c.Category, c.GoalsCompleted, c.Goals, c.Habits, c.HabitWeight)
				}
			}

			fmt.Fprintln(out, "\nInsights:")
			for _, in := range stats.Insights(snap, today) {
				fmt.Fprintf(out, "  [%s] %s: %s\n", in.Type, in.Title, in.Message)
			}
			return nil
		},
	}
}
