package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dailyflow/dailyflow/internal/export"
)

func newExportCmd() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export data to CSV or JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, profile, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if out == "" {
				date := time.Now().Format("2006-01-02")
				switch format {
				case "json":
					out = fmt.Sprintf("dailyflow-export-%s.json", date)
				case "csv-habits":
					out = fmt.Sprintf("dailyflow-habits-%s.csv", date)
				default:
					out = fmt.Sprintf("dailyflow-days-%s.csv", date)
				}
			}

			switch format {
			case "csv", "csv-days":
				days, err := s.ListDays()
				if err != nil {
					return err
				}
				if err := export.DaysToCSV(days, out); err != nil {
					return err
				}
			case "csv-habits":
				habits, err := s.ListHabits()
				if err != nil {
					return err
				}
				if err := export.HabitsToCSV(habits, out); err != nil {
					return err
				}
			case "json":
				days, err := s.ListDays()
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
				a := export.Archive{Days: days, Habits: habits, Goals: goals, Projects: projects}
				if err := export.ToJSON(a, profile, out); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want csv, csv-habits or json)", format)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "export format: csv, csv-habits or json")
	cmd.Flags().StringVar(&out, "out", "", "output file (default: dailyflow-<kind>-<date> in the current directory)")
	return cmd
}
