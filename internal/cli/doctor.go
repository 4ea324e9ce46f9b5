package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dailyflow/dailyflow/internal/lockfile"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the database and report basic health",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, dbPath, err := resolveDB(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Profile:   %s\n", profile)
			fmt.Fprintf(out, "Database:  %s\n", dbPath)

			if info, err := os.Stat(dbPath); err == nil {
				fmt.Fprintf(out, "Size:      %d bytes\n", info.Size())
			} else {
				fmt.Fprintln(out, "Size:      not created yet")
			}

			lockPath := lockfile.PathFor(dbPath)
			if _, err := os.Stat(lockPath); err == nil {
				fmt.Fprintf(out, "Lockfile:  %s (present, another instance may be running)\n", lockPath)
			} else {
				fmt.Fprintln(out, "Lockfile:  none")
			}

			s, _, err := openStore(cmd)
			if err != nil {
				return fmt.Errorf("database check failed: %w", err)
			}
			defer s.Close()

			version, err := s.SchemaVersion()
			if err != nil {
				return fmt.Errorf("reading schema version: %w", err)
			}
			fmt.Fprintf(out, "Schema:    v%d\n", version)

			days, err := s.ListDays()
			if err != nil {
				return fmt.Errorf("reading day records: %w", err)
			}
			habits, err := s.ListHabits()
			if err != nil {
				return fmt.Errorf("reading habits: %w", err)
			}
			goals, err := s.ListGoals()
			if err != nil {
				return fmt.Errorf("reading goals: %w", err)
			}
			projects, err := s.ListProjects()
			if err != nil {
				return fmt.Errorf("reading projects: %w", err)
			}

			fmt.Fprintf(out, "Records:   %d days, %d habits, %d goals, %d projects\n",
				len(days), len(habits), len(goals), len(projects))
			fmt.Fprintln(out, "OK")
			return nil
		},
	}
}
