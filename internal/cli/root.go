package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dailyflow/dailyflow/internal/lockfile"
	"github.com/dailyflow/dailyflow/internal/store"
	"github.com/dailyflow/dailyflow/internal/tui"
)

// NewRootCmd creates the top-level "dailyflow" command. Running it
// without a subcommand opens the dashboard.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dailyflow",
		Short: "Personal productivity dashboard",
		Long: `dailyflow tracks your days, habits, goals and projects in a
terminal dashboard, with streaks and weekly stats computed locally.`,
		SilenceUsage: true,
		RunE:         runTUI,
	}

	root.PersistentFlags().String("profile", "default", "profile to use (each profile has its own database)")

	root.AddCommand(
		newStatsCmd(),
		newExportCmd(),
		newDoctorCmd(),
	)

	return root
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("dailyflow needs a terminal; use 'dailyflow stats' or 'dailyflow export' in scripts")
	}

	profile, dbPath, err := resolveDB(cmd)
	if err != nil {
		return err
	}

	lock, err := lockfile.Acquire(lockfile.PathFor(dbPath))
	if err != nil {
		return err
	}
	defer lock.Release()

	s, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	app := tui.NewApp(s, profile)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// resolveDB returns the profile name and database path, honoring the
// DAILYFLOW_DB override.
func resolveDB(cmd *cobra.Command) (string, string, error) {
	profile, _ := cmd.Flags().GetString("profile")

	if env := os.Getenv("DAILYFLOW_DB"); env != "" {
		return profile, env, nil
	}

	dbPath, err := store.DefaultDBPath(profile)
	if err != nil {
		return "", "", fmt.Errorf("resolving database path: %w", err)
	}
	return profile, dbPath, nil
}

func openStore(cmd *cobra.Command) (*store.Store, string, error) {
	profile, dbPath, err := resolveDB(cmd)
	if err != nil {
		return nil, "", err
	}
	s, err := store.New(dbPath)
	if err != nil {
		return nil, "", fmt.Errorf("opening database: %w", err)
	}
	return s, profile, nil
}
