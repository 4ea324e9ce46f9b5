package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dailyflow/dailyflow/internal/model"
)

// viewState represents the currently active tab.
type viewState int

const (
	viewDashboard viewState = iota
	viewDays
	viewHabits
	viewGoals
	viewProjects
	viewAlerts
	viewSettings
)

const viewCount = 7

var viewNames = []string{"Dashboard", "Days", "Habits", "Goals", "Projects", "Alerts", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type focusStartedMsg struct{}

type focusStoppedMsg struct {
	hours float64
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func todayKey() string {
	return time.Now().Format(model.DayKey)
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

func errStatus(err error) func() tea.Msg {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}
