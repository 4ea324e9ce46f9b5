package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dailyflow/dailyflow/internal/model"
	"github.com/dailyflow/dailyflow/internal/stats"
	"github.com/dailyflow/dailyflow/internal/store"
)

type dashboardModel struct {
	store  *store.Store
	focus  focusModel
	width  int
	height int

	snapshot stats.Snapshot
	insights []stats.Insight
	days     []model.DayRecord

	chart barchart.Model
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{
		store: s,
		focus: newFocusModel(s),
		chart: barchart.New(60, 8),
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) isRunning() bool { return d.focus.running() }
func (d dashboardModel) isPaused() bool  { return d.focus.paused() }
func (d dashboardModel) elapsed() time.Duration {
	return d.focus.currentElapsed()
}

type dashboardDataMsg struct {
	snapshot stats.Snapshot
	insights []stats.Insight
	days     []model.DayRecord
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		days, _ := d.store.DayMap()
		habits, _ := d.store.ListHabits()
		goals, _ := d.store.ListGoals()
		projects, _ := d.store.ListProjects()

		today := time.Now()
		snap := stats.Compute(days, habits, goals, projects, today)
		insights := stats.Insights(snap, today)

		recent, _ := d.store.ListDays()

		return dashboardDataMsg{snapshot: snap, insights: insights, days: recent}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.snapshot = msg.snapshot
		d.insights = msg.insights
		d.days = msg.days
		d.buildChart()
		return d, nil

	case tickMsg:
		d.focus.tick()
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Focus):
			if d.focus.running() {
				return d, nil
			}
			d.focus.start()
			return d, func() tea.Msg { return focusStartedMsg{} }

		case key.Matches(msg, keys.Stop):
			return d.stopFocus()

		case key.Matches(msg, keys.Pause):
			d.focus.toggle()
			return d, nil
		}
	}
	return d, nil
}

func (d dashboardModel) stopFocus() (dashboardModel, tea.Cmd) {
	if !d.focus.running() {
		return d, nil
	}
	hours, err := d.focus.stop()
	if err != nil {
		return d, errStatus(err)
	}
	return d, tea.Batch(
		d.loadData(),
		func() tea.Msg { return focusStoppedMsg{hours: hours} },
	)
}

// buildChart renders the last 7 days of actual hours.
func (d *dashboardModel) buildChart() {
	chartWidth := d.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	d.chart = barchart.New(chartWidth, 8)

	byDate := make(map[string]model.DayRecord, len(d.days))
	for _, rec := range d.days {
		byDate[rec.Date] = rec
	}

	now := time.Now()
	var bars []barchart.BarData
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		label := day.Format("Mon")

		style := lipgloss.NewStyle().Foreground(colorSubtle)
		var hours float64
		if rec, ok := byDate[day.Format(model.DayKey)]; ok {
			hours = rec.ActualHours
			style = lipgloss.NewStyle().Foreground(colorPrimary)
			if rec.Status == model.DayCompleted {
				style = lipgloss.NewStyle().Foreground(colorSuccess)
			}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: label, Value: hours, Style: style}},
		})
	}

	d.chart.PushAll(bars)
	d.chart.Draw()
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	focusPanel := d.renderFocusPanel(contentWidth)
	statsPanel := d.renderStatsPanel(contentWidth)
	insightPanel := d.renderInsightPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, focusPanel, statsPanel, insightPanel)
}

func (d dashboardModel) renderFocusPanel(w int) string {
	if d.focus.running() {
		timeStr := formatDuration(d.focus.currentElapsed())

		var timeDisplay, indicator string
		if d.focus.paused() {
			timeDisplay = timerPausedStyle.Width(w - 6).Render(timeStr)
			indicator = warningStyle.Render("⏸  PAUSED")
		} else {
			timeDisplay = timerRunningStyle.Width(w - 6).Render(timeStr)
			indicator = successStyle.Render("●  FOCUSING")
		}

		hint := mutedStyle.Render("x stops and logs the time to today")
		content := lipgloss.JoinVertical(lipgloss.Center, timeDisplay, indicator, hint)
		return activePanelStyle.Width(w).Render(content)
	}

	timeDisplay := timerStyle.Width(w - 6).Render("00:00:00")
	indicator := mutedStyle.Render("■  IDLE")
	hint := mutedStyle.Render("Press s to start a focus session")

	content := lipgloss.JoinVertical(lipgloss.Center, timeDisplay, indicator, hint)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderStatsPanel(w int) string {
	snap := d.snapshot

	title := titleStyle.Render("Overview")

	streak := fmt.Sprintf("%d", snap.CalendarStreak.Current)
	if snap.CalendarStreak.Best > snap.CalendarStreak.Current {
		streak += mutedStyle.Render(fmt.Sprintf(" (best %d)", snap.CalendarStreak.Best))
	}

	rows := []string{
		title,
		"",
		fmt.Sprintf("  %-18s %s", "Days tracked", highlightStyle.Render(fmt.Sprintf("%d (%d%% completed)", snap.TrackedDays, snap.DayRate))),
		fmt.Sprintf("  %-18s %s", "Total hours", highlightStyle.Render(formatHours(snap.TotalHours))),
		fmt.Sprintf("  %-18s %s", "Day streak", successStyle.Render(streak)),
		fmt.Sprintf("  %-18s %s", "Goals", highlightStyle.Render(fmt.Sprintf("%d/%d (%d%%)", snap.GoalsCompleted, snap.GoalsTotal, snap.GoalRate))),
		fmt.Sprintf("  %-18s %s", "Projects", highlightStyle.Render(fmt.Sprintf("%d/%d (%d%%)", snap.ProjectsCompleted, snap.ProjectsTotal, snap.ProjectRate))),
	}
	if snap.TopHabitName != "" {
		rows = append(rows, fmt.Sprintf("  %-18s %s", "Top habit",
			successStyle.Render(fmt.Sprintf("%s (%d-day streak)", snap.TopHabitName, snap.TopHabitStreak))))
	}

	rows = append(rows, "", titleStyle.Render("Last 7 Days"), d.chart.View())

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderInsightPanel(w int) string {
	title := titleStyle.Render("Insights")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	shown := d.insights
	if len(shown) > 4 {
		shown = shown[:4]
	}
	for _, in := range shown {
		icon := insightIcon(in.Type)
		line := fmt.Sprintf("  %s %s %s", icon, titleStyle.Render(in.Title), mutedStyle.Render(in.Message))
		rows = append(rows, line)
		if in.Action != "" {
			rows = append(rows, mutedStyle.Render("      → "+in.Action))
		}
	}
	if len(shown) == 0 {
		rows = append(rows, mutedStyle.Render("  Track a few days to see insights"))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func insightIcon(t stats.InsightType) string {
	switch t {
	case stats.InsightSuccess:
		return successStyle.Render("✔")
	case stats.InsightWarning:
		return warningStyle.Render("!")
	default:
		return highlightStyle.Render("✦")
	}
}
