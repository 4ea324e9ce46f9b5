package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dailyflow/dailyflow/internal/model"
	"github.com/dailyflow/dailyflow/internal/store"
)

type alertsModel struct {
	store  *store.Store
	width  int
	height int

	notifications []model.Notification
	unread        int
	cursor        int
}

func newAlertsModel(s *store.Store) alertsModel {
	return alertsModel{store: s}
}

func (a *alertsModel) setSize(w, h int) {
	a.width = w
	a.height = h
}

type alertsDataMsg struct {
	notifications []model.Notification
	unread        int
}

func (a alertsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		notifications, _ := a.store.ListNotifications()
		unread, _ := a.store.UnreadCount()
		return alertsDataMsg{notifications: notifications, unread: unread}
	}
}

func (a alertsModel) update(msg tea.Msg) (alertsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case alertsDataMsg:
		a.notifications = msg.notifications
		a.unread = msg.unread
		if a.cursor >= len(a.notifications) {
			a.cursor = max(0, len(a.notifications)-1)
		}
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if a.cursor > 0 {
				a.cursor--
			}
		case key.Matches(msg, keys.Down):
			if a.cursor < len(a.notifications)-1 {
				a.cursor++
			}
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Toggle):
			if len(a.notifications) > 0 {
				if err := a.store.MarkNotificationRead(a.notifications[a.cursor].ID); err != nil {
					return a, errStatus(err)
				}
				return a, a.refresh()
			}
		case key.Matches(msg, keys.New): // 'n' doubles as "mark all" here
			a.store.MarkAllNotificationsRead()
			return a, a.refresh()
		case key.Matches(msg, keys.Delete):
			a.store.ClearNotifications()
			return a, a.refresh()
		}
	}
	return a, nil
}

func notifyGlyph(t model.NotificationType) string {
	switch t {
	case model.NotifySuccess:
		return successStyle.Render("✔")
	case model.NotifyWarning:
		return warningStyle.Render("!")
	case model.NotifyError:
		return errorStyle.Render("✘")
	default:
		return highlightStyle.Render("i")
	}
}

func (a alertsModel) view() string {
	w := a.width - 4

	header := titleStyle.Render("Alerts")
	if a.unread > 0 {
		header += accentStyle.Render(fmt.Sprintf("  %d unread", a.unread))
	}

	if len(a.notifications) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("Nothing here. Streak milestones and reminders show up in this tab."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")

	for i, n := range a.notifications {
		cursor := "  "
		style := normalItemStyle
		if i == a.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		if n.Read {
			style = mutedStyle
		}
		line := fmt.Sprintf("%s%s %s", cursor, notifyGlyph(n.Type), n.Title)
		if n.Message != "" {
			line += mutedStyle.Render(" — " + n.Message)
		}
		line += mutedStyle.Render("  " + n.CreatedAt.Local().Format("Jan 02 15:04"))
		rows = append(rows, style.Render(line))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: mark read  n: mark all  d: clear read"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
