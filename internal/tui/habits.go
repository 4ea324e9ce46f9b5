package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dailyflow/dailyflow/internal/model"
	"github.com/dailyflow/dailyflow/internal/stats"
	"github.com/dailyflow/dailyflow/internal/store"
)

const habitWindowSize = 7

type habitsModel struct {
	store  *store.Store
	width  int
	height int

	habits    []model.Habit
	cursor    int
	dayCursor int // 0..6 within the window, 6 = today

	formActive bool
	formEdit   bool
	form       *huh.Form

	formName      *string
	formDesc      *string
	formCategory  *string
	formFrequency *string

	editingID string
}

func newHabitsModel(s *store.Store) habitsModel {
	name, desc, cat, freq := "", "", "", ""
	return habitsModel{
		store:         s,
		dayCursor:     habitWindowSize - 1,
		formName:      &name,
		formDesc:      &desc,
		formCategory:  &cat,
		formFrequency: &freq,
	}
}

func (h *habitsModel) setSize(w, hh int) {
	h.width = w
	h.height = hh
}

type habitsDataMsg struct {
	habits []model.Habit
}

func (h habitsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		habits, _ := h.store.ListHabits()
		return habitsDataMsg{habits: habits}
	}
}

func (h habitsModel) update(msg tea.Msg) (habitsModel, tea.Cmd) {
	if h.formActive && h.form != nil {
		return h.updateForm(msg)
	}

	switch msg := msg.(type) {
	case habitsDataMsg:
		h.habits = msg.habits
		if h.cursor >= len(h.habits) {
			h.cursor = max(0, len(h.habits)-1)
		}
		return h, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if h.cursor > 0 {
				h.cursor--
			}
		case key.Matches(msg, keys.Down):
			if h.cursor < len(h.habits)-1 {
				h.cursor++
			}
		case key.Matches(msg, keys.Left):
			if h.dayCursor > 0 {
				h.dayCursor--
			}
		case key.Matches(msg, keys.Right):
			if h.dayCursor < habitWindowSize-1 {
				h.dayCursor++
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Pause):
			return h.toggleSelected()
		case key.Matches(msg, keys.New):
			return h.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(h.habits) > 0 {
				habit := h.habits[h.cursor]
				return h.showForm(&habit)
			}
		case key.Matches(msg, keys.Delete):
			if len(h.habits) > 0 {
				if err := h.store.DeleteHabit(h.habits[h.cursor].ID); err != nil {
					return h, errStatus(err)
				}
				return h, h.refresh()
			}
		}
	}
	return h, nil
}

// toggleSelected flips the completion of the selected habit on the day
// under the day cursor. A streak that lands on a full week raises a
// notification.
func (h habitsModel) toggleSelected() (habitsModel, tea.Cmd) {
	if len(h.habits) == 0 {
		return h, nil
	}
	habit := h.habits[h.cursor]
	today := time.Now()
	date := today.AddDate(0, 0, h.dayCursor-(habitWindowSize-1)).Format(model.DayKey)

	updated, err := h.store.ToggleHabitDate(habit.ID, date, today)
	if err != nil {
		return h, errStatus(err)
	}

	if updated.CurrentStreak > 0 && updated.CurrentStreak%7 == 0 {
		h.store.AddNotification(
			fmt.Sprintf("%d-day streak!", updated.CurrentStreak),
			fmt.Sprintf("%s has been kept up for %d straight days.", updated.Name, updated.CurrentStreak),
			model.NotifySuccess, "habits",
		)
	}

	return h, h.refresh()
}

func (h habitsModel) showForm(habit *model.Habit) (habitsModel, tea.Cmd) {
	if habit == nil {
		*h.formName = ""
		*h.formDesc = ""
		*h.formCategory = string(model.CategoryOther)
		*h.formFrequency = string(model.FrequencyDaily)
		h.formEdit = false
	} else {
		*h.formName = habit.Name
		*h.formDesc = habit.Description
		*h.formCategory = string(habit.Category)
		*h.formFrequency = string(habit.Frequency)
		h.formEdit = true
		h.editingID = habit.ID
	}

	catOptions := make([]huh.Option[string], len(model.Categories))
	for i, c := range model.Categories {
		catOptions[i] = huh.NewOption(string(c), string(c))
	}
	freqs := []model.Frequency{model.FrequencyDaily, model.FrequencyWeekly, model.FrequencyWeekdays, model.FrequencyCustom}
	freqOptions := make([]huh.Option[string], len(freqs))
	for i, f := range freqs {
		freqOptions[i] = huh.NewOption(string(f), string(f))
	}

	h.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Habit Name").Value(h.formName),
			huh.NewInput().Title("Description").Value(h.formDesc),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(h.formCategory),
			huh.NewSelect[string]().Title("Frequency").Options(freqOptions...).Value(h.formFrequency),
		),
	).WithShowHelp(true).WithShowErrors(true)

	h.formActive = true
	return h, h.form.Init()
}

func (h habitsModel) updateForm(msg tea.Msg) (habitsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			h.formActive = false
			h.form = nil
			return h, nil
		}
	}

	form, cmd := h.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		h.form = f
	}

	if h.form.State == huh.StateCompleted {
		h.formActive = false
		if *h.formName != "" {
			var err error
			if h.formEdit {
				err = h.store.UpdateHabit(h.editingID, *h.formName, *h.formDesc,
					model.Category(*h.formCategory), model.Frequency(*h.formFrequency))
			} else {
				_, err = h.store.CreateHabit(*h.formName, *h.formDesc,
					model.Category(*h.formCategory), model.Frequency(*h.formFrequency))
			}
			if err != nil {
				return h, errStatus(err)
			}
		}
		return h, h.refresh()
	}

	return h, cmd
}

func (h habitsModel) view() string {
	if h.formActive && h.form != nil {
		title := titleStyle.Render("New Habit")
		if h.formEdit {
			title = titleStyle.Render("Edit Habit")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", h.form.View())
		return panelStyle.Width(h.width - 4).Render(content)
	}

	w := h.width - 4
	title := titleStyle.Render("Habits")

	if len(h.habits) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No habits yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	today := time.Now()

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	window := stats.Window(nil, today, habitWindowSize)
	var labels []string
	for _, wd := range window {
		labels = append(labels, fmt.Sprintf("%3s", wd.Weekday))
	}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-24s %s  %6s %5s", "", strings.Join(labels, " "), "streak", "week")))

	for i, habit := range h.habits {
		cursor := "  "
		style := normalItemStyle
		if i == h.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		win := stats.Window(habit.CompletedDates, today, habitWindowSize)
		var cells []string
		for j, wd := range win {
			cell := dayMissedStyle.Render("  ·")
			if wd.Completed {
				cell = dayDoneStyle.Render("  ✔")
			}
			if i == h.cursor && j == h.dayCursor {
				glyph := "·"
				if wd.Completed {
					glyph = "✔"
				}
				cell = daySelectedStyle.Render("  " + glyph)
			}
			cells = append(cells, cell)
		}

		rate := stats.WindowRate(habit.CompletedDates, today, habitWindowSize)
		streak := fmt.Sprintf("%6d", habit.CurrentStreak)
		if habit.CurrentStreak >= 7 {
			streak = successStyle.Render(streak)
		}

		name := habit.Name
		if len(name) > 22 {
			name = name[:21] + "…"
		}
		row := fmt.Sprintf("%s%-24s %s  %s %4d%%", cursor, name, strings.Join(cells, " "), streak, rate)
		rows = append(rows, style.Render(row))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  ←/→: pick day  t: toggle  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
