package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dailyflow/dailyflow/internal/model"
	"github.com/dailyflow/dailyflow/internal/store"
)

type daysModel struct {
	store  *store.Store
	width  int
	height int

	days         []model.DayRecord
	cursor       int
	taskCursor   int
	viewingTasks bool

	formActive bool
	form       *huh.Form
	formType   string // "day", "edit_day", "task"

	// Form field pointers (survive value copies)
	formDate    *string
	formPlanned *string
	formStatus  *string
	formNotes   *string
	formText    *string
}

func newDaysModel(s *store.Store) daysModel {
	date, planned, status, notes, text := "", "", "", "", ""
	return daysModel{
		store:       s,
		formDate:    &date,
		formPlanned: &planned,
		formStatus:  &status,
		formNotes:   &notes,
		formText:    &text,
	}
}

func (d *daysModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type daysDataMsg struct {
	days []model.DayRecord
}

func (d daysModel) refresh() tea.Cmd {
	return func() tea.Msg {
		days, _ := d.store.ListDays()
		return daysDataMsg{days: days}
	}
}

func (d daysModel) update(msg tea.Msg) (daysModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case daysDataMsg:
		d.days = msg.days
		if d.cursor >= len(d.days) {
			d.cursor = max(0, len(d.days)-1)
		}
		if d.cursor < len(d.days) && d.taskCursor >= len(d.days[d.cursor].Tasks) {
			d.taskCursor = max(0, len(d.days[d.cursor].Tasks)-1)
		}
		return d, nil

	case tea.KeyMsg:
		if d.viewingTasks {
			return d.updateTaskView(msg)
		}
		return d.updateDayList(msg)
	}
	return d, nil
}

func (d daysModel) updateDayList(msg tea.KeyMsg) (daysModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if d.cursor > 0 {
			d.cursor--
		}
	case key.Matches(msg, keys.Down):
		if d.cursor < len(d.days)-1 {
			d.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(d.days) > 0 {
			d.viewingTasks = true
			d.taskCursor = 0
		}
	case key.Matches(msg, keys.New):
		return d.showDayForm(nil)
	case key.Matches(msg, keys.Edit):
		if len(d.days) > 0 {
			rec := d.days[d.cursor]
			return d.showDayForm(&rec)
		}
	case key.Matches(msg, keys.Delete):
		if len(d.days) > 0 {
			if err := d.store.DeleteDay(d.days[d.cursor].Date); err != nil {
				return d, errStatus(err)
			}
			return d, d.refresh()
		}
	}
	return d, nil
}

func (d daysModel) updateTaskView(msg tea.KeyMsg) (daysModel, tea.Cmd) {
	tasks := d.currentTasks()
	switch {
	case key.Matches(msg, keys.Back):
		d.viewingTasks = false
		return d, nil
	case key.Matches(msg, keys.Up):
		if d.taskCursor > 0 {
			d.taskCursor--
		}
	case key.Matches(msg, keys.Down):
		if d.taskCursor < len(tasks)-1 {
			d.taskCursor++
		}
	case key.Matches(msg, keys.New):
		return d.showTaskForm()
	case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
		if len(tasks) > 0 {
			if _, err := d.store.ToggleDayTask(tasks[d.taskCursor].ID); err != nil {
				return d, errStatus(err)
			}
			return d, d.refresh()
		}
	case key.Matches(msg, keys.Delete):
		if len(tasks) > 0 {
			if err := d.store.DeleteDayTask(tasks[d.taskCursor].ID); err != nil {
				return d, errStatus(err)
			}
			return d, d.refresh()
		}
	}
	return d, nil
}

func (d daysModel) currentTasks() []model.DayTask {
	if d.cursor >= len(d.days) {
		return nil
	}
	return d.days[d.cursor].Tasks
}

func dayStatusOptions() []huh.Option[string] {
	statuses := []model.DayStatus{model.DayPlanned, model.DayInProgress, model.DayCompleted, model.DayMissed}
	opts := make([]huh.Option[string], len(statuses))
	for i, s := range statuses {
		opts[i] = huh.NewOption(string(s), string(s))
	}
	return opts
}

func (d daysModel) showDayForm(rec *model.DayRecord) (daysModel, tea.Cmd) {
	if rec == nil {
		*d.formDate = todayKey()
		*d.formPlanned = "8"
		*d.formStatus = string(model.DayPlanned)
		*d.formNotes = ""
		d.formType = "day"
	} else {
		*d.formDate = rec.Date
		*d.formPlanned = strconv.FormatFloat(rec.PlannedHours, 'f', -1, 64)
		*d.formStatus = string(rec.Status)
		*d.formNotes = rec.Notes
		d.formType = "edit_day"
	}

	fields := []huh.Field{
		huh.NewInput().Title("Date (YYYY-MM-DD)").Value(d.formDate),
		huh.NewInput().Title("Planned hours").Value(d.formPlanned),
		huh.NewSelect[string]().Title("Status").Options(dayStatusOptions()...).Value(d.formStatus),
		huh.NewText().Title("Notes").Value(d.formNotes),
	}

	d.form = huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).WithShowErrors(true)
	d.formActive = true
	return d, d.form.Init()
}

func (d daysModel) showTaskForm() (daysModel, tea.Cmd) {
	*d.formText = ""
	d.formType = "task"

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(d.formText),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func (d daysModel) updateForm(msg tea.Msg) (daysModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		switch d.formType {
		case "day", "edit_day":
			return d.submitDay()
		case "task":
			if *d.formText != "" && d.cursor < len(d.days) {
				if _, err := d.store.AddDayTask(d.days[d.cursor].Date, *d.formText); err != nil {
					return d, errStatus(err)
				}
			}
			return d, d.refresh()
		}
	}

	return d, cmd
}

func (d daysModel) submitDay() (daysModel, tea.Cmd) {
	planned, err := strconv.ParseFloat(*d.formPlanned, 64)
	if err != nil {
		return d, errStatus(fmt.Errorf("invalid planned hours %q", *d.formPlanned))
	}

	actual := 0.0
	if d.formType == "edit_day" {
		if rec, _ := d.store.FindDay(*d.formDate); rec != nil {
			actual = rec.ActualHours
		}
	}

	_, err = d.store.SaveDay(*d.formDate, planned, actual, *d.formNotes, model.DayStatus(*d.formStatus))
	if err != nil {
		return d, errStatus(err)
	}
	return d, d.refresh()
}

func (d daysModel) view() string {
	if d.formActive && d.form != nil {
		title := titleStyle.Render("Day Record")
		if d.formType == "task" {
			title = titleStyle.Render("New Task")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", d.form.View())
		return panelStyle.Width(d.width - 4).Render(content)
	}

	if d.viewingTasks {
		return d.renderTaskView()
	}
	return d.renderDayList()
}

func statusGlyph(s model.DayStatus) string {
	switch s {
	case model.DayCompleted:
		return successStyle.Render("✔")
	case model.DayInProgress:
		return warningStyle.Render("●")
	case model.DayMissed:
		return errorStyle.Render("✘")
	default:
		return mutedStyle.Render("○")
	}
}

func (d daysModel) renderDayList() string {
	w := d.width - 4
	title := titleStyle.Render("Days")

	if len(d.days) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No days tracked yet. Press n to plan one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-12s %-10s %8s %8s %7s", "", "Date", "Status", "Planned", "Actual", "Tasks"))
	rows = append(rows, header)

	for i, rec := range d.days {
		cursor := "  "
		style := normalItemStyle
		if i == d.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		done := 0
		for _, t := range rec.Tasks {
			if t.Completed {
				done++
			}
		}
		row := style.Render(fmt.Sprintf("%s%s %-12s %-10s %8s %8s %4d/%d",
			cursor, statusGlyph(rec.Status), rec.Date, rec.Status,
			formatHours(rec.PlannedHours), formatHours(rec.ActualHours), done, len(rec.Tasks)))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  enter: tasks"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d daysModel) renderTaskView() string {
	w := d.width - 4
	rec := d.days[d.cursor]
	title := titleStyle.Render(fmt.Sprintf("%s — Tasks", rec.Date))

	if len(rec.Tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, task := range rec.Tasks {
		cursor := "  "
		style := normalItemStyle
		if i == d.taskCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		check := mutedStyle.Render("[ ]")
		if task.Completed {
			check = successStyle.Render("[x]")
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, check, task.Text)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  t/enter: toggle  d: delete  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
