package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/dailyflow/dailyflow/internal/model"
	"github.com/dailyflow/dailyflow/internal/store"
)

type goalsModel struct {
	store  *store.Store
	width  int
	height int

	goals  []model.Goal
	cursor int

	formActive bool
	formEdit   bool
	form       *huh.Form

	formTitle    *string
	formDesc     *string
	formTarget   *string
	formPriority *string
	formCategory *string

	editingID string
}

func newGoalsModel(s *store.Store) goalsModel {
	title, desc, target, prio, cat := "", "", "", "", ""
	return goalsModel{
		store:        s,
		formTitle:    &title,
		formDesc:     &desc,
		formTarget:   &target,
		formPriority: &prio,
		formCategory: &cat,
	}
}

func (g *goalsModel) setSize(w, h int) {
	g.width = w
	g.height = h
}

type goalsDataMsg struct {
	goals []model.Goal
}

func (g goalsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		goals, _ := g.store.ListGoals()
		return goalsDataMsg{goals: goals}
	}
}

func (g goalsModel) update(msg tea.Msg) (goalsModel, tea.Cmd) {
	if g.formActive && g.form != nil {
		return g.updateForm(msg)
	}

	switch msg := msg.(type) {
	case goalsDataMsg:
		g.goals = msg.goals
		if g.cursor >= len(g.goals) {
			g.cursor = max(0, len(g.goals)-1)
		}
		return g, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if g.cursor > 0 {
				g.cursor--
			}
		case key.Matches(msg, keys.Down):
			if g.cursor < len(g.goals)-1 {
				g.cursor++
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			return g.toggleStatus()
		case key.Matches(msg, keys.New):
			return g.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(g.goals) > 0 {
				goal := g.goals[g.cursor]
				return g.showForm(&goal)
			}
		case key.Matches(msg, keys.Delete):
			if len(g.goals) > 0 {
				if err := g.store.DeleteGoal(g.goals[g.cursor].ID); err != nil {
					return g, errStatus(err)
				}
				return g, g.refresh()
			}
		}
	}
	return g, nil
}

func (g goalsModel) toggleStatus() (goalsModel, tea.Cmd) {
	if len(g.goals) == 0 {
		return g, nil
	}
	goal := g.goals[g.cursor]
	next := model.GoalCompleted
	if goal.Status == model.GoalCompleted {
		next = model.GoalActive
	}
	if err := g.store.SetGoalStatus(goal.ID, next); err != nil {
		return g, errStatus(err)
	}
	if next == model.GoalCompleted {
		g.store.AddNotification("Goal achieved", goal.Title, model.NotifySuccess, "goals")
	}
	return g, g.refresh()
}

func (g goalsModel) showForm(goal *model.Goal) (goalsModel, tea.Cmd) {
	if goal == nil {
		*g.formTitle = ""
		*g.formDesc = ""
		*g.formTarget = ""
		*g.formPriority = string(model.PriorityMedium)
		*g.formCategory = string(model.CategoryOther)
		g.formEdit = false
	} else {
		*g.formTitle = goal.Title
		*g.formDesc = goal.Description
		*g.formTarget = ""
		if goal.TargetDate != nil {
			*g.formTarget = *goal.TargetDate
		}
		*g.formPriority = string(goal.Priority)
		*g.formCategory = string(goal.Category)
		g.formEdit = true
		g.editingID = goal.ID
	}

	prios := []model.Priority{model.PriorityLow, model.PriorityMedium, model.PriorityHigh}
	prioOptions := make([]huh.Option[string], len(prios))
	for i, p := range prios {
		prioOptions[i] = huh.NewOption(string(p), string(p))
	}
	catOptions := make([]huh.Option[string], len(model.Categories))
	for i, c := range model.Categories {
		catOptions[i] = huh.NewOption(string(c), string(c))
	}

	g.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Goal").Value(g.formTitle),
			huh.NewInput().Title("Description").Value(g.formDesc),
			huh.NewInput().Title("Target date (YYYY-MM-DD, optional)").Value(g.formTarget),
			huh.NewSelect[string]().Title("Priority").Options(prioOptions...).Value(g.formPriority),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(g.formCategory),
		),
	).WithShowHelp(true).WithShowErrors(true)

	g.formActive = true
	return g, g.form.Init()
}

func (g goalsModel) updateForm(msg tea.Msg) (goalsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			g.formActive = false
			g.form = nil
			return g, nil
		}
	}

	form, cmd := g.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		g.form = f
	}

	if g.form.State == huh.StateCompleted {
		g.formActive = false
		if *g.formTitle != "" {
			var target *string
			if *g.formTarget != "" {
				t := *g.formTarget
				target = &t
			}
			var err error
			if g.formEdit {
				err = g.store.UpdateGoal(g.editingID, *g.formTitle, *g.formDesc, target,
					model.Priority(*g.formPriority), model.Category(*g.formCategory))
			} else {
				_, err = g.store.CreateGoal(*g.formTitle, *g.formDesc, target,
					model.Priority(*g.formPriority), model.Category(*g.formCategory))
			}
			if err != nil {
				return g, errStatus(err)
			}
		}
		return g, g.refresh()
	}

	return g, cmd
}

func priorityBadge(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return errorStyle.Render("high")
	case model.PriorityMedium:
		return warningStyle.Render("med ")
	default:
		return mutedStyle.Render("low ")
	}
}

func (g goalsModel) view() string {
	if g.formActive && g.form != nil {
		title := titleStyle.Render("New Goal")
		if g.formEdit {
			title = titleStyle.Render("Edit Goal")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", g.form.View())
		return panelStyle.Width(g.width - 4).Render(content)
	}

	w := g.width - 4
	title := titleStyle.Render("Goals")

	if len(g.goals) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No goals yet. Press n to set one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-30s %-6s %-10s %-12s", "", "Goal", "Prio", "Category", "Target"))
	rows = append(rows, header)

	for i, goal := range g.goals {
		cursor := "  "
		style := normalItemStyle
		if i == g.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		check := mutedStyle.Render("○")
		if goal.Status == model.GoalCompleted {
			check = successStyle.Render("✔")
		}
		target := ""
		if goal.TargetDate != nil {
			target = *goal.TargetDate
		}
		title := goal.Title
		if len(title) > 28 {
			title = title[:27] + "…"
		}
		row := fmt.Sprintf("%s%s %-30s %s %-10s %-12s",
			cursor, check, title, priorityBadge(goal.Priority), goal.Category, target)
		rows = append(rows, style.Render(row))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  t/enter: complete  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
