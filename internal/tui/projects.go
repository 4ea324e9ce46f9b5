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

type projectsModel struct {
	store  *store.Store
	width  int
	height int

	projects []model.Project
	cursor   int

	formActive bool
	formEdit   bool
	form       *huh.Form

	formName     *string
	formDesc     *string
	formCategory *string
	formTech     *string
	formStart    *string
	formDeadline *string

	editingID string
}

func newProjectsModel(s *store.Store) projectsModel {
	name, desc, cat, tech, start, deadline := "", "", "", "", "", ""
	return projectsModel{
		store:        s,
		formName:     &name,
		formDesc:     &desc,
		formCategory: &cat,
		formTech:     &tech,
		formStart:    &start,
		formDeadline: &deadline,
	}
}

func (p *projectsModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type projectsDataMsg struct {
	projects []model.Project
}

func (p projectsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		projects, _ := p.store.ListProjects()
		return projectsDataMsg{projects: projects}
	}
}

func (p projectsModel) update(msg tea.Msg) (projectsModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case projectsDataMsg:
		p.projects = msg.projects
		if p.cursor >= len(p.projects) {
			p.cursor = max(0, len(p.projects)-1)
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.projects)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.Left):
			return p.adjustProgress(-10)
		case key.Matches(msg, keys.Right):
			return p.adjustProgress(10)
		case key.Matches(msg, keys.New):
			return p.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(p.projects) > 0 {
				proj := p.projects[p.cursor]
				return p.showForm(&proj)
			}
		case key.Matches(msg, keys.Delete):
			if len(p.projects) > 0 {
				if err := p.store.DeleteProject(p.projects[p.cursor].ID); err != nil {
					return p, errStatus(err)
				}
				return p, p.refresh()
			}
		}
	}
	return p, nil
}

func (p projectsModel) adjustProgress(delta int) (projectsModel, tea.Cmd) {
	if len(p.projects) == 0 {
		return p, nil
	}
	proj := p.projects[p.cursor]
	updated, err := p.store.SetProjectProgress(proj.ID, proj.Progress+delta)
	if err != nil {
		return p, errStatus(err)
	}
	if updated.Status == model.ProjectCompleted && proj.Status != model.ProjectCompleted {
		p.store.AddNotification("Project shipped", updated.Name, model.NotifySuccess, "projects")
	}
	return p, p.refresh()
}

func (p projectsModel) showForm(proj *model.Project) (projectsModel, tea.Cmd) {
	if proj == nil {
		*p.formName = ""
		*p.formDesc = ""
		*p.formCategory = string(model.CategoryOther)
		*p.formTech = ""
		*p.formStart = todayKey()
		*p.formDeadline = ""
		p.formEdit = false
	} else {
		*p.formName = proj.Name
		*p.formDesc = proj.Description
		*p.formCategory = string(proj.Category)
		*p.formTech = strings.Join(proj.Tech, ",")
		*p.formStart = proj.StartDate
		*p.formDeadline = ""
		if proj.Deadline != nil {
			*p.formDeadline = *proj.Deadline
		}
		p.formEdit = true
		p.editingID = proj.ID
	}

	catOptions := make([]huh.Option[string], len(model.Categories))
	for i, c := range model.Categories {
		catOptions[i] = huh.NewOption(string(c), string(c))
	}

	fields := []huh.Field{
		huh.NewInput().Title("Project Name").Value(p.formName),
		huh.NewInput().Title("Description").Value(p.formDesc),
		huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(p.formCategory),
		huh.NewInput().Title("Tech (comma-separated)").Value(p.formTech),
	}
	if !p.formEdit {
		fields = append(fields, huh.NewInput().Title("Start date (YYYY-MM-DD)").Value(p.formStart))
	}
	fields = append(fields, huh.NewInput().Title("Deadline (YYYY-MM-DD, optional)").Value(p.formDeadline))

	p.form = huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).WithShowErrors(true)
	p.formActive = true
	return p, p.form.Init()
}

func (p projectsModel) updateForm(msg tea.Msg) (projectsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		if *p.formName != "" {
			var deadline *string
			if *p.formDeadline != "" {
				d := *p.formDeadline
				deadline = &d
			}
			tech := splitTech(*p.formTech)

			var err error
			if p.formEdit {
				err = p.store.UpdateProject(p.editingID, *p.formName, *p.formDesc,
					model.Category(*p.formCategory), tech, deadline)
			} else {
				_, err = p.store.CreateProject(*p.formName, *p.formDesc,
					model.Category(*p.formCategory), tech, *p.formStart, deadline)
			}
			if err != nil {
				return p, errStatus(err)
			}
		}
		return p, p.refresh()
	}

	return p, cmd
}

func splitTech(s string) []string {
	var tech []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tech = append(tech, t)
		}
	}
	return tech
}

func progressBar(progress, width int) string {
	filled := progress * width / 100
	bar := successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
	return bar
}

func (p projectsModel) view() string {
	if p.formActive && p.form != nil {
		title := titleStyle.Render("New Project")
		if p.formEdit {
			title = titleStyle.Render("Edit Project")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return panelStyle.Width(p.width - 4).Render(content)
	}

	w := p.width - 4
	title := titleStyle.Render("Projects")

	if len(p.projects) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No projects yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-22s %-10s %-14s %4s", "", "Name", "Category", "Progress", ""))
	rows = append(rows, header)

	for i, proj := range p.projects {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		name := proj.Name
		if len(name) > 20 {
			name = name[:19] + "…"
		}
		bar := progressBar(proj.Progress, 12)
		row := fmt.Sprintf("%s%s %-22s %-10s %s %3d%%",
			cursor, statusGlyphProject(proj.Status), name, proj.Category, bar, proj.Progress)
		rows = append(rows, style.Render(row))
		if len(proj.Tech) > 0 {
			rows = append(rows, mutedStyle.Render("      ["+strings.Join(proj.Tech, ", ")+"]"))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  ←/→: progress ±10  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func statusGlyphProject(s model.ProjectStatus) string {
	switch s {
	case model.ProjectCompleted:
		return successStyle.Render("✔")
	case model.ProjectInProgress:
		return warningStyle.Render("●")
	default:
		return mutedStyle.Render("○")
	}
}
