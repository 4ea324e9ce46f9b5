package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dailyflow/dailyflow/internal/model"
)

func (s *Store) CreateProject(name, description string, category model.Category, tech []string, startDate string, deadline *string) (*model.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("project name is required")
	}
	if _, err := time.Parse(model.DayKey, startDate); err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	if deadline != nil {
		if _, err := time.Parse(model.DayKey, *deadline); err != nil {
			return nil, fmt.Errorf("invalid deadline %q: %w", *deadline, err)
		}
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO projects (id, name, description, category, tech, start_date, deadline, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, description, string(model.ParseCategory(string(category))),
		strings.Join(tech, ","), startDate, deadline, string(model.ProjectPlanned), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return s.GetProject(id)
}

func (s *Store) GetProject(id string) (*model.Project, error) {
	p := &model.Project{}
	var deadline sql.NullString
	var category, tech, status, createdAt, updatedAt string
	err := s.db.QueryRow(
		`SELECT id, name, description, category, tech, start_date, deadline, progress, status, created_at, updated_at
		 FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &category, &tech, &p.StartDate, &deadline, &p.Progress, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	if deadline.Valid {
		p.Deadline = &deadline.String
	}
	p.Category = model.ParseCategory(category)
	if tech != "" {
		p.Tech = strings.Split(tech, ",")
	}
	p.Progress = model.ClampProgress(p.Progress)
	p.Status, err = model.ParseProjectStatus(status)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", id, err)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return p, nil
}

func (s *Store) ListProjects() ([]model.Project, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, category, tech, start_date, deadline, progress, status, created_at, updated_at
		 FROM projects ORDER BY status = 'completed', name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		var deadline sql.NullString
		var category, tech, status, createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &category, &tech, &p.StartDate, &deadline, &p.Progress, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if deadline.Valid {
			d := deadline.String
			p.Deadline = &d
		}
		p.Category = model.ParseCategory(category)
		if tech != "" {
			p.Tech = strings.Split(tech, ",")
		}
		p.Progress = model.ClampProgress(p.Progress)
		p.Status, err = model.ParseProjectStatus(status)
		if err != nil {
			return nil, fmt.Errorf("project %s: %w", p.ID, err)
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) UpdateProject(id, name, description string, category model.Category, tech []string, deadline *string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE projects SET name = ?, description = ?, category = ?, tech = ?, deadline = ?, updated_at = ? WHERE id = ?`,
		name, description, string(model.ParseCategory(string(category))), strings.Join(tech, ","), deadline, now, id,
	)
	return err
}

// SetProjectProgress clamps and stores progress. Reaching 100 marks
// the project completed; dropping below 100 from completed reverts it
// to inprogress.
func (s *Store) SetProjectProgress(id string, progress int) (*model.Project, error) {
	progress = model.ClampProgress(progress)

	p, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}
	status := p.Status
	if progress >= 100 {
		status = model.ProjectCompleted
	} else if status == model.ProjectCompleted {
		status = model.ProjectInProgress
	} else if progress > 0 && status == model.ProjectPlanned {
		status = model.ProjectInProgress
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		`UPDATE projects SET progress = ?, status = ?, updated_at = ? WHERE id = ?`,
		progress, string(status), now, id,
	)
	if err != nil {
		return nil, fmt.Errorf("set progress: %w", err)
	}
	return s.GetProject(id)
}

func (s *Store) SetProjectStatus(id string, status model.ProjectStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid project status %q", status)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE projects SET status = ?, updated_at = ? WHERE id = ?`, string(status), now, id,
	)
	return err
}

func (s *Store) DeleteProject(id string) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	return err
}
