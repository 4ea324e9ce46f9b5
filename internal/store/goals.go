package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dailyflow/dailyflow/internal/model"
)

func (s *Store) CreateGoal(title, description string, targetDate *string, priority model.Priority, category model.Category) (*model.Goal, error) {
	if title == "" {
		return nil, fmt.Errorf("goal title is required")
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("invalid priority %q", priority)
	}
	if targetDate != nil {
		if _, err := time.Parse(model.DayKey, *targetDate); err != nil {
			return nil, fmt.Errorf("invalid target date %q: %w", *targetDate, err)
		}
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO goals (id, title, description, target_date, priority, category, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, title, description, targetDate, string(priority),
		string(model.ParseCategory(string(category))), string(model.GoalActive), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}
	return s.GetGoal(id)
}

func (s *Store) GetGoal(id string) (*model.Goal, error) {
	g := &model.Goal{}
	var targetDate sql.NullString
	var priority, category, status, createdAt, updatedAt string
	err := s.db.QueryRow(
		`SELECT id, title, description, target_date, priority, category, status, created_at, updated_at
		 FROM goals WHERE id = ?`, id,
	).Scan(&g.ID, &g.Title, &g.Description, &targetDate, &priority, &category, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get goal %s: %w", id, err)
	}
	if targetDate.Valid {
		g.TargetDate = &targetDate.String
	}
	g.Priority, err = model.ParsePriority(priority)
	if err != nil {
		return nil, fmt.Errorf("goal %s: %w", id, err)
	}
	g.Category = model.ParseCategory(category)
	g.Status, err = model.ParseGoalStatus(status)
	if err != nil {
		return nil, fmt.Errorf("goal %s: %w", id, err)
	}
	g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	g.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return g, nil
}

// ListGoals returns goals ordered active-first, then by priority
// (high before low), then newest first.
func (s *Store) ListGoals() ([]model.Goal, error) {
	rows, err := s.db.Query(
		`SELECT id, title, description, target_date, priority, category, status, created_at, updated_at
		 FROM goals
		 ORDER BY status = 'completed',
			CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END,
			created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []model.Goal
	for rows.Next() {
		var g model.Goal
		var targetDate sql.NullString
		var priority, category, status, createdAt, updatedAt string
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &targetDate, &priority, &category, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if targetDate.Valid {
			td := targetDate.String
			g.TargetDate = &td
		}
		g.Priority, err = model.ParsePriority(priority)
		if err != nil {
			return nil, fmt.Errorf("goal %s: %w", g.ID, err)
		}
		g.Category = model.ParseCategory(category)
		g.Status, err = model.ParseGoalStatus(status)
		if err != nil {
			return nil, fmt.Errorf("goal %s: %w", g.ID, err)
		}
		g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		g.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Store) UpdateGoal(id, title, description string, targetDate *string, priority model.Priority, category model.Category) error {
	if !priority.Valid() {
		return fmt.Errorf("invalid priority %q", priority)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE goals SET title = ?, description = ?, target_date = ?, priority = ?, category = ?, updated_at = ? WHERE id = ?`,
		title, description, targetDate, string(priority), string(model.ParseCategory(string(category))), now, id,
	)
	return err
}

// SetGoalStatus flips a goal between active and completed.
func (s *Store) SetGoalStatus(id string, status model.GoalStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid goal status %q", status)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE goals SET status = ?, updated_at = ? WHERE id = ?`, string(status), now, id,
	)
	return err
}

func (s *Store) DeleteGoal(id string) error {
	_, err := s.db.Exec(`DELETE FROM goals WHERE id = ?`, id)
	return err
}
