package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dailyflow/dailyflow/internal/model"
	"github.com/dailyflow/dailyflow/internal/stats"
)

func (s *Store) CreateHabit(name, description string, category model.Category, frequency model.Frequency) (*model.Habit, error) {
	if name == "" {
		return nil, fmt.Errorf("habit name is required")
	}
	if !frequency.Valid() {
		return nil, fmt.Errorf("invalid frequency %q", frequency)
	}
	category = model.ParseCategory(string(category))

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO habits (id, name, description, category, frequency, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, name, description, string(category), string(frequency), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert habit: %w", err)
	}
	return s.GetHabit(id)
}

func (s *Store) GetHabit(id string) (*model.Habit, error) {
	h := &model.Habit{}
	var category, frequency, createdAt, updatedAt string
	err := s.db.QueryRow(
		`SELECT id, name, description, category, frequency, current_streak, created_at, updated_at
		 FROM habits WHERE id = ?`, id,
	).Scan(&h.ID, &h.Name, &h.Description, &category, &frequency, &h.CurrentStreak, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get habit %s: %w", id, err)
	}
	h.Category = model.ParseCategory(category)
	h.Frequency, err = model.ParseFrequency(frequency)
	if err != nil {
		return nil, fmt.Errorf("habit %s: %w", id, err)
	}
	h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	h.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	h.CompletedDates, err = s.habitDates(id)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Store) ListHabits() ([]model.Habit, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, category, frequency, current_streak, created_at, updated_at
		 FROM habits ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var habits []model.Habit
	for rows.Next() {
		var h model.Habit
		var category, frequency, createdAt, updatedAt string
		if err := rows.Scan(&h.ID, &h.Name, &h.Description, &category, &frequency, &h.CurrentStreak, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		h.Category = model.ParseCategory(category)
		h.Frequency, err = model.ParseFrequency(frequency)
		if err != nil {
			return nil, fmt.Errorf("habit %s: %w", h.ID, err)
		}
		h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		h.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range habits {
		habits[i].CompletedDates, err = s.habitDates(habits[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return habits, nil
}

func (s *Store) UpdateHabit(id, name, description string, category model.Category, frequency model.Frequency) error {
	if !frequency.Valid() {
		return fmt.Errorf("invalid frequency %q", frequency)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE habits SET name = ?, description = ?, category = ?, frequency = ?, updated_at = ? WHERE id = ?`,
		name, description, string(model.ParseCategory(string(category))), string(frequency), now, id,
	)
	return err
}

func (s *Store) DeleteHabit(id string) error {
	_, err := s.db.Exec(`DELETE FROM habits WHERE id = ?`, id)
	return err
}

// ToggleHabitDate marks or unmarks a completion for the given calendar
// date. Future dates are rejected; past dates are allowed. Every
// mutation recomputes the cached streak from the full date set rather
// than adjusting it incrementally, so toggles of arbitrary past dates
// can never drift the cache.
func (s *Store) ToggleHabitDate(id, date string, today time.Time) (*model.Habit, error) {
	d, err := time.Parse(model.DayKey, date)
	if err != nil {
		return nil, fmt.Errorf("invalid day key %q: %w", date, err)
	}
	if d.Format(model.DayKey) > today.Format(model.DayKey) {
		return nil, fmt.Errorf("cannot mark future date %s", date)
	}

	var exists int
	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM habit_dates WHERE habit_id = ? AND date = ?`, id, date,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check habit date: %w", err)
	}

	if exists > 0 {
		_, err = s.db.Exec(`DELETE FROM habit_dates WHERE habit_id = ? AND date = ?`, id, date)
	} else {
		_, err = s.db.Exec(`INSERT INTO habit_dates (habit_id, date) VALUES (?, ?)`, id, date)
	}
	if err != nil {
		return nil, fmt.Errorf("toggle habit date: %w", err)
	}

	if err := s.recomputeStreak(id, today); err != nil {
		return nil, err
	}
	return s.GetHabit(id)
}

// recomputeStreak refreshes the cached current_streak column from the
// full completion set.
func (s *Store) recomputeStreak(id string, today time.Time) error {
	dates, err := s.habitDates(id)
	if err != nil {
		return err
	}
	streak := stats.CurrentStreak(dates, today)

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`UPDATE habits SET current_streak = ?, updated_at = ? WHERE id = ?`, streak, now, id,
	)
	if err != nil {
		return fmt.Errorf("update streak: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) habitDates(id string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT date FROM habit_dates WHERE habit_id = ? ORDER BY date`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("habit dates %s: %w", id, err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}
